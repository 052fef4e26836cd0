// Package render provides the render command for the wikitext CLI.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dvorberg/tinywikitext/internal/config"
	"github.com/dvorberg/tinywikitext/internal/logger"
	"github.com/dvorberg/tinywikitext/internal/view"
	"github.com/dvorberg/tinywikitext/pkg/markup"
	"github.com/dvorberg/tinywikitext/pkg/wikitext"
)

type renderOptions struct {
	format     string
	fullPage   bool
	title      string
	language   string
	linkBase   string
	style      string
	configPath string
	noColor    bool
	verbose    bool

	stdin  io.Reader // For testing; defaults to os.Stdin
	stdout io.Writer // For testing; defaults to os.Stdout
	stderr io.Writer // For testing; defaults to os.Stderr
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a wikitext document",
		Long: `Render a wikitext document to HTML, markdown or an event trace.

Reads the given file, or standard input when no file is given or the
file is "-". The result is written to standard output.`,
		Example: `  # Render a file to HTML
  wikitext render page.wiki

  # Render standard input to markdown
  cat page.wiki | wikitext render --format markdown

  # Complete HTML page with a title
  wikitext render page.wiki --full-page --title "Front page"

  # Show the parser's event stream
  wikitext render page.wiki --format events`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runRender(file, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: html, markdown, events (default from config)")
	cmd.Flags().BoolVar(&opts.fullPage, "full-page", false, "Wrap HTML output in a complete page skeleton")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Page title for --full-page")
	cmd.Flags().StringVar(&opts.language, "language", "", "Document root language (BCP-47 tag)")
	cmd.Flags().StringVar(&opts.linkBase, "link-base", "", "URL prefix for resolving wiki links")
	cmd.Flags().StringVar(&opts.style, "style", "", "Color scheme for the code macro")

	return cmd
}

func runRender(file string, opts *renderOptions) error {
	if opts.stdin == nil {
		opts.stdin = os.Stdin
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}

	lg := logger.Discard()
	if opts.verbose {
		lg = logger.NewWithLevel(opts.stderr, log.DebugLevel)
	}

	// Load config and let flags override it
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.language != "" {
		cfg.Language = opts.language
	}
	if opts.linkBase != "" {
		cfg.LinkBase = opts.linkBase
	}
	if opts.style != "" {
		cfg.Style = opts.style
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.NormalizeLinkBase()
	lg.ConfigLoaded(configPath, cfg.Language, cfg.Format)

	source, err := readSource(file, opts.stdin)
	if err != nil {
		return err
	}

	name := displayName(file)
	lg.RenderStarted(name, cfg.Format)
	start := time.Now()

	output, err := renderSource(source, cfg, lg)
	if err != nil {
		lg.ParseFailed(name, err)
		renderer := view.NewRenderer(view.FormatTable, opts.noColor)
		renderer.SetWriter(opts.stderr)
		renderer.RenderSourceError(name, source, err)
		return fmt.Errorf("%s: render failed", name)
	}

	if opts.fullPage && cfg.Format == config.FormatHTML {
		output = wikitext.HTMLPage(pageTitle(file, opts.title), output)
	}

	fmt.Fprint(opts.stdout, output)
	lg.RenderCompleted(name, len(output), time.Since(start))
	return nil
}

// renderSource compiles source with the backend cfg.Format selects.
func renderSource(source string, cfg *config.Config, lg *logger.Logger) (string, error) {
	ctx := buildContext(cfg, lg)

	switch cfg.Format {
	case config.FormatEvents:
		var buf strings.Builder
		compiler := wikitext.NewTraceCompiler(&buf)
		if err := wikitext.NewParser(ctx).Parse(source, compiler); err != nil {
			return "", err
		}
		return buf.String(), nil

	case config.FormatMarkdown:
		html, err := wikitext.ToHTML(source, ctx)
		if err != nil {
			return "", err
		}
		md, err := htmltomarkdown.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("markdown conversion failed: %w", err)
		}
		if md != "" && !strings.HasSuffix(md, "\n") {
			md += "\n"
		}
		return md, nil

	default:
		return wikitext.ToHTML(source, ctx)
	}
}

// buildContext assembles the parse context from the effective config.
func buildContext(cfg *config.Config, lg *logger.Logger) *markup.Context {
	lib := wikitext.Builtins()
	if cfg.Style != "" {
		lib.Register(wikitext.NewCodeMacro(cfg.Style))
		lg.MacroRegistered("code")
	}

	ctx := markup.NewContext(lib)
	ctx.Language = cfg.Language
	if cfg.LinkBase != "" {
		base := cfg.LinkBase
		ctx.ResolveLink = func(target string) string {
			return base + strings.ReplaceAll(target, " ", "_")
		}
	}
	return ctx
}

// pageTitle picks the title for --full-page output: the explicit flag,
// otherwise the file's base name without extension.
func pageTitle(file, title string) string {
	if title != "" {
		return title
	}
	if file == "" || file == "-" {
		return "wikitext"
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readSource(file string, stdin io.Reader) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func displayName(file string) string {
	if file == "" {
		return "-"
	}
	return file
}
