// Package index provides the index command for the wikitext CLI.
package index

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dvorberg/tinywikitext/internal/config"
	"github.com/dvorberg/tinywikitext/internal/logger"
	"github.com/dvorberg/tinywikitext/internal/view"
	"github.com/dvorberg/tinywikitext/pkg/markup"
	"github.com/dvorberg/tinywikitext/pkg/wikitext"
)

type indexOptions struct {
	language   string
	update     string
	where      string
	configPath string
	noColor    bool
	verbose    bool

	stdin  io.Reader // For testing; defaults to os.Stdin
	stdout io.Writer // For testing; defaults to os.Stdout
	stderr io.Writer // For testing; defaults to os.Stderr
}

// NewCmdIndex creates the index command.
func NewCmdIndex() *cobra.Command {
	opts := &indexOptions{}

	cmd := &cobra.Command{
		Use:   "index [file]",
		Short: "Compile a document for PostgreSQL full text search",
		Long: `Compile a wikitext document into a PostgreSQL tsvector expression.

The expression weights headings above body text and skips markup that
carries no searchable words. With --update the expression is wrapped
in an UPDATE statement ready to feed to psql.

Reads the given file, or standard input when no file is given or the
file is "-".`,
		Example: `  # Print the tsvector expression
  wikitext index page.wiki

  # Use the German text search configuration
  wikitext index page.wiki --language de

  # Emit an UPDATE statement for one row
  wikitext index page.wiki --update wiki_page.tsvector --where "id = 42"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runIndex(file, opts)
		},
	}

	cmd.Flags().StringVar(&opts.language, "language", "", "Document root language (BCP-47 tag)")
	cmd.Flags().StringVar(&opts.update, "update", "", "Wrap the expression in an UPDATE of table.column")
	cmd.Flags().StringVar(&opts.where, "where", "", "WHERE clause for --update")

	return cmd
}

func runIndex(file string, opts *indexOptions) error {
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

	if opts.where != "" && opts.update == "" {
		return fmt.Errorf("the --where flag needs --update")
	}

	var table, column string
	if opts.update != "" {
		var ok bool
		table, column, ok = strings.Cut(opts.update, ".")
		if !ok || table == "" || column == "" {
			return fmt.Errorf("the update target must be table.column, got %q", opts.update)
		}
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.language != "" {
		cfg.Language = opts.language
	}
	lg.ConfigLoaded(configPath, cfg.Language, "tsvector")

	source, err := readSource(file, opts.stdin)
	if err != nil {
		return err
	}

	name := displayName(file)
	start := time.Now()

	ctx := markup.NewContext(wikitext.Builtins())
	ctx.Language = cfg.Language

	expr, err := wikitext.ToTSearch(source, ctx)
	if err != nil {
		lg.ParseFailed(name, err)
		renderer := view.NewRenderer(view.FormatTable, opts.noColor)
		renderer.SetWriter(opts.stderr)
		renderer.RenderSourceError(name, source, err)
		return fmt.Errorf("%s: index failed", name)
	}

	output := expr
	if opts.update != "" {
		output = updateStatement(table, column, expr, opts.where)
	}

	fmt.Fprint(opts.stdout, output)
	lg.IndexCompleted(name, len(output), time.Since(start))
	return nil
}

// updateStatement wraps a tsvector expression in an UPDATE statement.
// The expression keeps its own line breaks; the WHERE clause is optional
// and is taken over verbatim.
func updateStatement(table, column, expr, where string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET %s =\n", table, column)
	b.WriteString(strings.TrimRight(expr, "\n"))
	if where != "" {
		fmt.Fprintf(&b, "\nWHERE %s", where)
	}
	b.WriteString(";\n")
	return b.String()
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
