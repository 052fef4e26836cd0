// Package tokens provides the tokens command for the wikitext CLI.
package tokens

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dvorberg/tinywikitext/internal/logger"
	"github.com/dvorberg/tinywikitext/internal/view"
	"github.com/dvorberg/tinywikitext/pkg/wikitext"
)

type tokensOptions struct {
	output  string
	noColor bool
	verbose bool

	stdin  io.Reader // For testing; defaults to os.Stdin
	stdout io.Writer // For testing; defaults to os.Stdout
	stderr io.Writer // For testing; defaults to os.Stderr
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the token stream of a document",
		Long: `Tokenize a wikitext document and list the resulting tokens.

Intended for debugging markup: each row shows where a token starts,
its type, and its matched text.

Reads the given file, or standard input when no file is given or the
file is "-".`,
		Example: `  # List tokens as a table
  wikitext tokens page.wiki

  # Machine-readable output
  wikitext tokens page.wiki --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runTokens(file, opts)
		},
	}

	return cmd
}

func runTokens(file string, opts *tokensOptions) error {
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

	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	source, err := readSource(file, opts.stdin)
	if err != nil {
		return err
	}
	name := displayName(file)

	tokenizer := wikitext.NewTokenizer(source)
	var rows [][]string
	for {
		tok, err := tokenizer.Next()
		if err != nil {
			lg.ParseFailed(name, err)
			renderer := view.NewRenderer(view.FormatTable, opts.noColor)
			renderer.SetWriter(opts.stderr)
			renderer.RenderSourceError(name, source, err)
			return fmt.Errorf("%s: tokenization failed", name)
		}
		if tok.Type == wikitext.TokenEOF {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(tok.Loc.Line),
			strconv.Itoa(tok.Loc.Column),
			tok.Type.String(),
			view.Truncate(fmt.Sprintf("%q", tok.Value), 48),
		})
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.stdout)
	renderer.RenderTable([]string{"LINE", "COL", "TYPE", "VALUE"}, rows)

	lg.TokensListed(name, len(rows))
	return nil
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
