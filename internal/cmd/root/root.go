// Package root provides the root command for the wikitext CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/dvorberg/tinywikitext/internal/cmd/completion"
	"github.com/dvorberg/tinywikitext/internal/cmd/configcmd"
	"github.com/dvorberg/tinywikitext/internal/cmd/index"
	"github.com/dvorberg/tinywikitext/internal/cmd/initcmd"
	"github.com/dvorberg/tinywikitext/internal/cmd/render"
	"github.com/dvorberg/tinywikitext/internal/cmd/tokens"
	"github.com/dvorberg/tinywikitext/internal/version"
)

// NewCmdRoot creates the root command for wikitext.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikitext",
		Short: "A command-line processor for tiny wikitext markup",
		Long: `wikitext parses a small MediaWiki-flavored markup dialect and renders
it as HTML or markdown, or compiles it into PostgreSQL tsvector
expressions for full text indexing.

Get started by running: wikitext init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/wikitext/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format for listings: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	// Set version template
	cmd.SetVersionTemplate("wikitext version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(index.NewCmdIndex())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
