// Package initcmd provides the init command for wikitext.
package initcmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dvorberg/tinywikitext/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		lang   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize wikitext configuration",
		Long: `Initialize wikitext with your rendering defaults.

This command will guide you through setting up the document language,
the default output format, the base URL for wiki links and the color
scheme used by the code macro. The configuration will be saved to
~/.config/wikitext/config.yml.`,
		Example: `  # Interactive setup
  wikitext init

  # Pre-populate the language
  wikitext init --language de`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(lang, format)
		},
	}

	cmd.Flags().StringVar(&lang, "language", "", "Document root language (BCP-47 tag, e.g. de-AT)")
	cmd.Flags().StringVar(&format, "format", "", "Default output format: html, markdown, events")

	return cmd
}

func runInit(prefillLanguage, prefillFormat string) error {
	configPath := config.DefaultConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	// Use prefilled values or prompt
	if prefillLanguage != "" {
		cfg.Language = prefillLanguage
	}
	if prefillFormat != "" {
		cfg.Format = prefillFormat
	}

	// Build the form
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Document language").
				Description("BCP-47 tag; selects the PostgreSQL text search configuration").
				Placeholder("en").
				Value(&cfg.Language).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("language is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Default output format").
				Options(huh.NewOptions(
					config.FormatHTML,
					config.FormatMarkdown,
					config.FormatEvents)...).
				Value(&cfg.Format),

			huh.NewInput().
				Title("Link base URL (optional)").
				Description("Prefix for resolving [[wiki links]] to hrefs").
				Placeholder("https://wiki.example.com/").
				Value(&cfg.LinkBase),

			huh.NewInput().
				Title("Code color scheme (optional)").
				Description("Chroma style used by the code macro").
				Placeholder("friendly").
				Value(&cfg.Style),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.NormalizeLinkBase()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := language.Parse(cfg.Language); err != nil {
		fmt.Printf("Note: unknown language %q, full text search will use the simple configuration.\n", cfg.Language)
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  wikitext render page.wiki")
	fmt.Println("  wikitext index page.wiki --update wiki_page.tsvector")

	return nil
}
