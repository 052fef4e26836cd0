package configcmd

import (
	"fmt"
	"net/url"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dvorberg/tinywikitext/internal/config"
	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration for problems",
		Long: `Check that the current configuration is usable: the output format is
known, the language maps to a PostgreSQL text search configuration, the
code color scheme exists, and the link base is an absolute URL.`,
		Example: `  # Check the configuration
  wikitext config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(noColor, nil)
		},
	}

	return cmd
}

func runTest(noColor bool, cfg *config.Config) error {
	if noColor {
		color.NoColor = true
	}

	if cfg == nil {
		var err error
		cfg, err = config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'wikitext init' to configure)", err)
		}
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Println("Checking configuration...")

	if err := cfg.Validate(); err != nil {
		_, _ = red.Println("✗ " + err.Error())
		fmt.Println("\nReconfigure with: wikitext init")
		return err
	}
	_, _ = green.Printf("✓ Output format %q is valid\n", cfg.Format)

	searchConfig := markup.SearchConfiguration(cfg.Language)
	if searchConfig == "simple" {
		_, _ = yellow.Printf("! Language %q has no PostgreSQL text search configuration, full text search uses %q\n",
			cfg.Language, searchConfig)
	} else {
		_, _ = green.Printf("✓ Language %q maps to the %q text search configuration\n",
			cfg.Language, searchConfig)
	}

	if cfg.Style != "" {
		if style := styles.Get(cfg.Style); style.Name == cfg.Style {
			_, _ = green.Printf("✓ Color scheme %q exists\n", cfg.Style)
		} else {
			_, _ = yellow.Printf("! Unknown color scheme %q, the code macro falls back to %q\n",
				cfg.Style, style.Name)
		}
	}

	if cfg.LinkBase != "" {
		if u, err := url.Parse(cfg.LinkBase); err != nil || u.Scheme == "" {
			_, _ = yellow.Printf("! Link base %q is not an absolute URL\n", cfg.LinkBase)
		} else {
			_, _ = green.Printf("✓ Link base %q\n", cfg.LinkBase)
		}
	}

	return nil
}
