package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for wikitext.

To load completions in your current shell session:

  wikitext completion fish | source

To load completions for every new session:

  wikitext completion fish > ~/.config/fish/completions/wikitext.fish`,
		Example: `  # Load in current session
  wikitext completion fish | source

  # Install permanently
  wikitext completion fish > ~/.config/fish/completions/wikitext.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
