package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for wikitext.

To load completions in your current shell session:

  source <(wikitext completion bash)

To load completions for every new session:

  # Linux
  wikitext completion bash > /etc/bash_completion.d/wikitext

  # macOS (requires bash-completion)
  wikitext completion bash > $(brew --prefix)/etc/bash_completion.d/wikitext`,
		Example: `  # Load in current session
  source <(wikitext completion bash)

  # Install permanently (Linux)
  wikitext completion bash | sudo tee /etc/bash_completion.d/wikitext > /dev/null

  # Install permanently (macOS with Homebrew)
  wikitext completion bash > $(brew --prefix)/etc/bash_completion.d/wikitext`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
