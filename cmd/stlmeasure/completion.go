package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for stlmeasure.

To load completions:

Bash:

  $ source <(stlmeasure completion bash)

  To load completions for each session, execute once:
  Linux:
    $ stlmeasure completion bash > /etc/bash_completion.d/stlmeasure
  macOS:
    $ stlmeasure completion bash > /usr/local/etc/bash_completion.d/stlmeasure

Zsh:

  $ stlmeasure completion zsh > "${fpath[1]}/_stlmeasure"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ stlmeasure completion fish > ~/.config/fish/completions/stlmeasure.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		default:
			return rootCmd.GenFishCompletion(out, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
