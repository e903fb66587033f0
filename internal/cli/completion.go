package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/metro/pkg/layout"
	"github.com/matzehuels/metro/pkg/pipeline"
)

// scriptExts are the file extensions offered for script arguments.
var scriptExts = []string{"json", "yaml", "yml", "toml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for metro.

To load completions:

Bash:
  $ source <(metro completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ metro completion bash > /etc/bash_completion.d/metro
  # macOS:
  $ metro completion bash > $(brew --prefix)/etc/bash_completion.d/metro

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ metro completion zsh > "${fpath[1]}/_metro"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ metro completion fish | source

  # To load completions for each session, execute once:
  $ metro completion fish > ~/.config/fish/completions/metro.fish

PowerShell:
  PS> metro completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> metro completion powershell > metro.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeScript offers script files for the first positional argument.
func completeScript(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return scriptExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeFlagValues registers fixed completions for the script and
// rendering flags that cmd defines.
func completeFlagValues(cmd *cobra.Command) {
	values := map[string][]string{
		"input":    {"json", "yaml", "toml"},
		"format":   {pipeline.FormatText, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG},
		"collapse": {layout.CollapseStepwise.String(), layout.CollapseCompact.String()},
	}
	for name, vals := range values {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
	}
}
