package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/pipeline"
	"github.com/bson/filtergen/pkg/schematic"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for filtergen.

To load completions:

Bash:
  $ source <(filtergen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ filtergen completion bash > /etc/bash_completion.d/filtergen
  # macOS:
  $ filtergen completion bash > $(brew --prefix)/etc/bash_completion.d/filtergen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ filtergen completion zsh > "${fpath[1]}/_filtergen"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ filtergen completion fish | source

  # To load completions for each session, execute once:
  $ filtergen completion fish > ~/.config/fish/completions/filtergen.fish

PowerShell:
  PS> filtergen completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> filtergen completion powershell > filtergen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

type completionFunc = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

// fixedCompletion completes a flag from a fixed list of words.
func fixedCompletion(words ...string) completionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return words, cobra.ShellCompDirectiveNoFileComp
	}
}

// formatCompletion completes the comma-separated --format list one entry
// at a time.
func formatCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	out := make([]string, 0, len(pipeline.FormatOrder))
	for _, f := range pipeline.FormatOrder {
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerDesignCompletions attaches value completions to the design flags
// that cmd defines.
func registerDesignCompletions(cmd *cobra.Command) {
	complete := map[string]completionFunc{
		"format":      formatCompletion,
		"page":        fixedCompletion(append(schematic.PageNames(), pipeline.PageAuto)...),
		"family":      fixedCompletion(pole.Names()...),
		"gain-policy": fixedCompletion(string(filter.GainFirst), string(filter.GainEven)),
	}
	for name, fn := range complete {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}
