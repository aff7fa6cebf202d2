package cli

import (
	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Commands receive the CLI logger through their context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "filtergen synthesizes active low-pass filters as schematics",
		Long: `filtergen computes component values for multiple-feedback (Rauch) low-pass
stages, chains them into higher-order Butterworth, Bessel or Chebyshev
cascades and writes the circuit as an EESchema schematic.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.stageCommand())
	root.AddCommand(c.cascadeCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.polesCommand())
	root.AddCommand(c.valueCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
