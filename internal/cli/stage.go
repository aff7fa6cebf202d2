package cli

import (
	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/pipeline"
)

// stageCommand creates the stage command for a single second-order stage.
func (c *CLI) stageCommand() *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "stage <f0> <H0> <Q> [R1]",
		Short: "Design a single MFB low-pass stage",
		Long: `Design a single multiple-feedback (Rauch) low-pass stage.

Values accept SI suffixes (M k m u n p), e.g. 1.5k or 4.7n. R1 sets the
impedance level of the stage and defaults to 1k. The component values are
always printed; use --output to write the schematic.`,
		Example: `  filtergen stage 1k 2 0.7071
  filtergen stage 10k 1 0.5412 4.7k -o lowpass.sch --sim
  filtergen stage 1k 2 0.7071 -o lowpass -f sch,pdf --seed 42`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pipeline.ParseStageArgs(args)
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)
			_, err = c.runDesign(cmd.Context(), opts, &flags)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
