package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/siunit"
)

// valueCommand creates the value command that round-trips SI values.
func (c *CLI) valueCommand() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "value <text>...",
		Short: "Parse values with SI suffixes and print them normalized",
		Example: `  filtergen value 4700 0.0000000047 1.5k
  filtergen value --unit F 10nF`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				v, err := siunit.ParseWithUnit(arg, unit)
				if err != nil {
					printError("%s: %v", arg, err)
					failed++
					continue
				}
				printKeyValue(arg, siunit.FormatUnit(v, unit)+"  "+StyleDim.Render(strconv.FormatFloat(v, 'g', -1, 64)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d values could not be parsed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "unit to strip and re-append (F, Hz, ohm)")
	return cmd
}
