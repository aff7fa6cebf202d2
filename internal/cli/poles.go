package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/filter/pole"
)

// polesCommand creates the poles command that prints a pole table.
func (c *CLI) polesCommand() *cobra.Command {
	var ripple float64
	var noCache bool

	cmd := &cobra.Command{
		Use:       "poles <family> <order>",
		Short:     "Print the stage Qs and frequency factors of a filter family",
		Example:   "  filtergen poles butterworth 6\n  filtergen poles chebyshev 4 --ripple 0.5",
		Args:      cobra.ExactArgs(2),
		ValidArgs: pole.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("order must be an integer: %q", args[1])
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			table, err := runner.Poles(cmd.Context(), args[0], order, ripple)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s, order %d", strings.ToUpper(table.Family[:1])+table.Family[1:], table.Order)
			if table.RippleDB != 0 {
				title += fmt.Sprintf(", %g dB ripple", table.RippleDB)
			}
			fmt.Println(StyleTitle.Render(title))
			printPoleTable(table.Poles)
			printNextStep("Design it", fmt.Sprintf("%s cascade --family %s --order %d --f0 1k", appName, table.Family, table.Order))
			return nil
		},
	}

	cmd.Flags().Float64Var(&ripple, "ripple", 0, "Chebyshev passband ripple in dB (default 1)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")
	return cmd
}
