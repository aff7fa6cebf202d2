package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/pipeline"
	"github.com/bson/filtergen/pkg/siunit"
)

// cascadeOpts holds the design flags of the cascade command. Numbers are
// kept as text so they can carry SI suffixes.
type cascadeOpts struct {
	family     string
	order      int
	frequency  string
	gain       string
	r1         string
	ripple     float64
	gainPolicy string
}

// cascadeCommand creates the cascade command for higher-order filters.
func (c *CLI) cascadeCommand() *cobra.Command {
	var flags drawFlags
	opts := cascadeOpts{
		family: pipeline.DefaultFamily,
		gain:   "1",
		r1:     "1k",
	}

	cmd := &cobra.Command{
		Use:   "cascade",
		Short: "Design a higher-order low-pass cascade",
		Long: `Design an even-order low-pass filter as a chain of MFB stages.

The stage Qs and frequencies come from the family's pole table. With the
"first" gain policy the whole gain is taken by stage 1; "even" splits it
equally between stages.`,
		Example: `  filtergen cascade --order 4 --f0 1k
  filtergen cascade --family bessel --order 6 --f0 10k --gain 4 -o bessel -f sch,svg
  filtergen cascade --family chebyshev --ripple 0.5 --order 8 --f0 2k --gain-policy even`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.options()
			if err != nil {
				return err
			}
			flags.apply(cmd, &po)
			_, err = c.runDesign(cmd.Context(), po, &flags)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.family, "family", opts.family, "approximation: "+strings.Join(pole.Names(), ", "))
	fs.IntVar(&opts.order, "order", 0, "filter order (even)")
	fs.StringVar(&opts.frequency, "f0", "", "cutoff frequency")
	fs.StringVar(&opts.gain, "gain", opts.gain, "overall DC gain")
	fs.StringVar(&opts.r1, "r1", opts.r1, "scale resistor of every stage")
	fs.Float64Var(&opts.ripple, "ripple", 0, "Chebyshev passband ripple in dB (default 1)")
	fs.StringVar(&opts.gainPolicy, "gain-policy", "", "gain distribution: first (default), even")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("f0")
	flags.register(cmd)

	return cmd
}

func (o *cascadeOpts) options() (pipeline.Options, error) {
	f, err := siunit.ParseWithUnit(o.frequency, "Hz")
	if err != nil {
		return pipeline.Options{}, err
	}
	h, err := siunit.Parse(o.gain)
	if err != nil {
		return pipeline.Options{}, err
	}
	r1, err := siunit.ParseWithUnit(o.r1, "ohm")
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Mode:       pipeline.ModeCascade,
		Family:     o.family,
		Order:      o.order,
		Frequency:  f,
		Gain:       h,
		R1:         r1,
		RippleDB:   o.ripple,
		GainPolicy: o.gainPolicy,
	}, nil
}
