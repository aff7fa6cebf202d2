package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/io"
	"github.com/bson/filtergen/pkg/pipeline"
	"github.com/bson/filtergen/pkg/schematic"
	"github.com/bson/filtergen/pkg/siunit"
)

// drawFlags holds the command-line flags shared by the design commands.
// They control the sheet, the simulation scaffolding and the outputs.
type drawFlags struct {
	output     string // output file (single format) or base path (multiple)
	formats    string // comma-separated output formats
	save       string // design file to write the options to
	page       string
	portrait   bool
	box        bool
	note       bool
	noAnnotate bool
	opamp      string
	sim        bool
	simLib     string
	supply     float64
	title      string
	seed       uint32
	detailed   bool
	noCache    bool
	refresh    bool
}

func (f *drawFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): sch (default), json, pdf, dot, svg (comma-separated)")
	fs.StringVar(&f.save, "save", "", "also write the design to a .toml, .yaml or .json file")
	fs.StringVar(&f.page, "page", "", "page size: "+strings.Join(schematic.PageNames(), ", ")+" or auto")
	fs.BoolVar(&f.portrait, "portrait", false, "portrait page orientation")
	fs.BoolVar(&f.box, "box", false, "draw a frame around each stage")
	fs.BoolVar(&f.note, "note", false, "add a note with the design parameters to each stage")
	fs.BoolVar(&f.noAnnotate, "no-annotate", false, "keep unnumbered references (R?, C?)")
	fs.StringVar(&f.opamp, "opamp", "", "op-amp model (default LM358)")
	fs.BoolVar(&f.sim, "sim", false, "add simulation sources, load and directives")
	fs.StringVar(&f.simLib, "sim-lib", "", "SPICE library included by the simulation")
	fs.Float64Var(&f.supply, "supply", pipeline.DefaultSupplyVoltage, "simulation supply voltage (±V)")
	fs.StringVar(&f.title, "title", "", "sheet title")
	fs.Uint32Var(&f.seed, "seed", 0, "first unique ID; 0 seeds from the clock and disables caching")
	fs.BoolVar(&f.detailed, "detailed", false, "component values in the block diagram")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the design cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	registerDesignCompletions(cmd)
}

// apply copies the flags onto opts. Flags left at their zero value do not
// override values already present, so design files keep their settings.
func (f *drawFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if f.formats != "" {
		opts.Formats = parseFormats(f.formats)
	}
	if f.page != "" {
		opts.Page = f.page
	}
	if f.opamp != "" {
		opts.OpAmp = f.opamp
	}
	if f.simLib != "" {
		opts.SimLibrary = f.simLib
	}
	if f.title != "" {
		opts.Title = f.title
	}
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("supply") || opts.SupplyVoltage == 0 {
		opts.SupplyVoltage = f.supply
	}
	opts.Portrait = opts.Portrait || f.portrait
	opts.Box = opts.Box || f.box
	opts.Note = opts.Note || f.note
	opts.NoAnnotate = opts.NoAnnotate || f.noAnnotate
	opts.Sim = opts.Sim || f.sim
	opts.Detailed = opts.Detailed || f.detailed
	opts.Refresh = f.refresh
}

// runDesign executes the pipeline, prints the component values and
// writes the artifacts when an output path is given.
func (c *CLI) runDesign(ctx context.Context, opts pipeline.Options, flags *drawFlags) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	if flags.output == "" && flags.formats != "" {
		return nil, fmt.Errorf("--format requires --output")
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	logOptions(logger, opts)
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	prog.done("designed", "stages", result.Stats.Stages, "cached", result.CacheInfo.Hit)

	printDesign(result)

	if flags.save != "" {
		if err := io.ExportDesign(io.DesignFromOptions(opts), flags.save); err != nil {
			return nil, err
		}
		printSuccess("Saved design")
		printFile(flags.save)
	}

	if flags.output == "" {
		return result, nil
	}
	paths, err := io.ExportArtifacts(result.Artifacts, flags.output)
	if err != nil {
		return nil, err
	}
	printSuccess("Wrote %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return result, nil
}

// printDesign prints the stage parameters and the parts list.
func printDesign(res *pipeline.Result) {
	sum := res.Summary
	if len(sum.Stages) > 1 {
		printKeyValue("Family", sum.Family)
		printKeyValue("Order", fmt.Sprint(sum.Order))
	}
	printKeyValue("f0", siunit.FormatUnit(sum.Frequency, "Hz"))
	printKeyValue("Gain", siunit.Format(sum.Gain))
	if len(sum.Stages) == 1 {
		printKeyValue("Q", siunit.Format(sum.Stages[0].Params.Q))
	}
	printKeyValue("Page", res.Page.Name)

	if len(sum.Stages) > 1 {
		printNewline()
		printStageTable(sum.Stages)
	}
	if len(res.Parts) > 0 {
		printNewline()
		printPartsTable(res.Parts)
	}
	printDesignStats(res.Stats.Stages, res.Stats.Components, res.CacheInfo.Hit)
}
