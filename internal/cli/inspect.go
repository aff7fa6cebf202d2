package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/eeschema"
	"github.com/bson/filtergen/pkg/errors"
)

// inspectCommand creates the inspect command that summarizes a sheet.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.sch> [ref]",
		Short: "Summarize a generated schematic or show one component",
		Example: `  filtergen inspect lowpass.sch
  filtergen inspect lowpass.sch R2
  filtergen inspect lowpass.sch --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := eeschema.NewParser()
			if err != nil {
				return err
			}
			f, err := p.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				printWarning("%s", errors.UserMessage(err))
			}

			if len(args) == 2 {
				return printComponent(f, args[1])
			}

			sum := f.Summarize()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			printSummary(args[0], sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(path string, s eeschema.Summary) {
	fmt.Println(StyleTitle.Render(path))
	if s.Title != "" {
		printKeyValue("Title", s.Title)
	}
	printKeyValue("Page", fmt.Sprintf("%s (%d x %d mil)", s.Page, s.Width, s.Height))
	printKeyValue("Components", strconv.Itoa(s.Components))
	printKeyValue("Wires", strconv.Itoa(s.Wires))
	printKeyValue("Junctions", strconv.Itoa(s.Junctions))
	if s.Lines > 0 {
		printKeyValue("Lines", strconv.Itoa(s.Lines))
	}
	if s.Notes > 0 {
		printKeyValue("Notes", strconv.Itoa(s.Notes))
	}
	if len(s.Nets) > 0 {
		printKeyValue("Nets", strings.Join(s.Nets, ", "))
	}
	if len(s.Parts) > 0 {
		printNewline()
		printPartsTable(s.Parts)
	}
}

func printComponent(f *eeschema.File, ref string) error {
	for _, comp := range f.Components() {
		if comp.Ref() != ref {
			continue
		}
		fmt.Println(StyleTitle.Render(ref) + " " + StyleDim.Render(comp.Library))
		printKeyValue("UID", comp.UID)
		printKeyValue("Position", fmt.Sprintf("%d %d", comp.X, comp.Y))

		t := newTable("#", "Name", "Text", "At", "Hidden")
		for _, fld := range comp.Fields {
			hidden := ""
			if fld.Hidden() {
				hidden = "yes"
			}
			t.Row(strconv.Itoa(fld.Index), fld.Name, fld.Text,
				fmt.Sprintf("%d %d", fld.X, fld.Y), hidden)
		}
		fmt.Println(t)
		return nil
	}
	return errors.New(errors.ErrCodeNotFound, "no component %q", ref)
}
