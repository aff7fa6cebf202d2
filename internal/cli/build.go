package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/io"
)

// buildCommand creates the build command that runs a design file.
func (c *CLI) buildCommand() *cobra.Command {
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "build <design.toml|yaml|json>",
		Short: "Build the filter described by a design file",
		Long: `Build the filter described by a design file.

Flags override the file's settings. Without --output the artifacts are
written next to the design file, named after it.`,
		Example: `  filtergen build antialias.toml
  filtergen build antialias.yaml -o out/antialias -f sch,pdf,svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Infof("Loading %s", args[0])

			d, err := io.ImportDesign(args[0])
			if err != nil {
				return err
			}
			opts := d.Options()
			flags.apply(cmd, &opts)
			if flags.output == "" {
				flags.output = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				for _, f := range opts.Formats {
					if io.ArtifactPath(flags.output, f) == args[0] {
						return fmt.Errorf("%s output would overwrite the design file; use --output", f)
					}
				}
			}
			_, err = c.runDesign(cmd.Context(), opts, &flags)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
