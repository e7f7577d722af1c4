package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/appsketch/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export the active project as handoff documents",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}
			p, err := requireProject(app, f)
			if err != nil {
				return err
			}

			bundle, err := export.Generate(p)
			if err != nil {
				return fail(f, ExitFailure, ErrCodeGeneric, err.Error())
			}
			if err := export.WriteDir(bundle, outDir); err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}

			var text strings.Builder
			fmt.Fprintf(&text, "Exported %q to %s:\n", p.Name, outDir)
			for _, name := range bundle.Names() {
				fmt.Fprintf(&text, "  %s (%d bytes)\n", name, len(bundle[name]))
			}
			return f.SuccessText(text.String(), map[string]any{
				"dir":   outDir,
				"files": bundle.Names(),
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "export", "output directory")
	return cmd
}
