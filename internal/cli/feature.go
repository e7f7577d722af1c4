package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFeatureCommand creates the feature command group.
func NewFeatureCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Add feature templates to the active project",
	}
	cmd.AddCommand(newFeatureAddCommand(rootOpts))
	return cmd
}

func newFeatureAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add <template-id>",
		Short:         "Expand a feature template into the active project",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}
			if _, err := requireProject(app, f); err != nil {
				return err
			}

			instance := app.Session.AddFeature(cmd.Context(), args[0])
			if instance == nil {
				return fail(f, ExitFailure, ErrCodeNotFound,
					fmt.Sprintf("feature template %s not found (see 'appsketch template list')", args[0]))
			}
			return f.SuccessText(
				fmt.Sprintf("Added feature %q with %d screens\n",
					instance.Name, len(instance.Screens)),
				instance)
		},
	}
}
