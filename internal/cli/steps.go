package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStepsCommand creates the steps command group.
func NewStepsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Run suggested next steps from the latest analysis",
	}
	cmd.AddCommand(newStepsRunCommand(rootOpts))
	return cmd
}

func newStepsRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "run <step-id>",
		Short:         "Execute one suggested next step against the active project",
		Args:          cobra.ExactArgs(1),
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

			stepID := args[0]
			var found bool
			var target int
			for i, s := range p.AIContext.SuggestedNextSteps {
				if s.ID == stepID {
					found = true
					target = i
					break
				}
			}
			if !found {
				return fail(f, ExitFailure, ErrCodeNotFound,
					fmt.Sprintf("no suggested step %q; run 'appsketch analyze' first", stepID))
			}
			next := p.AIContext.SuggestedNextSteps[target]

			mods := app.Advisor.GenerateModifications(cmd.Context(), next, p)
			if len(mods) == 0 {
				return fail(f, ExitFailure, ErrCodeGeneric,
					fmt.Sprintf("step %q produced no modifications", stepID))
			}

			report := app.Applicator.Apply(cmd.Context(), mods)
			return f.SuccessText(
				fmt.Sprintf("Step %q: applied %d modification(s), skipped %d\n",
					next.Title, report.Applied, report.Skipped),
				report)
		},
	}
}
