package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewJourneyCommand creates the journey command group.
func NewJourneyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journey",
		Short: "List journeys and append screens to them",
	}
	cmd.AddCommand(newJourneyListCommand(rootOpts))
	cmd.AddCommand(newJourneyAppendCommand(rootOpts))
	return cmd
}

func newJourneyListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the active project's journeys",
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

			var text strings.Builder
			for _, j := range p.Journeys {
				names := make([]string, 0, len(j.Screens))
				for _, id := range j.Screens {
					if s := p.FindScreen(id); s != nil {
						names = append(names, s.Name)
					}
				}
				path := strings.Join(names, " -> ")
				if path == "" {
					path = "(empty)"
				}
				fmt.Fprintf(&text, "%-12s %-24s %s\n", j.ID, j.Name, path)
			}
			return f.SuccessText(text.String(), p.Journeys)
		},
	}
}

func newJourneyAppendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "append <journey-id> <screen>",
		Short:         "Append a screen to a journey's traversal order",
		Args:          cobra.ExactArgs(2),
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
			j := p.FindJourney(args[0])
			if j == nil {
				return fail(f, ExitFailure, ErrCodeNotFound,
					fmt.Sprintf("no journey %q", args[0]))
			}
			screen, err := resolveScreen(p, args[1])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}

			app.Session.AddScreenToJourney(cmd.Context(), j.ID, screen.ID)
			updated := app.Session.Current().FindJourney(j.ID)
			return f.SuccessText(
				fmt.Sprintf("Appended %q to journey %q\n", screen.Name, j.Name),
				updated)
		},
	}
}
