package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewChatCommand creates the chat command.
func NewChatCommand(rootOpts *RootOptions) *cobra.Command {
	var applyMods bool
	cmd := &cobra.Command{
		Use:   "chat <text>",
		Short: "Ask the advisor about the active project in free text",
		Long: `Send a free-text request about the active project. The advisor replies
with a message and, when the request maps to a concrete change, the
modifications that would realize it. Pass --apply to apply them directly.`,
		Args:          cobra.MinimumNArgs(1),
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

			text := strings.Join(args, " ")
			reply := app.Advisor.ProcessFreeText(cmd.Context(), text, p)

			var out strings.Builder
			out.WriteString(reply.Message + "\n")
			if len(reply.Modifications) > 0 {
				fmt.Fprintf(&out, "\n%d modification(s) proposed", len(reply.Modifications))
				if applyMods {
					report := app.Applicator.Apply(cmd.Context(), reply.Modifications)
					fmt.Fprintf(&out, "; applied %d, skipped %d", report.Applied, report.Skipped)
				} else {
					out.WriteString(" (re-run with --apply to apply them)")
				}
				out.WriteString("\n")
			}
			for _, s := range reply.NextSteps {
				fmt.Fprintf(&out, "\nSuggested: %s (%s)\n", s.Title, s.ID)
			}
			return f.SuccessText(out.String(), reply)
		},
	}
	cmd.Flags().BoolVar(&applyMods, "apply", false, "apply the proposed modifications")
	return cmd
}
