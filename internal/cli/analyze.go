package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the active project for gaps and next steps",
		Long: `Review the active project's structure for gaps, inconsistencies, and
suggested next steps. Uses the configured AI backend when available,
falling back to deterministic heuristic rules otherwise.`,
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

			f.VerboseLog("Analyzing %q via %s", p.Name, app.Advisor.BackendName())
			analysis := app.Advisor.Analyze(cmd.Context(), p)
			app.Session.RecordAnalysis(cmd.Context(), analysis)

			var text strings.Builder
			fmt.Fprintf(&text, "Analysis of %q (confidence %.0f%%)\n\n", p.Name, analysis.Confidence*100)

			fmt.Fprintf(&text, "Gaps (%d):\n", len(analysis.Gaps))
			for _, g := range analysis.Gaps {
				fmt.Fprintf(&text, "  [%-6s] %s: %s\n", g.Severity, g.Kind, g.Description)
				if g.SuggestedFix != "" {
					fmt.Fprintf(&text, "           fix: %s\n", g.SuggestedFix)
				}
			}
			if len(analysis.Gaps) == 0 {
				text.WriteString("  none found\n")
			}

			fmt.Fprintf(&text, "\nNext steps (%d):\n", len(analysis.NextSteps))
			for _, s := range analysis.NextSteps {
				auto := ""
				if s.AutoExecutable {
					auto = "  (run with 'appsketch steps run " + s.ID + "')"
				}
				fmt.Fprintf(&text, "  %-20s %s%s\n", s.ID, s.Title, auto)
			}
			if len(analysis.NextSteps) == 0 {
				text.WriteString("  none\n")
			}
			return f.SuccessText(text.String(), analysis)
		},
	}
}
