package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/appsketch/internal/canvas"
)

// NewZoomCommand creates the zoom command.
func NewZoomCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "zoom <percent>",
		Short: "Preview the canvas frame at a zoom level",
		Long: `Derive the canvas frame for the active project at the given zoom
percentage, showing which layers the nearest zoom level renders and how
many cards, connection curves, and journey paths are visible.`,
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

			zoom, err := strconv.ParseFloat(args[0], 64)
			if err != nil || zoom <= 0 {
				return fail(f, ExitFailure, ErrCodeValidation,
					fmt.Sprintf("invalid zoom %q: must be a positive percentage", args[0]))
			}

			frame := canvas.Derive(p, canvas.Viewport{Zoom: zoom})

			var text strings.Builder
			fmt.Fprintf(&text, "Zoom %g%% -> level %g%% (%s)\n", zoom, frame.Level.Value, frame.Level.Name)
			fmt.Fprintf(&text, "%s\n\n", frame.Level.Description)
			fmt.Fprintf(&text, "Layers: journeys=%t connections=%t details=%t features=%t components=%t\n",
				frame.Level.ShowJourneys, frame.Level.ShowConnections, frame.Level.ShowScreenDetails,
				frame.Level.ShowFeatures, frame.Level.ShowComponents)
			fmt.Fprintf(&text, "Visible: %d cards, %d curves, %d journey paths\n",
				len(frame.Cards), len(frame.Curves), len(frame.Journeys))
			fmt.Fprintf(&text, "Card footprint: %gx%g\n", frame.Level.Card.Width, frame.Level.Card.Height)
			return f.SuccessText(text.String(), frame)
		},
	}
}
