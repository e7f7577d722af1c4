package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/project"
)

// NewScreenCommand creates the screen command group.
func NewScreenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Add, update, move, connect, and delete screens",
	}
	cmd.AddCommand(newScreenAddCommand(rootOpts))
	cmd.AddCommand(newScreenUpdateCommand(rootOpts))
	cmd.AddCommand(newScreenDeleteCommand(rootOpts))
	cmd.AddCommand(newScreenMoveCommand(rootOpts))
	cmd.AddCommand(newScreenConnectCommand(rootOpts))
	return cmd
}

// resolveScreen accepts a screen id or an exact name and returns the
// matching screen. Names are only matched when unambiguous.
func resolveScreen(p *model.Project, ref string) (*model.Screen, error) {
	if s := p.FindScreen(ref); s != nil {
		return s, nil
	}
	var match *model.Screen
	for i := range p.Screens {
		if p.Screens[i].Name == ref {
			if match != nil {
				return nil, fmt.Errorf("screen name %q is ambiguous, use the id", ref)
			}
			match = &p.Screens[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no screen %q", ref)
	}
	return match, nil
}

func newScreenAddCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string
	var x, y float64
	cmd := &cobra.Command{
		Use:           "add <name>",
		Short:         "Add a screen to the active project",
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
			if !model.ValidScreenKinds[model.ScreenKind(kind)] {
				return fail(f, ExitFailure, ErrCodeValidation,
					fmt.Sprintf("invalid screen type %q (screen|modal|flow)", kind))
			}

			screen := model.Screen{
				Name:     args[0],
				Kind:     model.ScreenKind(kind),
				Position: model.Position{X: x, Y: y},
			}
			added := app.Session.AddScreen(cmd.Context(), screen)
			return f.SuccessText(
				fmt.Sprintf("Added screen %q (%s) at (%g, %g)\n",
					added.Name, added.ID, added.Position.X, added.Position.Y),
				added)
		},
	}
	cmd.Flags().StringVar(&kind, "type", "screen", "screen type (screen|modal|flow)")
	cmd.Flags().Float64Var(&x, "x", 0, "canvas x position (0 = auto grid)")
	cmd.Flags().Float64Var(&y, "y", 0, "canvas y position (0 = auto grid)")
	return cmd
}

func newScreenUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var name, kind string
	cmd := &cobra.Command{
		Use:           "update <screen>",
		Short:         "Rename or retype a screen",
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
			screen, err := resolveScreen(p, args[0])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}

			var patch project.ScreenPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("type") {
				if !model.ValidScreenKinds[model.ScreenKind(kind)] {
					return fail(f, ExitFailure, ErrCodeValidation,
						fmt.Sprintf("invalid screen type %q (screen|modal|flow)", kind))
				}
				k := model.ScreenKind(kind)
				patch.Kind = &k
			}
			app.Session.UpdateScreen(cmd.Context(), screen.ID, patch)
			updated := app.Session.Current().FindScreen(screen.ID)
			return f.SuccessText(
				fmt.Sprintf("Updated screen %s\n", screen.ID), updated)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new screen name")
	cmd.Flags().StringVar(&kind, "type", "", "new screen type (screen|modal|flow)")
	return cmd
}

func newScreenDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <screen>",
		Short:         "Delete a screen, its incoming connections, and journey references",
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
			screen, err := resolveScreen(p, args[0])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}

			app.Session.DeleteScreen(cmd.Context(), screen.ID)
			return f.SuccessText(
				fmt.Sprintf("Deleted screen %q\n", screen.Name),
				map[string]string{"deleted": screen.ID})
		},
	}
}

func newScreenMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "move <screen> <x> <y>",
		Short:         "Move a screen to a canvas position",
		Args:          cobra.ExactArgs(3),
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
			screen, err := resolveScreen(p, args[0])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}
			x, errX := strconv.ParseFloat(args[1], 64)
			y, errY := strconv.ParseFloat(args[2], 64)
			if errX != nil || errY != nil {
				return fail(f, ExitFailure, ErrCodeValidation, "x and y must be numbers")
			}

			pos := model.Position{X: x, Y: y}
			app.Session.UpdateScreen(cmd.Context(), screen.ID, project.ScreenPatch{Position: &pos})
			return f.SuccessText(
				fmt.Sprintf("Moved %q to (%g, %g)\n", screen.Name, x, y),
				map[string]any{"id": screen.ID, "position": pos})
		},
	}
}

func newScreenConnectCommand(rootOpts *RootOptions) *cobra.Command {
	var kind, label string
	cmd := &cobra.Command{
		Use:           "connect <from> <to>",
		Short:         "Connect one screen to another",
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
			from, err := resolveScreen(p, args[0])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}
			to, err := resolveScreen(p, args[1])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeNotFound, err.Error())
			}
			switch model.ConnectionKind(kind) {
			case model.ConnectionNavigation, model.ConnectionAction, model.ConnectionData:
			default:
				return fail(f, ExitFailure, ErrCodeValidation,
					fmt.Sprintf("invalid connection type %q (navigation|action|data)", kind))
			}

			conns := append(from.Connections, model.Connection{
				From:  from.ID,
				To:    to.ID,
				Kind:  model.ConnectionKind(kind),
				Label: label,
			})
			app.Session.UpdateScreen(cmd.Context(), from.ID, project.ScreenPatch{Connections: conns})
			return f.SuccessText(
				fmt.Sprintf("Connected %q -> %q (%s)\n", from.Name, to.Name, kind),
				map[string]string{"from": from.ID, "to": to.ID, "type": kind})
		},
	}
	cmd.Flags().StringVar(&kind, "type", "navigation", "connection type (navigation|action|data)")
	cmd.Flags().StringVar(&label, "label", "", "connection label")
	return cmd
}
