package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/project"
	"github.com/roach88/appsketch/internal/store"
)

// projectSummary is the JSON payload for project listings.
type projectSummaryOut struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Screens      int    `json:"screens"`
	Journeys     int    `json:"journeys"`
	Features     int    `json:"features"`
	LastModified string `json:"lastModified"`
	Active       bool   `json:"active"`
}

func summarize(p *model.Project, active bool) projectSummaryOut {
	return projectSummaryOut{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Screens:      len(p.Screens),
		Journeys:     len(p.Journeys),
		Features:     len(p.Features),
		LastModified: p.LastModified.UTC().Format("2006-01-02 15:04"),
		Active:       active,
	}
}

// requireProject returns the active project or a ready-made failure.
func requireProject(app *App, f *OutputFormatter) (*model.Project, error) {
	p := app.Session.Current()
	if p == nil {
		return nil, fail(f, ExitFailure, ErrCodeNoProject,
			"no active project; create one with 'appsketch project new' or open one with 'appsketch project open'")
	}
	return p, nil
}

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, list, open, and inspect projects",
	}
	cmd.AddCommand(newProjectNewCommand(rootOpts))
	cmd.AddCommand(newProjectListCommand(rootOpts))
	cmd.AddCommand(newProjectOpenCommand(rootOpts))
	cmd.AddCommand(newProjectDeleteCommand(rootOpts))
	cmd.AddCommand(newProjectShowCommand(rootOpts))
	return cmd
}

func newProjectNewCommand(rootOpts *RootOptions) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:           "new <name>",
		Short:         "Create a new project and make it active",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			p, err := app.Session.CreateProject(cmd.Context(), args[0], description)
			if err != nil {
				if project.IsValidation(err) {
					return fail(f, ExitFailure, ErrCodeValidation, err.Error())
				}
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			return f.SuccessText(
				fmt.Sprintf("Created project %q (%s)\n", p.Name, p.ID),
				summarize(p, true))
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	return cmd
}

func newProjectListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all projects, most recently modified first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			projects, err := app.Session.Projects(cmd.Context())
			if err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}

			activeID := ""
			if current := app.Session.Current(); current != nil {
				activeID = current.ID
			}

			summaries := make([]projectSummaryOut, len(projects))
			var text strings.Builder
			for i, p := range projects {
				summaries[i] = summarize(p, p.ID == activeID)
				marker := " "
				if p.ID == activeID {
					marker = "*"
				}
				fmt.Fprintf(&text, "%s %-24s %-36s %2d screens  %s\n",
					marker, p.Name, p.ID, len(p.Screens), summaries[i].LastModified)
			}
			if len(projects) == 0 {
				text.WriteString("No projects yet.\n")
			}
			return f.SuccessText(text.String(), summaries)
		},
	}
}

func newProjectOpenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "open <project-id>",
		Short:         "Make a project the active one",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			p, err := app.Session.LoadProject(cmd.Context(), args[0])
			if err != nil {
				if store.IsNotFound(err) {
					return fail(f, ExitFailure, ErrCodeNotFound,
						fmt.Sprintf("project %s not found", args[0]))
				}
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			return f.SuccessText(
				fmt.Sprintf("Opened project %q\n", p.Name),
				summarize(p, true))
		},
	}
}

func newProjectDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <project-id>",
		Short:         "Delete a project permanently",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			if err := app.Session.DeleteProject(cmd.Context(), args[0]); err != nil {
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			return f.SuccessText(
				fmt.Sprintf("Deleted project %s\n", args[0]),
				map[string]string{"deleted": args[0]})
		},
	}
}

func newProjectShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the active project's structure",
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
			fmt.Fprintf(&text, "%s (%s)\n", p.Name, p.ID)
			if p.Description != "" {
				fmt.Fprintf(&text, "%s\n", p.Description)
			}
			fmt.Fprintf(&text, "\nScreens (%d):\n", len(p.Screens))
			for _, s := range p.Screens {
				fmt.Fprintf(&text, "  %-20s %-8s %-36s (%g, %g)\n",
					s.Name, s.Kind, s.ID, s.Position.X, s.Position.Y)
				for _, c := range s.Connections {
					targetName := c.To
					if target := p.FindScreen(c.To); target != nil {
						targetName = target.Name
					}
					fmt.Fprintf(&text, "    -> %s (%s)\n", targetName, c.Kind)
				}
			}
			fmt.Fprintf(&text, "\nJourneys (%d):\n", len(p.Journeys))
			for _, j := range p.Journeys {
				names := make([]string, 0, len(j.Screens))
				for _, id := range j.Screens {
					if s := p.FindScreen(id); s != nil {
						names = append(names, s.Name)
					}
				}
				fmt.Fprintf(&text, "  %-24s %s\n", j.Name, strings.Join(names, " -> "))
			}
			fmt.Fprintf(&text, "\nFeatures (%d):\n", len(p.Features))
			for _, feat := range p.Features {
				fmt.Fprintf(&text, "  %-24s template=%s screens=%d\n",
					feat.Name, feat.TemplateID, len(feat.Screens))
			}
			return f.SuccessText(text.String(), p)
		},
	}
}
