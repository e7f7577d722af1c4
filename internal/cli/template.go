package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/appsketch/internal/store"
)

// NewTemplateCommand creates the template command group.
func NewTemplateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List starter templates and create projects from them",
	}
	cmd.AddCommand(newTemplateListCommand(rootOpts))
	cmd.AddCommand(newTemplateUseCommand(rootOpts))
	return cmd
}

type templateOut struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Screens     int    `json:"screens"`
}

func newTemplateListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List project starters and feature templates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			var text strings.Builder
			payload := map[string][]templateOut{}

			text.WriteString("Project starters:\n")
			for _, st := range app.Templates.Starters() {
				text.WriteString(fmt.Sprintf("  %-20s %s\n", st.ID, st.Description))
				payload["starters"] = append(payload["starters"], templateOut{
					ID: st.ID, Name: st.Name, Description: st.Description,
					Screens: len(st.Project.Screens),
				})
			}

			text.WriteString("\nFeature templates:\n")
			for _, tpl := range app.Templates.Features() {
				text.WriteString(fmt.Sprintf("  %-20s %s\n", tpl.ID, tpl.Description))
				payload["features"] = append(payload["features"], templateOut{
					ID: tpl.ID, Name: tpl.Name, Description: tpl.Description,
					Category: tpl.Category, Screens: len(tpl.Screens),
				})
			}
			return f.SuccessText(text.String(), payload)
		},
	}
}

func newTemplateUseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "use <starter-id>",
		Short:         "Create a new project from a starter template",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			app, err := rootOpts.App(cmd)
			if err != nil {
				return err
			}

			p, err := app.Session.CreateFromStarter(cmd.Context(), args[0])
			if err != nil {
				if store.IsNotFound(err) {
					return fail(f, ExitFailure, ErrCodeNotFound,
						fmt.Sprintf("starter template %s not found", args[0]))
				}
				return fail(f, ExitCommandError, ErrCodeGeneric, err.Error())
			}
			return f.SuccessText(
				fmt.Sprintf("Created project %q from %s with %d screens\n",
					p.Name, args[0], len(p.Screens)),
				summarize(p, true))
		},
	}
}
