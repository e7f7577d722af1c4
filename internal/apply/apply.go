// Package apply executes structured project modifications against a
// session. Modifications come from the advisor (or a user accepting a
// suggestion) as data; this package is the only place that turns them
// into store operations.
package apply

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/project"
)

// StaleError reports an analysis computed against a different project
// than the one now active.
type StaleError struct {
	AnalysisProject string
	ActiveProject   string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("analysis is stale: computed for project %s, active project is %s",
		e.AnalysisProject, e.ActiveProject)
}

// IsStale reports whether err is a StaleError.
func IsStale(err error) bool {
	var se *StaleError
	return errors.As(err, &se)
}

// ApplyReport summarizes one batch.
type ApplyReport struct {
	Applied int
	Skipped int
	// CreatedScreens lists ids of screens the batch added, in order.
	CreatedScreens []string
}

// Applicator applies modification batches to the active project.
type Applicator struct {
	session *project.Session
	logger  *zap.Logger
}

// New creates an Applicator over the session.
func New(session *project.Session, logger *zap.Logger) *Applicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applicator{session: session, logger: logger}
}

// Apply executes the modifications in list order. Unknown kinds and
// malformed payloads are counted as skipped, never fatal: a batch is a
// suggestion, not a transaction.
func (a *Applicator) Apply(ctx context.Context, mods []model.ProjectModification) ApplyReport {
	report := ApplyReport{CreatedScreens: []string{}}

	for _, mod := range mods {
		switch mod.Kind {
		case model.ModAddScreen:
			screen := screenFromChanges(mod.Changes)
			added := a.session.AddScreen(ctx, screen)
			if added.ID == "" {
				report.Skipped++
				continue
			}
			report.CreatedScreens = append(report.CreatedScreens, added.ID)
			if mod.Journey != "" {
				a.session.AddScreenToJourney(ctx, mod.Journey, added.ID)
			}
			report.Applied++

		case model.ModUpdateScreen:
			patch, ok := screenPatchFromChanges(mod.Changes)
			if !ok || mod.Target == "" {
				report.Skipped++
				continue
			}
			a.session.UpdateScreen(ctx, mod.Target, patch)
			report.Applied++

		case model.ModUpdateDesignSystem:
			current := a.session.Current()
			if current == nil || len(mod.Changes) == 0 {
				report.Skipped++
				continue
			}
			ds := mergeDesign(current.DesignSystem, mod.Changes)
			a.session.UpdateProject(ctx, project.ProjectPatch{DesignSystem: &ds})
			report.Applied++

		case model.ModAddFeature:
			if mod.Target == "" || a.session.AddFeature(ctx, mod.Target) == nil {
				report.Skipped++
				continue
			}
			report.Applied++

		case model.ModModifyFlow:
			screenID, _ := mod.Changes["screenId"].(string)
			if mod.Target == "" || screenID == "" {
				report.Skipped++
				continue
			}
			a.session.AddScreenToJourney(ctx, mod.Target, screenID)
			report.Applied++

		default:
			a.logger.Debug("skipping unknown modification kind",
				zap.String("kind", string(mod.Kind)))
			report.Skipped++
		}
	}

	return report
}

// ApplyAnalysis applies every modification carried by the analysis'
// suggestions, refusing results computed against a different project.
func (a *Applicator) ApplyAnalysis(ctx context.Context, analysis model.AIAnalysis) (ApplyReport, error) {
	current := a.session.Current()
	if current == nil {
		return ApplyReport{}, fmt.Errorf("no active project")
	}
	if analysis.ProjectID != current.ID {
		return ApplyReport{}, &StaleError{
			AnalysisProject: analysis.ProjectID,
			ActiveProject:   current.ID,
		}
	}

	var mods []model.ProjectModification
	for _, s := range analysis.Suggestions {
		mods = append(mods, s.Modifications...)
	}
	return a.Apply(ctx, mods), nil
}
