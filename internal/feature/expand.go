package feature

import (
	"math"
	"time"

	"github.com/roach88/appsketch/internal/model"
)

// Grid placement constants for newly minted screens: three columns, with
// column and row pitch wide enough that default-size cards never touch.
const (
	gridOriginX = 100
	gridOriginY = 100
	gridCols    = 3
	gridPitchX  = 300
	gridPitchY  = 200
)

// GridPosition returns the canvas position for the n-th auto-placed
// screen. Callers pass the count of screens already placed so a new
// batch continues the grid instead of stacking on cell zero.
func GridPosition(n int) model.Position {
	return model.Position{
		X: gridOriginX + float64(n%gridCols)*gridPitchX,
		Y: gridOriginY + math.Floor(float64(n)/gridCols)*gridPitchY,
	}
}

// Expand instantiates the template: one screen per slot with a fresh
// identifier, grid placement starting after `placed` existing screens,
// the default card size, a single default state, and the template's
// connections with symbolic targets resolved to the minted identifiers.
//
// Connections whose target does not name a slot in this batch are
// dropped, so the returned screens contain no dangling symbolic names.
// The returned FeatureInstance references every minted screen id.
func Expand(tpl Template, gen model.IDGenerator, placed int) ([]model.Screen, model.FeatureInstance) {
	ids := make([]string, len(tpl.Screens))
	byName := make(map[string]string, len(tpl.Screens))
	for i, slot := range tpl.Screens {
		ids[i] = gen.NewID()
		byName[slot.Name] = ids[i]
	}

	screens := make([]model.Screen, len(tpl.Screens))
	for i, slot := range tpl.Screens {
		var conns []model.Connection
		for _, c := range slot.Connections {
			target, ok := byName[c.To]
			if !ok {
				continue // names a screen outside this batch
			}
			conns = append(conns, model.Connection{
				From:  ids[i],
				To:    target,
				Kind:  c.Kind,
				Label: c.Label,
			})
		}
		screens[i] = model.Screen{
			ID:          ids[i],
			Name:        slot.Name,
			Kind:        slot.Kind,
			Position:    GridPosition(placed + i),
			Size:        model.DefaultScreenSize,
			Connections: conns,
			States:      []model.ScreenState{{Name: "default", IsDefault: true}},
		}
	}

	instance := model.FeatureInstance{
		ID:            gen.NewID(),
		TemplateID:    tpl.ID,
		Name:          tpl.Name,
		Screens:       ids,
		Configuration: map[string]any{},
	}
	return screens, instance
}

// Instantiate builds a full project from a starter template. The
// starter's screen, journey and feature identifiers are kept verbatim;
// only the project identity and timestamps are fresh.
func Instantiate(st Starter, projectID string, now time.Time) *model.Project {
	p := model.NewProject(projectID, st.Project.Name, st.Project.Description, now)

	p.Screens = make([]model.Screen, len(st.Project.Screens))
	copy(p.Screens, st.Project.Screens)
	if len(st.Project.Journeys) > 0 {
		p.Journeys = make([]model.UserJourney, len(st.Project.Journeys))
		copy(p.Journeys, st.Project.Journeys)
	}
	p.Features = make([]model.FeatureInstance, len(st.Project.Features))
	copy(p.Features, st.Project.Features)
	return p
}
