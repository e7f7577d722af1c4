package apply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appsketch/internal/feature"
	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/project"
	"github.com/roach88/appsketch/internal/store"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// memGateway keeps projects in a map; good enough for applicator tests.
type memGateway struct {
	projects map[string]*model.Project
	current  string
}

func newMemGateway() *memGateway {
	return &memGateway{projects: map[string]*model.Project{}}
}

func (g *memGateway) Save(_ context.Context, p *model.Project) error {
	g.projects[p.ID] = p.Clone()
	g.current = p.ID
	return nil
}

func (g *memGateway) Load(_ context.Context, id string) (*model.Project, error) {
	p, ok := g.projects[id]
	if !ok {
		return nil, &store.NotFoundError{ID: id}
	}
	return p.Clone(), nil
}

func (g *memGateway) LoadAll(_ context.Context) ([]*model.Project, error) {
	out := []*model.Project{}
	for _, p := range g.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (g *memGateway) CurrentID(_ context.Context) (string, error) { return g.current, nil }

func (g *memGateway) Delete(_ context.Context, id string) error {
	delete(g.projects, id)
	if g.current == id {
		g.current = ""
	}
	return nil
}

func newTestSession(t *testing.T) *project.Session {
	t.Helper()
	lib, err := feature.Load()
	require.NoError(t, err)
	sess := project.NewSession(newMemGateway(), lib, project.Config{
		IDs:   model.NewSequenceGenerator("id"),
		Clock: testTime,
	})
	_, err = sess.CreateProject(context.Background(), "Test App", "An app under test")
	require.NoError(t, err)
	return sess
}

func TestApplyAddScreen(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{
			Kind:   model.ModAddScreen,
			Target: "screens",
			Changes: map[string]any{
				"name":     "Login",
				"type":     "screen",
				"position": map[string]any{"x": 100.0, "y": 100.0},
			},
		},
	})

	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.CreatedScreens, 1)

	p := sess.Current()
	require.Len(t, p.Screens, 1)
	assert.Equal(t, "Login", p.Screens[0].Name)
	assert.Equal(t, model.Position{X: 100, Y: 100}, p.Screens[0].Position)
	assert.Equal(t, model.DefaultScreenSize, p.Screens[0].Size, "size defaulted at insert")
}

func TestApplyAddScreenWithJourneyHint(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)
	journeyID := sess.Current().Journeys[0].ID

	report := app.Apply(context.Background(), []model.ProjectModification{
		{
			Kind:    model.ModAddScreen,
			Changes: map[string]any{"name": "Welcome"},
			Journey: journeyID,
		},
	})

	require.Len(t, report.CreatedScreens, 1)
	p := sess.Current()
	j := p.FindJourney(journeyID)
	require.NotNil(t, j)
	assert.Equal(t, []string{report.CreatedScreens[0]}, j.Screens)
}

func TestApplyUpdateScreen(t *testing.T) {
	sess := newTestSession(t)
	added := sess.AddScreen(context.Background(), model.Screen{Name: "Draft"})
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{
			Kind:    model.ModUpdateScreen,
			Target:  added.ID,
			Changes: map[string]any{"name": "Final"},
		},
	})

	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, "Final", sess.Current().FindScreen(added.ID).Name)
}

func TestApplyUpdateDesignSystem(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{
			Kind: model.ModUpdateDesignSystem,
			Changes: map[string]any{
				"colors":       map[string]any{"primary": "#ff0000"},
				"borderRadius": "xl",
			},
		},
	})

	assert.Equal(t, 1, report.Applied)
	ds := sess.Current().DesignSystem
	assert.Equal(t, "#ff0000", ds.Colors.Primary)
	assert.Equal(t, model.RadiusXL, ds.BorderRadius)
	// Untouched tokens keep their defaults.
	assert.Equal(t, "#ffffff", ds.Colors.Background)
}

func TestApplyAddFeature(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{Kind: model.ModAddFeature, Target: "auth-basic"},
	})

	assert.Equal(t, 1, report.Applied)
	p := sess.Current()
	require.Len(t, p.Features, 1)
	assert.Equal(t, "auth-basic", p.Features[0].TemplateID)
	assert.NotEmpty(t, p.Screens)
}

func TestApplyModifyFlow(t *testing.T) {
	sess := newTestSession(t)
	added := sess.AddScreen(context.Background(), model.Screen{Name: "Home"})
	journeyID := sess.Current().Journeys[0].ID
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{
			Kind:    model.ModModifyFlow,
			Target:  journeyID,
			Changes: map[string]any{"screenId": added.ID},
		},
	})

	assert.Equal(t, 1, report.Applied)
	assert.Contains(t, sess.Current().FindJourney(journeyID).Screens, added.ID)
}

func TestApplySkipsUnknownAndMalformed(t *testing.T) {
	sess := newTestSession(t)
	before := sess.Current()
	app := New(sess, nil)

	report := app.Apply(context.Background(), []model.ProjectModification{
		{Kind: "teleport_screen"},
		{Kind: model.ModUpdateScreen, Target: ""},
		{Kind: model.ModAddFeature, Target: "no-such-template"},
	})

	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, before.Screens, sess.Current().Screens)
}

func TestApplyAnalysisStaleRejected(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)

	analysis := model.AIAnalysis{ProjectID: "some-other-project"}
	_, err := app.ApplyAnalysis(context.Background(), analysis)

	require.Error(t, err)
	assert.True(t, IsStale(err))
	var se *StaleError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "some-other-project", se.AnalysisProject)
}

func TestApplyAnalysisCurrentApplied(t *testing.T) {
	sess := newTestSession(t)
	app := New(sess, nil)

	analysis := model.AIAnalysis{
		ProjectID: sess.Current().ID,
		Suggestions: []model.Suggestion{{
			Title: "Add home",
			Modifications: []model.ProjectModification{
				{Kind: model.ModAddScreen, Changes: map[string]any{"name": "Home"}},
			},
		}},
	}

	report, err := app.ApplyAnalysis(context.Background(), analysis)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)
	require.Len(t, sess.Current().Screens, 1)
	assert.Equal(t, "Home", sess.Current().Screens[0].Name)
}
