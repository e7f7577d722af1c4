package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appsketch/internal/feature"
	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/store"
)

// memGateway is an in-memory Gateway for session tests.
type memGateway struct {
	projects map[string]*model.Project
	current  string
	saveErr  error
	saves    int
}

func newMemGateway() *memGateway {
	return &memGateway{projects: make(map[string]*model.Project)}
}

func (g *memGateway) Save(_ context.Context, p *model.Project) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
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

func (g *memGateway) CurrentID(_ context.Context) (string, error) {
	return g.current, nil
}

func (g *memGateway) Delete(_ context.Context, id string) error {
	delete(g.projects, id)
	if g.current == id {
		g.current = ""
	}
	return nil
}

func newTestSession(t *testing.T) (*Session, *memGateway) {
	t.Helper()
	lib, err := feature.Load()
	require.NoError(t, err)
	gw := newMemGateway()
	sess := NewSession(gw, lib, Config{
		IDs:   model.NewSequenceGenerator("id"),
		Clock: func() time.Time { return time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC) },
	})
	return sess, gw
}

func TestCreateProject(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	p, err := sess.CreateProject(ctx, "Demo", "demo app")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Demo", p.Name)
	assert.Len(t, p.Journeys, 2)
	assert.Equal(t, p.ID, gw.current)
	assert.Contains(t, gw.projects, p.ID)
}

func TestCreateProject_EmptyNameIsValidationSkip(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	before, err := sess.CreateProject(ctx, "Keep", "")
	require.NoError(t, err)

	p, err := sess.CreateProject(ctx, "   ", "")
	assert.Nil(t, p)
	assert.True(t, IsValidation(err))

	// The previously active project is untouched.
	assert.Equal(t, before.ID, sess.Current().ID)
	assert.Equal(t, before.ID, gw.current)
}

func TestCreateThenLoad_RoundTrip(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	created, err := sess.CreateProject(ctx, "Foo", "bar")
	require.NoError(t, err)

	loaded, err := sess.LoadProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(created, loaded))
}

func TestLoadProject_NotFoundLeavesActiveUnchanged(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	created, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	_, err = sess.LoadProject(ctx, "missing")
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
	assert.True(t, store.IsNotFound(sess.Err()))
	assert.Equal(t, created.ID, sess.Current().ID)

	// A later successful load clears the flag.
	_, err = sess.LoadProject(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, sess.Err())
}

func TestOperationsOnEmptySessionAreNoOps(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		sess.UpdateProject(ctx, ProjectPatch{Name: strPtr("x")})
		sess.AddScreen(ctx, model.Screen{Name: "Home"})
		sess.UpdateScreen(ctx, "x", ScreenPatch{})
		sess.DeleteScreen(ctx, "x")
		sess.AddScreenToJourney(ctx, "onboarding", "x")
		sess.SaveProject(ctx)
		assert.Nil(t, sess.AddFeature(ctx, "auth-basic"))
	})
	assert.Nil(t, sess.Current())
	assert.Zero(t, gw.saves)
}

func TestUpdateProject_MergesAndStamps(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	p, err := sess.CreateProject(ctx, "Demo", "before")
	require.NoError(t, err)

	desc := "after"
	sess.UpdateProject(ctx, ProjectPatch{Description: &desc})

	got := sess.Current()
	assert.Equal(t, "after", got.Description)
	assert.Equal(t, "Demo", got.Name)
	assert.Equal(t, p.ID, got.ID)
}

func TestAddScreen_FillsDefaults(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	sess.AddScreen(ctx, model.Screen{Name: "Home"})

	got := sess.Current()
	require.Len(t, got.Screens, 1)
	s := got.Screens[0]
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, model.ScreenKindScreen, s.Kind)
	assert.Equal(t, model.DefaultScreenSize, s.Size)
	assert.Equal(t, model.Position{X: 100, Y: 100}, s.Position)
	require.Len(t, s.States, 1)
	assert.True(t, s.States[0].IsDefault)
}

func TestScreenLifecycle_SurvivingSet(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	sess.AddScreen(ctx, model.Screen{ID: "a", Name: "A"})
	sess.AddScreen(ctx, model.Screen{ID: "b", Name: "B"})
	sess.AddScreen(ctx, model.Screen{ID: "c", Name: "C"})
	sess.UpdateScreen(ctx, "b", ScreenPatch{Name: strPtr("B2")})
	sess.DeleteScreen(ctx, "a")

	got := sess.Current()
	require.Len(t, got.Screens, 2)

	ids := map[string]bool{}
	for _, s := range got.Screens {
		require.False(t, ids[s.ID], "duplicate screen id %s", s.ID)
		ids[s.ID] = true
	}
	assert.True(t, ids["b"] && ids["c"])
	assert.Equal(t, "B2", got.FindScreen("b").Name)
}

func TestUpdateScreen_UnknownIDLeavesSnapshotUnchanged(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)
	sess.AddScreen(ctx, model.Screen{ID: "a", Name: "A"})

	before := sess.Current()
	saves := gw.saves

	sess.UpdateScreen(ctx, "ghost", ScreenPatch{Name: strPtr("Ghost")})

	assert.Empty(t, cmp.Diff(before, sess.Current()))
	assert.Equal(t, saves, gw.saves, "no-op must not persist")
}

func TestDeleteScreen_Cascades(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	sess.AddScreen(ctx, model.Screen{ID: "a", Name: "A",
		Connections: []model.Connection{{To: "b", Kind: model.ConnectionNavigation}}})
	sess.AddScreen(ctx, model.Screen{ID: "b", Name: "B",
		Connections: []model.Connection{{To: "a", Kind: model.ConnectionNavigation}}})
	sess.AddScreenToJourney(ctx, "core-flow", "a")
	sess.AddScreenToJourney(ctx, "core-flow", "b")

	sess.DeleteScreen(ctx, "b")

	got := sess.Current()
	require.Len(t, got.Screens, 1)
	assert.Empty(t, got.Screens[0].Connections, "connection to deleted screen must be removed")
	assert.Equal(t, []string{"a"}, got.FindJourney("core-flow").Screens)
}

func TestAddFeature_AuthBasicScenario(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	instance := sess.AddFeature(ctx, "auth-basic")
	require.NotNil(t, instance)

	got := sess.Current()
	require.Len(t, got.Screens, 3)
	require.Len(t, got.Features, 1)
	assert.Equal(t, "auth-basic", got.Features[0].TemplateID)
	assert.Len(t, got.Features[0].Screens, 3)

	var login, signup *model.Screen
	names := map[string]bool{}
	for i := range got.Screens {
		names[got.Screens[i].Name] = true
		switch got.Screens[i].Name {
		case "Login":
			login = &got.Screens[i]
		case "Signup":
			signup = &got.Screens[i]
		}
	}
	assert.True(t, names["Login"] && names["Signup"] && names["ForgotPassword"])

	require.NotNil(t, login)
	require.NotNil(t, signup)
	var foundNav bool
	for _, c := range login.Connections {
		if c.To == signup.ID && c.Kind == model.ConnectionNavigation {
			foundNav = true
		}
	}
	assert.True(t, foundNav, "Login must navigate to Signup")
}

func TestAddFeature_UnknownTemplateIsNoOp(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)
	before := sess.Current()

	assert.Nil(t, sess.AddFeature(ctx, "no-such-template"))
	assert.Empty(t, cmp.Diff(before, sess.Current()))
}

func TestCreateFromStarter(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	p, err := sess.CreateFromStarter(ctx, "social-app")
	require.NoError(t, err)
	assert.Equal(t, "My Social App", p.Name)
	assert.Len(t, p.Screens, 5)

	_, err = sess.CreateFromStarter(ctx, "no-such-starter")
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
	assert.Equal(t, p.ID, sess.Current().ID)
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	gw.saveErr = errors.New("quota exceeded")
	sess.AddScreen(ctx, model.Screen{ID: "a", Name: "A"})

	// The mutation survives in memory even though the write failed.
	got := sess.Current()
	require.Len(t, got.Screens, 1)
	assert.Equal(t, "a", got.Screens[0].ID)
}

func TestResume(t *testing.T) {
	sess, gw := newTestSession(t)
	ctx := context.Background()

	created, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)

	lib, err := feature.Load()
	require.NoError(t, err)
	next := NewSession(gw, lib, Config{})
	next.Resume(ctx)

	require.NotNil(t, next.Current())
	assert.Equal(t, created.ID, next.Current().ID)
}

func TestRecordAnalysis_UpdatesContext(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()

	_, err := sess.CreateProject(ctx, "Demo", "")
	require.NoError(t, err)
	sess.AddFeature(ctx, "auth-basic")

	sess.RecordAnalysis(ctx, model.AIAnalysis{
		ProjectID:  sess.Current().ID,
		Confidence: 0.9,
		NextSteps:  []model.NextStep{{ID: "s1", Title: "Do a thing"}},
	})

	got := sess.Current()
	require.Len(t, got.AIContext.AnalysisHistory, 1)
	require.Len(t, got.AIContext.SuggestedNextSteps, 1)
	assert.True(t, got.AIContext.CompletionStatus.Authentication)
	assert.False(t, got.AIContext.CompletionStatus.DesignSystem)
}

func strPtr(s string) *string { return &s }
