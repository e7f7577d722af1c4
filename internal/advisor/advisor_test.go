package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appsketch/internal/model"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// fakeBackend returns a fixed completion or error.
type fakeBackend struct {
	reply string
	err   error
	calls int
}

func (f *fakeBackend) Complete(_ context.Context, _ Request) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeBackend) Name() string { return "fake" }

func heuristicAdvisor() *Advisor {
	return New(Config{Clock: testTime})
}

func emptyProject() *model.Project {
	return model.NewProject("p1", "Blank", "A blank app", testTime())
}

func projectWithScreens(names ...string) *model.Project {
	p := emptyProject()
	gen := model.NewSequenceGenerator("scr")
	for _, name := range names {
		p.Screens = append(p.Screens, model.Screen{
			ID:   gen.NewID(),
			Name: name,
			Kind: model.ScreenKindScreen,
		})
	}
	return p
}

func TestAnalyzeHeuristicDeterministic(t *testing.T) {
	a := heuristicAdvisor()
	p := emptyProject()

	first := a.Analyze(context.Background(), p)
	second := a.Analyze(context.Background(), p)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, "p1", first.ProjectID)
	assert.Equal(t, heuristicConfidence, first.Confidence)
}

func TestAnalyzeZeroScreensGap(t *testing.T) {
	a := heuristicAdvisor()

	analysis := a.Analyze(context.Background(), emptyProject())

	var kinds []model.GapKind
	for _, g := range analysis.Gaps {
		kinds = append(kinds, g.Kind)
	}
	assert.Contains(t, kinds, model.GapMissingScreen)
	assert.Contains(t, kinds, model.GapMissingFeature, "no auth screens either")

	var stepIDs []string
	for _, s := range analysis.NextSteps {
		stepIDs = append(stepIDs, s.ID)
	}
	assert.Contains(t, stepIDs, "add-first-screen")
	assert.Contains(t, stepIDs, "add-auth")
}

func TestAnalyzeAuthScreensSatisfyGap(t *testing.T) {
	a := heuristicAdvisor()
	p := projectWithScreens("Home", "Login", "Sign Up")

	analysis := a.Analyze(context.Background(), p)

	for _, g := range analysis.Gaps {
		assert.NotEqual(t, model.GapMissingFeature, g.Kind)
		assert.NotEqual(t, model.GapMissingScreen, g.Kind)
	}
}

func TestAnalyzeEmptyJourneyGap(t *testing.T) {
	a := heuristicAdvisor()
	p := projectWithScreens("Home", "Login")
	p.Journeys = append(p.Journeys, model.UserJourney{ID: "j9", Name: "Checkout"})

	analysis := a.Analyze(context.Background(), p)

	found := false
	for _, g := range analysis.Gaps {
		if g.Kind == model.GapBrokenFlow {
			found = true
		}
	}
	assert.True(t, found, "empty journey should surface a broken flow gap")
}

func TestAnalyzeBackendErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{err: errors.New("boom")}
	a := New(Config{Backend: backend, Clock: testTime})
	p := emptyProject()

	got := a.Analyze(context.Background(), p)
	want := heuristicAnalysis(p, testTime())

	assert.Equal(t, 1, backend.calls)
	assert.Empty(t, cmp.Diff(want, got))
}

func TestAnalyzeUnparseableFallsBack(t *testing.T) {
	backend := &fakeBackend{reply: "sure, here is my analysis in prose"}
	a := New(Config{Backend: backend, Clock: testTime})
	p := emptyProject()

	got := a.Analyze(context.Background(), p)

	assert.Equal(t, heuristicConfidence, got.Confidence)
	assert.NotEmpty(t, got.Gaps)
}

func TestAnalyzeRemoteParsed(t *testing.T) {
	backend := &fakeBackend{reply: "```json\n" + `{
		"gaps": [{"type": "missing_screen", "severity": "high", "description": "No settings screen"}],
		"nextSteps": [{"id": "s1", "title": "Add Settings", "action": "add_screen"}]
	}` + "\n```"}
	a := New(Config{Backend: backend, Clock: testTime})
	p := projectWithScreens("Home")

	analysis := a.Analyze(context.Background(), p)

	require.Len(t, analysis.Gaps, 1)
	assert.Equal(t, model.GapMissingScreen, analysis.Gaps[0].Kind)
	assert.Equal(t, "p1", analysis.ProjectID)
	assert.Equal(t, 0.8, analysis.Confidence, "missing confidence defaults")
	assert.NotNil(t, analysis.Suggestions, "absent arrays come back empty, not nil")
}

func TestGenerateModificationsAuthStep(t *testing.T) {
	a := heuristicAdvisor()
	step := model.NextStep{ID: "add-auth", Action: model.ActionAddScreen}

	mods := a.GenerateModifications(context.Background(), step, emptyProject())

	require.Len(t, mods, 2)
	assert.Equal(t, model.ModAddScreen, mods[0].Kind)
	assert.Equal(t, "Login", mods[0].Changes["name"])
	assert.Equal(t, "Sign Up", mods[1].Changes["name"])
}

func TestGenerateModificationsUnknownStep(t *testing.T) {
	a := heuristicAdvisor()
	step := model.NextStep{ID: "ponder", Action: model.ActionAskQuestion}

	mods := a.GenerateModifications(context.Background(), step, emptyProject())

	assert.NotNil(t, mods)
	assert.Empty(t, mods)
}

func TestProcessFreeTextAuthRouting(t *testing.T) {
	a := heuristicAdvisor()

	reply := a.ProcessFreeText(context.Background(), "my users need to log in", emptyProject())

	require.Len(t, reply.Modifications, 2)
	assert.Equal(t, model.ModAddScreen, reply.Modifications[0].Kind)
}

func TestProcessFreeTextFeatureRouting(t *testing.T) {
	a := heuristicAdvisor()

	reply := a.ProcessFreeText(context.Background(), "I want a store with a cart", emptyProject())

	require.Len(t, reply.NextSteps, 1)
	assert.Equal(t, "add-feature-ecommerce-basic", reply.NextSteps[0].ID)
	assert.Equal(t, model.ActionAddFeature, reply.NextSteps[0].Action)
}

func TestProcessFreeTextFallbackMessage(t *testing.T) {
	a := heuristicAdvisor()

	reply := a.ProcessFreeText(context.Background(), "what should I do next", emptyProject())

	assert.NotEmpty(t, reply.Message)
	assert.Empty(t, reply.Modifications)
}

func TestBackendFactory(t *testing.T) {
	none, err := NewBackend(BackendConfig{})
	require.NoError(t, err)
	assert.Nil(t, none)

	oai, err := NewBackend(BackendConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai:"+defaultOpenAIModel, oai.Name())

	_, err = NewBackend(BackendConfig{Provider: "carrier-pigeon", APIKey: "k"})
	var unknown *UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "carrier-pigeon", unknown.Provider)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
