package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appsketch/internal/model"
)

func testProject() *model.Project {
	p := &model.Project{
		ID:   "p1",
		Name: "Test",
		Screens: []model.Screen{
			{
				ID: "a", Name: "Home", Kind: model.ScreenKindScreen,
				Position: model.Position{X: 100, Y: 100},
				Size:     model.DefaultScreenSize,
				Connections: []model.Connection{
					{From: "a", To: "b", Kind: model.ConnectionNavigation, Label: "next"},
				},
			},
			{
				ID: "b", Name: "Detail", Kind: model.ScreenKindScreen,
				Position: model.Position{X: 400, Y: 100},
				Size:     model.DefaultScreenSize,
			},
			{
				ID: "c", Name: "Settings", Kind: model.ScreenKindScreen,
				Position: model.Position{X: 100, Y: 300},
				Size:     model.DefaultScreenSize,
			},
		},
		Journeys: []model.UserJourney{
			{ID: "j1", Name: "Main", Screens: []string{"a", "b", "c"}},
		},
	}
	return p
}

func TestNearestLevel(t *testing.T) {
	assert.Equal(t, 25.0, NearestLevel(10).Value)
	assert.Equal(t, 25.0, NearestLevel(30).Value)
	assert.Equal(t, 50.0, NearestLevel(60).Value)
	assert.Equal(t, 100.0, NearestLevel(100).Value)
	assert.Equal(t, 100.0, NearestLevel(120).Value)
	assert.Equal(t, 200.0, NearestLevel(500).Value)
}

func TestDeriveCards(t *testing.T) {
	p := testProject()
	vp := Viewport{Zoom: 100, Pan: model.Position{X: 10, Y: 20}, Selected: "b"}

	frame := Derive(p, vp)

	require.Len(t, frame.Cards, 3)
	assert.Equal(t, model.Position{X: 110, Y: 120}, frame.Cards[0].Position)
	assert.Equal(t, frame.Level.Card, frame.Cards[0].Size)
	assert.False(t, frame.Cards[0].Selected)
	assert.True(t, frame.Cards[1].Selected)
}

func TestDeriveScaledPositions(t *testing.T) {
	p := testProject()
	vp := Viewport{Zoom: 50}

	frame := Derive(p, vp)

	require.Len(t, frame.Cards, 3)
	assert.Equal(t, model.Position{X: 50, Y: 50}, frame.Cards[0].Position)
	assert.Equal(t, model.Position{X: 200, Y: 50}, frame.Cards[1].Position)
	assert.Equal(t, model.Size{Width: 128, Height: 192}, frame.Cards[0].Size)
}

func TestDeriveJourneyPathOrder(t *testing.T) {
	p := testProject()
	vp := Viewport{Zoom: 25} // journeys render at the overview level

	frame := Derive(p, vp)

	require.Len(t, frame.Journeys, 1)
	path := frame.Journeys[0]
	require.Len(t, path.Points, 3)

	// Each point is the render-space center of the member, in journey order.
	half := model.Position{X: frame.Level.Card.Width / 2, Y: frame.Level.Card.Height / 2}
	assert.Equal(t, model.Position{X: 25 + half.X, Y: 25 + half.Y}, path.Points[0])
	assert.Equal(t, model.Position{X: 100 + half.X, Y: 25 + half.Y}, path.Points[1])
	assert.Equal(t, model.Position{X: 25 + half.X, Y: 75 + half.Y}, path.Points[2])
}

func TestDeriveSkipsRemovedJourneyMember(t *testing.T) {
	p := testProject()
	p.Screens = p.Screens[:1] // only "a" remains; journey still lists a,b,c
	vp := Viewport{Zoom: 25}

	var frame Frame
	require.NotPanics(t, func() { frame = Derive(p, vp) })

	// One resolvable member is below the two-point minimum.
	assert.Empty(t, frame.Journeys)
}

func TestDeriveOmitsDanglingConnection(t *testing.T) {
	p := testProject()
	p.Screens[0].Connections = append(p.Screens[0].Connections,
		model.Connection{From: "a", To: "gone", Kind: model.ConnectionAction})
	vp := Viewport{Zoom: 100}

	frame := Derive(p, vp)

	require.Len(t, frame.Curves, 1)
	assert.Equal(t, "b", frame.Curves[0].To)
	// Quadratic control point is the midpoint of the endpoints.
	mid := model.Position{
		X: (frame.Curves[0].Start.X + frame.Curves[0].End.X) / 2,
		Y: (frame.Curves[0].Start.Y + frame.Curves[0].End.Y) / 2,
	}
	assert.Equal(t, mid, frame.Curves[0].Control)
}

func TestDeriveZoomFlags(t *testing.T) {
	p := testProject()

	overview := Derive(p, Viewport{Zoom: 25})
	assert.NotEmpty(t, overview.Journeys)
	assert.NotEmpty(t, overview.Curves)

	detail := Derive(p, Viewport{Zoom: 200})
	assert.Empty(t, detail.Journeys, "journeys hidden at component zoom")
	assert.Empty(t, detail.Curves, "connections hidden at component zoom")
}

func TestDeriveNilProject(t *testing.T) {
	frame := Derive(nil, NewViewport())
	assert.Empty(t, frame.Cards)
	assert.Equal(t, 100.0, frame.Level.Value)
}

func TestGestureDragCommitsOnce(t *testing.T) {
	vp := NewViewport()
	var g Gesture

	req := g.PointerDown(&vp, model.Position{X: 50, Y: 50}, "a", model.Position{X: 100, Y: 100})
	assert.Nil(t, req)
	assert.Equal(t, ModeDraggingCard, g.Mode())

	g.PointerMove(&vp, model.Position{X: 80, Y: 60})
	g.PointerMove(&vp, model.Position{X: 90, Y: 70})

	upd := g.PointerUp(&vp, model.Position{X: 90, Y: 70})
	require.NotNil(t, upd)
	assert.Equal(t, "a", upd.ScreenID)
	assert.Equal(t, model.Position{X: 140, Y: 120}, upd.Position)
	assert.Equal(t, ModeIdle, g.Mode())

	// A second up without a down yields nothing.
	assert.Nil(t, g.PointerUp(&vp, model.Position{X: 90, Y: 70}))
}

func TestGestureDragScalesWithZoom(t *testing.T) {
	vp := Viewport{Zoom: 50}
	var g Gesture

	g.PointerDown(&vp, model.Position{X: 0, Y: 0}, "a", model.Position{X: 100, Y: 100})
	upd := g.PointerUp(&vp, model.Position{X: 50, Y: 50})

	require.NotNil(t, upd)
	// 50 screen pixels at 50% zoom is 100 canvas units.
	assert.Equal(t, model.Position{X: 200, Y: 200}, upd.Position)
}

func TestGesturePanMovesViewport(t *testing.T) {
	vp := Viewport{Zoom: 100, Pan: model.Position{X: 5, Y: 5}}
	var g Gesture

	g.PointerDown(&vp, model.Position{X: 10, Y: 10}, "", model.Position{})
	assert.Equal(t, ModePanning, g.Mode())

	g.PointerMove(&vp, model.Position{X: 30, Y: 15})
	assert.Equal(t, model.Position{X: 25, Y: 10}, vp.Pan)

	upd := g.PointerUp(&vp, model.Position{X: 30, Y: 15})
	assert.Nil(t, upd, "pans never emit position updates")
	assert.Equal(t, ModeIdle, g.Mode())
}

func TestGesturePlacing(t *testing.T) {
	vp := Viewport{Zoom: 100, Pan: model.Position{X: 10, Y: 10}}
	var g Gesture

	g.EnterPlacing(model.ScreenKindModal)
	assert.Equal(t, ModePlacing, g.Mode())

	// EnterPlacing is ignored unless idle.
	g.EnterPlacing(model.ScreenKindScreen)
	assert.Equal(t, ModePlacing, g.Mode())

	req := g.PointerDown(&vp, model.Position{X: 110, Y: 210}, "", model.Position{})
	require.NotNil(t, req)
	assert.Equal(t, model.ScreenKindModal, req.Kind)
	assert.Equal(t, model.Position{X: 100, Y: 200}, req.Position)
	assert.Equal(t, ModeIdle, g.Mode())
}

func TestGestureModeExclusivity(t *testing.T) {
	vp := NewViewport()
	var g Gesture

	g.PointerDown(&vp, model.Position{}, "a", model.Position{X: 1, Y: 1})
	require.Equal(t, ModeDraggingCard, g.Mode())

	// While dragging, placement and a second down are ignored.
	g.EnterPlacing(model.ScreenKindScreen)
	assert.Equal(t, ModeDraggingCard, g.Mode())
	assert.Nil(t, g.PointerDown(&vp, model.Position{}, "b", model.Position{}))
	assert.Equal(t, ModeDraggingCard, g.Mode())
}
