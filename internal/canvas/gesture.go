package canvas

import "github.com/roach88/appsketch/internal/model"

// Mode is the canvas interaction state. Exactly one mode is active at
// a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModePlacing
	ModeDraggingCard
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModePlacing:
		return "placing"
	case ModeDraggingCard:
		return "dragging"
	default:
		return "unknown"
	}
}

// PositionUpdate is the single committed result of a card drag: the
// screen's new stored canvas position.
type PositionUpdate struct {
	ScreenID string
	Position model.Position
}

// ScreenRequest is the result of a placement click: a request to create
// a screen of the given kind at the canvas point.
type ScreenRequest struct {
	Kind     model.ScreenKind
	Position model.Position
}

// Gesture tracks one pointer interaction against a viewport. It is a
// small state machine: Idle until a pointer goes down (drag on a card,
// pan on empty canvas) or EnterPlacing arms placement mode.
//
// Position updates are emitted only once, on PointerUp; intermediate
// moves adjust the live offset without touching the project.
type Gesture struct {
	mode Mode

	// drag state
	dragScreen string
	dragOrigin model.Position // screen's stored position at drag start
	startPt    model.Position // pointer position at drag/pan start

	// pan state
	panOrigin model.Position // viewport pan at pan start

	// placement state
	placeKind model.ScreenKind
}

// Mode reports the active interaction mode.
func (g *Gesture) Mode() Mode { return g.mode }

// EnterPlacing arms placement of a new screen of the given kind. The
// request is ignored unless the gesture is idle.
func (g *Gesture) EnterPlacing(kind model.ScreenKind) {
	if g.mode != ModeIdle {
		return
	}
	g.mode = ModePlacing
	g.placeKind = kind
}

// CancelPlacing leaves placement mode without creating anything.
func (g *Gesture) CancelPlacing() {
	if g.mode == ModePlacing {
		g.mode = ModeIdle
	}
}

// PointerDown starts a drag when the pointer landed on a card (screenID
// non-empty, origin = the screen's stored position) or a pan when it
// landed on empty canvas. In placing mode the click creates a screen at
// the canvas point instead; the returned request is non-nil in that
// case only.
func (g *Gesture) PointerDown(vp *Viewport, pt model.Position, screenID string, origin model.Position) *ScreenRequest {
	switch g.mode {
	case ModePlacing:
		g.mode = ModeIdle
		return &ScreenRequest{Kind: g.placeKind, Position: vp.ToCanvas(pt)}
	case ModeIdle:
		g.startPt = pt
		if screenID != "" {
			g.mode = ModeDraggingCard
			g.dragScreen = screenID
			g.dragOrigin = origin
		} else {
			g.mode = ModePanning
			g.panOrigin = vp.Pan
		}
	}
	return nil
}

// PointerMove updates the live pan during a pan gesture. Card drags
// track the pointer internally and commit on PointerUp.
func (g *Gesture) PointerMove(vp *Viewport, pt model.Position) {
	switch g.mode {
	case ModePanning:
		vp.Pan = model.Position{
			X: g.panOrigin.X + (pt.X - g.startPt.X),
			Y: g.panOrigin.Y + (pt.Y - g.startPt.Y),
		}
	}
}

// DragPosition reports where the dragged screen currently sits in
// canvas units, for rendering the in-flight card. Zero value when no
// drag is active.
func (g *Gesture) DragPosition(vp *Viewport, pt model.Position) model.Position {
	if g.mode != ModeDraggingCard {
		return model.Position{}
	}
	s := vp.Scale()
	return model.Position{
		X: g.dragOrigin.X + (pt.X-g.startPt.X)/s,
		Y: g.dragOrigin.Y + (pt.Y-g.startPt.Y)/s,
	}
}

// PointerUp ends the gesture. A card drag yields exactly one position
// update; pans and placement clicks yield nil.
func (g *Gesture) PointerUp(vp *Viewport, pt model.Position) *PositionUpdate {
	defer func() {
		if g.mode == ModeDraggingCard || g.mode == ModePanning {
			g.mode = ModeIdle
		}
	}()
	if g.mode != ModeDraggingCard {
		return nil
	}
	pos := g.DragPosition(vp, pt)
	return &PositionUpdate{ScreenID: g.dragScreen, Position: pos}
}
