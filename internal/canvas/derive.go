package canvas

import (
	"github.com/roach88/appsketch/internal/model"
)

// Viewport is the transient view state: zoom percentage, pan offset in
// screen pixels, and the selected screen id (empty for none).
type Viewport struct {
	Zoom     float64
	Pan      model.Position
	Selected string
}

// NewViewport returns a viewport at the default zoom with no pan.
func NewViewport() Viewport {
	return Viewport{Zoom: DefaultZoom}
}

// Scale is the canvas-to-screen multiplier implied by the zoom.
func (v Viewport) Scale() float64 {
	return v.Zoom / 100
}

// ToCanvas converts a screen-space point to canvas coordinates.
func (v Viewport) ToCanvas(pt model.Position) model.Position {
	s := v.Scale()
	return model.Position{X: (pt.X - v.Pan.X) / s, Y: (pt.Y - v.Pan.Y) / s}
}

// Card is one screen card ready to render.
type Card struct {
	ScreenID string
	Name     string
	Kind     model.ScreenKind
	State    string // default state name
	Position model.Position
	Size     model.Size
	Selected bool
}

// Curve is a quadratic curve for one connection, in render coordinates.
type Curve struct {
	From    string
	To      string
	Kind    model.ConnectionKind
	Label   string
	Start   model.Position
	Control model.Position
	End     model.Position
}

// JourneyPath is the smooth path threading a journey's member screens
// in list order, as a point sequence in render coordinates.
type JourneyPath struct {
	JourneyID string
	Name      string
	Points    []model.Position
}

// Frame is everything the canvas renders for one (project, viewport)
// pair.
type Frame struct {
	Level    ZoomLevel
	Cards    []Card
	Curves   []Curve
	Journeys []JourneyPath
}

// Derive computes the render frame for the project under the viewport.
// Pure: same inputs, same frame.
//
// Connections whose target screen does not exist are omitted entirely.
// Journey members that cannot be resolved are skipped; a journey left
// with fewer than two resolvable members produces no path.
func Derive(p *model.Project, vp Viewport) Frame {
	frame := Frame{Level: NearestLevel(vp.Zoom)}
	if p == nil {
		return frame
	}

	scale := vp.Scale()
	centers := make(map[string]model.Position, len(p.Screens))

	frame.Cards = make([]Card, len(p.Screens))
	for i, s := range p.Screens {
		pos := model.Position{
			X: s.Position.X*scale + vp.Pan.X,
			Y: s.Position.Y*scale + vp.Pan.Y,
		}
		frame.Cards[i] = Card{
			ScreenID: s.ID,
			Name:     s.Name,
			Kind:     s.Kind,
			State:    s.DefaultState(),
			Position: pos,
			Size:     frame.Level.Card,
			Selected: s.ID == vp.Selected,
		}
		centers[s.ID] = model.Position{
			X: pos.X + frame.Level.Card.Width/2,
			Y: pos.Y + frame.Level.Card.Height/2,
		}
	}

	if frame.Level.ShowConnections {
		for _, s := range p.Screens {
			start, ok := centers[s.ID]
			if !ok {
				continue
			}
			for _, c := range s.Connections {
				end, ok := centers[c.To]
				if !ok {
					continue // dangling target, dropped from rendering
				}
				frame.Curves = append(frame.Curves, Curve{
					From:    c.From,
					To:      c.To,
					Kind:    c.Kind,
					Label:   c.Label,
					Start:   start,
					Control: midpoint(start, end),
					End:     end,
				})
			}
		}
	}

	if frame.Level.ShowJourneys {
		for _, j := range p.Journeys {
			var points []model.Position
			for _, id := range j.Screens {
				if pt, ok := centers[id]; ok {
					points = append(points, pt)
				}
			}
			if len(points) < 2 {
				continue // degenerate journey, no path
			}
			frame.Journeys = append(frame.Journeys, JourneyPath{
				JourneyID: j.ID,
				Name:      j.Name,
				Points:    points,
			})
		}
	}

	return frame
}

func midpoint(a, b model.Position) model.Position {
	return model.Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
