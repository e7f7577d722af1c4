package canvas

import (
	"math"

	"github.com/roach88/appsketch/internal/model"
)

// ZoomLevel is one discrete detail tier. Value is the nominal zoom
// percentage the tier sits at; the Show flags declare which layers
// render, and Card is the on-screen footprint used for each screen card
// at this tier.
type ZoomLevel struct {
	Value       float64
	Name        string
	Description string

	ShowJourneys      bool
	ShowConnections   bool
	ShowScreenDetails bool
	ShowFeatures      bool
	ShowComponents    bool

	Card model.Size
}

// Levels is the fixed zoom table, lowest detail first.
var Levels = []ZoomLevel{
	{
		Value:           25,
		Name:            "App Overview",
		Description:     "Journey map view",
		ShowJourneys:    true,
		ShowConnections: true,
		Card:            model.Size{Width: 64, Height: 96},
	},
	{
		Value:           50,
		Name:            "Screen Flow",
		Description:     "Screen connections",
		ShowConnections: true,
		Card:            model.Size{Width: 128, Height: 192},
	},
	{
		Value:             100,
		Name:              "Screen Detail",
		Description:       "Screen content",
		ShowConnections:   true,
		ShowScreenDetails: true,
		Card:              model.Size{Width: 256, Height: 384},
	},
	{
		Value:             150,
		Name:              "Feature Detail",
		Description:       "Features within screens",
		ShowScreenDetails: true,
		ShowFeatures:      true,
		Card:              model.Size{Width: 320, Height: 480},
	},
	{
		Value:             200,
		Name:              "Component Level",
		Description:       "UI components",
		ShowScreenDetails: true,
		ShowFeatures:      true,
		ShowComponents:    true,
		Card:              model.Size{Width: 384, Height: 576},
	},
}

// DefaultZoom is the starting zoom for a fresh viewport (Screen Detail).
const DefaultZoom = 100

// NearestLevel returns the table entry whose value is closest to the
// given zoom. Ties resolve to the lower-detail level because it appears
// first in the table.
func NearestLevel(zoom float64) ZoomLevel {
	best := Levels[0]
	for _, lvl := range Levels[1:] {
		if math.Abs(lvl.Value-zoom) < math.Abs(best.Value-zoom) {
			best = lvl
		}
	}
	return best
}
