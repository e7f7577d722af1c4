package model

import "time"

// Project is the root aggregate holding all editable app-design state.
// Exactly one project is active in a session at a time.
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	DesignSystem DesignSystem      `json:"designSystem"`
	Screens      []Screen          `json:"screens"`
	Journeys     []UserJourney     `json:"journeys"`
	Features     []FeatureInstance `json:"features"`
	AIContext    AIContext         `json:"aiContext"`
	LastModified time.Time         `json:"lastModified"`
}

// ScreenKind categorizes a screen node.
type ScreenKind string

const (
	ScreenKindScreen ScreenKind = "screen" // plain screen
	ScreenKindModal  ScreenKind = "modal"  // overlay presented on top of another screen
	ScreenKindFlow   ScreenKind = "flow"   // multi-step flow collapsed into one node
)

// ValidScreenKinds defines the allowed screen kinds.
var ValidScreenKinds = map[ScreenKind]bool{
	ScreenKindScreen: true,
	ScreenKindModal:  true,
	ScreenKindFlow:   true,
}

/// Screen is one node in the design graph: an app view, modal, or flow.
//
// Connections are stored on their source screen; there is no global edge
// collection. "All connections" is always computed by scanning every screen.
type Screen struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        ScreenKind     `json:"type"`
	Position    Position       `json:"position"`
	Size        Size           `json:"size"`
	Connections []Connection   `json:"connections"`
	Content     map[string]any `json:"content,omitempty"`
	States      []ScreenState  `json:"states"`
}

// Position is a screen's canvas coordinate in unscaled canvas units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a screen card's footprint in unscaled canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ConnectionKind categorizes a directed edge between screens.
type ConnectionKind string

const (
	ConnectionNavigation ConnectionKind = "navigation"
	ConnectionAction     ConnectionKind = "action"
	ConnectionData       ConnectionKind = "data"
)

// Connection is a directed, typed edge from one screen to another.
//
// To may name a screen that no longer exists; consumers must tolerate
// dangling targets by dropping the edge, never by failing.
type Connection struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Kind  ConnectionKind `json:"type"`
	Label string         `json:"label,omitempty"`
}

// ScreenState is a named state of a screen. Exactly one state per screen
// is marked default.
type ScreenState struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// UserJourney is a named ordered traversal of screens representing one
// user story. Screen ids may reference screens that have been deleted;
// render and export paths filter unresolved members.
type UserJourney struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Screens     []string `json:"screens"`
	Description string   `json:"description,omitempty"`
}

// FeatureInstance records one expansion of a feature template into a
// project: which template, and which screens the batch introduced.
//
// The instance and its screens are created atomically but are not kept
// consistent afterwards; deleting the screens leaves a stale instance.
type FeatureInstance struct {
	ID            string         `json:"id"`
	TemplateID    string         `json:"templateId"`
	Name          string         `json:"name"`
	Screens       []string       `json:"screens"`
	Configuration map[string]any `json:"configuration"`
}

// DesignSystem is the project's shared visual token set. It is a value
/// object with no identity: edits replace it wholesale.
type DesignSystem struct {
	Colors       ColorTokens  `json:"colors"`
	Typography   Typography   `json:"typography"`
	BorderRadius RadiusPreset `json:"borderRadius"`
	Spacing      SpacingScale `json:"spacing"`
}

// ColorTokens holds the palette. Primary, background and text are always
// set; secondary and accent are optional.
type ColorTokens struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Typography holds the type choices.
type Typography struct {
	FontFamily string    `json:"fontFamily"`
	Scale      TypeScale `json:"scale"`
}

// TypeScale is the typographic density preset.
type TypeScale string

const (
	ScaleCompact  TypeScale = "compact"
	ScaleNormal   TypeScale = "normal"
	ScaleSpacious TypeScale = "spacious"
)

// RadiusPreset is the corner-rounding preset.
type RadiusPreset string

const (
	RadiusNone RadiusPreset = "none"
	RadiusSM   RadiusPreset = "sm"
	RadiusMD   RadiusPreset = "md"
	RadiusLG   RadiusPreset = "lg"
	RadiusXL   RadiusPreset = "xl"
)

// SpacingScale is the spacing density preset.
type SpacingScale string

const (
	SpacingTight   SpacingScale = "tight"
	SpacingNormal  SpacingScale = "normal"
	SpacingRelaxed SpacingScale = "relaxed"
)
