// Package canvas derives what the editor canvas should render from the
// active project and the transient view state (zoom, pan, selection,
// drag). It is purely a function of its inputs: nothing here persists,
// and nothing here mutates the project.
//
// Zoom is discretized into a fixed table of levels; each level declares
// which layers are visible and the on-screen card footprint. The level
// values are tunable constants, not a contract.
//
// Pointer interaction is a three-mode state machine (panning, placing,
// dragging a card) with exactly one durable position commit per drag
// gesture. Panning touches only the viewport; intermediate drag motion
// is transient and coalesced into a single PositionUpdate at release.
package canvas
