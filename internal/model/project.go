package model

import (
	"maps"
	"slices"
	"time"
)

// DefaultScreenSize is the card footprint assigned to screens created
// without an explicit size.
var DefaultScreenSize = Size{Width: 256, Height: 384}

// DefaultDesignSystem returns the fixed starter palette every new project
// begins with.
func DefaultDesignSystem() DesignSystem {
	return DesignSystem{
		Colors: ColorTokens{
			Primary:    "#2563eb",
			Background: "#ffffff",
			Text:       "#111827",
		},
		Typography: Typography{
			FontFamily: "Inter",
			Scale:      ScaleNormal,
		},
		BorderRadius: RadiusLG,
		Spacing:      SpacingNormal,
	}
}

// NewProject creates an empty project with the default design system and
// the two seed journeys every project starts from.
func NewProject(id, name, description string, now time.Time) *Project {
	return &Project{
		ID:           id,
		Name:         name,
		Description:  description,
		DesignSystem: DefaultDesignSystem(),
		Screens:      []Screen{},
		Journeys: []UserJourney{
			{
				ID:          "onboarding",
				Name:        "User Onboarding",
				Screens:     []string{},
				Description: "First-time user experience",
			},
			{
				ID:          "core-flow",
				Name:        "Core Experience",
				Screens:     []string{},
				Description: "Main app functionality",
			},
		},
		Features: []FeatureInstance{},
		AIContext: AIContext{
			AnalysisHistory:    []AIAnalysis{},
			SuggestedNextSteps: []NextStep{},
			UserPreferences: UserPreferences{
				Complexity: ComplexitySimple,
				Platform:   PlatformMobile,
			},
		},
		LastModified: now,
	}
}

// Clone returns a deep copy of the project. Mutating the copy never
// affects the original; snapshot consumers rely on this.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Screens = make([]Screen, len(p.Screens))
	for i, s := range p.Screens {
		c.Screens[i] = s.clone()
	}
	c.Journeys = make([]UserJourney, len(p.Journeys))
	for i, j := range p.Journeys {
		c.Journeys[i] = j
		c.Journeys[i].Screens = slices.Clone(j.Screens)
	}
	c.Features = make([]FeatureInstance, len(p.Features))
	for i, f := range p.Features {
		c.Features[i] = f
		c.Features[i].Screens = slices.Clone(f.Screens)
		c.Features[i].Configuration = maps.Clone(f.Configuration)
	}
	c.AIContext.AnalysisHistory = make([]AIAnalysis, len(p.AIContext.AnalysisHistory))
	for i, a := range p.AIContext.AnalysisHistory {
		c.AIContext.AnalysisHistory[i] = a.clone()
	}
	c.AIContext.SuggestedNextSteps = slices.Clone(p.AIContext.SuggestedNextSteps)
	return &c
}

func (s Screen) clone() Screen {
	c := s
	c.Connections = slices.Clone(s.Connections)
	c.States = slices.Clone(s.States)
	c.Content = maps.Clone(s.Content)
	return c
}

func (a AIAnalysis) clone() AIAnalysis {
	c := a
	c.Gaps = slices.Clone(a.Gaps)
	c.NextSteps = slices.Clone(a.NextSteps)
	c.Suggestions = make([]Suggestion, len(a.Suggestions))
	for i, s := range a.Suggestions {
		c.Suggestions[i] = s
		c.Suggestions[i].Modifications = cloneModifications(s.Modifications)
	}
	return c
}

func cloneModifications(mods []ProjectModification) []ProjectModification {
	if mods == nil {
		return nil
	}
	out := make([]ProjectModification, len(mods))
	for i, m := range mods {
		out[i] = m
		out[i].Changes = maps.Clone(m.Changes)
	}
	return out
}

// FindScreen returns the screen with the given id, or nil.
func (p *Project) FindScreen(id string) *Screen {
	for i := range p.Screens {
		if p.Screens[i].ID == id {
			return &p.Screens[i]
		}
	}
	return nil
}

// FindJourney returns the journey with the given id, or nil.
func (p *Project) FindJourney(id string) *UserJourney {
	for i := range p.Journeys {
		if p.Journeys[i].ID == id {
			return &p.Journeys[i]
		}
	}
	return nil
}

// AllConnections collects every connection in screen order. Connections
// live on their source screens; this is the only way to enumerate them.
func (p *Project) AllConnections() []Connection {
	var out []Connection
	for _, s := range p.Screens {
		out = append(out, s.Connections...)
	}
	return out
}

// ScreenNames returns the display names of all screens in order.
func (p *Project) ScreenNames() []string {
	names := make([]string, len(p.Screens))
	for i, s := range p.Screens {
		names[i] = s.Name
	}
	return names
}

// DefaultState returns the screen's default state name, falling back to
// the first state, then "default".
func (s *Screen) DefaultState() string {
	for _, st := range s.States {
		if st.IsDefault {
			return st.Name
		}
	}
	if len(s.States) > 0 {
		return s.States[0].Name
	}
	return "default"
}

// Center returns the card's center point in canvas units.
func (s *Screen) Center() Position {
	return Position{
		X: s.Position.X + s.Size.Width/2,
		Y: s.Position.Y + s.Size.Height/2,
	}
}
