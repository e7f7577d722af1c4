package project

import "github.com/roach88/appsketch/internal/model"

// ProjectPatch is a partial update for the active project. Nil fields
// are left untouched; set fields replace the corresponding value
// wholesale (shallow merge, last writer wins).
type ProjectPatch struct {
	Name         *string
	Description  *string
	DesignSystem *model.DesignSystem
	Screens      []model.Screen
	Journeys     []model.UserJourney
	Features     []model.FeatureInstance
	AIContext    *model.AIContext
}

func (p ProjectPatch) applyTo(target *model.Project) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.DesignSystem != nil {
		target.DesignSystem = *p.DesignSystem
	}
	if p.Screens != nil {
		target.Screens = p.Screens
	}
	if p.Journeys != nil {
		target.Journeys = p.Journeys
	}
	if p.Features != nil {
		target.Features = p.Features
	}
	if p.AIContext != nil {
		target.AIContext = *p.AIContext
	}
}

// ScreenPatch is a partial update for one screen. Nil fields are left
// untouched.
type ScreenPatch struct {
	Name        *string
	Kind        *model.ScreenKind
	Position    *model.Position
	Size        *model.Size
	Connections []model.Connection
	States      []model.ScreenState
	Content     map[string]any
}

func (p ScreenPatch) applyTo(s *model.Screen) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Kind != nil {
		s.Kind = *p.Kind
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.Size != nil {
		s.Size = *p.Size
	}
	if p.Connections != nil {
		s.Connections = p.Connections
	}
	if p.States != nil {
		s.States = p.States
	}
	if p.Content != nil {
		s.Content = p.Content
	}
}
