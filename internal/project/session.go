package project

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/appsketch/internal/feature"
	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/store"
)

// Gateway is the persistence surface the session writes through to.
// *store.Store satisfies it; tests substitute an in-memory fake.
type Gateway interface {
	Save(ctx context.Context, p *model.Project) error
	Load(ctx context.Context, id string) (*model.Project, error)
	LoadAll(ctx context.Context) ([]*model.Project, error)
	CurrentID(ctx context.Context) (string, error)
	Delete(ctx context.Context, id string) error
}

// Config carries the session's collaborators. Zero fields get defaults.
type Config struct {
	Logger *zap.Logger
	IDs    model.IDGenerator
	Clock  func() time.Time
}

// Session holds the active project and every mutation entry point.
// Not safe for concurrent use; see the package comment.
type Session struct {
	gateway   Gateway
	templates *feature.Library
	logger    *zap.Logger
	ids       model.IDGenerator
	clock     func() time.Time

	current *model.Project
	lastErr error
}

// NewSession creates a session with no active project.
func NewSession(gw Gateway, templates *feature.Library, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.IDs == nil {
		cfg.IDs = model.UUIDv7Generator{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Session{
		gateway:   gw,
		templates: templates,
		logger:    cfg.Logger,
		ids:       cfg.IDs,
		clock:     cfg.Clock,
	}
}

// Current returns a snapshot of the active project, or nil. The snapshot
// is a deep copy; mutating it has no effect on the session.
func (s *Session) Current() *model.Project {
	return s.current.Clone()
}

// Err returns the error flag from the most recent failed operation, or
// nil. Successful loads clear it.
func (s *Session) Err() error {
	return s.lastErr
}

// Resume re-activates the project recorded as current in the gateway.
// A missing or unreadable current project leaves the session empty
// without error; resuming is best-effort.
func (s *Session) Resume(ctx context.Context) {
	id, err := s.gateway.CurrentID(ctx)
	if err != nil || id == "" {
		return
	}
	p, err := s.gateway.Load(ctx, id)
	if err != nil {
		s.logger.Warn("could not resume project", zap.String("id", id), zap.Error(err))
		return
	}
	s.current = p
}

// CreateProject allocates a fresh project with the default design system
// and seed journeys, makes it active, and persists it. An empty name is
// a validation skip: nothing happens and the previous project stays
// active.
func (s *Session) CreateProject(ctx context.Context, name, description string) (*model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Reason: "project name must not be empty"}
	}
	p := model.NewProject(s.ids.NewID(), name, description, s.clock())
	s.current = p
	s.lastErr = nil
	s.persist(ctx)
	return p.Clone(), nil
}

// CreateFromStarter instantiates a project starter template and makes
// the result active. Returns a NotFoundError-flagged nil when the
// starter id is unknown; the active project is unchanged.
func (s *Session) CreateFromStarter(ctx context.Context, starterID string) (*model.Project, error) {
	st, ok := s.templates.Starter(starterID)
	if !ok {
		s.lastErr = &store.NotFoundError{ID: starterID}
		return nil, s.lastErr
	}
	p := feature.Instantiate(st, s.ids.NewID(), s.clock())
	s.current = p
	s.lastErr = nil
	s.persist(ctx)
	return p.Clone(), nil
}

// LoadProject activates a previously persisted project. On an unknown id
// the error flag is set and the active project is left unchanged.
func (s *Session) LoadProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.gateway.Load(ctx, id)
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.current = p
	s.lastErr = nil
	// Re-record the current pointer so the next session resumes here.
	if err := s.gateway.Save(ctx, p); err != nil {
		s.logger.Warn("persist failed", zap.String("project", p.ID), zap.Error(err))
	}
	return p.Clone(), nil
}

// UpdateProject shallow-merges the patch into the active project,
// refreshes the last-modified stamp, and persists. Safe no-op when no
// project is active.
func (s *Session) UpdateProject(ctx context.Context, patch ProjectPatch) {
	s.mutate(ctx, func(p *model.Project) {
		patch.applyTo(p)
	})
}

// SaveProject persists the active project as-is. No-op when empty.
func (s *Session) SaveProject(ctx context.Context) {
	if s.current == nil {
		return
	}
	s.persist(ctx)
}

// AddScreen appends a screen to the active project, filling defaults for
// any zero fields: a minted id, the default card size, grid placement
// after the existing screens, and a single default state. Returns the
// screen as stored; zero value when no project is active.
func (s *Session) AddScreen(ctx context.Context, screen model.Screen) model.Screen {
	var added model.Screen
	s.mutate(ctx, func(p *model.Project) {
		if screen.ID == "" {
			screen.ID = s.ids.NewID()
		}
		if screen.Kind == "" {
			screen.Kind = model.ScreenKindScreen
		}
		if screen.Size == (model.Size{}) {
			screen.Size = model.DefaultScreenSize
		}
		if screen.Position == (model.Position{}) {
			screen.Position = feature.GridPosition(len(p.Screens))
		}
		if len(screen.States) == 0 {
			screen.States = []model.ScreenState{{Name: "default", IsDefault: true}}
		}
		for i := range screen.Connections {
			screen.Connections[i].From = screen.ID
		}
		p.Screens = append(p.Screens, screen)
		added = screen
	})
	return added
}

// UpdateScreen applies a partial update to one screen, leaving every
// other screen untouched. Silently a no-op when the id matches nothing.
func (s *Session) UpdateScreen(ctx context.Context, id string, patch ScreenPatch) {
	if s.current == nil || s.current.FindScreen(id) == nil {
		return
	}
	s.mutate(ctx, func(p *model.Project) {
		if sc := p.FindScreen(id); sc != nil {
			patch.applyTo(sc)
		}
	})
}

// DeleteScreen removes a screen and cascades: connections in surviving
// screens that target the deleted id are dropped, and the id is removed
// from every journey's screen list. No-op for unknown ids.
func (s *Session) DeleteScreen(ctx context.Context, id string) {
	if s.current == nil || s.current.FindScreen(id) == nil {
		return
	}
	s.mutate(ctx, func(p *model.Project) {
		screens := p.Screens[:0]
		for _, sc := range p.Screens {
			if sc.ID == id {
				continue
			}
			conns := sc.Connections[:0]
			for _, c := range sc.Connections {
				if c.To != id {
					conns = append(conns, c)
				}
			}
			sc.Connections = conns
			screens = append(screens, sc)
		}
		p.Screens = screens

		for i := range p.Journeys {
			members := p.Journeys[i].Screens[:0]
			for _, m := range p.Journeys[i].Screens {
				if m != id {
					members = append(members, m)
				}
			}
			p.Journeys[i].Screens = members
		}
	})
}

// AddFeature expands a feature template into the active project: one
// screen per template slot plus one FeatureInstance referencing them,
// appended in a single mutation. Unknown template ids are a no-op.
func (s *Session) AddFeature(ctx context.Context, templateID string) *model.FeatureInstance {
	if s.current == nil {
		return nil
	}
	tpl, ok := s.templates.Feature(templateID)
	if !ok {
		s.logger.Debug("unknown feature template", zap.String("template", templateID))
		return nil
	}
	var instance model.FeatureInstance
	s.mutate(ctx, func(p *model.Project) {
		screens, inst := feature.Expand(tpl, s.ids, len(p.Screens))
		p.Screens = append(p.Screens, screens...)
		p.Features = append(p.Features, inst)
		instance = inst
	})
	return &instance
}

// AddScreenToJourney appends a screen id to a journey's traversal order.
// Missing journey or already-present screen id: no-op.
func (s *Session) AddScreenToJourney(ctx context.Context, journeyID, screenID string) {
	if s.current == nil {
		return
	}
	j := s.current.FindJourney(journeyID)
	if j == nil {
		return
	}
	for _, m := range j.Screens {
		if m == screenID {
			return
		}
	}
	s.mutate(ctx, func(p *model.Project) {
		j := p.FindJourney(journeyID)
		j.Screens = append(j.Screens, screenID)
	})
}

// RecordAnalysis appends an advisory analysis to the project's history,
// replaces the suggested next steps, and recomputes the completion
// status flags.
func (s *Session) RecordAnalysis(ctx context.Context, analysis model.AIAnalysis) {
	s.mutate(ctx, func(p *model.Project) {
		p.AIContext.AnalysisHistory = append(p.AIContext.AnalysisHistory, analysis)
		p.AIContext.SuggestedNextSteps = analysis.NextSteps
		p.AIContext.CompletionStatus = completionStatus(p)
	})
}

// Projects lists every persisted project, most recently modified first.
func (s *Session) Projects(ctx context.Context) ([]*model.Project, error) {
	return s.gateway.LoadAll(ctx)
}

// DeleteProject removes a persisted project. Deleting the active project
// empties the session.
func (s *Session) DeleteProject(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// mutate clones the current project, applies fn, stamps the clock, and
// installs the clone as the new current value before persisting. The
// no-active-project case is a safe no-op.
func (s *Session) mutate(ctx context.Context, fn func(p *model.Project)) {
	if s.current == nil {
		return
	}
	next := s.current.Clone()
	fn(next)
	next.LastModified = s.clock()
	s.current = next
	s.persist(ctx)
}

// persist writes the current snapshot through to the gateway. A failed
// write is a warning, not an error: in-memory state stays authoritative.
func (s *Session) persist(ctx context.Context) {
	if err := s.gateway.Save(ctx, s.current); err != nil {
		s.logger.Warn("persist failed", zap.String("project", s.current.ID), zap.Error(err))
	}
}

// completionStatus derives the foundational-area flags from the project
// structure.
func completionStatus(p *model.Project) model.CompletionStatus {
	status := model.CompletionStatus{
		DesignSystem: p.DesignSystem != model.DefaultDesignSystem(),
	}
	for _, j := range p.Journeys {
		if len(j.Screens) >= 2 {
			status.CoreFlows = true
			break
		}
	}
	for _, sc := range p.Screens {
		name := strings.ToLower(sc.Name)
		if strings.Contains(name, "login") || strings.Contains(name, "signup") ||
			strings.Contains(name, "sign up") || strings.Contains(name, "auth") {
			status.Authentication = true
		}
		for _, c := range sc.Connections {
			if c.Kind == model.ConnectionData {
				status.DataModels = true
			}
		}
	}
	return status
}
