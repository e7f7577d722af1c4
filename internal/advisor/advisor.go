package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/appsketch/internal/model"
)

// remoteTimeout bounds every backend call; on expiry the heuristic
// engine answers instead.
const remoteTimeout = 60 * time.Second

// ChatReply is the advisor's answer to a free-text request.
type ChatReply struct {
	Message       string                      `json:"message"`
	Modifications []model.ProjectModification `json:"modifications"`
	NextSteps     []model.NextStep            `json:"nextSteps"`
}

// Config assembles an Advisor. Zero values get sensible defaults; a nil
// Backend selects heuristic-only mode.
type Config struct {
	Backend Backend
	Logger  *zap.Logger
	Timeout time.Duration
	Clock   func() time.Time
}

// Advisor serves analyses, modification plans, and chat replies. Remote
// completion is best-effort: any failure falls back to the heuristic
// engine, so callers never see a backend error.
type Advisor struct {
	backend Backend
	logger  *zap.Logger
	timeout time.Duration
	clock   func() time.Time
}

// New builds an Advisor from the config.
func New(cfg Config) *Advisor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = remoteTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Advisor{
		backend: cfg.Backend,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
		clock:   cfg.Clock,
	}
}

// Configured reports whether a remote backend is wired in.
func (a *Advisor) Configured() bool { return a.backend != nil }

// BackendName names the remote backend, or "heuristic" without one.
func (a *Advisor) BackendName() string {
	if a.backend == nil {
		return "heuristic"
	}
	return a.backend.Name()
}

// TestConnection sends a minimal completion to verify credentials.
func (a *Advisor) TestConnection(ctx context.Context) error {
	if a.backend == nil {
		return fmt.Errorf("no AI backend configured")
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	_, err := a.backend.Complete(ctx, Request{Prompt: "Reply with the word ok.", Temperature: 0})
	return err
}

// analysisWire is the JSON shape backends are asked to return for
// analyses. Missing fields default rather than fail.
type analysisWire struct {
	Gaps        []model.Gap        `json:"gaps"`
	Suggestions []model.Suggestion `json:"suggestions"`
	NextSteps   []model.NextStep   `json:"nextSteps"`
	Confidence  float64            `json:"confidence"`
}

// Analyze reviews the project and returns gaps, suggestions, and next
// steps. The returned analysis carries the project id it was computed
// against so stale results can be rejected at apply time.
func (a *Advisor) Analyze(ctx context.Context, p *model.Project) model.AIAnalysis {
	now := a.clock()
	if a.backend == nil {
		return heuristicAnalysis(p, now)
	}

	prompt := analyzePrompt(p)
	raw, err := a.complete(ctx, Request{
		System:       advisorSystemPrompt,
		Prompt:       prompt,
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		a.logger.Debug("remote analysis failed, using heuristics",
			zap.String("backend", a.backend.Name()), zap.Error(err))
		return heuristicAnalysis(p, now)
	}

	var wire analysisWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		a.logger.Debug("unparseable analysis response, using heuristics", zap.Error(err))
		return heuristicAnalysis(p, now)
	}

	analysis := model.AIAnalysis{
		Timestamp:   now,
		ProjectID:   p.ID,
		Gaps:        wire.Gaps,
		Suggestions: wire.Suggestions,
		NextSteps:   wire.NextSteps,
		Confidence:  wire.Confidence,
	}
	if analysis.Gaps == nil {
		analysis.Gaps = []model.Gap{}
	}
	if analysis.Suggestions == nil {
		analysis.Suggestions = []model.Suggestion{}
	}
	if analysis.NextSteps == nil {
		analysis.NextSteps = []model.NextStep{}
	}
	if analysis.Confidence == 0 {
		analysis.Confidence = 0.8
	}
	return analysis
}

// GenerateModifications turns a next step into concrete modifications.
func (a *Advisor) GenerateModifications(ctx context.Context, step model.NextStep, p *model.Project) []model.ProjectModification {
	if a.backend == nil {
		return heuristicModifications(step, p)
	}

	raw, err := a.complete(ctx, Request{
		System:       advisorSystemPrompt,
		Prompt:       modificationsPrompt(step, p),
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		a.logger.Debug("remote modification generation failed, using heuristics",
			zap.String("step", step.ID), zap.Error(err))
		return heuristicModifications(step, p)
	}

	var wire struct {
		Modifications []model.ProjectModification `json:"modifications"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		a.logger.Debug("unparseable modification response, using heuristics", zap.Error(err))
		return heuristicModifications(step, p)
	}
	if wire.Modifications == nil {
		return []model.ProjectModification{}
	}
	return wire.Modifications
}

// ProcessFreeText answers a free-text request about the project.
func (a *Advisor) ProcessFreeText(ctx context.Context, text string, p *model.Project) ChatReply {
	if a.backend == nil {
		return heuristicReply(text, p)
	}

	raw, err := a.complete(ctx, Request{
		System:       advisorSystemPrompt,
		Prompt:       chatPrompt(text, p),
		Temperature:  0.5,
		JSONResponse: true,
	})
	if err != nil {
		a.logger.Debug("remote chat failed, using heuristics", zap.Error(err))
		return heuristicReply(text, p)
	}

	var reply ChatReply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil || reply.Message == "" {
		a.logger.Debug("unparseable chat response, using heuristics", zap.Error(err))
		return heuristicReply(text, p)
	}
	if reply.Modifications == nil {
		reply.Modifications = []model.ProjectModification{}
	}
	if reply.NextSteps == nil {
		reply.NextSteps = []model.NextStep{}
	}
	return reply
}

func (a *Advisor) complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.backend.Complete(ctx, req)
}

// stripFences removes a markdown code fence if the backend wrapped its
// JSON in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
