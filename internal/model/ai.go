package model

import "time"

// AIContext is the project's advisory bookkeeping: what the assistant has
// said so far and what it thinks remains to be done. Never required for
// structural integrity of the project.
type AIContext struct {
	AnalysisHistory    []AIAnalysis     `json:"analysisHistory"`
	SuggestedNextSteps []NextStep       `json:"suggestedNextSteps"`
	CompletionStatus   CompletionStatus `json:"completionStatus"`
	UserPreferences    UserPreferences  `json:"userPreferences"`
}

// CompletionStatus flags which foundational areas the project has covered.
type CompletionStatus struct {
	DesignSystem   bool `json:"designSystem"`
	CoreFlows      bool `json:"coreFlows"`
	Authentication bool `json:"authentication"`
	DataModels     bool `json:"dataModels"`
}

// UserPreferences are hints the user has given the assistant.
type UserPreferences struct {
	Complexity Complexity `json:"complexity"`
	Platform   Platform   `json:"platform"`
	Industry   string     `json:"industry"`
}

// Complexity is the user's preferred sophistication level.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityAdvanced Complexity = "advanced"
)

// Platform is the user's target platform.
type Platform string

const (
	PlatformMobile  Platform = "mobile"
	PlatformDesktop Platform = "desktop"
	PlatformBoth    Platform = "both"
)

// AIAnalysis is one advisory pass over a project snapshot.
//
// ProjectID records which project the analysis was computed against; an
// analysis whose ProjectID no longer matches the active project is stale
// and must not be applied.
type AIAnalysis struct {
	Timestamp  time.Time    `json:"timestamp"`
	ProjectID  string       `json:"projectId"`
	Gaps       []Gap        `json:"gaps"`
	Suggestions []Suggestion `json:"suggestions"`
	NextSteps  []NextStep   `json:"nextSteps"`
	Confidence float64      `json:"confidence"` // [0,1], advisory only
}

// GapKind is the closed set of gap categories.
type GapKind string

const (
	GapMissingScreen       GapKind = "missing_screen"
	GapBrokenFlow          GapKind = "broken_flow"
	GapDesignInconsistency GapKind = "design_inconsistency"
	GapMissingFeature      GapKind = "missing_feature"
)

// Severity grades how much a gap matters.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Gap is one identified shortcoming of the project.
type Gap struct {
	Kind             GapKind  `json:"type"`
	Severity         Severity `json:"severity"`
	Description      string   `json:"description"`
	SuggestedFix     string   `json:"suggestedFix"`
	AutoFixAvailable bool     `json:"autoFixAvailable"`
}

// Suggestion is a human-readable recommendation, optionally carrying the
// modifications that would realize it.
type Suggestion struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Modifications []ProjectModification `json:"modifications,omitempty"`
}

// StepCategory buckets next steps for display.
type StepCategory string

const (
	CategoryDesign   StepCategory = "design"
	CategoryContent  StepCategory = "content"
	CategoryFeatures StepCategory = "features"
	CategoryFlows    StepCategory = "flows"
)

// StepAction names what executing a next step does.
type StepAction string

const (
	ActionAddScreen    StepAction = "add_screen"
	ActionModifyDesign StepAction = "modify_design"
	ActionAddFeature   StepAction = "add_feature"
	ActionAskQuestion  StepAction = "ask_question"
)

// NextStep is one suggested follow-up action.
type NextStep struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Priority       int          `json:"priority"`
	Category       StepCategory `json:"category"`
	Action         StepAction   `json:"action"`
	ButtonText     string       `json:"buttonText"`
	AutoExecutable bool         `json:"autoExecutable"`
}

// ModificationKind dispatches a ProjectModification to the right store
// operation.
type ModificationKind string

const (
	ModAddScreen          ModificationKind = "add_screen"
	ModUpdateScreen       ModificationKind = "update_screen"
	ModUpdateDesignSystem ModificationKind = "update_design_system"
	ModAddFeature         ModificationKind = "add_feature"
	ModModifyFlow         ModificationKind = "modify_flow"
)

// ProjectModification is a structured instruction describing one change to
// apply to a project. Changes is an opaque payload whose shape depends on
// Kind; unknown kinds are skipped by the applicator, never fatal.
type ProjectModification struct {
	Kind        ModificationKind `json:"type"`
	Target      string           `json:"target,omitempty"`
	Changes     map[string]any   `json:"changes,omitempty"`
	Journey     string           `json:"journey,omitempty"` // journey id to append created screens to
	Previewable bool             `json:"previewable,omitempty"`
}
