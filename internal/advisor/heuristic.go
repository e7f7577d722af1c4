package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/appsketch/internal/model"
)

// authScreenMarkers match screen names that indicate an auth surface
// already exists.
var authScreenMarkers = []string{"login", "log in", "signup", "sign up", "signin", "sign in", "auth"}

// heuristicConfidence is reported by the offline engine. The rules are
// deterministic, so confidence is a constant.
const heuristicConfidence = 0.9

func hasAuthScreen(p *model.Project) bool {
	for _, s := range p.Screens {
		name := strings.ToLower(s.Name)
		for _, marker := range authScreenMarkers {
			if strings.Contains(name, marker) {
				return true
			}
		}
	}
	return false
}

// heuristicAnalysis runs the deterministic rule set over the project.
// Same project, same verdict.
func heuristicAnalysis(p *model.Project, now time.Time) model.AIAnalysis {
	analysis := model.AIAnalysis{
		Timestamp:   now,
		ProjectID:   p.ID,
		Gaps:        []model.Gap{},
		Suggestions: []model.Suggestion{},
		NextSteps:   []model.NextStep{},
		Confidence:  heuristicConfidence,
	}

	if len(p.Screens) == 0 {
		analysis.Gaps = append(analysis.Gaps, model.Gap{
			Kind:             model.GapMissingScreen,
			Severity:         model.SeverityHigh,
			Description:      "Project has no screens yet",
			SuggestedFix:     "Add a home screen to anchor the app structure",
			AutoFixAvailable: true,
		})
		analysis.NextSteps = append(analysis.NextSteps, model.NextStep{
			ID:             "add-first-screen",
			Title:          "Add Your First Screen",
			Description:    "Every app starts with a home screen",
			Priority:       1,
			Category:       model.CategoryContent,
			Action:         model.ActionAddScreen,
			ButtonText:     "Add Home Screen",
			AutoExecutable: true,
		})
	}

	if !hasAuthScreen(p) {
		analysis.Gaps = append(analysis.Gaps, model.Gap{
			Kind:             model.GapMissingFeature,
			Severity:         model.SeverityMedium,
			Description:      "No user authentication system",
			SuggestedFix:     "Add login and signup screens",
			AutoFixAvailable: true,
		})
		analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
			Title:       "Add User Authentication",
			Description: "Your app needs a way for users to sign in",
		})
		analysis.NextSteps = append(analysis.NextSteps, model.NextStep{
			ID:             "add-auth",
			Title:          "Add Authentication",
			Description:    "Add login and signup screens to your app",
			Priority:       1,
			Category:       model.CategoryFeatures,
			Action:         model.ActionAddScreen,
			ButtonText:     "Add Auth Screens",
			AutoExecutable: true,
		})
	}

	for _, j := range p.Journeys {
		if len(j.Screens) == 0 {
			analysis.Gaps = append(analysis.Gaps, model.Gap{
				Kind:             model.GapBrokenFlow,
				Severity:         model.SeverityMedium,
				Description:      fmt.Sprintf("Journey %q has no screens", j.Name),
				SuggestedFix:     "Add screens to the journey or remove it",
				AutoFixAvailable: false,
			})
		}
	}

	if p.DesignSystem == model.DefaultDesignSystem() {
		analysis.Gaps = append(analysis.Gaps, model.Gap{
			Kind:             model.GapDesignInconsistency,
			Severity:         model.SeverityLow,
			Description:      "Design system still uses the default palette",
			SuggestedFix:     "Customize colors and typography to match the brand",
			AutoFixAvailable: false,
		})
		analysis.NextSteps = append(analysis.NextSteps, model.NextStep{
			ID:          "customize-design",
			Title:       "Customize Design System",
			Description: "Pick brand colors and typography",
			Priority:    2,
			Category:    model.CategoryDesign,
			Action:      model.ActionModifyDesign,
			ButtonText:  "Edit Design System",
		})
	}

	return analysis
}

// authModifications are the canned login/signup screens the auto-fix
// inserts.
func authModifications() []model.ProjectModification {
	return []model.ProjectModification{
		{
			Kind:   model.ModAddScreen,
			Target: "screens",
			Changes: map[string]any{
				"name":     "Login",
				"type":     "screen",
				"position": map[string]any{"x": 100.0, "y": 100.0},
			},
			Previewable: true,
		},
		{
			Kind:   model.ModAddScreen,
			Target: "screens",
			Changes: map[string]any{
				"name":     "Sign Up",
				"type":     "screen",
				"position": map[string]any{"x": 300.0, "y": 100.0},
			},
			Previewable: true,
		},
	}
}

// heuristicModifications realizes a next step offline.
func heuristicModifications(step model.NextStep, _ *model.Project) []model.ProjectModification {
	switch {
	case step.ID == "add-auth":
		return authModifications()
	case step.ID == "add-first-screen":
		return []model.ProjectModification{{
			Kind:   model.ModAddScreen,
			Target: "screens",
			Changes: map[string]any{
				"name": "Home",
				"type": "screen",
			},
			Previewable: true,
		}}
	case strings.HasPrefix(step.ID, "add-feature-"):
		return []model.ProjectModification{{
			Kind:        model.ModAddFeature,
			Target:      strings.TrimPrefix(step.ID, "add-feature-"),
			Previewable: true,
		}}
	}
	return []model.ProjectModification{}
}

// featureRoutes maps free-text keywords to feature templates.
var featureRoutes = []struct {
	keywords []string
	template string
	title    string
}{
	{[]string{"shop", "store", "cart", "commerce", "sell", "checkout"}, "ecommerce-basic", "Add E-commerce"},
	{[]string{"chat", "message", "conversation"}, "chat-messaging", "Add Chat"},
	{[]string{"feed", "social", "follow", "post"}, "social-feed", "Add Social Feed"},
}

// heuristicReply routes free text by keyword and returns a canned reply.
func heuristicReply(text string, p *model.Project) ChatReply {
	lower := strings.ToLower(text)

	for _, marker := range authScreenMarkers {
		if strings.Contains(lower, marker) {
			return ChatReply{
				Message:       "I can add login and signup screens for you.",
				Modifications: authModifications(),
				NextSteps:     []model.NextStep{},
			}
		}
	}

	for _, route := range featureRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(lower, kw) {
				return ChatReply{
					Message:       fmt.Sprintf("The %s feature template covers that. Want me to add it?", route.template),
					Modifications: []model.ProjectModification{},
					NextSteps: []model.NextStep{{
						ID:             "add-feature-" + route.template,
						Title:          route.title,
						Description:    fmt.Sprintf("Add the %s screens to the project", route.template),
						Priority:       1,
						Category:       model.CategoryFeatures,
						Action:         model.ActionAddFeature,
						ButtonText:     route.title,
						AutoExecutable: true,
					}},
				}
			}
		}
	}

	return ChatReply{
		Message: fmt.Sprintf(
			"Your project %q has %d screens. I can add screens, wire features like auth or chat, or review the structure for gaps.",
			p.Name, len(p.Screens)),
		Modifications: []model.ProjectModification{},
		NextSteps:     []model.NextStep{},
	}
}
