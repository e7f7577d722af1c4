package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/appsketch/internal/model"
)

const advisorSystemPrompt = `You are an app structure advisor. You review an
app's screen graph, user journeys, features, and design system, then answer
with a single JSON object and nothing else. Never invent screen ids that do
not exist in the provided project.`

func projectSummary(p *model.Project) string {
	design, _ := json.Marshal(p.DesignSystem)

	featureNames := make([]string, len(p.Features))
	for i, f := range p.Features {
		featureNames[i] = f.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "App: %s\n", p.Name)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Screens: %s\n", strings.Join(p.ScreenNames(), ", "))
	fmt.Fprintf(&b, "Features: %s\n", strings.Join(featureNames, ", "))
	fmt.Fprintf(&b, "Design System: %s\n", design)
	return b.String()
}

func analyzePrompt(p *model.Project) string {
	return fmt.Sprintf(`Analyze this app project and identify gaps, inconsistencies, and next steps:

%s
Return a JSON object with:
- "gaps": array of {"type": "missing_screen"|"broken_flow"|"design_inconsistency"|"missing_feature", "severity": "low"|"medium"|"high", "description", "suggestedFix", "autoFixAvailable"}
- "suggestions": array of {"title", "description"}
- "nextSteps": array of {"id", "title", "description", "priority" (1 = highest), "category": "design"|"content"|"features"|"flows", "action": "add_screen"|"modify_design"|"add_feature"|"ask_question", "buttonText", "autoExecutable"}
- "confidence": number between 0 and 1`, projectSummary(p))
}

func modificationsPrompt(step model.NextStep, p *model.Project) string {
	stepJSON, _ := json.Marshal(step)
	return fmt.Sprintf(`Generate concrete modifications that realize this step:

Step: %s

%s
Return a JSON object with "modifications": array of
{"type": "add_screen"|"update_screen"|"update_design_system"|"add_feature"|"modify_flow",
 "target": string, "changes": object, "previewable": boolean}.
For add_screen, "changes" may carry "name", "type", and "position" {"x","y"}.`, stepJSON, projectSummary(p))
}

func chatPrompt(text string, p *model.Project) string {
	return fmt.Sprintf(`The user said: %q

%s
Answer as a JSON object with:
- "message": a short conversational reply
- "modifications": modifications to offer (same shape as elsewhere, may be empty)
- "nextSteps": follow-up steps to surface (may be empty)`, text, projectSummary(p))
}
