package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/appsketch/internal/model"
)

// mermaidNode turns a screen name into a mermaid-safe node id:
// NFC-normalized with everything but letters and digits stripped.
func mermaidNode(name string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Unnamed"
	}
	return b.String()
}

func renderOverview(p *model.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Overview: %s\n\n", p.Name)

	b.WriteString("## Project Description\n")
	description := p.Description
	if description == "" {
		description = "An application structure designed with AppSketch."
	}
	b.WriteString(description + "\n\n")

	b.WriteString("## Key Statistics\n")
	fmt.Fprintf(&b, "- Total Screens: %d\n", len(p.Screens))
	fmt.Fprintf(&b, "- Total Features: %d\n", len(p.Features))
	fmt.Fprintf(&b, "- User Journeys: %d\n", len(p.Journeys))
	fmt.Fprintf(&b, "- Last Modified: %s\n\n", p.LastModified.UTC().Format("2006-01-02"))

	b.WriteString("## Screen Map\n")
	if len(p.Screens) == 0 {
		b.WriteString("No screens yet.\n")
	} else {
		for _, s := range p.Screens {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.Kind)
		}
	}
	b.WriteString("\n")

	b.WriteString("## How to Read This Export\n")
	fmt.Fprintf(&b, "1. `%s` — flows users take through the app\n", FileJourneys)
	fmt.Fprintf(&b, "2. `%s` — every screen with its navigation graph\n", FileScreens)
	fmt.Fprintf(&b, "3. `%s` — feature placements per screen\n", FileFeatures)
	fmt.Fprintf(&b, "4. `%s` — the visual token sheet\n", FileDesignSystem)
	return b.String()
}

func screenPurpose(s model.Screen) string {
	switch s.Kind {
	case model.ScreenKindModal:
		return "Overlay presented on top of the current screen"
	case model.ScreenKindFlow:
		return "Multi-step flow collapsed into one node"
	default:
		lower := strings.ToLower(s.Name)
		switch {
		case strings.Contains(lower, "login"), strings.Contains(lower, "sign"):
			return "User authentication and account access"
		case strings.Contains(lower, "home"):
			return "Main entry point and navigation hub"
		case strings.Contains(lower, "profile"):
			return "User account management and settings"
		case strings.Contains(lower, "settings"):
			return "Application configuration and preferences"
		case strings.Contains(lower, "dashboard"):
			return "Data visualization and metrics overview"
		}
		return "General application screen"
	}
}

func screenActions(s model.Screen, p *model.Project) string {
	var names []string
	for _, f := range p.Features {
		for _, id := range f.Screens {
			if id == s.ID {
				names = append(names, f.Name)
				break
			}
		}
	}
	if len(names) == 0 {
		return "Navigate to other screens"
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func renderJourneys(p *model.Project) string {
	var b strings.Builder

	b.WriteString("# User Journeys\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "This document describes the key user journeys through %s. Each journey represents a complete flow from entry to goal completion.\n\n", p.Name)

	for i, j := range p.Journeys {
		var screens []model.Screen
		for _, id := range j.Screens {
			if s := p.FindScreen(id); s != nil {
				screens = append(screens, *s)
			}
		}

		fmt.Fprintf(&b, "## Journey %d: %s\n\n", i+1, j.Name)
		b.WriteString("### Description\n")
		description := j.Description
		if description == "" {
			description = "User journey through the application"
		}
		b.WriteString(description + "\n\n")

		b.WriteString("### Flow Diagram\n")
		b.WriteString("```mermaid\ngraph LR\n")
		for idx := 1; idx < len(screens); idx++ {
			fmt.Fprintf(&b, "    %s --> %s\n",
				mermaidNode(screens[idx-1].Name), mermaidNode(screens[idx].Name))
		}
		b.WriteString("```\n\n")

		b.WriteString("### Screens in Journey\n")
		for idx, s := range screens {
			next := "End of journey or return to previous screen"
			if idx+1 < len(screens) {
				next = "Navigate to " + screens[idx+1].Name
			} else if len(s.Connections) > 0 {
				next = "Multiple navigation options available"
			}
			fmt.Fprintf(&b, "\n%d. **%s**\n", idx+1, s.Name)
			fmt.Fprintf(&b, "   - Purpose: %s\n", screenPurpose(s))
			fmt.Fprintf(&b, "   - Key Actions: %s\n", screenActions(s, p))
			fmt.Fprintf(&b, "   - Next Steps: %s\n", next)
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func renderScreens(p *model.Project) string {
	var b strings.Builder

	b.WriteString("# Screens and Navigation Flows\n\n")
	b.WriteString("## Screen Inventory\n")
	fmt.Fprintf(&b, "Total Screens: %d\n\n", len(p.Screens))

	byKind := map[model.ScreenKind][]model.Screen{}
	for _, s := range p.Screens {
		byKind[s.Kind] = append(byKind[s.Kind], s)
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		screens := byKind[model.ScreenKind(kind)]
		title := strings.ToUpper(kind[:1]) + kind[1:]
		fmt.Fprintf(&b, "### %s Screens (%d)\n", title, len(screens))

		for _, s := range screens {
			fmt.Fprintf(&b, "\n#### %s\n", s.Name)
			fmt.Fprintf(&b, "- **ID**: %s\n", s.ID)
			fmt.Fprintf(&b, "- **Type**: %s\n", s.Kind)
			fmt.Fprintf(&b, "- **Position**: (%g, %g)\n", s.Position.X, s.Position.Y)
			stateNames := make([]string, len(s.States))
			for i, st := range s.States {
				stateNames[i] = st.Name
			}
			fmt.Fprintf(&b, "- **States**: %s\n\n", strings.Join(stateNames, ", "))

			b.WriteString("**Connections:**\n")
			if len(s.Connections) == 0 {
				b.WriteString("- No outgoing connections\n")
			}
			for _, c := range s.Connections {
				targetName := "Unknown"
				if target := p.FindScreen(c.To); target != nil {
					targetName = target.Name
				}
				fmt.Fprintf(&b, "- → %s (%s)\n", targetName, c.Kind)
			}

			var incoming []string
			for _, other := range p.Screens {
				for _, c := range other.Connections {
					if c.To == s.ID {
						incoming = append(incoming, other.Name)
						break
					}
				}
			}
			if len(incoming) > 0 {
				b.WriteString("\n**Incoming from:**\n")
				for _, name := range incoming {
					fmt.Fprintf(&b, "- ← %s\n", name)
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Navigation Matrix\n\n")
	b.WriteString("```mermaid\ngraph TD\n")
	for _, s := range p.Screens {
		for _, c := range s.Connections {
			target := p.FindScreen(c.To)
			if target == nil {
				continue
			}
			fmt.Fprintf(&b, "    %s --> %s\n", mermaidNode(s.Name), mermaidNode(target.Name))
		}
	}
	b.WriteString("```\n")
	return b.String()
}

func renderFeatures(p *model.Project) string {
	var b strings.Builder

	b.WriteString("# Features and Components\n\n")
	b.WriteString("## Feature Inventory\n")
	fmt.Fprintf(&b, "Total Features: %d\n\n", len(p.Features))

	// Group by screen name; features with no placements land under
	// "Shared Features".
	grouped := map[string][]model.FeatureInstance{}
	for _, f := range p.Features {
		if len(f.Screens) == 0 {
			grouped["Shared Features"] = append(grouped["Shared Features"], f)
			continue
		}
		for _, id := range f.Screens {
			name := "Unknown Screen"
			if s := p.FindScreen(id); s != nil {
				name = s.Name
			}
			grouped[name] = append(grouped[name], f)
		}
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "## %s\n\n", name)
		for _, f := range grouped[name] {
			fmt.Fprintf(&b, "### %s\n", f.Name)
			fmt.Fprintf(&b, "- **Template ID**: %s\n", f.TemplateID)
			config, _ := json.MarshalIndent(f.Configuration, "", "  ")
			fmt.Fprintf(&b, "- **Configuration**: %s\n\n", config)
		}
	}
	return b.String()
}

// radiusValues maps the corner-rounding presets to concrete values.
var radiusValues = map[model.RadiusPreset]string{
	model.RadiusNone: "0",
	model.RadiusSM:   "0.125rem",
	model.RadiusMD:   "0.375rem",
	model.RadiusLG:   "0.5rem",
	model.RadiusXL:   "0.75rem",
}

// scaleBaseSizes maps the typographic presets to base font sizes.
var scaleBaseSizes = map[model.TypeScale]string{
	model.ScaleCompact:  "0.875rem",
	model.ScaleNormal:   "1rem",
	model.ScaleSpacious: "1.125rem",
}

// spacingUnits maps the spacing presets to the base unit.
var spacingUnits = map[model.SpacingScale]string{
	model.SpacingTight:   "0.2rem",
	model.SpacingNormal:  "0.25rem",
	model.SpacingRelaxed: "0.3rem",
}

func renderDesignSystem(p *model.Project) string {
	ds := p.DesignSystem
	var b strings.Builder

	b.WriteString("# Design System\n\n")

	b.WriteString("## Color Palette\n\n```css\n:root {\n")
	fmt.Fprintf(&b, "  --color-primary: %s;\n", ds.Colors.Primary)
	if ds.Colors.Secondary != "" {
		fmt.Fprintf(&b, "  --color-secondary: %s;\n", ds.Colors.Secondary)
	}
	if ds.Colors.Accent != "" {
		fmt.Fprintf(&b, "  --color-accent: %s;\n", ds.Colors.Accent)
	}
	fmt.Fprintf(&b, "  --color-background: %s;\n", ds.Colors.Background)
	fmt.Fprintf(&b, "  --color-text: %s;\n", ds.Colors.Text)
	b.WriteString("}\n```\n\n")

	b.WriteString("## Typography\n\n```css\nbody {\n")
	fmt.Fprintf(&b, "  font-family: '%s', sans-serif;\n", ds.Typography.FontFamily)
	if base, ok := scaleBaseSizes[ds.Typography.Scale]; ok {
		fmt.Fprintf(&b, "  font-size: %s; /* %s scale */\n", base, ds.Typography.Scale)
	}
	b.WriteString("}\n```\n\n")

	b.WriteString("## Border Radius\n\n```css\n:root {\n")
	radius := radiusValues[ds.BorderRadius]
	if radius == "" {
		radius = radiusValues[model.RadiusMD]
	}
	fmt.Fprintf(&b, "  --radius: %s; /* %s preset */\n", radius, ds.BorderRadius)
	b.WriteString("}\n```\n\n")

	b.WriteString("## Spacing\n\n```css\n:root {\n")
	unit := spacingUnits[ds.Spacing]
	if unit == "" {
		unit = spacingUnits[model.SpacingNormal]
	}
	fmt.Fprintf(&b, "  --space-unit: %s; /* %s scale; multiples of the unit */\n", unit, ds.Spacing)
	b.WriteString("}\n```\n\n")

	b.WriteString("## Usage\n")
	b.WriteString("- Every color in the UI derives from the palette variables above.\n")
	b.WriteString("- Spacing is always a whole multiple of `--space-unit`.\n")
	b.WriteString("- Corner rounding uses `--radius` everywhere; no per-component overrides.\n")
	return b.String()
}
