package apply

import (
	"github.com/roach88/appsketch/internal/model"
	"github.com/roach88/appsketch/internal/project"
)

// Change payloads arrive as decoded JSON, so every value is read with a
// type assertion and silently ignored when the shape is wrong: a bad
// field degrades to a default, never an error.

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func positionField(m map[string]any, key string) (model.Position, bool) {
	nested, ok := m[key].(map[string]any)
	if !ok {
		return model.Position{}, false
	}
	x, okX := floatField(nested, "x")
	y, okY := floatField(nested, "y")
	if !okX || !okY {
		return model.Position{}, false
	}
	return model.Position{X: x, Y: y}, true
}

func sizeField(m map[string]any, key string) (model.Size, bool) {
	nested, ok := m[key].(map[string]any)
	if !ok {
		return model.Size{}, false
	}
	w, okW := floatField(nested, "width")
	h, okH := floatField(nested, "height")
	if !okW || !okH {
		return model.Size{}, false
	}
	return model.Size{Width: w, Height: h}, true
}

// screenFromChanges builds a screen from an add_screen payload. Fields
// the payload omits stay zero and are defaulted at insert time.
func screenFromChanges(changes map[string]any) model.Screen {
	var screen model.Screen
	if name, ok := stringField(changes, "name"); ok {
		screen.Name = name
	}
	if kind, ok := stringField(changes, "type"); ok && model.ValidScreenKinds[model.ScreenKind(kind)] {
		screen.Kind = model.ScreenKind(kind)
	}
	if pos, ok := positionField(changes, "position"); ok {
		screen.Position = pos
	}
	if size, ok := sizeField(changes, "size"); ok {
		screen.Size = size
	}
	return screen
}

// screenPatchFromChanges builds a partial screen update. Reports false
// when the payload carries nothing usable.
func screenPatchFromChanges(changes map[string]any) (project.ScreenPatch, bool) {
	var patch project.ScreenPatch
	set := false
	if name, ok := stringField(changes, "name"); ok {
		patch.Name = &name
		set = true
	}
	if kind, ok := stringField(changes, "type"); ok && model.ValidScreenKinds[model.ScreenKind(kind)] {
		k := model.ScreenKind(kind)
		patch.Kind = &k
		set = true
	}
	if pos, ok := positionField(changes, "position"); ok {
		patch.Position = &pos
		set = true
	}
	if size, ok := sizeField(changes, "size"); ok {
		patch.Size = &size
		set = true
	}
	return patch, set
}

// mergeDesign overlays a design-system payload onto the current tokens.
// Unknown keys and malformed values leave the base untouched.
func mergeDesign(base model.DesignSystem, changes map[string]any) model.DesignSystem {
	if colors, ok := changes["colors"].(map[string]any); ok {
		if v, ok := stringField(colors, "primary"); ok {
			base.Colors.Primary = v
		}
		if v, ok := stringField(colors, "secondary"); ok {
			base.Colors.Secondary = v
		}
		if v, ok := stringField(colors, "accent"); ok {
			base.Colors.Accent = v
		}
		if v, ok := stringField(colors, "background"); ok {
			base.Colors.Background = v
		}
		if v, ok := stringField(colors, "text"); ok {
			base.Colors.Text = v
		}
	}
	if typo, ok := changes["typography"].(map[string]any); ok {
		if v, ok := stringField(typo, "fontFamily"); ok {
			base.Typography.FontFamily = v
		}
		if v, ok := stringField(typo, "scale"); ok {
			base.Typography.Scale = model.TypeScale(v)
		}
	}
	if v, ok := stringField(changes, "borderRadius"); ok {
		base.BorderRadius = model.RadiusPreset(v)
	}
	if v, ok := stringField(changes, "spacing"); ok {
		base.Spacing = model.SpacingScale(v)
	}
	return base
}
