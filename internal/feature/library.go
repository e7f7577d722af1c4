package feature

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/appsketch/internal/model"
)

//go:embed templates/*.cue
var templateFS embed.FS

// Template is a reusable feature bundle: the screens a feature needs and
// the connections between them, with targets expressed symbolically by
// screen name.
type Template struct {
	ID          string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Screens     []ScreenSlot `json:"screens"`
}

// ScreenSlot declares one screen a template expands to.
type ScreenSlot struct {
	Name        string           `json:"name"`
	Kind        model.ScreenKind `json:"type"`
	Connections []SlotConnection `json:"connections"`
}

// SlotConnection is a template connection with a symbolic target.
type SlotConnection struct {
	To    string               `json:"to"`
	Kind  model.ConnectionKind `json:"type"`
	Label string               `json:"label,omitempty"`
}

// Starter is a full project template: a pre-built set of screens,
// journeys and feature instances to begin a project from.
type Starter struct {
	ID          string         `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	Project     StarterProject `json:"project"`
}

// StarterProject is the project body of a starter. Screen and journey
// identifiers are fixed slugs; they are kept verbatim on instantiation so
// the starter's journey and feature references stay valid.
type StarterProject struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Screens     []model.Screen          `json:"screens"`
	Journeys    []model.UserJourney     `json:"journeys"`
	Features    []model.FeatureInstance `json:"features"`
}

// Library is the compiled template catalog.
type Library struct {
	features map[string]Template
	starters map[string]Starter
}

// Load compiles the embedded CUE catalog and validates it against the
// schema. An error here means the embedded templates are malformed - a
// programmer error, not a user one.
func Load() (*Library, error) {
	cuectx := cuecontext.New()

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}

	// Unify all catalog files into one value so the schema definitions
	// constrain every document.
	value := cuectx.CompileString("{}")
	for _, entry := range entries {
		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		v := cuectx.CompileBytes(data, cue.Filename(entry.Name()))
		if v.Err() != nil {
			return nil, fmt.Errorf("compile template %s: %w", entry.Name(), v.Err())
		}
		value = value.Unify(v)
	}
	if err := value.Validate(); err != nil {
		return nil, fmt.Errorf("validate template catalog: %w", err)
	}

	lib := &Library{
		features: make(map[string]Template),
		starters: make(map[string]Starter),
	}

	if err := decodeCatalog(value, "feature", func(id string, v cue.Value) error {
		var t Template
		if err := v.Decode(&t); err != nil {
			return fmt.Errorf("feature %q: %w", id, err)
		}
		t.ID = id
		lib.features[id] = t
		return nil
	}); err != nil {
		return nil, err
	}

	if err := decodeCatalog(value, "starter", func(id string, v cue.Value) error {
		var st Starter
		if err := v.Decode(&st); err != nil {
			return fmt.Errorf("starter %q: %w", id, err)
		}
		st.ID = id
		lib.starters[id] = st
		return nil
	}); err != nil {
		return nil, err
	}

	return lib, nil
}

// decodeCatalog iterates the struct at the given path and hands each
// field to decode.
func decodeCatalog(value cue.Value, path string, decode func(id string, v cue.Value) error) error {
	root := value.LookupPath(cue.ParsePath(path))
	if !root.Exists() {
		return nil
	}
	iter, err := root.Fields()
	if err != nil {
		return fmt.Errorf("iterate %s catalog: %w", path, err)
	}
	for iter.Next() {
		if err := decode(iter.Label(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

// Feature returns the feature template with the given id.
func (l *Library) Feature(id string) (Template, bool) {
	t, ok := l.features[id]
	return t, ok
}

// Features returns all feature templates sorted by id.
func (l *Library) Features() []Template {
	out := make([]Template, 0, len(l.features))
	for _, t := range l.features {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Starter returns the project starter with the given id.
func (l *Library) Starter(id string) (Starter, bool) {
	s, ok := l.starters[id]
	return s, ok
}

// Starters returns all project starters sorted by id.
func (l *Library) Starters() []Starter {
	out := make([]Starter, 0, len(l.starters))
	for _, s := range l.starters {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
