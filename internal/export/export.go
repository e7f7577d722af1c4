// Package export renders a project into a set of handoff documents: a
// numbered series of markdown files plus a JSON manifest. Generation is
// deterministic: the only timestamp that appears is the project's own
// LastModified, and every grouping iterates in sorted order, so the
// same project always exports byte-identical files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/roach88/appsketch/internal/model"
)

// Document file names, in reading order.
const (
	FileOverview     = "1-project-overview.md"
	FileJourneys     = "2-user-journeys.md"
	FileScreens      = "3-screens-and-flows.md"
	FileFeatures     = "4-features-and-components.md"
	FileDesignSystem = "5-design-system.md"
	FileManifest     = "manifest.json"
)

// Bundle maps file names to their rendered contents.
type Bundle map[string]string

// Names returns the bundle's file names in sorted order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate renders every export document for the project. All documents
// are built before any are returned: a failure yields a nil bundle, never
// a partial one.
func Generate(p *model.Project) (Bundle, error) {
	if p == nil {
		return nil, fmt.Errorf("no project to export")
	}

	manifest, err := renderManifest(p)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", FileManifest, err)
	}

	bundle := Bundle{
		FileOverview:     renderOverview(p),
		FileJourneys:     renderJourneys(p),
		FileScreens:      renderScreens(p),
		FileFeatures:     renderFeatures(p),
		FileDesignSystem: renderDesignSystem(p),
		FileManifest:     manifest,
	}
	return bundle, nil
}

// WriteDir writes the bundle's files into dir, creating it if needed.
func WriteDir(bundle Bundle, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export write: %w", err)
	}
	for _, name := range bundle.Names() {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(bundle[name]), 0o644); err != nil {
			return fmt.Errorf("export write %s: %w", name, err)
		}
	}
	return nil
}

// manifest is the machine-readable companion to the markdown documents.
type manifest struct {
	Project      string   `json:"project"`
	ProjectID    string   `json:"projectId"`
	Description  string   `json:"description,omitempty"`
	LastModified string   `json:"lastModified"`
	Screens      int      `json:"screens"`
	Journeys     int      `json:"journeys"`
	Features     int      `json:"features"`
	Files        []string `json:"files"`
}

func renderManifest(p *model.Project) (string, error) {
	m := manifest{
		Project:      p.Name,
		ProjectID:    p.ID,
		Description:  p.Description,
		LastModified: p.LastModified.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Screens:      len(p.Screens),
		Journeys:     len(p.Journeys),
		Features:     len(p.Features),
		Files: []string{
			FileOverview, FileJourneys, FileScreens, FileFeatures, FileDesignSystem,
		},
	}
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
