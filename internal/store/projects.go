package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/appsketch/internal/model"
)

// NotFoundError reports a lookup for a project id that does not exist.
// Always non-fatal; callers surface it as an error flag, never a crash.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.ID)
}

// IsNotFound returns true if the error is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Save writes or overwrites the project keyed by its id and records the
// id as current. Last writer wins.
func (s *Store) Save(ctx context.Context, p *model.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save project: marshal: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save project: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, modified, document)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			modified = excluded.modified,
			document = excluded.document
	`, p.ID, p.Name, p.LastModified.UnixMilli(), string(doc))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaCurrentProject, p.ID)
	if err != nil {
		return fmt.Errorf("save project: set current: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save project: commit: %w", err)
	}
	return nil
}

// Load returns the project with the given id. Returns a NotFoundError if
// no such project exists or if its stored document is unreadable (a
// corrupt document is treated as "no data").
func (s *Store) Load(ctx context.Context, id string) (*model.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM projects WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	var p model.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, &NotFoundError{ID: id}
	}
	return &p, nil
}

// LoadAll returns every persisted project, most recently modified first.
// Rows whose documents fail to parse are skipped. Returns an empty slice
// (not nil) when the store is empty.
func (s *Store) LoadAll(ctx context.Context) ([]*model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document FROM projects ORDER BY modified DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load all projects: %w", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("load all projects: scan: %w", err)
		}
		var p model.Project
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			continue // corrupt document, treat as absent
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load all projects: iterate: %w", err)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})
	return projects, nil
}

// CurrentID returns the last-saved current project id, or "" if none is
// recorded.
func (s *Store) CurrentID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, metaCurrentProject,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("current project id: %w", err)
	}
	return id, nil
}

// Delete removes a project. If it was the current project, the current
// pointer is cleared. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete project: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM meta WHERE key = ? AND value = ?`, metaCurrentProject, id)
	if err != nil {
		return fmt.Errorf("delete project: clear current: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete project: commit: %w", err)
	}
	return nil
}
