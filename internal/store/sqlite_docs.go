package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/projectforgeai/forge-server/internal/domain"
)

// Projects and learning paths are stored as whole JSON documents keyed by
// (user_id, id). Updates replace the document; there are no field-level
// writes, matching the aggregate read-modify-write model.

// ListProjects returns all projects owned by a user.
func (s *SQLiteStore) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT doc FROM projects WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer closeRows(rows, "projects")

	var projects []domain.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode project doc: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project by ID, or nil if absent.
func (s *SQLiteStore) GetProject(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	query := `SELECT doc FROM projects WHERE user_id = ? AND id = ?`
	var doc string
	err := s.db.QueryRowContext(ctx, query, userID, projectID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan project doc: %w", err)
	}
	var p domain.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode project doc: %w", err)
	}
	return &p, nil
}

// PutProject creates or replaces a whole project document.
func (s *SQLiteStore) PutProject(ctx context.Context, userID string, project *domain.Project) error {
	doc, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project doc: %w", err)
	}

	now := time.Now().Unix()
	query := `
	INSERT INTO projects (id, user_id, doc, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id, id) DO UPDATE SET
		doc = excluded.doc,
		updated_at = excluded.updated_at`

	if err := s.execRetry(ctx, query, project.ID, userID, string(doc), now, now); err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// DeleteProject removes a project document.
func (s *SQLiteStore) DeleteProject(ctx context.Context, userID, projectID string) error {
	query := `DELETE FROM projects WHERE user_id = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, query, userID, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListLearningPaths returns all learning paths owned by a user.
func (s *SQLiteStore) ListLearningPaths(ctx context.Context, userID string) ([]domain.LearningPath, error) {
	query := `SELECT doc FROM learning_paths WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query learning paths: %w", err)
	}
	defer closeRows(rows, "learning_paths")

	var paths []domain.LearningPath
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan learning path row: %w", err)
		}
		var p domain.LearningPath
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode learning path doc: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate learning paths: %w", err)
	}
	return paths, nil
}

// GetLearningPath returns one learning path by ID, or nil if absent.
func (s *SQLiteStore) GetLearningPath(ctx context.Context, userID, pathID string) (*domain.LearningPath, error) {
	query := `SELECT doc FROM learning_paths WHERE user_id = ? AND id = ?`
	var doc string
	err := s.db.QueryRowContext(ctx, query, userID, pathID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan learning path doc: %w", err)
	}
	var p domain.LearningPath
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode learning path doc: %w", err)
	}
	return &p, nil
}

// PutLearningPath creates or replaces a whole learning path document.
func (s *SQLiteStore) PutLearningPath(ctx context.Context, userID string, path *domain.LearningPath) error {
	doc, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("encode learning path doc: %w", err)
	}

	now := time.Now().Unix()
	query := `
	INSERT INTO learning_paths (id, user_id, doc, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id, id) DO UPDATE SET
		doc = excluded.doc,
		updated_at = excluded.updated_at`

	if err := s.execRetry(ctx, query, path.ID, userID, string(doc), now, now); err != nil {
		return fmt.Errorf("put learning path: %w", err)
	}
	return nil
}

// DeleteLearningPath removes a learning path document.
func (s *SQLiteStore) DeleteLearningPath(ctx context.Context, userID, pathID string) error {
	query := `DELETE FROM learning_paths WHERE user_id = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, query, userID, pathID); err != nil {
		return fmt.Errorf("delete learning path: %w", err)
	}
	return nil
}

func closeRows(rows *sql.Rows, table string) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "table", table, "error", err)
	}
}
