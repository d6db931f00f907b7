package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
)

const editorColumns = `id, user_id, name, weekly_capacity, created_at, updated_at`

// SQLiteEditorRepo implements EditorRepo over SQLite.
type SQLiteEditorRepo struct {
	db db.DBTX
}

// NewSQLiteEditorRepo creates a new SQLiteEditorRepo.
func NewSQLiteEditorRepo(dbtx db.DBTX) *SQLiteEditorRepo {
	return &SQLiteEditorRepo{db: dbtx}
}

func (r *SQLiteEditorRepo) Create(ctx context.Context, e *domain.Editor) error {
	query := `INSERT INTO editors (id, user_id, name, weekly_capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Name,
		e.WeeklyCapacity,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting editor: %w", err)
	}
	return nil
}

func (r *SQLiteEditorRepo) GetByID(ctx context.Context, id string) (*domain.Editor, error) {
	query := `SELECT ` + editorColumns + ` FROM editors WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var e domain.Editor
	var createdAtStr, updatedAtStr string
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.WeeklyCapacity, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("editor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning editor: %w", err)
	}
	if err := populateEditorTimes(&e, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteEditorRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Editor, error) {
	query := `SELECT ` + editorColumns + ` FROM editors WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing editors: %w", err)
	}
	defer rows.Close()

	var editors []*domain.Editor
	for rows.Next() {
		var e domain.Editor
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.WeeklyCapacity, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning editor row: %w", err)
		}
		if err := populateEditorTimes(&e, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		editors = append(editors, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating editors: %w", err)
	}
	return editors, nil
}

func (r *SQLiteEditorRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM editors WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting editors: %w", err)
	}
	return n, nil
}

func (r *SQLiteEditorRepo) Update(ctx context.Context, e *domain.Editor) error {
	query := `UPDATE editors SET name = ?, weekly_capacity = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.WeeklyCapacity,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating editor: %w", err)
	}
	return nil
}

// Delete removes the editor row only. Jobs keep their editor_id; reassignment
// is a separate explicit operation.
func (r *SQLiteEditorRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM editors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting editor: %w", err)
	}
	return nil
}

func populateEditorTimes(e *domain.Editor, createdAtStr, updatedAtStr string) error {
	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
