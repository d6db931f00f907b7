package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo over SQLite.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(dbtx db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: dbtx}
}

func (r *SQLiteProfileRepo) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT user_id, plan_type, created_at, updated_at FROM profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.Profile
	var tierStr, createdAtStr, updatedAtStr string
	err := row.Scan(&p.UserID, &tierStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.PlanTier = domain.PlanTier(tierStr)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, plan_type, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET plan_type = excluded.plan_type, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		string(p.PlanTier),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
