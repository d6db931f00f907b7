package repository

import (
	"context"
	"errors"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
)

// ErrNotFound is returned when a row does not exist. Callers branch on it
// with errors.Is.
var ErrNotFound = errors.New("not found")

// JobPlacement is the slice of a job that a board move rewrites: destination
// cell plus position. UpdateOrdering persists a batch of these atomically.
type JobPlacement struct {
	JobID     string
	EditorID  string
	DayIndex  int
	WeekStart time.Time
	Order     int
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Job, error)
	ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	UpdateOrdering(ctx context.Context, placements []JobPlacement) error
	BulkReassign(ctx context.Context, userID, fromEditorID, toEditorID string) error
	Delete(ctx context.Context, id string) error
}

type EditorRepo interface {
	Create(ctx context.Context, e *domain.Editor) error
	GetByID(ctx context.Context, id string) (*domain.Editor, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Editor, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, e *domain.Editor) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}
