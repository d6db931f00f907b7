package testutil

import (
	"context"
	"errors"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/repository"
)

// ErrInjected is the default error injected by the failing test doubles.
var ErrInjected = errors.New("injected persistence failure")

// FlakyJobRepo wraps a real JobRepo and fails selected operations. It powers
// the store's rollback-by-reload tests: reads keep working so reconciliation
// can fetch authoritative state.
type FlakyJobRepo struct {
	repository.JobRepo
	FailCreate   bool
	FailUpdate   bool
	FailDelete   bool
	FailOrdering bool
	FailReassign bool
}

func (r *FlakyJobRepo) Create(ctx context.Context, j *domain.Job) error {
	if r.FailCreate {
		return ErrInjected
	}
	return r.JobRepo.Create(ctx, j)
}

func (r *FlakyJobRepo) Update(ctx context.Context, j *domain.Job) error {
	if r.FailUpdate {
		return ErrInjected
	}
	return r.JobRepo.Update(ctx, j)
}

func (r *FlakyJobRepo) Delete(ctx context.Context, id string) error {
	if r.FailDelete {
		return ErrInjected
	}
	return r.JobRepo.Delete(ctx, id)
}

func (r *FlakyJobRepo) UpdateOrdering(ctx context.Context, placements []repository.JobPlacement) error {
	if r.FailOrdering {
		return ErrInjected
	}
	return r.JobRepo.UpdateOrdering(ctx, placements)
}

func (r *FlakyJobRepo) BulkReassign(ctx context.Context, userID, fromEditorID, toEditorID string) error {
	if r.FailReassign {
		return ErrInjected
	}
	return r.JobRepo.BulkReassign(ctx, userID, fromEditorID, toEditorID)
}

// FlakyEditorRepo wraps a real EditorRepo and fails selected operations.
type FlakyEditorRepo struct {
	repository.EditorRepo
	FailCreate bool
	FailUpdate bool
	FailDelete bool
}

func (r *FlakyEditorRepo) Create(ctx context.Context, e *domain.Editor) error {
	if r.FailCreate {
		return ErrInjected
	}
	return r.EditorRepo.Create(ctx, e)
}

func (r *FlakyEditorRepo) Update(ctx context.Context, e *domain.Editor) error {
	if r.FailUpdate {
		return ErrInjected
	}
	return r.EditorRepo.Update(ctx, e)
}

func (r *FlakyEditorRepo) Delete(ctx context.Context, id string) error {
	if r.FailDelete {
		return ErrInjected
	}
	return r.EditorRepo.Delete(ctx, id)
}

// UnreachableProfileRepo simulates a backend whose profiles table cannot be
// read: every lookup errors. The store must fall back to the free tier.
type UnreachableProfileRepo struct{}

func (UnreachableProfileRepo) GetByUser(context.Context, string) (*domain.Profile, error) {
	return nil, ErrInjected
}

func (UnreachableProfileRepo) Upsert(context.Context, *domain.Profile) error {
	return ErrInjected
}

// FailingUoW rejects every transaction without touching the database.
type FailingUoW struct{}

func (FailingUoW) WithinTx(context.Context, func(ctx context.Context, tx db.DBTX) error) error {
	return ErrInjected
}
