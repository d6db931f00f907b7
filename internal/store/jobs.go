package store

import (
	"context"
	"fmt"
	"time"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/ordering"
	"github.com/editflowhq/editflow/internal/repository"
	"github.com/google/uuid"
)

// JobPatch is a partial job update. Nil fields are left unchanged.
type JobPatch struct {
	Title          *string
	Client         *string
	EstimatedHours *float64
	Priority       *domain.Priority
	Status         *domain.JobStatus
}

// AddJob schedules a new job in the cell its placement fields name. The order
// is the count of jobs already in that cell. The job joins local state only
// once the insert succeeds, since until then it has no durable row; a failed
// insert surfaces a notice and leaves local state untouched.
func (s *Store) AddJob(j *domain.Job) {
	now := time.Now().UTC()
	s.mu.Lock()
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	j.UserID = s.userID
	if j.WeekStart.IsZero() {
		j.WeekStart = s.week
	}
	j.WeekStart = domain.WeekStart(j.WeekStart)
	if j.Priority == "" {
		j.Priority = domain.PriorityMedium
	}
	if j.Status == "" {
		j.Status = domain.JobQueued
	}
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Order = ordering.NextOrder(s.jobs, j.Cell())
	queued := j.Clone()
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.jobRepo.Create(context.Background(), queued); err != nil {
			s.logger.Error("persistence failed", "op", "add_job", "error", err)
			s.notify().Error("Could not add the job.")
			return
		}
		s.mu.Lock()
		s.jobs = append(s.jobs, queued)
		s.mu.Unlock()
		s.notify().Success(fmt.Sprintf("Added %q", queued.Title))
	}()
}

// UpdateJob applies a partial update locally, then persists it in the
// background. An unknown id is logged and ignored.
func (s *Store) UpdateJob(id string, patch JobPatch) {
	s.mu.Lock()
	job := s.findJob(id)
	if job == nil {
		s.mu.Unlock()
		s.logger.Warn("update for unknown job", "job_id", id)
		return
	}
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Client != nil {
		job.Client = *patch.Client
	}
	if patch.EstimatedHours != nil {
		job.EstimatedHours = *patch.EstimatedHours
	}
	if patch.Priority != nil {
		job.Priority = *patch.Priority
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	job.UpdatedAt = time.Now().UTC()
	updated := job.Clone()
	s.mu.Unlock()

	s.async("update_job", func(ctx context.Context) error {
		return s.jobRepo.Update(ctx, updated)
	})
}

// DeleteJob removes the job locally and closes the order gap it leaves in its
// cell, so the next added job cannot collide with a surviving one. The row
// delete and the reindexed placements persist in one transaction.
func (s *Store) DeleteJob(id string) {
	s.mu.Lock()
	next, changed := ordering.PlanRemove(s.jobs, id)
	if len(next) == len(s.jobs) {
		s.mu.Unlock()
		s.logger.Warn("delete for unknown job", "job_id", id)
		return
	}
	s.jobs = next
	placements := make([]repository.JobPlacement, len(changed))
	for i, j := range changed {
		placements[i] = repository.JobPlacement{
			JobID:     j.ID,
			EditorID:  j.EditorID,
			DayIndex:  j.DayIndex,
			WeekStart: j.WeekStart,
			Order:     j.Order,
		}
	}
	s.mu.Unlock()

	s.async("delete_job", func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repo := repository.NewSQLiteJobRepo(tx)
			if err := repo.Delete(ctx, id); err != nil {
				return err
			}
			if len(placements) == 0 {
				return nil
			}
			return repo.UpdateOrdering(ctx, placements)
		})
	})
}

// MoveJob relocates a job to destOrder in the (destEditorID, destDay) cell of
// its week, reindexing both the vacated and the destination cell so every
// touched cell stays contiguous from 0. All changed placements persist in one
// transaction; persisting only the dragged job would let the backend drift
// from the invariant the board relies on.
func (s *Store) MoveJob(id, destEditorID string, destDay, destOrder int) {
	s.mu.Lock()
	next, changed := ordering.PlanMove(s.jobs, id, destEditorID, destDay, destOrder)
	if len(changed) == 0 {
		s.mu.Unlock()
		if s.findJobIn(next, id) == nil {
			s.logger.Warn("move for unknown job", "job_id", id)
		}
		return
	}
	s.jobs = next
	placements := make([]repository.JobPlacement, len(changed))
	for i, j := range changed {
		placements[i] = repository.JobPlacement{
			JobID:     j.ID,
			EditorID:  j.EditorID,
			DayIndex:  j.DayIndex,
			WeekStart: j.WeekStart,
			Order:     j.Order,
		}
	}
	s.mu.Unlock()

	s.async("move_job", func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteJobRepo(tx).UpdateOrdering(ctx, placements)
		})
	})
}

// ApplyDrag consumes a board drag event. Unresolvable drags (dropped outside
// any cell, malformed droppable id) are logged and ignored.
func (s *Store) ApplyDrag(ev ordering.DragEvent) {
	req, err := ev.Resolve()
	if err != nil {
		s.logger.Warn("ignoring drag", "error", err)
		return
	}
	s.MoveJob(req.JobID, req.EditorID, req.DayIndex, req.Order)
}

// findJob returns the job with the given id from local state. Caller holds mu.
func (s *Store) findJob(id string) *domain.Job {
	return s.findJobIn(s.jobs, id)
}

func (s *Store) findJobIn(jobs []*domain.Job, id string) *domain.Job {
	for _, j := range jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}
