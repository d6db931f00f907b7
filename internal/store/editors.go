package store

import (
	"context"
	"fmt"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/google/uuid"
)

// EditorPatch is a partial editor update. Nil fields are left unchanged.
type EditorPatch struct {
	Name           *string
	WeeklyCapacity *float64
}

// AddEditor creates a staff member. The plan-tier editor limit is checked
// synchronously before any persistence attempt; hitting it returns a wrapped
// ErrPlanLimit the caller can branch on. Like AddJob, the editor joins local
// state only after the insert succeeds.
func (s *Store) AddEditor(ctx context.Context, e *domain.Editor) error {
	tier := s.planTier(ctx)
	limit := tier.EditorLimit()

	now := time.Now().UTC()
	s.mu.Lock()
	if len(s.editors) >= limit {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s plan allows %d editors", ErrPlanLimit, tier, limit)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.UserID = s.userID
	if e.WeeklyCapacity <= 0 {
		e.WeeklyCapacity = domain.DefaultWeeklyCapacity
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	queued := *e
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.editorRepo.Create(context.Background(), &queued); err != nil {
			s.logger.Error("persistence failed", "op", "add_editor", "error", err)
			s.notify().Error("Could not add the editor.")
			return
		}
		s.mu.Lock()
		s.editors = append(s.editors, &queued)
		s.mu.Unlock()
		s.notify().Success(fmt.Sprintf("Added editor %s", queued.Name))
	}()
	return nil
}

// UpdateEditor applies a partial update locally, then persists it.
func (s *Store) UpdateEditor(id string, patch EditorPatch) {
	s.mu.Lock()
	var editor *domain.Editor
	for _, e := range s.editors {
		if e.ID == id {
			editor = e
			break
		}
	}
	if editor == nil {
		s.mu.Unlock()
		s.logger.Warn("update for unknown editor", "editor_id", id)
		return
	}
	if patch.Name != nil {
		editor.Name = *patch.Name
	}
	if patch.WeeklyCapacity != nil {
		editor.WeeklyCapacity = *patch.WeeklyCapacity
	}
	editor.UpdatedAt = time.Now().UTC()
	updated := *editor
	s.mu.Unlock()

	s.async("update_editor", func(ctx context.Context) error {
		return s.editorRepo.Update(ctx, &updated)
	})
}

// DeleteEditor removes the editor locally and persists the delete. Jobs
// assigned to the editor are left untouched; ReassignEditorJobs is the
// explicit way to hand them to someone else, before or after deletion.
func (s *Store) DeleteEditor(id string) {
	s.mu.Lock()
	found := false
	kept := s.editors[:0]
	for _, e := range s.editors {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.editors = kept
	s.mu.Unlock()

	if !found {
		s.logger.Warn("delete for unknown editor", "editor_id", id)
		return
	}
	s.async("delete_editor", func(ctx context.Context) error {
		return s.editorRepo.Delete(ctx, id)
	})
}

// ReassignEditorJobs hands every job of one editor to another: one local
// batch, one update-by-filter persistence call.
func (s *Store) ReassignEditorJobs(fromID, toID string) {
	s.mu.Lock()
	for _, j := range s.jobs {
		if j.EditorID == fromID {
			j.EditorID = toID
		}
	}
	s.mu.Unlock()

	s.async("reassign_jobs", func(ctx context.Context) error {
		return s.jobRepo.BulkReassign(ctx, s.userID, fromID, toID)
	})
}
