// Package store owns the client-side board state: the in-memory job and
// editor collections for one user. Every mutation applies locally first so a
// front end reflects it immediately, then persists in the background; a failed
// persistence discards local speculation by reloading authoritative state.
package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/repository"
)

// ErrPlanLimit is returned when adding an editor would exceed the user's plan
// tier limit. Raised synchronously, before any persistence attempt.
var ErrPlanLimit = errors.New("plan limit reached")

// Config wires a Store's collaborators.
type Config struct {
	UserID   string
	Jobs     repository.JobRepo
	Editors  repository.EditorRepo
	Profiles repository.ProfileRepo
	UoW      db.UnitOfWork
	Notifier Notifier
	Logger   *slog.Logger
}

// Store is the sole owner of the mutable board state. Constructed once per
// session; readers go through its query methods, never the slices directly.
type Store struct {
	mu      sync.Mutex
	jobs    []*domain.Job
	editors []*domain.Editor
	week    time.Time // selected week's Monday

	userID     string
	jobRepo    repository.JobRepo
	editorRepo repository.EditorRepo
	profiles   repository.ProfileRepo
	uow        db.UnitOfWork
	notifier   Notifier
	logger     *slog.Logger

	pending sync.WaitGroup
}

// New creates a Store. Call Load before reading from it.
func New(cfg Config) *Store {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		week:       domain.WeekStart(time.Now().UTC()),
		userID:     cfg.UserID,
		jobRepo:    cfg.Jobs,
		editorRepo: cfg.Editors,
		profiles:   cfg.Profiles,
		uow:        cfg.UoW,
		notifier:   notifier,
		logger:     logger,
	}
}

// SetNotifier swaps the notice sink. A front end that renders notices on
// screen installs its own after taking over the terminal.
func (s *Store) SetNotifier(n Notifier) {
	if n == nil {
		n = NoopNotifier{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// notify returns the current notice sink. Background tasks go through it so
// a SetNotifier mid-flight is safe.
func (s *Store) notify() Notifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifier
}

// Load replaces local state with the authoritative backend state.
func (s *Store) Load(ctx context.Context) error {
	editors, err := s.editorRepo.ListByUser(ctx, s.userID)
	if err != nil {
		return err
	}
	jobs, err := s.jobRepo.ListByUser(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.editors = editors
	s.jobs = jobs
	s.mu.Unlock()
	return nil
}

// Wait blocks until all in-flight persistence tasks have settled. Front ends
// call it on teardown; tests call it to observe async outcomes.
func (s *Store) Wait() {
	s.pending.Wait()
}

// SelectedWeek returns the Monday of the week the board is showing.
func (s *Store) SelectedWeek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week
}

// SetWeek moves the board to the week containing t.
func (s *Store) SetWeek(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = domain.WeekStart(t)
}

// ShiftWeek moves the selected week forward or back by whole weeks.
func (s *Store) ShiftWeek(weeks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = s.week.AddDate(0, 0, 7*weeks)
}

// async runs a persistence task in the background. On failure the task's
// local speculation is discarded by reloading authoritative state.
func (s *Store) async(op string, fn func(ctx context.Context) error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := fn(context.Background()); err != nil {
			s.logger.Error("persistence failed", "op", op, "error", err)
			s.notify().Error("Could not save your change. Refreshing the board.")
			s.reconcile(op)
		}
	}()
}

// reconcile reloads authoritative state after a failed persistence. A reload
// failure leaves the last known state in place; there is nothing better to
// fall back to.
func (s *Store) reconcile(op string) {
	if err := s.Load(context.Background()); err != nil {
		s.logger.Error("reconcile reload failed", "op", op, "error", err)
	}
}

// planTier resolves the user's plan with an explicit two-outcome policy:
// profile found means use its tier, profile absent or unreachable means the
// default free tier.
func (s *Store) planTier(ctx context.Context) domain.PlanTier {
	p, err := s.profiles.GetByUser(ctx, s.userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("profile lookup failed, assuming free tier", "error", err)
		}
		return domain.TierFree
	}
	return p.PlanTier
}
