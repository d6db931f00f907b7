package testutil

import (
	"time"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the user id fixtures belong to unless overridden.
const TestUserID = "user-test"

// TestWeek is a fixed Monday used as the default week start.
var TestWeek = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// Editor options
type EditorOption func(*domain.Editor)

func WithCapacity(hours float64) EditorOption {
	return func(e *domain.Editor) {
		e.WeeklyCapacity = hours
	}
}

func WithEditorUser(userID string) EditorOption {
	return func(e *domain.Editor) {
		e.UserID = userID
	}
}

func NewTestEditor(name string, opts ...EditorOption) *domain.Editor {
	now := time.Now().UTC()
	e := &domain.Editor{
		ID:             uuid.New().String(),
		UserID:         TestUserID,
		Name:           name,
		WeeklyCapacity: domain.DefaultWeeklyCapacity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Job options
type JobOption func(*domain.Job)

func WithDay(day int) JobOption {
	return func(j *domain.Job) {
		j.DayIndex = day
	}
}

func WithOrder(order int) JobOption {
	return func(j *domain.Job) {
		j.Order = order
	}
}

func WithWeek(weekStart time.Time) JobOption {
	return func(j *domain.Job) {
		j.WeekStart = weekStart
	}
}

func WithHours(hours float64) JobOption {
	return func(j *domain.Job) {
		j.EstimatedHours = hours
	}
}

func WithPriority(p domain.Priority) JobOption {
	return func(j *domain.Job) {
		j.Priority = p
	}
}

func WithJobStatus(s domain.JobStatus) JobOption {
	return func(j *domain.Job) {
		j.Status = s
	}
}

func WithClient(name string) JobOption {
	return func(j *domain.Job) {
		j.Client = name
	}
}

func WithJobUser(userID string) JobOption {
	return func(j *domain.Job) {
		j.UserID = userID
	}
}

func NewTestJob(title, editorID string, opts ...JobOption) *domain.Job {
	now := time.Now().UTC()
	j := &domain.Job{
		ID:             uuid.New().String(),
		UserID:         TestUserID,
		EditorID:       editorID,
		Title:          title,
		Client:         "Acme",
		DayIndex:       0,
		WeekStart:      TestWeek,
		EstimatedHours: 2,
		Priority:       domain.PriorityMedium,
		Status:         domain.JobQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func NewTestProfile(userID string, tier domain.PlanTier) *domain.Profile {
	now := time.Now().UTC()
	return &domain.Profile{
		UserID:    userID,
		PlanTier:  tier,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
