package domain

import "time"

type Job struct {
	ID       string
	UserID   string
	EditorID string
	Title    string
	Client   string

	// Schedule placement
	DayIndex  int       // 0–6, Monday = 0
	WeekStart time.Time // Monday of the job's week, date-only UTC
	Order     int       // position within the (editor, day, week) cell

	EstimatedHours float64
	Priority       Priority
	Status         JobStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cell returns the grouping key that scopes this job's ordering.
func (j *Job) Cell() CellKey {
	return CellKey{EditorID: j.EditorID, DayIndex: j.DayIndex, WeekStart: j.WeekStart}
}

// ScheduledDate is the calendar date the job falls on: week start plus day index.
func (j *Job) ScheduledDate() time.Time {
	return CellDate(j.WeekStart, j.DayIndex)
}

// Clone returns a copy of the job. The ordering engine works on copies so
// callers keep an unmodified collection to fall back on.
func (j *Job) Clone() *Job {
	c := *j
	return &c
}
