package domain

import "time"

// DefaultWeeklyCapacity is assumed when an editor row has no capacity set.
const DefaultWeeklyCapacity = 40.0

type Editor struct {
	ID             string
	UserID         string
	Name           string
	WeeklyCapacity float64 // hours per week, informational only

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity returns the editor's weekly capacity, falling back to the default
// when the stored value is missing or non-positive.
func (e *Editor) Capacity() float64 {
	if e.WeeklyCapacity <= 0 {
		return DefaultWeeklyCapacity
	}
	return e.WeeklyCapacity
}
