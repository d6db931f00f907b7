package domain

import (
	"fmt"
	"time"
)

// CellKey is the derived (editor, day, week) grouping that scopes job
// ordering. It is never stored; it is computed from a job's placement fields.
type CellKey struct {
	EditorID  string
	DayIndex  int
	WeekStart time.Time
}

// Equal compares cell keys using calendar equality on the week start, so
// keys built from different time.Time representations of the same date match.
func (k CellKey) Equal(o CellKey) bool {
	return k.EditorID == o.EditorID && k.DayIndex == o.DayIndex && k.WeekStart.Equal(o.WeekStart)
}

func (k CellKey) String() string {
	return fmt.Sprintf("%s::%d::%s", k.EditorID, k.DayIndex, k.WeekStart.Format("2006-01-02"))
}

// WeekStart returns the Monday of t's week as a date-only UTC value.
func WeekStart(t time.Time) time.Time {
	t = truncateDate(t)
	// time.Weekday has Sunday = 0; shift so Monday = 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// CellDate resolves a cell's calendar date: the week's Monday plus the day index.
func CellDate(weekStart time.Time, dayIndex int) time.Time {
	return truncateDate(weekStart).AddDate(0, 0, dayIndex)
}

// DayOfWeek resolves a calendar date to its (weekStart, dayIndex) placement.
func DayOfWeek(date time.Time) (time.Time, int) {
	ws := WeekStart(date)
	day := int(truncateDate(date).Sub(ws).Hours() / 24)
	return ws, day
}

// SameWeek reports whether two dates fall in the same Monday-anchored week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
