package store

import (
	"math"
	"sort"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
)

// Editors returns the user's editors in creation order.
func (s *Store) Editors() []*domain.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Editor, len(s.editors))
	for i, e := range s.editors {
		c := *e
		out[i] = &c
	}
	return out
}

// Editor returns a single editor by id, or nil.
func (s *Store) Editor(id string) *domain.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.editors {
		if e.ID == id {
			c := *e
			return &c
		}
	}
	return nil
}

// Job returns a single job by id, or nil.
func (s *Store) Job(id string) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j := s.findJob(id); j != nil {
		return j.Clone()
	}
	return nil
}

// JobCountByEditor counts all of an editor's jobs across every week.
func (s *Store) JobCountByEditor(editorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, j := range s.jobs {
		if j.EditorID == editorID {
			n++
		}
	}
	return n
}

// JobsForEditor returns an editor's jobs in the selected week, sorted by day
// then order.
func (s *Store) JobsForEditor(editorID string) []*domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Job
	for _, j := range s.jobs {
		if j.EditorID == editorID && domain.SameWeek(j.WeekStart, s.week) {
			out = append(out, j.Clone())
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].DayIndex != out[b].DayIndex {
			return out[a].DayIndex < out[b].DayIndex
		}
		return out[a].Order < out[b].Order
	})
	return out
}

// JobsInCell returns the selected week's jobs for one (editor, day) cell,
// sorted by order ascending. This is the display order of a board column.
func (s *Store) JobsInCell(editorID string, day int) []*domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Job
	for _, j := range s.jobs {
		if j.EditorID == editorID && j.DayIndex == day && domain.SameWeek(j.WeekStart, s.week) {
			out = append(out, j.Clone())
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Order < out[b].Order })
	return out
}

// EditorLoadPercent is the editor's booked share of weekly capacity for the
// selected week, as a whole percentage capped at 100. Informational only; a
// full editor can still take jobs.
func (s *Store) EditorLoadPercent(editorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := domain.DefaultWeeklyCapacity
	for _, e := range s.editors {
		if e.ID == editorID {
			capacity = e.Capacity()
			break
		}
	}

	var hours float64
	for _, j := range s.jobs {
		if j.EditorID == editorID && domain.SameWeek(j.WeekStart, s.week) {
			hours += j.EstimatedHours
		}
	}
	return int(math.Round(math.Min(100, 100*hours/capacity)))
}

// JobsInMonth returns every job whose calendar date (week start plus day
// index) falls in the given month, sorted by date.
func (s *Store) JobsInMonth(year int, month time.Month) []*domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Job
	for _, j := range s.jobs {
		d := j.ScheduledDate()
		if d.Year() == year && d.Month() == month {
			out = append(out, j.Clone())
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].ScheduledDate().Before(out[b].ScheduledDate())
	})
	return out
}

// JobCountOn counts jobs scheduled on a specific calendar date, resolved to
// that date's week and day index.
func (s *Store) JobCountOn(date time.Time) int {
	_, day := domain.DayOfWeek(date)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, j := range s.jobs {
		if j.DayIndex == day && domain.SameWeek(j.WeekStart, date) {
			n++
		}
	}
	return n
}
