package ordering

import (
	"github.com/editflowhq/editflow/internal/domain"
)

// PlanMove computes the placement changes for moving one job to destOrder in
// the (destEditorID, destDay) cell of its week. It returns the full new
// collection plus the subset of jobs whose placement changed, in a state that
// keeps every touched cell's order values contiguous from 0.
//
// The input collection is never mutated. An unknown jobID returns the input
// unchanged with a nil changed set. destOrder is clamped to the destination
// cell's valid range.
func PlanMove(jobs []*domain.Job, jobID, destEditorID string, destDay, destOrder int) ([]*domain.Job, []*domain.Job) {
	var moved *domain.Job
	next := make([]*domain.Job, len(jobs))
	for i, j := range jobs {
		next[i] = j.Clone()
		if j.ID == jobID {
			moved = next[i]
		}
	}
	if moved == nil {
		return jobs, nil
	}

	srcCell := moved.Cell()
	oldOrder := moved.Order
	destCell := domain.CellKey{EditorID: destEditorID, DayIndex: destDay, WeekStart: moved.WeekStart}
	sameCell := srcCell.EditorID == destCell.EditorID && srcCell.DayIndex == destCell.DayIndex

	// Valid destination slots run from 0 through the count of other jobs
	// already in the destination cell, in both the intra- and cross-cell case.
	destPeers := 0
	for _, j := range next {
		if j.ID != moved.ID && j.Cell().Equal(destCell) {
			destPeers++
		}
	}
	destOrder = clamp(destOrder, 0, destPeers)

	moved.EditorID = destCell.EditorID
	moved.DayIndex = destCell.DayIndex
	moved.Order = destOrder

	var changed []*domain.Job
	if !sameCell || destOrder != oldOrder {
		changed = append(changed, moved)
	}

	for _, j := range next {
		if j.ID == moved.ID {
			continue
		}
		switch {
		case sameCell && j.Cell().Equal(destCell):
			// Shift the gap between the vacated and the claimed slot.
			if destOrder > oldOrder && j.Order > oldOrder && j.Order <= destOrder {
				j.Order--
				changed = append(changed, j)
			} else if destOrder < oldOrder && j.Order >= destOrder && j.Order < oldOrder {
				j.Order++
				changed = append(changed, j)
			}
		case !sameCell && j.Cell().Equal(destCell):
			// Make room in the destination cell.
			if j.Order >= destOrder {
				j.Order++
				changed = append(changed, j)
			}
		case !sameCell && j.Cell().Equal(srcCell):
			// Close the gap left in the vacated cell.
			if j.Order > oldOrder {
				j.Order--
				changed = append(changed, j)
			}
		}
	}

	return next, changed
}

// PlanRemove computes the placement changes for deleting a job: the remaining
// jobs of its cell close the gap it leaves so their orders stay contiguous
// from 0. It returns the collection without the job plus the subset whose
// order shifted.
//
// The input collection is never mutated. An unknown jobID returns the input
// unchanged with a nil changed set.
func PlanRemove(jobs []*domain.Job, jobID string) ([]*domain.Job, []*domain.Job) {
	var removed *domain.Job
	for _, j := range jobs {
		if j.ID == jobID {
			removed = j
			break
		}
	}
	if removed == nil {
		return jobs, nil
	}

	cell := removed.Cell()
	next := make([]*domain.Job, 0, len(jobs)-1)
	var changed []*domain.Job
	for _, j := range jobs {
		if j.ID == jobID {
			continue
		}
		c := j.Clone()
		if c.Cell().Equal(cell) && c.Order > removed.Order {
			c.Order--
			changed = append(changed, c)
		}
		next = append(next, c)
	}
	return next, changed
}

// NextOrder returns the append position for a new job in the given cell:
// the count of jobs already there.
func NextOrder(jobs []*domain.Job, cell domain.CellKey) int {
	n := 0
	for _, j := range jobs {
		if j.Cell().Equal(cell) {
			n++
		}
	}
	return n
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
