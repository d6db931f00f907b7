package ordering

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/stretchr/testify/require"
)

// TestPlanMove_Invariants_ContiguousOrders property-tests the core ordering
// invariant: after any sequence of random moves, every cell's order values are
// exactly {0..n-1} with no duplicates.
func TestPlanMove_Invariants_ContiguousOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	editors := []string{"ed-1", "ed-2", "ed-3"}

	for trial := 0; trial < 100; trial++ {
		// Random starting board: each (editor, day) cell gets 0–4 jobs.
		var jobs []*domain.Job
		n := 0
		for _, ed := range editors {
			for day := 0; day < 7; day++ {
				for i := 0; i < rng.Intn(5); i++ {
					jobs = append(jobs, makeJob(fmt.Sprintf("j%d", n), ed, day, i))
					n++
				}
			}
		}
		if len(jobs) == 0 {
			continue
		}

		for move := 0; move < 20; move++ {
			target := jobs[rng.Intn(len(jobs))]
			destEd := editors[rng.Intn(len(editors))]
			destDay := rng.Intn(7)
			destOrder := rng.Intn(len(jobs)+2) - 1 // deliberately out of range sometimes

			next, changed := PlanMove(jobs, target.ID, destEd, destDay, destOrder)
			require.Len(t, next, len(jobs), "trial %d move %d: collection size changed", trial, move)

			for _, ed := range editors {
				for day := 0; day < 7; day++ {
					requireContiguous(t, next, ed, day, trial, move)
				}
			}

			// Every reported change must differ from the pre-move state.
			before := make(map[string]*domain.Job, len(jobs))
			for _, j := range jobs {
				before[j.ID] = j
			}
			for _, c := range changed {
				prev := before[c.ID]
				require.NotNil(t, prev)
				same := prev.EditorID == c.EditorID && prev.DayIndex == c.DayIndex && prev.Order == c.Order
				require.False(t, same, "trial %d move %d: job %s reported changed but identical", trial, move, c.ID)
			}

			jobs = next
		}
	}
}

func requireContiguous(t *testing.T, jobs []*domain.Job, editorID string, day, trial, move int) {
	t.Helper()
	var orders []int
	for _, j := range jobs {
		if j.EditorID == editorID && j.DayIndex == day {
			orders = append(orders, j.Order)
		}
	}
	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		require.False(t, seen[o], "trial %d move %d: duplicate order %d in %s::%d", trial, move, o, editorID, day)
		require.GreaterOrEqual(t, o, 0)
		require.Less(t, o, len(orders), "trial %d move %d: gap in %s::%d", trial, move, editorID, day)
		seen[o] = true
	}
}
