package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobInProgress JobStatus = "in_progress"
	JobReview     JobStatus = "review"
)

type PlanTier string

const (
	TierFree PlanTier = "free"
	TierPro  PlanTier = "pro"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// ValidJobStatuses is the canonical set of accepted job status strings.
var ValidJobStatuses = map[string]bool{
	"queued": true, "in_progress": true, "review": true,
}

// EditorLimit returns the maximum number of editors a plan tier allows.
// Unknown tiers get the free limit.
func (t PlanTier) EditorLimit() int {
	if t == TierPro {
		return 10
	}
	return 2
}
