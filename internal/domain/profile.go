package domain

import "time"

// Profile carries per-user billing state. Only the plan tier is read by the
// planner; it gates the editor-count limit at creation time.
type Profile struct {
	UserID    string
	PlanTier  PlanTier
	CreatedAt time.Time
	UpdatedAt time.Time
}
