package events

import "time"

const ApplyLifecycleTopic = "kintai.apply.lifecycle.v1"

const (
	ApplySubmitted = "apply.submitted"
	ApplyApproved  = "apply.approved"
	ApplyRejected  = "apply.rejected"
)

// ApplyLifecycleEvent is emitted on every submit/approve/reject so the
// notification service can mail the requester. Delivery happens outside
// this system; we only guarantee the trigger reaches the broker.
type ApplyLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	ApplyID    string    `json:"apply_id"`
	UserID     string    `json:"user_id"`
	ApplyType  string    `json:"apply_type"`
	TargetDate string    `json:"target_date"`
	DecidedBy  string    `json:"decided_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
