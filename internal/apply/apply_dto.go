package apply

type SubmitApplyRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

type DecideApplyRequest struct {
	Decision string `json:"decision" binding:"required"` // approve | reject
}

type ApplyResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	SubmittedAt string  `json:"submitted_at"`
	Reason      string  `json:"reason,omitempty"`
	Status      string  `json:"status"`
	DecidedBy   *string `json:"decided_by,omitempty"`
	DecidedAt   *string `json:"decided_at,omitempty"`
}

const DecisionNone = "NONE"

type CurrentDecisionResponse struct {
	UserID   string `json:"user_id"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Decision string `json:"decision"` // PENDING | APPROVED | REJECTED | NONE
	ApplyID  string `json:"apply_id,omitempty"`
}
