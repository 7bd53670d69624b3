package apply

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Apply is one request row. Rows are append-only: an amendment is a new
// row for the same (user, type, date) with a later SubmittedAt, never an
// edit. Only the decision fields transition after insert.
type Apply struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_applies_key"`
	Type        string     `gorm:"column:type;type:varchar(30);not null;index:idx_applies_key"`
	Date        time.Time  `gorm:"column:date;type:date;not null;index:idx_applies_key"`
	SubmittedAt time.Time  `gorm:"column:submitted_at;type:timestamptz;not null"`
	Reason      string     `gorm:"column:reason;type:text"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING'"`
	DecidedBy   *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt   *time.Time `gorm:"column:decided_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (Apply) TableName() string {
	return "applies"
}
