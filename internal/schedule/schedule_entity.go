package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkPattern is a named shift template. On/off duty are minutes from
// midnight; OffDutyMinute may exceed 1440 for shifts that cross midnight
// (a night shift 16:30-25:30 is stored as 990/1530).
type WorkPattern struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	OnDutyMinute  int            `gorm:"column:onduty_minute;not null"`
	OffDutyMinute int            `gorm:"column:offduty_minute;not null"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (WorkPattern) TableName() string {
	return "work_patterns"
}

// Override replaces or adjusts a user's schedule for one date.
// AbsenceRate in (-1, 1) models partial-day authorized absence: positive
// shifts the effective start later, negative pulls the effective end
// earlier, proportional to the shift span.
type Override struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_overrides_user_date"`
	Date          time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:idx_overrides_user_date"`
	WorkPatternID *uuid.UUID `gorm:"column:work_pattern_id;type:uuid"`
	AbsenceRate   float64    `gorm:"column:absence_rate;not null;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Override) TableName() string {
	return "schedule_overrides"
}
