package record

import (
	"time"

	"github.com/google/uuid"
)

// Record is the single row for one user on one resolved attendance day.
// Each punch slot carries its own timestamp, originating device and
// optional linked apply; a slot is overwritten as a unit, independently
// of the other slots.
type Record struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_records_user_date"`
	Date   time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_records_user_date"`

	ClockInAt       *time.Time `gorm:"column:clockin_at;type:timestamptz"`
	ClockInDeviceID *uuid.UUID `gorm:"column:clockin_device_id;type:uuid"`
	ClockInApplyID  *uuid.UUID `gorm:"column:clockin_apply_id;type:uuid"`

	BreakStartAt       *time.Time `gorm:"column:break_start_at;type:timestamptz"`
	BreakStartDeviceID *uuid.UUID `gorm:"column:break_start_device_id;type:uuid"`
	BreakStartApplyID  *uuid.UUID `gorm:"column:break_start_apply_id;type:uuid"`

	BreakResumeAt       *time.Time `gorm:"column:break_resume_at;type:timestamptz"`
	BreakResumeDeviceID *uuid.UUID `gorm:"column:break_resume_device_id;type:uuid"`
	BreakResumeApplyID  *uuid.UUID `gorm:"column:break_resume_apply_id;type:uuid"`

	ClockOutAt       *time.Time `gorm:"column:clockout_at;type:timestamptz"`
	ClockOutDeviceID *uuid.UUID `gorm:"column:clockout_device_id;type:uuid"`
	ClockOutApplyID  *uuid.UUID `gorm:"column:clockout_apply_id;type:uuid"`

	// Unmatched marks a non-clock-in punch that found no clock-in on its
	// own or the previous day. The row is kept for manual correction and
	// surfaced by reporting, not rejected.
	Unmatched bool `gorm:"column:unmatched;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "records"
}
