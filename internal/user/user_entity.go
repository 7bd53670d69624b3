package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Account string    `gorm:"column:account;type:varchar(50);not null;uniqueIndex"`
	Name    string    `gorm:"column:name;type:varchar(100);not null"`

	// Org units are plain grouping attributes used by report rollups.
	Section    string `gorm:"column:section;type:varchar(100);index"`
	Department string `gorm:"column:department;type:varchar(100);index"`

	// Default shift template; per-date overrides live in schedule_overrides.
	WorkPatternID *uuid.UUID `gorm:"column:work_pattern_id;type:uuid"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
