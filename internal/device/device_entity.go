package device

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device is a registered punch terminal. Punches reference the device
// they originated from; reports resolve the reference to Name.
type Device struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Account   string         `gorm:"column:account;type:varchar(50);not null;uniqueIndex"`
	Name      string         `gorm:"column:name;type:varchar(100);not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Device) TableName() string {
	return "devices"
}
