package device

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=device_repo.go -destination=mock/device_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Device) error
	FindByAccount(ctx context.Context, account string) (*Device, error)
	FindAll(ctx context.Context) ([]Device, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, d *Device) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByAccount(ctx context.Context, account string) (*Device, error) {
	var d Device
	err := r.db.WithContext(ctx).First(&d, "account = ?", account).Error
	return &d, err
}

func (r *repository) FindAll(ctx context.Context) ([]Device, error) {
	var devices []Device
	err := r.db.WithContext(ctx).Order("account").Find(&devices).Error
	return devices, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Device{}, "id = ?", id).Error
}
