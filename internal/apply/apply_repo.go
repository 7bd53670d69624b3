package apply

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=apply_repo.go -destination=mock/apply_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Apply) error
	FindByID(ctx context.Context, id string) (*Apply, error)
	UpdateDecision(ctx context.Context, a *Apply) error

	// FindByKey returns every version of one request chain.
	FindByKey(ctx context.Context, userID, applyType string, date time.Time) ([]Apply, error)

	// FindByType / FindByTypeRange return raw chains; callers reduce with
	// Governing.
	FindByType(ctx context.Context, applyType string) ([]Apply, error)
	FindByTypeRange(ctx context.Context, applyType string, from, to time.Time) ([]Apply, error)
	FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Apply, error)
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

func (r *repository) Create(ctx context.Context, a *Apply) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Apply, error) {
	var a Apply
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

// UpdateDecision persists only the decision transition; the request
// fields themselves are immutable after insert.
func (r *repository) UpdateDecision(ctx context.Context, a *Apply) error {
	return r.db.WithContext(ctx).
		Model(&Apply{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":     a.Status,
			"decided_by": a.DecidedBy,
			"decided_at": a.DecidedAt,
		}).Error
}

func (r *repository) FindByKey(ctx context.Context, userID, applyType string, date time.Time) ([]Apply, error) {
	var rows []Apply
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("type = ?", applyType).
		Where("date = ?", date.Format("2006-01-02")).
		Order("submitted_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByType(ctx context.Context, applyType string) ([]Apply, error) {
	var rows []Apply
	err := r.db.WithContext(ctx).
		Where("type = ?", applyType).
		Order("submitted_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByTypeRange(ctx context.Context, applyType string, from, to time.Time) ([]Apply, error) {
	var rows []Apply
	err := r.db.WithContext(ctx).
		Where("type = ?", applyType).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("submitted_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Apply, error) {
	var rows []Apply
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("submitted_at").
		Find(&rows).Error
	return rows, err
}
