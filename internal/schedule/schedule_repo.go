package schedule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreatePattern(ctx context.Context, p *WorkPattern) error
	FindPatternByID(ctx context.Context, id string) (*WorkPattern, error)
	FindAllPatterns(ctx context.Context) ([]WorkPattern, error)
	UpdatePattern(ctx context.Context, p *WorkPattern) error
	DeletePattern(ctx context.Context, id string) error

	UpsertOverride(ctx context.Context, ov *Override) error
	FindOverride(ctx context.Context, userID string, date time.Time) (*Override, error)
	FindOverridesByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Override, error)
	DeleteOverride(ctx context.Context, userID string, date time.Time) error
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

func (r *repository) CreatePattern(ctx context.Context, p *WorkPattern) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPatternByID(ctx context.Context, id string) (*WorkPattern, error) {
	var p WorkPattern
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAllPatterns(ctx context.Context) ([]WorkPattern, error) {
	var patterns []WorkPattern
	err := r.db.WithContext(ctx).Order("name").Find(&patterns).Error
	return patterns, err
}

func (r *repository) UpdatePattern(ctx context.Context, p *WorkPattern) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeletePattern(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&WorkPattern{}, "id = ?", id).Error
}

// UpsertOverride keeps (user_id, date) unique: a second override for the
// same date replaces the first one's pattern and rate atomically.
func (r *repository) UpsertOverride(ctx context.Context, ov *Override) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"work_pattern_id", "absence_rate", "updated_at",
		}),
	}).Create(ov).Error
}

func (r *repository) FindOverride(ctx context.Context, userID string, date time.Time) (*Override, error) {
	var ov Override
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&ov).Error
	return &ov, err
}

func (r *repository) FindOverridesByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Override, error) {
	var ovs []Override
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date").
		Find(&ovs).Error
	return ovs, err
}

func (r *repository) DeleteOverride(ctx context.Context, userID string, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&Override{}).Error
}
