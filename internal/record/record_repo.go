package record

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is a reporting row: one record joined with its user's attributes.
type Row struct {
	Record
	UserAccount string
	UserName    string
	Section     string
	Department  string
}

type QueryFilters struct {
	UserAccount string
	UserName    string
	Section     string
	Department  string
	DeviceName  string
	DateFrom    *time.Time
	DateTo      *time.Time
	SortBy      string
	Limit       int
	Offset      int
}

//go:generate mockgen -source=record_repo.go -destination=mock/record_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// HasClockIn reports whether (user, date) already has a clock-in.
	HasClockIn(ctx context.Context, userID string, date time.Time) (bool, error)

	// UpsertSlot merges one slot into the (user, date) row atomically:
	// insert-or-update touching only that slot's columns, so concurrent
	// punches to different slots never lose each other's writes.
	UpsertSlot(ctx context.Context, rec *Record, kind PunchKind) error

	Query(ctx context.Context, f QueryFilters) ([]Row, int64, error)
	FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)

	ApplyExists(ctx context.Context, applyID string) (bool, error)
	DeviceNames(ctx context.Context) (map[uuid.UUID]string, error)
	ApplyTypes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
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

func (r *repository) HasClockIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("clockin_at IS NOT NULL").
		Count(&count).Error
	return count > 0, err
}

var slotColumns = map[PunchKind][]string{
	KindClockIn:     {"clockin_at", "clockin_device_id", "clockin_apply_id"},
	KindBreakStart:  {"break_start_at", "break_start_device_id", "break_start_apply_id"},
	KindBreakResume: {"break_resume_at", "break_resume_device_id", "break_resume_apply_id"},
	KindClockOut:    {"clockout_at", "clockout_device_id", "clockout_apply_id"},
}

func (r *repository) UpsertSlot(ctx context.Context, rec *Record, kind PunchKind) error {
	cols := append([]string{}, slotColumns[kind]...)
	cols = append(cols, "unmatched", "updated_at")

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(rec).Error
}

func (r *repository) Query(ctx context.Context, f QueryFilters) ([]Row, int64, error) {
	base := r.db.WithContext(ctx).
		Table("records").
		Joins("JOIN users u ON u.id = records.user_id AND u.deleted_at IS NULL")

	if f.UserAccount != "" {
		base = base.Where("u.account = ?", f.UserAccount)
	}
	if f.UserName != "" {
		base = base.Where("u.name LIKE ?", "%"+f.UserName+"%")
	}
	if f.Section != "" {
		base = base.Where("u.section = ?", f.Section)
	}
	if f.Department != "" {
		base = base.Where("u.department = ?", f.Department)
	}
	if f.DeviceName != "" {
		base = base.Where(`EXISTS (
			SELECT 1 FROM devices d
			WHERE d.name = ?
			  AND d.id IN (records.clockin_device_id, records.break_start_device_id,
			               records.break_resume_device_id, records.clockout_device_id)
		)`, f.DeviceName)
	}
	if f.DateFrom != nil {
		base = base.Where("records.date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		base = base.Where("records.date <= ?", f.DateTo.Format("2006-01-02"))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Select("records.*, u.account AS user_account, u.name AS user_name, u.section AS section, u.department AS department").
		Order(orderClause(f.SortBy))
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []Row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// orderClause whitelists sort keys; anything unknown falls back to the
// default ordering.
func orderClause(sortBy string) string {
	switch sortBy {
	case "account":
		return "u.account, records.date DESC"
	case "name":
		return "u.name, records.date DESC"
	case "section":
		return "u.section, u.account, records.date DESC"
	case "department":
		return "u.department, u.account, records.date DESC"
	default:
		return "records.date DESC, u.account"
	}
}

func (r *repository) FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date").
		Find(&records).Error
	return records, err
}

func (r *repository) ApplyExists(ctx context.Context, applyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("applies").
		Where("id = ?", applyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeviceNames(ctx context.Context) (map[uuid.UUID]string, error) {
	var devices []struct {
		ID   uuid.UUID
		Name string
	}
	err := r.db.WithContext(ctx).
		Table("devices").
		Select("id, name").
		Where("deleted_at IS NULL").
		Scan(&devices).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.Name
	}
	return names, nil
}

func (r *repository) ApplyTypes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	types := make(map[uuid.UUID]string)
	if len(ids) == 0 {
		return types, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Type string
	}
	err := r.db.WithContext(ctx).
		Table("applies").
		Select("id, type").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		types[row.ID] = row.Type
	}
	return types, nil
}
