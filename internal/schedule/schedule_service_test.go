package schedule

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn                   func(tx *sql.Tx) Repository
	createPatternFn            func(ctx context.Context, p *WorkPattern) error
	findPatternByIDFn          func(ctx context.Context, id string) (*WorkPattern, error)
	findAllPatternsFn          func(ctx context.Context) ([]WorkPattern, error)
	updatePatternFn            func(ctx context.Context, p *WorkPattern) error
	deletePatternFn            func(ctx context.Context, id string) error
	upsertOverrideFn           func(ctx context.Context, ov *Override) error
	findOverrideFn             func(ctx context.Context, userID string, date time.Time) (*Override, error)
	findOverridesByUserRangeFn func(ctx context.Context, userID string, from, to time.Time) ([]Override, error)
	deleteOverrideFn           func(ctx context.Context, userID string, date time.Time) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) CreatePattern(ctx context.Context, p *WorkPattern) error {
	return f.createPatternFn(ctx, p)
}
func (f *fakeRepo) FindPatternByID(ctx context.Context, id string) (*WorkPattern, error) {
	return f.findPatternByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllPatterns(ctx context.Context) ([]WorkPattern, error) {
	return f.findAllPatternsFn(ctx)
}
func (f *fakeRepo) UpdatePattern(ctx context.Context, p *WorkPattern) error {
	return f.updatePatternFn(ctx, p)
}
func (f *fakeRepo) DeletePattern(ctx context.Context, id string) error {
	return f.deletePatternFn(ctx, id)
}
func (f *fakeRepo) UpsertOverride(ctx context.Context, ov *Override) error {
	return f.upsertOverrideFn(ctx, ov)
}
func (f *fakeRepo) FindOverride(ctx context.Context, userID string, date time.Time) (*Override, error) {
	return f.findOverrideFn(ctx, userID, date)
}
func (f *fakeRepo) FindOverridesByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Override, error) {
	return f.findOverridesByUserRangeFn(ctx, userID, from, to)
}
func (f *fakeRepo) DeleteOverride(ctx context.Context, userID string, date time.Time) error {
	return f.deleteOverrideFn(ctx, userID, date)
}

func TestService_CreatePattern_InvalidSpan(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.CreatePattern(context.Background(), CreatePatternRequest{
		Name: "backwards", OnDutyMinute: 1050, OffDutyMinute: 510,
	})
	assert.ErrorIs(t, err, ErrInvalidPatternSpan)
}

func TestService_UpsertOverride_RejectsOutOfRangeRate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	for _, rate := range []float64{1.0, -1.0, 1.5} {
		r := rate
		_, err := svc.UpsertOverride(context.Background(), uuid.New().String(), "2024-06-12", UpsertOverrideRequest{
			AbsenceRate: &r,
		})
		assert.ErrorIs(t, err, ErrInvalidAbsenceRate)
	}
}

func TestService_UpsertOverride_UnknownPattern(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findPatternByIDFn = func(ctx context.Context, id string) (*WorkPattern, error) {
		return nil, sql.ErrNoRows
	}

	svc := NewService(db, repo)

	bogus := "not-a-uuid"
	_, err := svc.UpsertOverride(context.Background(), uuid.New().String(), "2024-06-12", UpsertOverrideRequest{
		WorkPatternID: &bogus,
	})
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestService_ResolveRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	defaultPattern := WorkPattern{ID: uuid.New(), Name: "day", OnDutyMinute: 510, OffDutyMinute: 1050}
	weekendPattern := WorkPattern{ID: uuid.New(), Name: "weekend", OnDutyMinute: 600, OffDutyMinute: 960}

	userID := uuid.New().String()
	// Saturday the 15th carries an override naming the weekend pattern.
	saturday := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{}
	repo.findAllPatternsFn = func(ctx context.Context) ([]WorkPattern, error) {
		return []WorkPattern{defaultPattern, weekendPattern}, nil
	}
	repo.findOverridesByUserRangeFn = func(ctx context.Context, uid string, from, to time.Time) ([]Override, error) {
		return []Override{
			{ID: uuid.New(), Date: saturday, WorkPatternID: &weekendPattern.ID},
		}, nil
	}

	svc := NewService(db, repo)

	from := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC) // Friday
	to := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)   // Sunday

	windows, err := svc.ResolveRange(context.Background(), userID, &defaultPattern.ID, from, to)
	assert.NoError(t, err)

	// Friday on the default pattern, Saturday on the override, Sunday off.
	assert.Len(t, windows, 2)
	assert.Equal(t, from.Add(510*time.Minute), windows["2024-06-14"].Start)
	assert.Equal(t, saturday.Add(600*time.Minute), windows["2024-06-15"].Start)
	assert.Nil(t, windows["2024-06-16"])
}

func TestService_ResolveWindow_NoDefaultPattern(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllPatternsFn = func(ctx context.Context) ([]WorkPattern, error) { return nil, nil }
	repo.findOverridesByUserRangeFn = func(ctx context.Context, uid string, from, to time.Time) ([]Override, error) {
		return nil, nil
	}

	svc := NewService(db, repo)

	w, err := svc.ResolveWindow(context.Background(), uuid.New().String(), nil,
		time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Nil(t, w)
}
