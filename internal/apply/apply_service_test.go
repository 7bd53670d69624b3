package apply

import (
	"context"
	"database/sql"
	"testing"
	"time"

	applyerrors "github.com/pokemogu/TimecardSystem-sub001/internal/apply/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn          func(tx *sql.Tx) Repository
	createFn          func(ctx context.Context, a *Apply) error
	findByIDFn        func(ctx context.Context, id string) (*Apply, error)
	updateDecisionFn  func(ctx context.Context, a *Apply) error
	findByKeyFn       func(ctx context.Context, userID, applyType string, date time.Time) ([]Apply, error)
	findByTypeFn      func(ctx context.Context, applyType string) ([]Apply, error)
	findByTypeRangeFn func(ctx context.Context, applyType string, from, to time.Time) ([]Apply, error)
	findByUserRangeFn func(ctx context.Context, userID string, from, to time.Time) ([]Apply, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Apply) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Apply, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateDecision(ctx context.Context, a *Apply) error {
	return f.updateDecisionFn(ctx, a)
}
func (f *fakeRepo) FindByKey(ctx context.Context, userID, applyType string, date time.Time) ([]Apply, error) {
	return f.findByKeyFn(ctx, userID, applyType, date)
}
func (f *fakeRepo) FindByType(ctx context.Context, applyType string) ([]Apply, error) {
	return f.findByTypeFn(ctx, applyType)
}
func (f *fakeRepo) FindByTypeRange(ctx context.Context, applyType string, from, to time.Time) ([]Apply, error) {
	return f.findByTypeRangeFn(ctx, applyType, from, to)
}
func (f *fakeRepo) FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Apply, error) {
	return f.findByUserRangeFn(ctx, userID, from, to)
}

func TestService_SubmitAndResubmit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New().String()
	ctx := context.Background()

	var created []Apply
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Apply) error { created = append(created, *a); return nil }

	svc := NewService(db, repo, NewTypeRegistry())

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Submit(ctx, userID, SubmitApplyRequest{
		UserID: userID, Type: TypeLeave, Date: "2024-06-12", Reason: "family matter",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)

	// Resubmission for the same key appends a new row, never conflicts.
	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.Submit(ctx, userID, SubmitApplyRequest{
		UserID: userID, Type: TypeLeave, Date: "2024-06-12", Reason: "corrected reason",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, created, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_UnknownType(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, NewTypeRegistry())

	userID := uuid.New().String()
	_, err := svc.Submit(context.Background(), userID, SubmitApplyRequest{
		UserID: userID, Type: "sabbatical", Date: "2024-06-12",
	})
	assert.ErrorIs(t, err, applyerrors.ErrUnknownApplyType)
}

func TestService_Submit_BadDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, NewTypeRegistry())

	userID := uuid.New().String()
	_, err := svc.Submit(context.Background(), userID, SubmitApplyRequest{
		UserID: userID, Type: TypeLeave, Date: "12/06/2024",
	})
	assert.ErrorIs(t, err, applyerrors.ErrInvalidDateFormat)
}

func TestService_Decide_OneShot(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	deciderID := uuid.New().String()

	stored := Apply{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Type:        TypeLeave,
		Date:        time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		SubmittedAt: time.Now().UTC(),
		Status:      StatusPending,
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Apply, error) {
		cp := stored
		return &cp, nil
	}
	repo.updateDecisionFn = func(ctx context.Context, a *Apply) error { stored = *a; return nil }

	svc := NewService(db, repo, NewTypeRegistry())

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Decide(ctx, stored.ID.String(), DecisionApprove, deciderID)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.DecidedBy)

	// Second decision on the same row is rejected outright.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Decide(ctx, stored.ID.String(), DecisionReject, deciderID)
	assert.ErrorIs(t, err, applyerrors.ErrAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_InvalidDecision(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, NewTypeRegistry())

	_, err := svc.Decide(context.Background(), uuid.New().String(), "maybe", uuid.New().String())
	assert.ErrorIs(t, err, applyerrors.ErrInvalidDecision)
}

func TestService_Decide_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Apply, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, NewTypeRegistry())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(context.Background(), uuid.New().String(), DecisionApprove, uuid.New().String())
	assert.ErrorIs(t, err, applyerrors.ErrApplyNotFound)
}

func TestService_CurrentDecision(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	day := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	chain := []Apply{
		{ID: uuid.New(), UserID: userID, Type: TypeLeave, Date: day, SubmittedAt: t1, Status: StatusApproved},
		{ID: uuid.New(), UserID: userID, Type: TypeLeave, Date: day, SubmittedAt: t1.Add(time.Hour), Status: StatusPending},
	}

	repo := &fakeRepo{}
	repo.findByKeyFn = func(ctx context.Context, uid, applyType string, date time.Time) ([]Apply, error) {
		return chain, nil
	}

	svc := NewService(db, repo, NewTypeRegistry())

	resp, err := svc.CurrentDecision(context.Background(), userID.String(), TypeLeave, "2024-06-12")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Decision)
	assert.Equal(t, chain[1].ID.String(), resp.ApplyID)
}

func TestService_CurrentDecision_EmptyChain(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByKeyFn = func(ctx context.Context, uid, applyType string, date time.Time) ([]Apply, error) {
		return nil, nil
	}

	svc := NewService(db, repo, NewTypeRegistry())

	resp, err := svc.CurrentDecision(context.Background(), uuid.New().String(), TypeLeave, "2024-06-12")
	assert.NoError(t, err)
	assert.Equal(t, DecisionNone, resp.Decision)
	assert.Empty(t, resp.ApplyID)
}

func TestService_PendingByType_GoverningOnly(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	day := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	repo := &fakeRepo{}
	repo.findByTypeFn = func(ctx context.Context, applyType string) ([]Apply, error) {
		return []Apply{
			// Superseded pending row must not appear in the queue.
			{ID: uuid.New(), UserID: userID, Type: TypeLeave, Date: day, SubmittedAt: t1, Status: StatusPending},
			{ID: uuid.New(), UserID: userID, Type: TypeLeave, Date: day, SubmittedAt: t1.Add(time.Hour), Status: StatusRejected},
			{ID: uuid.New(), UserID: userID, Type: TypeLeave, Date: day.AddDate(0, 0, 1), SubmittedAt: t1, Status: StatusPending},
		}, nil
	}

	svc := NewService(db, repo, NewTypeRegistry())

	resp, err := svc.PendingByType(context.Background(), TypeLeave)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "2024-06-13", resp[0].Date)
}
