package worktime

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/apply"
	"github.com/pokemogu/TimecardSystem-sub001/internal/record"
	"github.com/pokemogu/TimecardSystem-sub001/internal/schedule"
	"github.com/pokemogu/TimecardSystem-sub001/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	resolveAccountFn func(ctx context.Context, account string) (*user.User, error)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}
func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) { return nil, nil }
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}
func (f *fakeUserService) ResolveAccount(ctx context.Context, account string) (*user.User, error) {
	return f.resolveAccountFn(ctx, account)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error { return nil }

type fakeUserRepo struct {
	findAllFn func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository            { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByAccount(ctx context.Context, account string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) { return f.findAllFn(ctx) }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error   { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error      { return nil }

type fakeRecordRepo struct {
	record.Repository
	findByUserRangeFn func(ctx context.Context, userID string, from, to time.Time) ([]record.Record, error)
}

func (f *fakeRecordRepo) FindByUserRange(ctx context.Context, userID string, from, to time.Time) ([]record.Record, error) {
	return f.findByUserRangeFn(ctx, userID, from, to)
}

type fakeScheduleService struct {
	schedule.Service
	resolveRangeFn func(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*schedule.Window, error)
}

func (f *fakeScheduleService) ResolveRange(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*schedule.Window, error) {
	return f.resolveRangeFn(ctx, userID, defaultPatternID, from, to)
}

type fakeApplyService struct {
	apply.Service
	governingByUserRangeFn func(ctx context.Context, userID string, from, to time.Time) (map[apply.Key]apply.Apply, error)
}

func (f *fakeApplyService) GoverningByUserRange(ctx context.Context, userID string, from, to time.Time) (map[apply.Key]apply.Apply, error) {
	return f.governingByUserRangeFn(ctx, userID, from, to)
}

func ts(day string, hh, mm, ss int) *time.Time {
	d, _ := time.Parse("2006-01-02", day)
	t := time.Date(d.Year(), d.Month(), d.Day(), hh, mm, ss, 0, time.UTC)
	return &t
}

func TestService_GetWorkTimeInfo(t *testing.T) {
	u := user.User{ID: uuid.New(), Account: "yamada", Name: "Yamada Taro", Section: "Sales"}
	day := func(s string) time.Time { d, _ := time.Parse("2006-01-02", s); return d }

	users := &fakeUserService{resolveAccountFn: func(ctx context.Context, account string) (*user.User, error) {
		return &u, nil
	}}
	userRepo := &fakeUserRepo{findAllFn: func(ctx context.Context) ([]user.User, error) {
		return []user.User{u}, nil
	}}
	records := &fakeRecordRepo{findByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) ([]record.Record, error) {
		return []record.Record{
			// In 5 minutes early, out 15 minutes past schedule.
			{UserID: u.ID, Date: day("2024-06-10"), ClockInAt: ts("2024-06-10", 8, 25, 10), ClockOutAt: ts("2024-06-10", 17, 45, 2)},
			// Late and early leave, but approved leave governs this date.
			{UserID: u.ID, Date: day("2024-06-11"), ClockInAt: ts("2024-06-11", 10, 0, 0), ClockOutAt: ts("2024-06-11", 15, 0, 0)},
		}, nil
	}}
	schedules := &fakeScheduleService{resolveRangeFn: func(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*schedule.Window, error) {
		return map[string]*schedule.Window{
			"2024-06-10": {Start: *ts("2024-06-10", 8, 30, 0), End: *ts("2024-06-10", 17, 30, 0)},
			"2024-06-11": {Start: *ts("2024-06-11", 8, 30, 0), End: *ts("2024-06-11", 17, 30, 0)},
		}, nil
	}}
	applies := &fakeApplyService{governingByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) (map[apply.Key]apply.Apply, error) {
		return map[apply.Key]apply.Apply{
			{UserID: u.ID.String(), Type: apply.TypeHalfLeaveAM, Date: "2024-06-11"}: {
				ID: uuid.New(), UserID: u.ID, Type: apply.TypeHalfLeaveAM,
				Date: day("2024-06-11"), Status: apply.StatusApproved,
			},
			// Rejected leave must neither consume days nor exempt its date.
			{UserID: u.ID.String(), Type: apply.TypeLeave, Date: "2024-06-12"}: {
				ID: uuid.New(), UserID: u.ID, Type: apply.TypeLeave,
				Date: day("2024-06-12"), Status: apply.StatusRejected,
			},
		}, nil
	}}

	svc := NewService(users, userRepo, records, schedules, applies, apply.NewTypeRegistry(), time.UTC)

	rows, err := svc.GetWorkTimeInfo(context.Background(), WorkTimeQuery{
		DateFrom: "2024-06-01", DateTo: "2024-06-30",
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "yamada", row.UserAccount)
	assert.Equal(t, 5, row.TotalEarlyOverTime)
	assert.Equal(t, 15, row.TotalLateOverTime)
	assert.Equal(t, 0, row.TotalLateCount)
	assert.Equal(t, 0, row.TotalEarlyLeaveCount)
	// 9h20m on the 10th (truncated punches), 5h on the 11th.
	assert.Equal(t, 9*60+20+5*60, row.TotalWorkTime)
	assert.Equal(t, 0.5, row.TotalLeaveDays)
}

// Punch instants carry whatever offset the device stamped; the range
// boundaries and window midnights must anchor to the business zone so
// a five-minute-early arrival never reads as hours of overtime.
func TestService_GetWorkTimeInfo_OffsetPunchesAgainstBusinessZone(t *testing.T) {
	jst := time.FixedZone("UTC+9", 9*60*60)
	u := user.User{ID: uuid.New(), Account: "yamada", Name: "Yamada Taro"}
	day := func(s string) time.Time { d, _ := time.Parse("2006-01-02", s); return d }
	at := func(hh, mm, ss int) *time.Time {
		t := time.Date(2024, time.June, 12, hh, mm, ss, 0, jst)
		return &t
	}

	users := &fakeUserService{}
	userRepo := &fakeUserRepo{findAllFn: func(ctx context.Context) ([]user.User, error) {
		return []user.User{u}, nil
	}}
	records := &fakeRecordRepo{findByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) ([]record.Record, error) {
		return []record.Record{
			{UserID: u.ID, Date: day("2024-06-12"), ClockInAt: at(8, 25, 10), ClockOutAt: at(17, 45, 2)},
		}, nil
	}}
	schedules := &fakeScheduleService{resolveRangeFn: func(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*schedule.Window, error) {
		// Boundaries must arrive on the business wall clock, not UTC.
		assert.True(t, from.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, jst)))
		assert.True(t, to.Equal(time.Date(2024, time.June, 30, 0, 0, 0, 0, jst)))
		return map[string]*schedule.Window{
			"2024-06-12": {Start: *at(8, 30, 0), End: *at(17, 30, 0)},
		}, nil
	}}
	applies := &fakeApplyService{governingByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) (map[apply.Key]apply.Apply, error) {
		return nil, nil
	}}

	svc := NewService(users, userRepo, records, schedules, applies, apply.NewTypeRegistry(), jst)

	rows, err := svc.GetWorkTimeInfo(context.Background(), WorkTimeQuery{
		DateFrom: "2024-06-01", DateTo: "2024-06-30",
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 5, row.TotalEarlyOverTime)
	assert.Equal(t, 15, row.TotalLateOverTime)
	assert.Equal(t, 0, row.TotalLateCount)
	assert.Equal(t, 0, row.TotalEarlyLeaveCount)
	assert.Equal(t, 9*60+20, row.TotalWorkTime)
}

func TestService_GetWorkTimeInfo_SingleAccount(t *testing.T) {
	u := user.User{ID: uuid.New(), Account: "suzuki", Name: "Suzuki Hanako"}

	resolved := false
	users := &fakeUserService{resolveAccountFn: func(ctx context.Context, account string) (*user.User, error) {
		resolved = true
		assert.Equal(t, "suzuki", account)
		return &u, nil
	}}
	userRepo := &fakeUserRepo{findAllFn: func(ctx context.Context) ([]user.User, error) {
		t.Fatal("must not list all users when an account filter is set")
		return nil, nil
	}}
	records := &fakeRecordRepo{findByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) ([]record.Record, error) {
		return nil, nil
	}}
	schedules := &fakeScheduleService{resolveRangeFn: func(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*schedule.Window, error) {
		return nil, nil
	}}
	applies := &fakeApplyService{governingByUserRangeFn: func(ctx context.Context, userID string, from, to time.Time) (map[apply.Key]apply.Apply, error) {
		return nil, nil
	}}

	svc := NewService(users, userRepo, records, schedules, applies, apply.NewTypeRegistry(), time.UTC)

	rows, err := svc.GetWorkTimeInfo(context.Background(), WorkTimeQuery{
		DateFrom: "2024-06-01", DateTo: "2024-06-30", UserAccount: "suzuki",
	})
	assert.NoError(t, err)
	assert.True(t, resolved)
	assert.Len(t, rows, 1)
	assert.Equal(t, "suzuki", rows[0].UserAccount)
}

func TestService_GetWorkTimeInfo_InvalidRange(t *testing.T) {
	svc := NewService(&fakeUserService{}, &fakeUserRepo{}, &fakeRecordRepo{}, &fakeScheduleService{}, &fakeApplyService{}, apply.NewTypeRegistry(), time.UTC)

	_, err := svc.GetWorkTimeInfo(context.Background(), WorkTimeQuery{
		DateFrom: "2024-06-30", DateTo: "2024-06-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetWorkTimeInfo(context.Background(), WorkTimeQuery{
		DateFrom: "bogus", DateTo: "2024-06-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
