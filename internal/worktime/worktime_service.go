package worktime

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/apply"
	"github.com/pokemogu/TimecardSystem-sub001/internal/record"
	"github.com/pokemogu/TimecardSystem-sub001/internal/schedule"
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"
	"github.com/pokemogu/TimecardSystem-sub001/internal/user"

	"go.uber.org/zap"
)

var ErrInvalidDateRange = apperror.New(
	apperror.CodeInvalidInput,
	"date_from must not be after date_to",
	http.StatusBadRequest,
)

//go:generate mockgen -source=worktime_service.go -destination=mock/worktime_service_mock.go -package=mock
type Service interface {
	GetWorkTimeInfo(ctx context.Context, q WorkTimeQuery) ([]WorkTimeRow, error)
}

type service struct {
	users     user.Service
	userRepo  user.Repository
	records   record.Repository
	schedules schedule.Service
	applies   apply.Service
	types     *apply.TypeRegistry
	loc       *time.Location
	logger    *zap.Logger
}

// NewService builds the aggregation service. loc is the business
// location; range boundaries and the schedule-window midnights derived
// from them are anchored there so they compare against punch instants
// on the same wall clock.
func NewService(
	users user.Service,
	userRepo user.Repository,
	records record.Repository,
	schedules schedule.Service,
	applies apply.Service,
	types *apply.TypeRegistry,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	if loc == nil {
		loc = time.UTC
	}
	l := zap.L().Named("worktime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worktime.service")
	}
	return &service{
		users:     users,
		userRepo:  userRepo,
		records:   records,
		schedules: schedules,
		applies:   applies,
		types:     types,
		loc:       loc,
		logger:    l,
	}
}

// GetWorkTimeInfo aggregates reconciled records, resolved schedules and
// governing approvals into per-user period totals. Reads run over a
// point-in-time snapshot; a punch landing mid-aggregation shows up in
// the next report.
func (s *service) GetWorkTimeInfo(ctx context.Context, q WorkTimeQuery) ([]WorkTimeRow, error) {
	s.logger.Debug("worktime aggregation requested",
		zap.String("date_from", q.DateFrom),
		zap.String("date_to", q.DateTo),
		zap.String("user_account", q.UserAccount),
	)

	from, err := time.ParseInLocation("2006-01-02", q.DateFrom, s.loc)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	to, err := time.ParseInLocation("2006-01-02", q.DateTo, s.loc)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	var targets []user.User
	if q.UserAccount != "" {
		u, err := s.users.ResolveAccount(ctx, q.UserAccount)
		if err != nil {
			return nil, err
		}
		targets = []user.User{*u}
	} else {
		targets, err = s.userRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]WorkTimeRow, 0, len(targets))
	for _, u := range targets {
		row, err := s.aggregateUser(ctx, u, from, to)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].UserAccount < rows[j].UserAccount })

	s.logger.Info("worktime aggregation success",
		zap.Int("users", len(rows)),
		zap.String("date_from", q.DateFrom),
		zap.String("date_to", q.DateTo),
	)
	return rows, nil
}

func (s *service) aggregateUser(ctx context.Context, u user.User, from, to time.Time) (WorkTimeRow, error) {
	records, err := s.records.FindByUserRange(ctx, u.ID.String(), from, to)
	if err != nil {
		return WorkTimeRow{}, err
	}
	windows, err := s.schedules.ResolveRange(ctx, u.ID.String(), u.WorkPatternID, from, to)
	if err != nil {
		return WorkTimeRow{}, err
	}
	governing, err := s.applies.GoverningByUserRange(ctx, u.ID.String(), from, to)
	if err != nil {
		return WorkTimeRow{}, err
	}

	// Approved leave per date: exempts the day from penalties and
	// consumes leave whether or not any punches landed.
	leaveByDate := make(map[string]float64)
	totals := UserTotals{
		UserID:      u.ID.String(),
		UserAccount: u.Account,
		UserName:    u.Name,
	}
	for key, a := range governing {
		if a.Status != apply.StatusApproved {
			continue
		}
		info, ok := s.types.Lookup(key.Type)
		if !ok || info.DayAmount == 0 {
			continue
		}
		leaveByDate[key.Date] += info.DayAmount
		totals.TotalLeaveDays += info.DayAmount
	}

	for _, rec := range records {
		dateKey := rec.Date.Format("2006-01-02")
		m := ComputeDay(DayInput{
			ClockIn:       rec.ClockInAt,
			ClockOut:      rec.ClockOutAt,
			Window:        windows[dateKey],
			LeaveApproved: leaveByDate[dateKey] > 0,
		})
		totals.Accumulate(m)
	}

	return WorkTimeRow{
		UserID:               totals.UserID,
		UserAccount:          totals.UserAccount,
		UserName:             totals.UserName,
		Section:              u.Section,
		Department:           u.Department,
		TotalLateCount:       totals.TotalLateCount,
		TotalEarlyLeaveCount: totals.TotalEarlyLeaveCount,
		TotalWorkTime:        int(totals.TotalWorkTime / time.Minute),
		TotalEarlyOverTime:   int(totals.TotalEarlyOverTime / time.Minute),
		TotalLateOverTime:    int(totals.TotalLateOverTime / time.Minute),
		TotalLeaveDays:       totals.TotalLeaveDays,
	}, nil
}
