package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	CreatePattern(ctx context.Context, req CreatePatternRequest) (PatternResponse, error)
	GetAllPatterns(ctx context.Context) ([]PatternResponse, error)
	UpdatePattern(ctx context.Context, id string, req CreatePatternRequest) (PatternResponse, error)
	DeletePattern(ctx context.Context, id string) error

	UpsertOverride(ctx context.Context, userID, dateStr string, req UpsertOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, userID, dateStr string) error

	// ResolveWindow returns the effective on-duty window for a user on a
	// date, or nil when the date is unscheduled.
	ResolveWindow(ctx context.Context, userID string, defaultPatternID *uuid.UUID, date time.Time) (*Window, error)

	// ResolveRange resolves every date in [from, to], keyed by YYYY-MM-DD.
	// Unscheduled dates are absent from the map.
	ResolveRange(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*Window, error)

	// OverridesByRange exposes raw overrides for the aggregator's
	// absence-rate accounting.
	OverridesByRange(ctx context.Context, userID string, from, to time.Time) (map[string]Override, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreatePattern(ctx context.Context, req CreatePatternRequest) (PatternResponse, error) {
	if req.OffDutyMinute <= req.OnDutyMinute {
		return PatternResponse{}, ErrInvalidPatternSpan
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PatternResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p := &WorkPattern{
		ID:            uuid.New(),
		Name:          req.Name,
		OnDutyMinute:  req.OnDutyMinute,
		OffDutyMinute: req.OffDutyMinute,
	}
	if err := qtx.CreatePattern(ctx, p); err != nil {
		s.logger.Error("create pattern persist failed", zap.Error(err))
		return PatternResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PatternResponse{}, err
	}

	s.logger.Info("create pattern success",
		zap.String("pattern_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	return mapPatternToResponse(*p), nil
}

func (s *service) GetAllPatterns(ctx context.Context) ([]PatternResponse, error) {
	patterns, err := s.repo.FindAllPatterns(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PatternResponse, len(patterns))
	for i, p := range patterns {
		resp[i] = mapPatternToResponse(p)
	}
	return resp, nil
}

func (s *service) UpdatePattern(ctx context.Context, id string, req CreatePatternRequest) (PatternResponse, error) {
	if req.OffDutyMinute <= req.OnDutyMinute {
		return PatternResponse{}, ErrInvalidPatternSpan
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PatternResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindPatternByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PatternResponse{}, ErrPatternNotFound
		}
		return PatternResponse{}, err
	}

	p.Name = req.Name
	p.OnDutyMinute = req.OnDutyMinute
	p.OffDutyMinute = req.OffDutyMinute

	if err := qtx.UpdatePattern(ctx, p); err != nil {
		return PatternResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PatternResponse{}, err
	}
	return mapPatternToResponse(*p), nil
}

func (s *service) DeletePattern(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeletePattern(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) UpsertOverride(ctx context.Context, userID, dateStr string, req UpsertOverrideRequest) (OverrideResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return OverrideResponse{}, apperror.InvalidField("User Id")
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return OverrideResponse{}, err
	}

	rate := 0.0
	if req.AbsenceRate != nil {
		rate = *req.AbsenceRate
		if rate <= -1 || rate >= 1 {
			return OverrideResponse{}, ErrInvalidAbsenceRate
		}
	}

	var patternID *uuid.UUID
	if req.WorkPatternID != nil && *req.WorkPatternID != "" {
		pid, err := uuid.Parse(*req.WorkPatternID)
		if err != nil {
			return OverrideResponse{}, ErrPatternNotFound
		}
		if _, err := s.repo.FindPatternByID(ctx, pid.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return OverrideResponse{}, ErrPatternNotFound
			}
			return OverrideResponse{}, err
		}
		patternID = &pid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OverrideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ov := &Override{
		ID:            uuid.New(),
		UserID:        uid,
		Date:          date,
		WorkPatternID: patternID,
		AbsenceRate:   rate,
	}
	if err := qtx.UpsertOverride(ctx, ov); err != nil {
		s.logger.Error("upsert override persist failed",
			zap.String("user_id", userID),
			zap.String("date", dateStr),
			zap.Error(err),
		)
		return OverrideResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return OverrideResponse{}, err
	}

	s.logger.Info("upsert override success",
		zap.String("user_id", userID),
		zap.String("date", dateStr),
		zap.Float64("absence_rate", rate),
	)
	return mapOverrideToResponse(*ov), nil
}

func (s *service) DeleteOverride(ctx context.Context, userID, dateStr string) error {
	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteOverride(ctx, userID, date); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ResolveWindow(ctx context.Context, userID string, defaultPatternID *uuid.UUID, date time.Time) (*Window, error) {
	windows, err := s.ResolveRange(ctx, userID, defaultPatternID, date, date)
	if err != nil {
		return nil, err
	}
	return windows[date.Format("2006-01-02")], nil
}

func (s *service) ResolveRange(ctx context.Context, userID string, defaultPatternID *uuid.UUID, from, to time.Time) (map[string]*Window, error) {
	overrides, err := s.OverridesByRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	// Pattern master data is small; load once per call.
	patterns, err := s.repo.FindAllPatterns(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*WorkPattern, len(patterns))
	for i := range patterns {
		byID[patterns[i].ID] = &patterns[i]
	}

	var defaultPattern *WorkPattern
	if defaultPatternID != nil {
		defaultPattern = byID[*defaultPatternID]
	}

	windows := make(map[string]*Window)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")

		var ov *Override
		var ovPattern *WorkPattern
		if o, ok := overrides[key]; ok {
			oCopy := o
			ov = &oCopy
			if o.WorkPatternID != nil {
				ovPattern = byID[*o.WorkPatternID]
			}
		}

		if w := Resolve(d, defaultPattern, ov, ovPattern); w != nil {
			windows[key] = w
		}
	}
	return windows, nil
}

func (s *service) OverridesByRange(ctx context.Context, userID string, from, to time.Time) (map[string]Override, error) {
	ovs, err := s.repo.FindOverridesByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]Override, len(ovs))
	for _, ov := range ovs {
		byDate[ov.Date.Format("2006-01-02")] = ov
	}
	return byDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func mapPatternToResponse(p WorkPattern) PatternResponse {
	return PatternResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		OnDutyMinute:  p.OnDutyMinute,
		OffDutyMinute: p.OffDutyMinute,
	}
}

func mapOverrideToResponse(ov Override) OverrideResponse {
	resp := OverrideResponse{
		UserID:      ov.UserID.String(),
		Date:        ov.Date.Format("2006-01-02"),
		AbsenceRate: ov.AbsenceRate,
	}
	if ov.WorkPatternID != nil {
		v := ov.WorkPatternID.String()
		resp.WorkPatternID = &v
	}
	return resp
}
