package record

import (
	"context"
	"database/sql"
	"time"

	"github.com/pokemogu/TimecardSystem-sub001/internal/device"
	"github.com/pokemogu/TimecardSystem-sub001/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type PunchResponse struct {
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	Unmatched bool   `json:"unmatched,omitempty"`
}

//go:generate mockgen -source=record_service.go -destination=mock/record_service_mock.go -package=mock
type Service interface {
	SubmitPunch(ctx context.Context, req SubmitPunchRequest) (PunchResponse, error)
	Query(ctx context.Context, req QueryRecordsRequest) ([]RecordResponse, int64, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	users   user.Service
	devices device.Service
	loc     *time.Location
	logger  *zap.Logger
}

// NewService builds the punch ingestion service. loc is the business
// location; day attribution always happens there, regardless of the
// offset the device stamps on its timestamps.
func NewService(db *sql.DB, repo Repository, users user.Service, devices device.Service, loc *time.Location, logger ...*zap.Logger) Service {
	if loc == nil {
		loc = time.UTC
	}
	l := zap.L().Named("record.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("record.service")
	}
	return &service{db: db, repo: repo, users: users, devices: devices, loc: loc, logger: l}
}

func (s *service) SubmitPunch(ctx context.Context, req SubmitPunchRequest) (PunchResponse, error) {
	s.logger.Debug("submit punch requested",
		zap.String("user_account", req.UserAccount),
		zap.String("kind", req.Kind),
		zap.String("timestamp", req.Timestamp),
	)

	// Everything is validated before any write.
	kind, ok := ParsePunchKind(req.Kind)
	if !ok {
		s.logger.Warn("submit punch unknown kind", zap.String("kind", req.Kind))
		return PunchResponse{}, ErrInvalidPunchKind
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return PunchResponse{}, ErrInvalidTimestamp
	}
	// Same instant, one wall clock: the client offset is dropped here so
	// the resolved date and the schedule windows share a location.
	ts = ts.In(s.loc)

	u, err := s.users.ResolveAccount(ctx, req.UserAccount)
	if err != nil {
		return PunchResponse{}, err
	}

	var deviceID *uuid.UUID
	if req.DeviceAccount != nil && *req.DeviceAccount != "" {
		d, err := s.devices.Lookup(ctx, *req.DeviceAccount)
		if err != nil {
			return PunchResponse{}, err
		}
		deviceID = &d.ID
	}

	var applyID *uuid.UUID
	if req.ApplyID != nil && *req.ApplyID != "" {
		id, err := uuid.Parse(*req.ApplyID)
		if err != nil {
			return PunchResponse{}, ErrInvalidApplyRef
		}
		exists, err := s.repo.ApplyExists(ctx, id.String())
		if err != nil {
			return PunchResponse{}, err
		}
		if !exists {
			return PunchResponse{}, ErrApplyRefNotFound
		}
		applyID = &id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit punch begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	date, unmatched, err := ResolvePunchDate(kind, ts, func(d time.Time) (bool, error) {
		return qtx.HasClockIn(ctx, u.ID.String(), d)
	})
	if err != nil {
		return PunchResponse{}, err
	}

	rec := &Record{
		ID:        uuid.New(),
		UserID:    u.ID,
		Date:      date,
		Unmatched: unmatched,
	}
	setSlot(rec, kind, ts, deviceID, applyID)

	// Last write wins per slot; the upsert never touches other slots.
	if err := qtx.UpsertSlot(ctx, rec, kind); err != nil {
		s.logger.Error("submit punch persist failed",
			zap.String("user_id", u.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return PunchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit punch commit failed", zap.Error(err))
		return PunchResponse{}, err
	}

	if unmatched {
		s.logger.Warn("submit punch unmatched",
			zap.String("user_id", u.ID.String()),
			zap.String("kind", string(kind)),
			zap.String("date", date.Format("2006-01-02")),
		)
	}
	s.logger.Info("submit punch success",
		zap.String("user_id", u.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("date", date.Format("2006-01-02")),
	)

	return PunchResponse{
		UserID:    u.ID.String(),
		Date:      date.Format("2006-01-02"),
		Kind:      string(kind),
		Unmatched: unmatched,
	}, nil
}

func setSlot(rec *Record, kind PunchKind, ts time.Time, deviceID, applyID *uuid.UUID) {
	switch kind {
	case KindClockIn:
		rec.ClockInAt, rec.ClockInDeviceID, rec.ClockInApplyID = &ts, deviceID, applyID
	case KindBreakStart:
		rec.BreakStartAt, rec.BreakStartDeviceID, rec.BreakStartApplyID = &ts, deviceID, applyID
	case KindBreakResume:
		rec.BreakResumeAt, rec.BreakResumeDeviceID, rec.BreakResumeApplyID = &ts, deviceID, applyID
	case KindClockOut:
		rec.ClockOutAt, rec.ClockOutDeviceID, rec.ClockOutApplyID = &ts, deviceID, applyID
	}
}

func (s *service) Query(ctx context.Context, req QueryRecordsRequest) ([]RecordResponse, int64, error) {
	f := QueryFilters{
		UserAccount: req.UserAccount,
		UserName:    req.UserName,
		Section:     req.Section,
		Department:  req.Department,
		DeviceName:  req.DeviceName,
		SortBy:      req.SortBy,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}

	if req.DateFrom != "" {
		t, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		f.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		f.DateTo = &t
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return nil, 0, ErrInvalidDateRange
	}

	rows, total, err := s.repo.Query(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	deviceNames, err := s.repo.DeviceNames(ctx)
	if err != nil {
		return nil, 0, err
	}

	var applyIDs []uuid.UUID
	for _, row := range rows {
		for _, id := range []*uuid.UUID{
			row.ClockInApplyID, row.BreakStartApplyID, row.BreakResumeApplyID, row.ClockOutApplyID,
		} {
			if id != nil {
				applyIDs = append(applyIDs, *id)
			}
		}
	}
	applyTypes, err := s.repo.ApplyTypes(ctx, applyIDs)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]RecordResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapRowToResponse(row, deviceNames, applyTypes)
	}
	return resp, total, nil
}

func mapRowToResponse(row Row, deviceNames map[uuid.UUID]string, applyTypes map[uuid.UUID]string) RecordResponse {
	resp := RecordResponse{
		UserID:      row.UserID.String(),
		UserAccount: row.UserAccount,
		UserName:    row.UserName,
		Section:     row.Section,
		Department:  row.Department,
		Date:        row.Date.Format("2006-01-02"),
		Unmatched:   row.Unmatched,
	}
	resp.ClockIn = mapSlot(row.ClockInAt, row.ClockInDeviceID, row.ClockInApplyID, deviceNames, applyTypes)
	resp.BreakStart = mapSlot(row.BreakStartAt, row.BreakStartDeviceID, row.BreakStartApplyID, deviceNames, applyTypes)
	resp.BreakResume = mapSlot(row.BreakResumeAt, row.BreakResumeDeviceID, row.BreakResumeApplyID, deviceNames, applyTypes)
	resp.ClockOut = mapSlot(row.ClockOutAt, row.ClockOutDeviceID, row.ClockOutApplyID, deviceNames, applyTypes)
	return resp
}

func mapSlot(ts *time.Time, deviceID, applyID *uuid.UUID, deviceNames, applyTypes map[uuid.UUID]string) *SlotResponse {
	if ts == nil && deviceID == nil && applyID == nil {
		return nil
	}
	slot := &SlotResponse{}
	if ts != nil {
		slot.Timestamp = ts.Format(time.RFC3339)
	}
	if deviceID != nil {
		slot.DeviceName = deviceNames[*deviceID]
	}
	if applyID != nil {
		slot.ApplyID = applyID.String()
		slot.ApplyType = applyTypes[*applyID]
	}
	return slot
}
