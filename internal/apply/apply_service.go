package apply

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	applyerrors "github.com/pokemogu/TimecardSystem-sub001/internal/apply/errors"
	"github.com/pokemogu/TimecardSystem-sub001/internal/events"
	"github.com/pokemogu/TimecardSystem-sub001/internal/messaging/kafka"
	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

//go:generate mockgen -source=apply_service.go -destination=mock/apply_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitApplyRequest) (ApplyResponse, error)
	Decide(ctx context.Context, applyID, decision, decidingUserID string) (ApplyResponse, error)
	CurrentDecision(ctx context.Context, userID, applyType, dateStr string) (CurrentDecisionResponse, error)
	PendingByType(ctx context.Context, applyType string) ([]ApplyResponse, error)
	ApprovedByTypeRange(ctx context.Context, applyType, fromStr, toStr string) ([]ApplyResponse, error)

	// GoverningByUserRange feeds the aggregator: governing rows only,
	// keyed by (type, date).
	GoverningByUserRange(ctx context.Context, userID string, from, to time.Time) (map[Key]Apply, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	types  *TypeRegistry
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, types *TypeRegistry, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, types, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	types *TypeRegistry,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("apply.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("apply.service")
	}
	return &service{db: db, repo: repo, types: types, outbox: outboxRepo, logger: l}
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitApplyRequest) (ApplyResponse, error) {
	s.logger.Debug("submit apply requested",
		zap.String("actor_id", actorID),
		zap.String("user_id", req.UserID),
		zap.String("type", req.Type),
		zap.String("date", req.Date),
	)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return ApplyResponse{}, applyerrors.ErrInvalidUserID
	}
	if _, ok := s.types.Lookup(req.Type); !ok {
		s.logger.Warn("submit apply unknown type", zap.String("type", req.Type))
		return ApplyResponse{}, applyerrors.ErrUnknownApplyType
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return ApplyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit apply begin tx failed", zap.Error(err))
		return ApplyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Append-only: resubmission for an existing key is the defined
	// amendment path, never a conflict.
	a := &Apply{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        req.Type,
		Date:        date,
		SubmittedAt: time.Now().UTC(),
		Reason:      req.Reason,
		Status:      StatusPending,
	}
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("submit apply persist failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, a, events.ApplySubmitted, ""); err != nil {
		return ApplyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit apply commit failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	s.logger.Info("submit apply success",
		zap.String("apply_id", a.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("type", req.Type),
	)
	return mapToResponse(*a), nil
}

func (s *service) Decide(ctx context.Context, applyID, decision, decidingUserID string) (ApplyResponse, error) {
	s.logger.Debug("decide apply requested",
		zap.String("apply_id", applyID),
		zap.String("decision", decision),
		zap.String("deciding_user", decidingUserID),
	)

	var targetStatus, eventType string
	switch decision {
	case DecisionApprove:
		targetStatus, eventType = StatusApproved, events.ApplyApproved
	case DecisionReject:
		targetStatus, eventType = StatusRejected, events.ApplyRejected
	default:
		return ApplyResponse{}, applyerrors.ErrInvalidDecision
	}

	deciderID, err := uuid.Parse(decidingUserID)
	if err != nil {
		return ApplyResponse{}, applyerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide apply begin tx failed", zap.Error(err))
		return ApplyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, applyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplyResponse{}, applyerrors.ErrApplyNotFound
		}
		return ApplyResponse{}, err
	}
	if a.Status != StatusPending {
		s.logger.Warn("decide apply already decided",
			zap.String("apply_id", applyID),
			zap.String("status", a.Status),
		)
		return ApplyResponse{}, applyerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	a.Status = targetStatus
	a.DecidedBy = &deciderID
	a.DecidedAt = &now

	if err := qtx.UpdateDecision(ctx, a); err != nil {
		s.logger.Error("decide apply persist failed", zap.String("apply_id", applyID), zap.Error(err))
		return ApplyResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, a, eventType, decidingUserID); err != nil {
		return ApplyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide apply commit failed", zap.String("apply_id", applyID), zap.Error(err))
		return ApplyResponse{}, err
	}

	s.logger.Info("decide apply success",
		zap.String("apply_id", applyID),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*a), nil
}

func (s *service) CurrentDecision(ctx context.Context, userID, applyType, dateStr string) (CurrentDecisionResponse, error) {
	if _, ok := s.types.Lookup(applyType); !ok {
		return CurrentDecisionResponse{}, applyerrors.ErrUnknownApplyType
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return CurrentDecisionResponse{}, err
	}

	rows, err := s.repo.FindByKey(ctx, userID, applyType, date)
	if err != nil {
		return CurrentDecisionResponse{}, err
	}

	resp := CurrentDecisionResponse{
		UserID:   userID,
		Type:     applyType,
		Date:     dateStr,
		Decision: DecisionNone,
	}
	if g := GoverningFor(rows); g != nil {
		resp.Decision = g.Status
		resp.ApplyID = g.ID.String()
	}
	return resp, nil
}

func (s *service) PendingByType(ctx context.Context, applyType string) ([]ApplyResponse, error) {
	if _, ok := s.types.Lookup(applyType); !ok {
		return nil, applyerrors.ErrUnknownApplyType
	}

	rows, err := s.repo.FindByType(ctx, applyType)
	if err != nil {
		return nil, err
	}

	var resp []ApplyResponse
	for _, g := range Governing(rows) {
		if g.Status == StatusPending {
			resp = append(resp, mapToResponse(g))
		}
	}
	sortResponses(resp)
	return resp, nil
}

func (s *service) ApprovedByTypeRange(ctx context.Context, applyType, fromStr, toStr string) ([]ApplyResponse, error) {
	if _, ok := s.types.Lookup(applyType); !ok {
		return nil, applyerrors.ErrUnknownApplyType
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByTypeRange(ctx, applyType, from, to)
	if err != nil {
		return nil, err
	}

	var resp []ApplyResponse
	for _, g := range Governing(rows) {
		if g.Status == StatusApproved {
			resp = append(resp, mapToResponse(g))
		}
	}
	sortResponses(resp)
	return resp, nil
}

func (s *service) GoverningByUserRange(ctx context.Context, userID string, from, to time.Time) (map[Key]Apply, error) {
	rows, err := s.repo.FindByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return Governing(rows), nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, a *Apply, eventType, decidedBy string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.ApplyLifecycleEvent{
		EventType:  eventType,
		ApplyID:    a.ID.String(),
		UserID:     a.UserID.String(),
		ApplyType:  a.Type,
		TargetDate: a.Date.Format("2006-01-02"),
		DecidedBy:  decidedBy,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "apply",
		AggregateID:   a.ID.String(),
		EventType:     eventType,
		Topic:         events.ApplyLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue lifecycle event failed",
			zap.String("apply_id", a.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, applyerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// sortResponses keeps listings in a stable order (date, then user) since
// Governing iterates a map.
func sortResponses(resp []ApplyResponse) {
	sort.Slice(resp, func(i, j int) bool {
		if resp[i].Date != resp[j].Date {
			return resp[i].Date < resp[j].Date
		}
		return resp[i].UserID < resp[j].UserID
	})
}

func mapToResponse(a Apply) ApplyResponse {
	resp := ApplyResponse{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		Type:        a.Type,
		Date:        a.Date.Format("2006-01-02"),
		SubmittedAt: a.SubmittedAt.Format(time.RFC3339),
		Reason:      a.Reason,
		Status:      a.Status,
	}
	if a.DecidedBy != nil {
		v := a.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
