package kafka

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *outboxRepository) conn() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO outbox_events
			(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, retry_count, next_retry_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, now(), now())
	`, event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, OutboxStatusPending)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, retry_count, next_retry_at
		FROM outbox_events
		WHERE status = $1 AND next_retry_at <= now()
		ORDER BY created_at
		LIMIT $2
	`, OutboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status,
			&e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, `
		UPDATE outbox_events SET status = $1, sent_at = now() WHERE id = $2
	`, OutboxStatusSent, id)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	// Exponential backoff capped at one hour.
	_, err := r.conn().ExecContext(ctx, `
		UPDATE outbox_events
		SET retry_count = retry_count + 1,
		    last_error = $1,
		    status = CASE WHEN retry_count + 1 >= 10 THEN $2 ELSE status END,
		    next_retry_at = now() + LEAST(interval '1 hour', (interval '10 seconds') * POWER(2, retry_count))
		WHERE id = $3
	`, reason, OutboxStatusFailed, id)
	return err
}
