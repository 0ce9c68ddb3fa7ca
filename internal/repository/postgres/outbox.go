package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
)

type outboxRepository struct {
	BaseRepository
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	query := `
		INSERT INTO outbox_events (event_type, payload, status, retry_count, created_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		event.EventType, event.Payload, event.Status, event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	var events []*model.OutboxEvent
	query := `
		SELECT * FROM outbox_events WHERE status = $1 ORDER BY id ASC LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit); err != nil {
		return nil, fmt.Errorf("failed to get pending outbox events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events SET status = $1, processed_at = $2 WHERE id = $3
	`, model.OutboxStatusProcessed, time.Now(), id)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events SET status = $1, retry_count = retry_count + 1 WHERE id = $2
	`, model.OutboxStatusFailed, id)
	return err
}
