package model

import "time"

// OutboxEvent is a domain event staged for asynchronous publication after
// the owning transaction commits.
type OutboxEvent struct {
	ID          int64      `json:"id" db:"id"`
	EventType   string     `json:"event_type" db:"event_type"`
	Payload     RawJSON    `json:"payload" db:"payload"`
	Status      string     `json:"status" db:"status"`
	RetryCount  int        `json:"retry_count" db:"retry_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time `json:"processed_at" db:"processed_at"`
}

const (
	OutboxStatusPending   = "pending"
	OutboxStatusProcessed = "processed"
	OutboxStatusFailed    = "failed"
)
