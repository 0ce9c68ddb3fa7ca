package model

import "time"

// AuditLog is a best-effort record of a mutating action. Writing it must
// never fail the primary operation.
type AuditLog struct {
	ID           int64     `json:"id" db:"id"`
	UserID       *int64    `json:"user_id" db:"user_id"`
	Action       string    `json:"action" db:"action"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	ResourceID   *int64    `json:"resource_id" db:"resource_id"`
	Meta         RawJSON   `json:"meta" db:"meta"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	ResourceType string
	ResourceID   int64
}
