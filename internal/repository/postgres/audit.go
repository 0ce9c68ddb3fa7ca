package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	log.CreatedAt = time.Now()
	query := `
		INSERT INTO audit_logs (user_id, action, resource_type, resource_id, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		log.UserID, log.Action, log.ResourceType, log.ResourceID, log.Meta, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	cond := []string{}
	args := []interface{}{}
	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		cond = append(cond, fmt.Sprintf("resource_type = $%d", len(args)))
	}
	if filter.ResourceID != 0 {
		args = append(args, filter.ResourceID)
		cond = append(cond, fmt.Sprintf("resource_id = $%d", len(args)))
	}
	where := ""
	if len(cond) > 0 {
		where = "WHERE " + strings.Join(cond, " AND ")
	}

	var logs []*model.AuditLog
	query := fmt.Sprintf(`SELECT * FROM audit_logs %s ORDER BY id DESC LIMIT 200`, where)
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
