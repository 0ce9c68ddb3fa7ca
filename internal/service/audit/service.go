package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type Service struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

func NewService(repo repository.AuditRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Log records a mutating action. Failures are swallowed and warn-logged:
// an audit write must never fail or roll back the primary operation.
func (s *Service) Log(ctx context.Context, userID *int64, action, resourceType string, resourceID *int64, meta interface{}) {
	var raw model.RawJSON
	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			s.log.Warn("audit meta marshal failed", "action", action, "error", err.Error())
		} else {
			raw = b
		}
	}

	entry := &model.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Meta:         raw,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn("audit write failed", "action", action, "resource", resourceType, "error", err.Error())
	}
}

func (s *Service) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filter)
}
