package approval

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/email"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type Service struct {
	repo       repository.ApprovalRepository
	ambulances repository.AmbulanceRepository
	users      repository.UserRepository
	emailSvc   email.Service
	auditor    *audit.Service
	log        *logger.Logger
}

func NewService(repo repository.ApprovalRepository, ambulances repository.AmbulanceRepository, users repository.UserRepository, emailSvc email.Service, auditor *audit.Service, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		ambulances: ambulances,
		users:      users,
		emailSvc:   emailSvc,
		auditor:    auditor,
		log:        log,
	}
}

func (s *Service) List(ctx context.Context, status model.ApprovalStatus) ([]*model.AmbulanceApproval, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.AmbulanceApproval, error) {
	return s.repo.Get(ctx, id)
}

// Approve flips the approval and activates the ambulance atomically.
// Re-approving an approved record returns it unchanged.
func (s *Service) Approve(ctx context.Context, principal *model.Principal, id int64) (*model.AmbulanceApproval, error) {
	approvedBy := principalID(principal)
	approval, err := s.repo.Approve(ctx, id, approvedBy)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, approvedBy, "approve", "ambulance_approval", &approval.ID, map[string]interface{}{
		"ambulance_id": approval.AmbulanceID,
	})
	go s.notifyRequester(approval, "approved")
	return approval, nil
}

// Reject marks the record rejected and disables the ambulance.
func (s *Service) Reject(ctx context.Context, principal *model.Principal, id int64, reason *string) (*model.AmbulanceApproval, error) {
	approvedBy := principalID(principal)
	approval, err := s.repo.Reject(ctx, id, approvedBy, reason)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, approvedBy, "reject", "ambulance_approval", &approval.ID, map[string]interface{}{
		"ambulance_id": approval.AmbulanceID,
		"reason":       reason,
	})
	go s.notifyRequester(approval, "rejected")
	return approval, nil
}

// notifyRequester emails the user who filed the approval request. Best
// effort; runs detached from the request.
func (s *Service) notifyRequester(approval *model.AmbulanceApproval, decision string) {
	if approval.RequestedBy == nil {
		return
	}
	ctx := context.Background()
	requester, err := s.users.Get(ctx, *approval.RequestedBy)
	if err != nil {
		s.log.Warn("approval notice: requester lookup failed", "user_id", *approval.RequestedBy, "error", err.Error())
		return
	}
	code := ""
	if ambulance, err := s.ambulances.Get(ctx, approval.AmbulanceID); err == nil {
		code = ambulance.Code
	}
	if err := s.emailSvc.SendApprovalDecision(ctx, requester.Email, code, decision); err != nil {
		s.log.Warn("approval notice: send failed", "to", requester.Email, "error", err.Error())
	}
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
