package connection

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/email"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

var (
	ErrNotFleetOwned   = apperrors.BadRequest("ambulance is not fleet-owned")
	ErrHospitalMissing = apperrors.Validation("requesting principal has no hospital")
)

type Service struct {
	repo       repository.ConnectionRepository
	ambulances repository.AmbulanceRepository
	hospitals  repository.HospitalRepository
	users      repository.UserRepository
	emailSvc   email.Service
	auditor    *audit.Service
	log        *logger.Logger
}

func NewService(repo repository.ConnectionRepository, ambulances repository.AmbulanceRepository, hospitals repository.HospitalRepository, users repository.UserRepository, emailSvc email.Service, auditor *audit.Service, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		ambulances: ambulances,
		hospitals:  hospitals,
		users:      users,
		emailSvc:   emailSvc,
		auditor:    auditor,
		log:        log,
	}
}

// RequestByCode files a linkage request from the principal's hospital to
// a fleet-owned ambulance identified by code.
func (s *Service) RequestByCode(ctx context.Context, principal *model.Principal, code string) (*model.ConnectionRequest, error) {
	if principal == nil || principal.HospitalID == nil {
		return nil, ErrHospitalMissing
	}
	ambulance, err := s.ambulances.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ambulance.Owner.Type != model.OwnerTypeFleet {
		return nil, ErrNotFleetOwned
	}

	req := &model.ConnectionRequest{
		AmbulanceCode:  ambulance.Code,
		FromHospitalID: *principal.HospitalID,
		ToFleetID:      ambulance.Owner.ID,
		Status:         model.ConnectionRequestPending,
		RequestedBy:    principalID(principal),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, req.RequestedBy, "create", "connection_request", &req.ID, req)
	go s.notifyFleetAdmins(req, ambulance)
	return req, nil
}

// notifyFleetAdmins emails every admin of the target fleet. Best effort;
// runs detached from the request.
func (s *Service) notifyFleetAdmins(req *model.ConnectionRequest, ambulance *model.Ambulance) {
	ctx := context.Background()
	hospital, err := s.hospitals.Get(ctx, req.FromHospitalID)
	if err != nil {
		s.log.Warn("connection notice: hospital lookup failed", "hospital_id", req.FromHospitalID, "error", err.Error())
		return
	}
	admins, err := s.users.List(ctx, model.UserFilter{Role: model.RoleFleetAdmin, FleetID: req.ToFleetID})
	if err != nil {
		s.log.Warn("connection notice: admin lookup failed", "fleet_id", req.ToFleetID, "error", err.Error())
		return
	}
	for _, admin := range admins {
		if err := s.emailSvc.SendConnectionRequested(ctx, admin.Email, ambulance.Code, hospital.Name); err != nil {
			s.log.Warn("connection notice: send failed", "to", admin.Email, "error", err.Error())
		}
	}
}

// ListIncoming returns requests addressed to the principal's fleet.
func (s *Service) ListIncoming(ctx context.Context, principal *model.Principal, fleetID int64) ([]*model.ConnectionRequest, error) {
	if principal != nil && principal.Role == model.RoleFleetAdmin && principal.FleetID != nil {
		fleetID = *principal.FleetID
	}
	return s.repo.ListIncoming(ctx, fleetID)
}

// Approve turns a pending request into a standing connection. Non-pending
// requests come back unchanged.
func (s *Service) Approve(ctx context.Context, principal *model.Principal, id int64) (*model.ConnectionRequest, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	ambulance, err := s.ambulances.GetByCode(ctx, req.AmbulanceCode)
	if err != nil {
		return nil, err
	}

	respondedBy := principalID(principal)
	req, err = s.repo.ApproveRequest(ctx, id, ambulance.ID, respondedBy)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, respondedBy, "approve", "connection_request", &id, map[string]interface{}{"status": req.Status})
	return req, nil
}

func (s *Service) Reject(ctx context.Context, principal *model.Principal, id int64) (*model.ConnectionRequest, error) {
	respondedBy := principalID(principal)
	req, err := s.repo.RejectRequest(ctx, id, respondedBy)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, respondedBy, "reject", "connection_request", &id, map[string]interface{}{"status": req.Status})
	return req, nil
}

// ListConnections returns the hospital's standing connections.
func (s *Service) ListConnections(ctx context.Context, principal *model.Principal, hospitalID int64) ([]*model.AmbulanceConnection, error) {
	if principal != nil && principal.Role != model.RoleSuperadmin && principal.HospitalID != nil {
		hospitalID = *principal.HospitalID
	}
	return s.repo.ListConnections(ctx, hospitalID)
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
