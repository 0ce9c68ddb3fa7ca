package ambulance

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/owner"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/metrics"
)

// CreateInput is the payload for registering an ambulance. OwnerType and
// OwnerID pass through the owner validation chain before anything is
// written.
type CreateInput struct {
	Code      string        `json:"code" binding:"required"`
	Name      *string       `json:"name"`
	OwnerType string        `json:"owner_type" binding:"required"`
	OwnerID   string        `json:"owner_id" binding:"required"`
	DeviceIDs model.RawJSON `json:"device_ids"`
	Metadata  model.RawJSON `json:"metadata"`
}

// UpdateInput carries partial updates. Owner fields follow the
// both-or-neither rule.
type UpdateInput struct {
	Name      *string       `json:"name"`
	Status    *string       `json:"status"`
	OwnerType *string       `json:"owner_type"`
	OwnerID   *string       `json:"owner_id"`
	DeviceIDs model.RawJSON `json:"device_ids"`
	Metadata  model.RawJSON `json:"metadata"`
}

// ChangeOwnerResult pairs the updated ambulance with the assignment
// counts cleared by the owner swap.
type ChangeOwnerResult struct {
	Ambulance *model.Ambulance          `json:"ambulance"`
	Cleared   *model.ClearedAssignments `json:"cleared"`
}

type Service struct {
	repo        repository.AmbulanceRepository
	assignments repository.AssignmentRepository
	owners      owner.Servicer
	auditor     *audit.Service
	metrics     *metrics.Metrics
}

func NewService(repo repository.AmbulanceRepository, assignments repository.AssignmentRepository, owners owner.Servicer, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		owners:      owners,
		auditor:     auditor,
		metrics:     m,
	}
}

func (s *Service) Create(ctx context.Context, principal *model.Principal, in *CreateInput) (*model.Ambulance, error) {
	own, err := s.owners.Validate(ctx, principal, in.OwnerType, in.OwnerID)
	if err != nil {
		return nil, err
	}

	ambulance := &model.Ambulance{
		Code:      in.Code,
		Name:      in.Name,
		Owner:     own,
		Status:    model.AmbulanceStatusPendingApproval,
		DeviceIDs: in.DeviceIDs,
		Metadata:  in.Metadata,
	}
	requestedBy := principalID(principal)
	if err := s.repo.Create(ctx, ambulance, requestedBy); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, requestedBy, "create", "ambulance", &ambulance.ID, ambulance)
	return ambulance, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Ambulance, error) {
	return s.repo.GetEnriched(ctx, id)
}

// List scopes results to what the principal may see: admins see their own
// organization's fleet, superadmins see everything.
func (s *Service) List(ctx context.Context, principal *model.Principal, filter model.AmbulanceFilter) ([]*model.Ambulance, error) {
	if principal != nil && principal.Role != model.RoleSuperadmin {
		switch {
		case principal.Role == model.RoleFleetAdmin && principal.FleetID != nil:
			filter.OwnerType = model.OwnerTypeFleet
			filter.OwnerID = *principal.FleetID
		case principal.Role.HospitalAffiliated() && principal.HospitalID != nil:
			filter.OwnerType = model.OwnerTypeHospital
			filter.OwnerID = *principal.HospitalID
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, principal *model.Principal, id int64, in *UpdateInput) (*model.Ambulance, error) {
	ambulance, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newOwner, changing, err := s.owners.ValidateUpdate(ctx, principal, in.OwnerType, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if in.Status != nil && !model.AmbulanceStatus(*in.Status).Valid() {
		return nil, apperrors.Validation("invalid ambulance status")
	}

	if changing {
		// Owner swap implies clearing assignments, same as the
		// dedicated endpoint. It reloads the row, so field edits are
		// applied to the reloaded copy below.
		result, err := s.changeOwner(ctx, principal, ambulance, newOwner)
		if err != nil {
			return nil, err
		}
		ambulance = result.Ambulance
	}

	if in.Name != nil {
		ambulance.Name = in.Name
	}
	if in.Status != nil {
		ambulance.Status = model.AmbulanceStatus(*in.Status)
	}
	if in.DeviceIDs != nil {
		ambulance.DeviceIDs = in.DeviceIDs
	}
	if in.Metadata != nil {
		ambulance.Metadata = in.Metadata
	}

	if err := s.repo.Update(ctx, ambulance); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "update", "ambulance", &ambulance.ID, in)
	return s.repo.GetEnriched(ctx, id)
}

func (s *Service) ChangeOwner(ctx context.Context, principal *model.Principal, id int64, ownerType, ownerID string) (*ChangeOwnerResult, error) {
	ambulance, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	own, err := s.owners.Validate(ctx, principal, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	return s.changeOwner(ctx, principal, ambulance, own)
}

func (s *Service) changeOwner(ctx context.Context, principal *model.Principal, ambulance *model.Ambulance, own model.Owner) (*ChangeOwnerResult, error) {
	cleared, err := s.repo.ChangeOwner(ctx, ambulance.ID, own)
	if err != nil {
		return nil, err
	}
	s.metrics.AssignmentsCleared.WithLabelValues(string(model.AssigneeTypeParamedic)).Add(float64(cleared.Paramedics))
	s.metrics.AssignmentsCleared.WithLabelValues(string(model.AssigneeTypeDoctor)).Add(float64(cleared.Doctors))

	s.auditor.Log(ctx, principalID(principal), "change_owner", "ambulance", &ambulance.ID, map[string]interface{}{
		"old_owner": ambulance.Owner,
		"new_owner": own,
		"cleared":   cleared,
	})

	updated, err := s.repo.GetEnriched(ctx, ambulance.ID)
	if err != nil {
		return nil, err
	}
	return &ChangeOwnerResult{Ambulance: updated, Cleared: cleared}, nil
}

func (s *Service) ClearAssignments(ctx context.Context, principal *model.Principal, id int64) (*model.ClearedAssignments, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	cleared, err := s.assignments.ClearActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.AssignmentsCleared.WithLabelValues(string(model.AssigneeTypeParamedic)).Add(float64(cleared.Paramedics))
	s.metrics.AssignmentsCleared.WithLabelValues(string(model.AssigneeTypeDoctor)).Add(float64(cleared.Doctors))
	s.auditor.Log(ctx, principalID(principal), "clear_assignments", "ambulance", &id, cleared)
	return cleared, nil
}

func (s *Service) Delete(ctx context.Context, principal *model.Principal, id int64) error {
	deletedBy := principalID(principal)
	rejected, err := s.repo.Delete(ctx, id, deletedBy)
	if err != nil {
		return err
	}
	s.auditor.Log(ctx, deletedBy, "delete", "ambulance", &id, map[string]interface{}{
		"approvals_rejected": rejected,
	})
	return nil
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
