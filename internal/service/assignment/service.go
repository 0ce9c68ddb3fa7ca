package assignment

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/metrics"
)

var (
	ErrDuplicateAssignment = apperrors.Conflict("staff member is already assigned to this ambulance")
	ErrStaffNotBelongs     = apperrors.Validation("staff member does not belong to the ambulance owner")
)

type Service struct {
	assignments repository.AssignmentRepository
	ambulances  repository.AmbulanceRepository
	staff       repository.StaffRepository
	auditor     *audit.Service
	metrics     *metrics.Metrics
}

func NewService(assignments repository.AssignmentRepository, ambulances repository.AmbulanceRepository, staff repository.StaffRepository, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		assignments: assignments,
		ambulances:  ambulances,
		staff:       staff,
		auditor:     auditor,
		metrics:     m,
	}
}

// Assign links one staff member to one ambulance after the ownership and
// duplicate checks.
func (s *Service) Assign(ctx context.Context, principal *model.Principal, ambulanceID int64, typ model.AssigneeType, assigneeID int64) (*model.Assignment, error) {
	ambulance, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return nil, err
	}
	return s.assignOne(ctx, principal, ambulance, typ, assigneeID)
}

func (s *Service) assignOne(ctx context.Context, principal *model.Principal, ambulance *model.Ambulance, typ model.AssigneeType, assigneeID int64) (*model.Assignment, error) {
	// Superadmins may assign across organizations; everyone else is
	// bound to the ambulance owner.
	if principal == nil || principal.Role != model.RoleSuperadmin {
		ownership, err := s.staff.GetOwnership(ctx, typ, assigneeID)
		if err != nil {
			return nil, err
		}
		if !ownership.BelongsTo(ambulance.Owner) {
			return nil, ErrStaffNotBelongs
		}
	} else {
		// Still require the staff row to exist.
		if _, err := s.staff.GetOwnership(ctx, typ, assigneeID); err != nil {
			return nil, err
		}
	}

	exists, err := s.assignments.ActiveExists(ctx, ambulance.ID, typ, assigneeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAssignment
	}

	assignedBy := principalID(principal)
	assignment, err := s.assignments.Insert(ctx, ambulance.ID, typ, assigneeID, assignedBy)
	if err != nil {
		return nil, err
	}

	s.metrics.AssignmentsCreated.WithLabelValues(string(typ)).Inc()
	s.auditor.Log(ctx, assignedBy, "assign", "ambulance", &ambulance.ID, map[string]interface{}{
		"assignee_type": typ,
		"assignee_id":   assigneeID,
		"assignment_id": assignment.ID,
	})
	return assignment, nil
}

// AssignBatch runs each id through the full validation chain
// independently. One id failing never aborts the rest; outcomes are data
// in the response, not HTTP errors.
func (s *Service) AssignBatch(ctx context.Context, principal *model.Principal, ambulanceID int64, typ model.AssigneeType, assigneeIDs []int64) (*model.BatchAssignResponse, error) {
	ambulance, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return nil, err
	}

	results := make([]model.AssignmentResult, 0, len(assigneeIDs))
	for _, id := range assigneeIDs {
		assignment, err := s.assignOne(ctx, principal, ambulance, typ, id)
		if err != nil {
			s.metrics.BatchItemsFailed.Inc()
			results = append(results, model.AssignmentResult{
				AssigneeID: id,
				Success:    false,
				Message:    err.Error(),
			})
			continue
		}
		results = append(results, model.AssignmentResult{
			AssigneeID: id,
			Success:    true,
			Message:    "assigned",
			Assignment: assignment,
		})
	}

	enriched, err := s.ambulances.GetEnriched(ctx, ambulanceID)
	if err != nil {
		return nil, err
	}
	return &model.BatchAssignResponse{
		Results:    results,
		RawResults: results,
		Ambulance:  enriched,
	}, nil
}

// Remove soft-deletes an active assignment by id.
func (s *Service) Remove(ctx context.Context, principal *model.Principal, assignmentID int64) error {
	if err := s.assignments.Remove(ctx, assignmentID); err != nil {
		return err
	}
	s.auditor.Log(ctx, principalID(principal), "unassign", "assignment", &assignmentID, nil)
	return nil
}

// ListForAmbulance returns the active assignments of both kinds, merged
// most-recent-first.
func (s *Service) ListForAmbulance(ctx context.Context, ambulanceID int64) ([]*model.Assignment, error) {
	if _, err := s.ambulances.Get(ctx, ambulanceID); err != nil {
		return nil, err
	}
	return s.assignments.ListActive(ctx, ambulanceID)
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
