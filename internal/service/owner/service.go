package owner

import (
	"context"
	"strconv"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

// Validation errors for the hospital-xor-fleet owner relationship.
var (
	ErrInvalidOwnerType     = apperrors.Validation("owner_type must be hospital or fleet")
	ErrInvalidOwnerID       = apperrors.Validation("owner_id must be a valid integer")
	ErrOwnerNotFound        = apperrors.Validation("owner_id does not reference an existing row")
	ErrIncompleteOwnerPair  = apperrors.Validation("owner_type and owner_id must be supplied together")
	ErrOwnershipForbiddenHo = apperrors.Forbidden("hospital_admin can only set ownership to their own hospital")
	ErrOwnershipForbiddenFl = apperrors.Forbidden("fleet_admin can only set ownership to their own fleet")
)

type Servicer interface {
	// Validate checks the syntactic pair, the role restriction, and that
	// the referenced owner row exists.
	Validate(ctx context.Context, principal *model.Principal, ownerType string, ownerID string) (model.Owner, error)
	// ValidateUpdate applies the both-or-neither rule for entities that
	// already carry an owner. It returns (owner, true) when ownership is
	// changing.
	ValidateUpdate(ctx context.Context, principal *model.Principal, ownerType, ownerID *string) (model.Owner, bool, error)
}

type Service struct {
	hospitals repository.HospitalRepository
	fleets    repository.FleetRepository
}

func NewService(hospitals repository.HospitalRepository, fleets repository.FleetRepository) *Service {
	return &Service{hospitals: hospitals, fleets: fleets}
}

func (s *Service) Validate(ctx context.Context, principal *model.Principal, ownerType string, ownerID string) (model.Owner, error) {
	typ := model.OwnerType(ownerType)
	if !typ.Valid() {
		return model.Owner{}, ErrInvalidOwnerType
	}
	id, err := strconv.ParseInt(ownerID, 10, 64)
	if err != nil || id <= 0 {
		return model.Owner{}, ErrInvalidOwnerID
	}
	owner := model.Owner{Type: typ, ID: id}

	if err := s.checkRole(principal, owner); err != nil {
		return model.Owner{}, err
	}

	exists, err := s.exists(ctx, owner)
	if err != nil {
		return model.Owner{}, err
	}
	if !exists {
		return model.Owner{}, ErrOwnerNotFound
	}
	return owner, nil
}

func (s *Service) ValidateUpdate(ctx context.Context, principal *model.Principal, ownerType, ownerID *string) (model.Owner, bool, error) {
	if ownerType == nil && ownerID == nil {
		return model.Owner{}, false, nil
	}
	// Never keep one side of the pair while changing the other.
	if ownerType == nil || ownerID == nil {
		return model.Owner{}, false, ErrIncompleteOwnerPair
	}
	owner, err := s.Validate(ctx, principal, *ownerType, *ownerID)
	if err != nil {
		return model.Owner{}, false, err
	}
	return owner, true, nil
}

func (s *Service) checkRole(principal *model.Principal, owner model.Owner) error {
	if principal == nil || principal.Role == model.RoleSuperadmin {
		return nil
	}
	switch principal.Role {
	case model.RoleHospitalAdmin:
		if owner.Type != model.OwnerTypeHospital || principal.HospitalID == nil || *principal.HospitalID != owner.ID {
			return ErrOwnershipForbiddenHo
		}
	case model.RoleFleetAdmin:
		if owner.Type != model.OwnerTypeFleet || principal.FleetID == nil || *principal.FleetID != owner.ID {
			return ErrOwnershipForbiddenFl
		}
	}
	return nil
}

func (s *Service) exists(ctx context.Context, owner model.Owner) (bool, error) {
	if owner.Type == model.OwnerTypeFleet {
		return s.fleets.Exists(ctx, owner.ID)
	}
	return s.hospitals.Exists(ctx, owner.ID)
}
