package user

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/auth"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type CreateInput struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	Role       string  `json:"role" binding:"required"`
	HospitalID *int64  `json:"hospital_id"`
	FleetID    *int64  `json:"fleet_id"`
}

type Service struct {
	repo    repository.UserRepository
	auditor *audit.Service
}

func NewService(repo repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, principal *model.Principal, in *CreateInput) (*model.User, error) {
	role := model.Role(in.Role)
	if err := validateAffiliation(role, in.HospitalID, in.FleetID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
		HospitalID:   in.HospitalID,
		FleetID:      in.FleetID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "create", "user", &u.ID, map[string]interface{}{
		"email": u.Email,
		"role":  u.Role,
	})
	return u, nil
}

// validateAffiliation pins each role to the organization field it may
// carry. Staff roles require exactly one of hospital/fleet.
func validateAffiliation(role model.Role, hospitalID, fleetID *int64) error {
	switch role {
	case model.RoleSuperadmin:
		return nil
	case model.RoleHospitalAdmin, model.RoleHospitalUser:
		if hospitalID == nil {
			return apperrors.Validation("hospital_id is required for hospital roles")
		}
	case model.RoleFleetAdmin:
		if fleetID == nil {
			return apperrors.Validation("fleet_id is required for fleet_admin")
		}
	case model.RoleDoctor, model.RoleParamedic:
		if (hospitalID == nil) == (fleetID == nil) {
			return apperrors.Validation("staff roles require exactly one of hospital_id or fleet_id")
		}
	default:
		return apperrors.Validation("unknown role")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, principal *model.Principal, u *model.User) error {
	if err := validateAffiliation(u.Role, u.HospitalID, u.FleetID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	s.auditor.Log(ctx, principalID(principal), "update", "user", &u.ID, nil)
	return nil
}

func (s *Service) Delete(ctx context.Context, principal *model.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditor.Log(ctx, principalID(principal), "delete", "user", &id, nil)
	return nil
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
