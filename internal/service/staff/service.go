package staff

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/owner"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type Service struct {
	repo    repository.StaffRepository
	users   repository.UserRepository
	owners  owner.Servicer
	auditor *audit.Service
}

func NewService(repo repository.StaffRepository, users repository.UserRepository, owners owner.Servicer, auditor *audit.Service) *Service {
	return &Service{repo: repo, users: users, owners: owners, auditor: auditor}
}

// CreateParamedicInput registers a paramedic against an existing user.
type CreateParamedicInput struct {
	UserID         int64         `json:"user_id" binding:"required"`
	Code           *string       `json:"code"`
	Name           *string       `json:"name"`
	Qualifications model.RawJSON `json:"qualifications"`
	Profile        model.RawJSON `json:"profile"`
}

type CreateDoctorInput struct {
	UserID         int64         `json:"user_id" binding:"required"`
	LicenseNo      *string       `json:"license_no"`
	Specialization *string       `json:"specialization"`
	Profile        model.RawJSON `json:"profile"`
}

// UpdateParamedicInput carries partial profile changes.
type UpdateParamedicInput struct {
	Code           *string       `json:"code"`
	Name           *string       `json:"name"`
	Qualifications model.RawJSON `json:"qualifications"`
	Profile        model.RawJSON `json:"profile"`
}

type UpdateDoctorInput struct {
	LicenseNo      *string       `json:"license_no"`
	Specialization *string       `json:"specialization"`
	Profile        model.RawJSON `json:"profile"`
}

func (s *Service) CreateParamedic(ctx context.Context, principal *model.Principal, in *CreateParamedicInput) (*model.Paramedic, error) {
	user, err := s.linkedUser(ctx, in.UserID, model.RoleParamedic)
	if err != nil {
		return nil, err
	}
	p := &model.Paramedic{
		UserID:         user.ID,
		Code:           in.Code,
		Name:           in.Name,
		Qualifications: in.Qualifications,
		Profile:        in.Profile,
		HospitalID:     user.HospitalID,
		FleetID:        user.FleetID,
	}
	if err := s.repo.CreateParamedic(ctx, p); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "create", "paramedic", &p.ID, p)
	return p, nil
}

func (s *Service) CreateDoctor(ctx context.Context, principal *model.Principal, in *CreateDoctorInput) (*model.Doctor, error) {
	user, err := s.linkedUser(ctx, in.UserID, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	d := &model.Doctor{
		UserID:         user.ID,
		LicenseNo:      in.LicenseNo,
		Specialization: in.Specialization,
		Profile:        in.Profile,
		HospitalID:     user.HospitalID,
		FleetID:        user.FleetID,
	}
	if err := s.repo.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "create", "doctor", &d.ID, d)
	return d, nil
}

// linkedUser loads and checks the user the staff row mirrors.
func (s *Service) linkedUser(ctx context.Context, userID int64, role model.Role) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, apperrors.Validation("linked user does not have the matching role")
	}
	return user, nil
}

func (s *Service) GetParamedic(ctx context.Context, id int64) (*model.Paramedic, error) {
	return s.repo.GetParamedic(ctx, id)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

// List scopes staff to the principal's organization unless superadmin.
func (s *Service) ListParamedics(ctx context.Context, principal *model.Principal) ([]*model.Paramedic, error) {
	hospitalID, fleetID := listScope(principal)
	return s.repo.ListParamedics(ctx, hospitalID, fleetID)
}

func (s *Service) ListDoctors(ctx context.Context, principal *model.Principal) ([]*model.Doctor, error) {
	hospitalID, fleetID := listScope(principal)
	return s.repo.ListDoctors(ctx, hospitalID, fleetID)
}

// UpdateParamedic applies profile changes; owner fields follow the
// both-or-neither rule and rewrite the linked user atomically.
func (s *Service) UpdateParamedic(ctx context.Context, principal *model.Principal, id int64, in *UpdateParamedicInput, ownerType, ownerID *string) (*model.Paramedic, error) {
	p, err := s.repo.GetParamedic(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyOwnerChange(ctx, principal, model.AssigneeTypeParamedic, id, ownerType, ownerID); err != nil {
		return nil, err
	}
	if in.Code != nil {
		p.Code = in.Code
	}
	if in.Name != nil {
		p.Name = in.Name
	}
	if in.Qualifications != nil {
		p.Qualifications = in.Qualifications
	}
	if in.Profile != nil {
		p.Profile = in.Profile
	}
	if err := s.repo.UpdateParamedic(ctx, p); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "update", "paramedic", &id, in)
	return s.repo.GetParamedic(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, principal *model.Principal, id int64, in *UpdateDoctorInput, ownerType, ownerID *string) (*model.Doctor, error) {
	d, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyOwnerChange(ctx, principal, model.AssigneeTypeDoctor, id, ownerType, ownerID); err != nil {
		return nil, err
	}
	if in.LicenseNo != nil {
		d.LicenseNo = in.LicenseNo
	}
	if in.Specialization != nil {
		d.Specialization = in.Specialization
	}
	if in.Profile != nil {
		d.Profile = in.Profile
	}
	if err := s.repo.UpdateDoctor(ctx, d); err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "update", "doctor", &id, in)
	return s.repo.GetDoctor(ctx, id)
}

func (s *Service) applyOwnerChange(ctx context.Context, principal *model.Principal, typ model.AssigneeType, id int64, ownerType, ownerID *string) error {
	own, changing, err := s.owners.ValidateUpdate(ctx, principal, ownerType, ownerID)
	if err != nil {
		return err
	}
	if !changing {
		return nil
	}
	// Staff and linked user rows change together or not at all.
	if err := s.repo.UpdateOwner(ctx, typ, id, own); err != nil {
		return err
	}
	s.auditor.Log(ctx, principalID(principal), "change_owner", string(typ), &id, own)
	return nil
}

func listScope(principal *model.Principal) (hospitalID, fleetID int64) {
	if principal == nil || principal.Role == model.RoleSuperadmin {
		return 0, 0
	}
	if principal.HospitalID != nil {
		hospitalID = *principal.HospitalID
	}
	if principal.FleetID != nil {
		fleetID = *principal.FleetID
	}
	return hospitalID, fleetID
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
