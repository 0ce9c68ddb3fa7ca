package onboarding

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

var ErrPatientRequired = apperrors.Validation("either patient or patient_id must be supplied")

// transitionSources maps each lifecycle action to the statuses it may
// move from. An action applied outside its sources is a no-op: the
// guarded update matches zero rows and the unchanged row is returned.
var transitionSources = map[string][]model.OnboardingStatus{
	"approve":  {model.OnboardingStatusRequested},
	"reject":   {model.OnboardingStatusRequested},
	"start":    {model.OnboardingStatusApproved},
	"offboard": {model.OnboardingStatusInTransit, model.OnboardingStatusApproved, model.OnboardingStatusRequested},
}

// CanTransition reports whether the action applies from the status.
func CanTransition(from model.OnboardingStatus, action string) bool {
	for _, s := range transitionSources[action] {
		if s == from {
			return true
		}
	}
	return false
}

// PatientInput is the inline payload for creating the patient together
// with the onboarding.
type PatientInput struct {
	Code           *string       `json:"patient_code"`
	Name           *string       `json:"name"`
	Age            *int          `json:"age"`
	Gender         *string       `json:"gender"`
	Contact        model.RawJSON `json:"contact"`
	MedicalHistory model.RawJSON `json:"medical_history"`
}

// CreateInput starts one patient transport. Exactly one of Patient and
// PatientID must resolve to a patient.
type CreateInput struct {
	AmbulanceID        int64         `json:"ambulance_id" binding:"required"`
	PatientID          *int64        `json:"patient_id"`
	Patient            *PatientInput `json:"patient"`
	SelectedHospitalID *int64        `json:"selected_hospital_id"`
	Notes              *string       `json:"notes"`
}

type Service struct {
	repo       repository.OnboardingRepository
	ambulances repository.AmbulanceRepository
	patients   repository.PatientRepository
	auditor    *audit.Service
}

func NewService(repo repository.OnboardingRepository, ambulances repository.AmbulanceRepository, patients repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:       repo,
		ambulances: ambulances,
		patients:   patients,
		auditor:    auditor,
	}
}

// Create registers a transport. The initial status is derived from the
// ambulance owner: fleet-owned transports wait for fleet approval,
// hospital-owned ones start approved.
func (s *Service) Create(ctx context.Context, principal *model.Principal, in *CreateInput) (*model.Onboarding, error) {
	ambulance, err := s.ambulances.Get(ctx, in.AmbulanceID)
	if err != nil {
		return nil, err
	}

	var inline *model.Patient
	switch {
	case in.PatientID != nil:
		if _, err := s.patients.Get(ctx, *in.PatientID); err != nil {
			return nil, err
		}
	case in.Patient != nil:
		inline = &model.Patient{
			Name:           in.Patient.Name,
			Age:            in.Patient.Age,
			Gender:         in.Patient.Gender,
			Contact:        in.Patient.Contact,
			MedicalHistory: in.Patient.MedicalHistory,
		}
		if in.Patient.Code != nil && *in.Patient.Code != "" {
			inline.Code = *in.Patient.Code
		} else {
			inline.Code = model.NewPatientCode()
		}
	default:
		return nil, ErrPatientRequired
	}

	ob := &model.Onboarding{
		AmbulanceID:        ambulance.ID,
		InitiatedBy:        principalID(principal),
		SelectedHospitalID: in.SelectedHospitalID,
		Status:             model.InitialOnboardingStatus(ambulance.Owner.Type),
		Notes:              in.Notes,
	}
	if in.PatientID != nil {
		ob.PatientID = *in.PatientID
	}

	if err := s.repo.Create(ctx, ob, inline); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, ob.InitiatedBy, "create", "onboarding", &ob.ID, map[string]interface{}{
		"ambulance_id":         ob.AmbulanceID,
		"patient_id":           ob.PatientID,
		"status":               ob.Status,
		"selected_hospital_id": ob.SelectedHospitalID,
	})
	return ob, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Onboarding, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetActiveForAmbulance(ctx context.Context, ambulanceID int64) (*model.Onboarding, error) {
	return s.repo.GetActiveForAmbulance(ctx, ambulanceID)
}

// Approve moves requested to approved. A row in any other state is
// returned unchanged; callers detect the no-op from the status.
func (s *Service) Approve(ctx context.Context, principal *model.Principal, id int64) (*model.Onboarding, error) {
	ob, err := s.repo.UpdateStatusWhere(ctx, id, model.OnboardingStatusApproved, transitionSources["approve"]...)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "approve", "onboarding", &id, map[string]interface{}{"status": ob.Status})
	return ob, nil
}

// Reject moves requested to rejected, same no-op semantics as Approve.
func (s *Service) Reject(ctx context.Context, principal *model.Principal, id int64) (*model.Onboarding, error) {
	ob, err := s.repo.UpdateStatusWhere(ctx, id, model.OnboardingStatusRejected, transitionSources["reject"]...)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "reject", "onboarding", &id, map[string]interface{}{"status": ob.Status})
	return ob, nil
}

// Start moves approved to in_transit under a row lock so two concurrent
// starts cannot both win.
func (s *Service) Start(ctx context.Context, principal *model.Principal, id int64) (*model.Onboarding, error) {
	ob, err := s.repo.Start(ctx, id)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "start", "onboarding", &id, map[string]interface{}{"status": ob.Status})
	return ob, nil
}

// Offboard ends the transport from any active state.
func (s *Service) Offboard(ctx context.Context, principal *model.Principal, id int64) (*model.Onboarding, error) {
	ob, err := s.repo.Offboard(ctx, id)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "offboard", "onboarding", &id, map[string]interface{}{"status": ob.Status})
	return ob, nil
}

// SetPrescription attaches the doctor's prescription document.
func (s *Service) SetPrescription(ctx context.Context, principal *model.Principal, id int64, prescription model.RawJSON) (*model.Onboarding, error) {
	ob, err := s.repo.SetPrescription(ctx, id, prescription)
	if err != nil {
		return nil, err
	}
	s.auditor.Log(ctx, principalID(principal), "set_prescription", "onboarding", &id, nil)
	return ob, nil
}

func principalID(p *model.Principal) *int64 {
	if p == nil {
		return nil
	}
	return &p.ID
}
