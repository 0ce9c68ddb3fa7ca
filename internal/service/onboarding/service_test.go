package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type stubOnboardingRepo struct {
	repository.OnboardingRepository
	created        *model.Onboarding
	createdPatient *model.Patient
	row            *model.Onboarding
}

// UpdateStatusWhere mirrors the guarded SQL update: outside the source
// set nothing changes and the current row is returned.
func (s *stubOnboardingRepo) UpdateStatusWhere(_ context.Context, _ int64, to model.OnboardingStatus, from ...model.OnboardingStatus) (*model.Onboarding, error) {
	for _, f := range from {
		if s.row.Status == f {
			s.row.Status = to
			break
		}
	}
	copied := *s.row
	return &copied, nil
}

func (s *stubOnboardingRepo) Create(_ context.Context, ob *model.Onboarding, patient *model.Patient) error {
	if patient != nil {
		patient.ID = 42
		ob.PatientID = patient.ID
	}
	ob.ID = 1
	s.created = ob
	s.createdPatient = patient
	return nil
}

type stubAmbulanceRepo struct {
	repository.AmbulanceRepository
	ambulances map[int64]*model.Ambulance
}

func (s *stubAmbulanceRepo) Get(_ context.Context, id int64) (*model.Ambulance, error) {
	if a, ok := s.ambulances[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("ambulance")
}

type stubPatientRepo struct {
	repository.PatientRepository
	patients map[int64]*model.Patient
}

func (s *stubPatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	if p, ok := s.patients[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("patient")
}

type noopAuditRepo struct {
	repository.AuditRepository
}

func (noopAuditRepo) Create(context.Context, *model.AuditLog) error { return nil }

func i64(v int64) *int64 { return &v }

func newTestService(obRepo *stubOnboardingRepo, ambulances map[int64]*model.Ambulance, patients map[int64]*model.Patient) *Service {
	auditor := audit.NewService(noopAuditRepo{}, logger.NewLogger(nil))
	return NewService(obRepo, &stubAmbulanceRepo{ambulances: ambulances}, &stubPatientRepo{patients: patients}, auditor)
}

func TestCreateDerivesInitialStatusFromOwner(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeFleet, ID: 5}},
		2: {ID: 2, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}
	patients := map[int64]*model.Patient{9: {ID: 9}}

	obRepo := &stubOnboardingRepo{}
	svc := newTestService(obRepo, ambulances, patients)
	ctx := context.Background()

	ob, err := svc.Create(ctx, nil, &CreateInput{AmbulanceID: 1, PatientID: i64(9)})
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingStatusRequested, ob.Status)

	ob, err = svc.Create(ctx, nil, &CreateInput{AmbulanceID: 2, PatientID: i64(9)})
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingStatusApproved, ob.Status)
}

func TestCreateRequiresAPatient(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}
	svc := newTestService(&stubOnboardingRepo{}, ambulances, nil)

	_, err := svc.Create(context.Background(), nil, &CreateInput{AmbulanceID: 1})
	assert.ErrorIs(t, err, ErrPatientRequired)
}

func TestCreateRejectsUnknownPatientID(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}
	svc := newTestService(&stubOnboardingRepo{}, ambulances, map[int64]*model.Patient{})

	_, err := svc.Create(context.Background(), nil, &CreateInput{AmbulanceID: 1, PatientID: i64(77)})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateWithInlinePatient(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeFleet, ID: 5}},
	}
	obRepo := &stubOnboardingRepo{}
	svc := newTestService(obRepo, ambulances, nil)

	name := "Jordan Lee"
	ob, err := svc.Create(context.Background(), &model.Principal{ID: 3, Role: model.RoleParamedic}, &CreateInput{
		AmbulanceID:        1,
		Patient:            &PatientInput{Name: &name},
		SelectedHospitalID: i64(10),
	})
	require.NoError(t, err)

	require.NotNil(t, obRepo.createdPatient)
	assert.Equal(t, &name, obRepo.createdPatient.Name)
	assert.Equal(t, int64(42), ob.PatientID)
	assert.Equal(t, i64(10), ob.SelectedHospitalID)
	assert.Equal(t, i64(3), ob.InitiatedBy)
}

func TestCreateGeneratesPatientCode(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}
	obRepo := &stubOnboardingRepo{}
	svc := newTestService(obRepo, ambulances, nil)

	name := "Jordan Lee"
	_, err := svc.Create(context.Background(), nil, &CreateInput{
		AmbulanceID: 1,
		Patient:     &PatientInput{Name: &name},
	})
	require.NoError(t, err)

	require.NotNil(t, obRepo.createdPatient)
	assert.Regexp(t, `^P-[0-9A-F]{8}$`, obRepo.createdPatient.Code)
}

func TestCreateKeepsSuppliedPatientCode(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{
		1: {ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}
	obRepo := &stubOnboardingRepo{}
	svc := newTestService(obRepo, ambulances, nil)

	code := "P-CUSTOM01"
	_, err := svc.Create(context.Background(), nil, &CreateInput{
		AmbulanceID: 1,
		Patient:     &PatientInput{Code: &code},
	})
	require.NoError(t, err)

	require.NotNil(t, obRepo.createdPatient)
	assert.Equal(t, code, obRepo.createdPatient.Code)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from   model.OnboardingStatus
		action string
		want   bool
	}{
		{model.OnboardingStatusRequested, "approve", true},
		{model.OnboardingStatusApproved, "approve", false},
		{model.OnboardingStatusOffboarded, "approve", false},
		{model.OnboardingStatusRequested, "reject", true},
		{model.OnboardingStatusInTransit, "reject", false},
		{model.OnboardingStatusApproved, "start", true},
		{model.OnboardingStatusRequested, "start", false},
		{model.OnboardingStatusInTransit, "offboard", true},
		{model.OnboardingStatusApproved, "offboard", true},
		{model.OnboardingStatusRejected, "offboard", false},
		{model.OnboardingStatusRequested, "levitate", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.action), "%s from %s", tt.action, tt.from)
	}
}

func TestApproveMovesRequested(t *testing.T) {
	obRepo := &stubOnboardingRepo{row: &model.Onboarding{ID: 1, Status: model.OnboardingStatusRequested}}
	svc := newTestService(obRepo, nil, nil)

	ob, err := svc.Approve(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingStatusApproved, ob.Status)
}

func TestApproveIsNoOpOutsideRequested(t *testing.T) {
	obRepo := &stubOnboardingRepo{row: &model.Onboarding{ID: 1, Status: model.OnboardingStatusOffboarded}}
	svc := newTestService(obRepo, nil, nil)

	ob, err := svc.Approve(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingStatusOffboarded, ob.Status)
}

func TestRejectIsNoOpOnceStarted(t *testing.T) {
	obRepo := &stubOnboardingRepo{row: &model.Onboarding{ID: 1, Status: model.OnboardingStatusInTransit}}
	svc := newTestService(obRepo, nil, nil)

	ob, err := svc.Reject(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingStatusInTransit, ob.Status)
}

func TestInitialOnboardingStatus(t *testing.T) {
	assert.Equal(t, model.OnboardingStatusRequested, model.InitialOnboardingStatus(model.OwnerTypeFleet))
	assert.Equal(t, model.OnboardingStatusApproved, model.InitialOnboardingStatus(model.OwnerTypeHospital))
}
