package connection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/email"
	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type stubAmbulanceRepo struct {
	repository.AmbulanceRepository

	byCode map[string]*model.Ambulance
}

func (s *stubAmbulanceRepo) GetByCode(_ context.Context, code string) (*model.Ambulance, error) {
	if a, ok := s.byCode[code]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("ambulance")
}

type stubConnectionRepo struct {
	repository.ConnectionRepository

	created *model.ConnectionRequest
}

func (s *stubConnectionRepo) CreateRequest(_ context.Context, req *model.ConnectionRequest) error {
	req.ID = 1
	s.created = req
	return nil
}

type noopAuditRepo struct {
	repository.AuditRepository
}

func (noopAuditRepo) Create(context.Context, *model.AuditLog) error { return nil }

// stubHospitalRepo fails every lookup so the detached notification
// goroutine bails out before touching users or email.
type stubHospitalRepo struct {
	repository.HospitalRepository
}

func (stubHospitalRepo) Get(context.Context, int64) (*model.Hospital, error) {
	return nil, apperrors.NotFound("hospital")
}

func newTestService(ambulances *stubAmbulanceRepo, conns *stubConnectionRepo) *Service {
	log := logger.NewLogger(nil)
	return NewService(conns, ambulances, stubHospitalRepo{}, nil, email.NewNoopService(log), audit.NewService(noopAuditRepo{}, log), log)
}

func i64(v int64) *int64 { return &v }

func TestRequestByCodeCreatesPendingRequest(t *testing.T) {
	ambulances := &stubAmbulanceRepo{byCode: map[string]*model.Ambulance{
		"AMB-9": {ID: 9, Code: "AMB-9", Owner: model.Owner{Type: model.OwnerTypeFleet, ID: 5}},
	}}
	conns := &stubConnectionRepo{}
	svc := newTestService(ambulances, conns)

	principal := &model.Principal{ID: 3, Role: model.RoleHospitalAdmin, HospitalID: i64(10)}
	req, err := svc.RequestByCode(context.Background(), principal, "AMB-9")
	require.NoError(t, err)

	assert.Equal(t, model.ConnectionRequestPending, req.Status)
	assert.Equal(t, "AMB-9", req.AmbulanceCode)
	assert.Equal(t, int64(10), req.FromHospitalID)
	assert.Equal(t, int64(5), req.ToFleetID)
	require.NotNil(t, req.RequestedBy)
	assert.Equal(t, int64(3), *req.RequestedBy)
	assert.Same(t, req, conns.created)
}

func TestRequestByCodeUnknownCode(t *testing.T) {
	svc := newTestService(&stubAmbulanceRepo{byCode: map[string]*model.Ambulance{}}, &stubConnectionRepo{})

	principal := &model.Principal{ID: 3, Role: model.RoleHospitalAdmin, HospitalID: i64(10)}
	_, err := svc.RequestByCode(context.Background(), principal, "NOPE")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRequestByCodeRejectsHospitalOwnedAmbulance(t *testing.T) {
	ambulances := &stubAmbulanceRepo{byCode: map[string]*model.Ambulance{
		"AMB-1": {ID: 1, Code: "AMB-1", Owner: model.Owner{Type: model.OwnerTypeHospital, ID: 10}},
	}}
	svc := newTestService(ambulances, &stubConnectionRepo{})

	principal := &model.Principal{ID: 3, Role: model.RoleHospitalAdmin, HospitalID: i64(10)}
	_, err := svc.RequestByCode(context.Background(), principal, "AMB-1")
	assert.ErrorIs(t, err, ErrNotFleetOwned)
}

func TestRequestByCodeRequiresHospital(t *testing.T) {
	svc := newTestService(&stubAmbulanceRepo{}, &stubConnectionRepo{})

	principal := &model.Principal{ID: 3, Role: model.RoleHospitalAdmin}
	_, err := svc.RequestByCode(context.Background(), principal, "AMB-9")
	assert.ErrorIs(t, err, ErrHospitalMissing)
}
