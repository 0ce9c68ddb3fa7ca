package assignment

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
	"github.com/bansalsd420/smart-ambulance-api/pkg/metrics"
)

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

func (s *stubAmbulanceRepo) GetEnriched(ctx context.Context, id int64) (*model.Ambulance, error) {
	return s.Get(ctx, id)
}

type stubStaffRepo struct {
	repository.StaffRepository
	ownerships map[int64]*model.StaffOwnership
}

func (s *stubStaffRepo) GetOwnership(_ context.Context, _ model.AssigneeType, id int64) (*model.StaffOwnership, error) {
	if o, ok := s.ownerships[id]; ok {
		return o, nil
	}
	return nil, apperrors.NotFound("staff member")
}

type stubAssignmentRepo struct {
	repository.AssignmentRepository
	active map[int64]bool // keyed by assignee id
	nextID int64
}

func (s *stubAssignmentRepo) ActiveExists(_ context.Context, _ int64, _ model.AssigneeType, assigneeID int64) (bool, error) {
	return s.active[assigneeID], nil
}

func (s *stubAssignmentRepo) Insert(_ context.Context, ambulanceID int64, typ model.AssigneeType, assigneeID int64, assignedBy *int64) (*model.Assignment, error) {
	s.nextID++
	s.active[assigneeID] = true
	return &model.Assignment{
		ID:          s.nextID,
		AmbulanceID: ambulanceID,
		AssigneeID:  assigneeID,
		Type:        typ,
		AssignedBy:  assignedBy,
	}, nil
}

type noopAuditRepo struct {
	repository.AuditRepository
}

func (noopAuditRepo) Create(context.Context, *model.AuditLog) error { return nil }

var testMetrics = metrics.NewMetrics("test", "assignment")

func i64(v int64) *int64 { return &v }

func newTestService(ambulances map[int64]*model.Ambulance, ownerships map[int64]*model.StaffOwnership) *Service {
	auditor := audit.NewService(noopAuditRepo{}, logger.NewLogger(nil))
	return NewService(
		&stubAssignmentRepo{active: map[int64]bool{}},
		&stubAmbulanceRepo{ambulances: ambulances},
		&stubStaffRepo{ownerships: ownerships},
		auditor,
		testMetrics,
	)
}

func fleetAmbulance(id, fleetID int64) *model.Ambulance {
	return &model.Ambulance{ID: id, Code: "AMB-1", Owner: model.Owner{Type: model.OwnerTypeFleet, ID: fleetID}}
}

func superadmin() *model.Principal {
	return &model.Principal{ID: 1, Role: model.RoleSuperadmin}
}

func TestAssignUnknownAmbulance(t *testing.T) {
	svc := newTestService(map[int64]*model.Ambulance{}, nil)

	_, err := svc.Assign(context.Background(), superadmin(), 99, model.AssigneeTypeParamedic, 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAssignOwnershipMismatch(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{1: fleetAmbulance(1, 5)}
	ownerships := map[int64]*model.StaffOwnership{
		7: {StaffID: 7, FleetID: i64(6)}, // belongs to another fleet
	}
	svc := newTestService(ambulances, ownerships)

	admin := &model.Principal{ID: 2, Role: model.RoleFleetAdmin, FleetID: i64(5)}
	_, err := svc.Assign(context.Background(), admin, 1, model.AssigneeTypeParamedic, 7)
	assert.ErrorIs(t, err, ErrStaffNotBelongs)
}

func TestAssignSuperadminSkipsOwnershipCheck(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{1: fleetAmbulance(1, 5)}
	ownerships := map[int64]*model.StaffOwnership{
		7: {StaffID: 7, FleetID: i64(6)},
	}
	svc := newTestService(ambulances, ownerships)

	a, err := svc.Assign(context.Background(), superadmin(), 1, model.AssigneeTypeParamedic, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.AssigneeID)

	// Staff existence is still required.
	_, err = svc.Assign(context.Background(), superadmin(), 1, model.AssigneeTypeParamedic, 404)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAssignDuplicateConflict(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{1: fleetAmbulance(1, 5)}
	ownerships := map[int64]*model.StaffOwnership{
		7: {StaffID: 7, FleetID: i64(5)},
	}
	svc := newTestService(ambulances, ownerships)
	ctx := context.Background()

	first, err := svc.Assign(ctx, superadmin(), 1, model.AssigneeTypeDoctor, 7)
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = svc.Assign(ctx, superadmin(), 1, model.AssigneeTypeDoctor, 7)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestAssignBatchPartialFailure(t *testing.T) {
	ambulances := map[int64]*model.Ambulance{1: fleetAmbulance(1, 5)}
	ownerships := map[int64]*model.StaffOwnership{
		7: {StaffID: 7, FleetID: i64(5)},
	}
	svc := newTestService(ambulances, ownerships)

	resp, err := svc.AssignBatch(context.Background(), superadmin(), 1, model.AssigneeTypeParamedic, []int64{7, 404})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.True(t, resp.Results[0].Success)
	assert.NotNil(t, resp.Results[0].Assignment)

	assert.False(t, resp.Results[1].Success)
	assert.NotEmpty(t, resp.Results[1].Message)
	assert.Nil(t, resp.Results[1].Assignment)

	assert.Equal(t, resp.Results, resp.RawResults)
	assert.NotNil(t, resp.Ambulance)
}

func TestAssignBatchUnknownAmbulanceIsHTTPError(t *testing.T) {
	svc := newTestService(map[int64]*model.Ambulance{}, nil)

	_, err := svc.AssignBatch(context.Background(), superadmin(), 99, model.AssigneeTypeParamedic, []int64{1})
	assert.True(t, apperrors.IsNotFound(err))
}
