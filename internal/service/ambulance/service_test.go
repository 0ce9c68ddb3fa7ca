package ambulance

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
	"github.com/bansalsd420/smart-ambulance-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "ambulance")

// stubAmbulanceRepo keeps one row; Get and GetEnriched hand out copies,
// so edits on a loaded ambulance only land through Update or ChangeOwner.
type stubAmbulanceRepo struct {
	repository.AmbulanceRepository

	row        *model.Ambulance
	lastFilter model.AmbulanceFilter
}

func (s *stubAmbulanceRepo) List(_ context.Context, filter model.AmbulanceFilter) ([]*model.Ambulance, error) {
	s.lastFilter = filter
	return nil, nil
}

func (s *stubAmbulanceRepo) Get(context.Context, int64) (*model.Ambulance, error) {
	copied := *s.row
	return &copied, nil
}

func (s *stubAmbulanceRepo) GetEnriched(context.Context, int64) (*model.Ambulance, error) {
	copied := *s.row
	return &copied, nil
}

func (s *stubAmbulanceRepo) Update(_ context.Context, ambulance *model.Ambulance) error {
	copied := *ambulance
	s.row = &copied
	return nil
}

func (s *stubAmbulanceRepo) ChangeOwner(_ context.Context, _ int64, owner model.Owner) (*model.ClearedAssignments, error) {
	s.row.Owner = owner
	return &model.ClearedAssignments{Paramedics: 1, Doctors: 1}, nil
}

// stubOwnerSvc accepts any pair and parses the id.
type stubOwnerSvc struct{}

func (stubOwnerSvc) Validate(_ context.Context, _ *model.Principal, ownerType, ownerID string) (model.Owner, error) {
	id, err := strconv.ParseInt(ownerID, 10, 64)
	if err != nil {
		return model.Owner{}, err
	}
	return model.Owner{Type: model.OwnerType(ownerType), ID: id}, nil
}

func (s stubOwnerSvc) ValidateUpdate(ctx context.Context, principal *model.Principal, ownerType, ownerID *string) (model.Owner, bool, error) {
	if ownerType == nil && ownerID == nil {
		return model.Owner{}, false, nil
	}
	own, err := s.Validate(ctx, principal, *ownerType, *ownerID)
	return own, true, err
}

type noopAuditRepo struct {
	repository.AuditRepository
}

func (noopAuditRepo) Create(context.Context, *model.AuditLog) error { return nil }

func str(s string) *string { return &s }

func newUpdateService(repo *stubAmbulanceRepo) *Service {
	auditor := audit.NewService(noopAuditRepo{}, logger.NewLogger(nil))
	return NewService(repo, nil, stubOwnerSvc{}, auditor, testMetrics)
}

func TestUpdateFieldsOnly(t *testing.T) {
	repo := &stubAmbulanceRepo{row: &model.Ambulance{
		ID: 1, Code: "AMB-1", Name: str("old name"),
		Owner:  model.Owner{Type: model.OwnerTypeFleet, ID: 5},
		Status: model.AmbulanceStatusActive,
	}}
	svc := newUpdateService(repo)

	updated, err := svc.Update(context.Background(), &model.Principal{Role: model.RoleSuperadmin}, 1, &UpdateInput{Name: str("new name")})
	require.NoError(t, err)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "new name", *updated.Name)
	assert.Equal(t, model.Owner{Type: model.OwnerTypeFleet, ID: 5}, repo.row.Owner)
}

func TestUpdateWithOwnerChangeKeepsFieldEdits(t *testing.T) {
	repo := &stubAmbulanceRepo{row: &model.Ambulance{
		ID: 1, Code: "AMB-1", Name: str("old name"),
		Owner:  model.Owner{Type: model.OwnerTypeFleet, ID: 5},
		Status: model.AmbulanceStatusActive,
	}}
	svc := newUpdateService(repo)

	in := &UpdateInput{
		Name:      str("new name"),
		OwnerType: str("hospital"),
		OwnerID:   str("2"),
	}
	updated, err := svc.Update(context.Background(), &model.Principal{Role: model.RoleSuperadmin}, 1, in)
	require.NoError(t, err)

	// Both the owner swap and the field edits persist from one call.
	assert.Equal(t, model.Owner{Type: model.OwnerTypeHospital, ID: 2}, repo.row.Owner)
	require.NotNil(t, repo.row.Name)
	assert.Equal(t, "new name", *repo.row.Name)
	assert.Equal(t, model.Owner{Type: model.OwnerTypeHospital, ID: 2}, updated.Owner)
}

func TestListSuperadminKeepsRequestedFilter(t *testing.T) {
	repo := &stubAmbulanceRepo{}
	svc := newUpdateService(repo)

	filter := model.AmbulanceFilter{
		OwnerType: model.OwnerTypeFleet,
		OwnerID:   5,
		Status:    model.AmbulanceStatusActive,
	}
	_, err := svc.List(context.Background(), &model.Principal{Role: model.RoleSuperadmin}, filter)
	require.NoError(t, err)
	assert.Equal(t, filter, repo.lastFilter)
}

func TestListScopesNonSuperadminToOwnOrganization(t *testing.T) {
	repo := &stubAmbulanceRepo{}
	svc := newUpdateService(repo)

	hospitalID := int64(10)
	requested := model.AmbulanceFilter{OwnerType: model.OwnerTypeFleet, OwnerID: 5}
	_, err := svc.List(context.Background(), &model.Principal{Role: model.RoleHospitalAdmin, HospitalID: &hospitalID}, requested)
	require.NoError(t, err)
	assert.Equal(t, model.OwnerTypeHospital, repo.lastFilter.OwnerType)
	assert.Equal(t, hospitalID, repo.lastFilter.OwnerID)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	repo := &stubAmbulanceRepo{row: &model.Ambulance{
		ID: 1, Code: "AMB-1",
		Owner:  model.Owner{Type: model.OwnerTypeFleet, ID: 5},
		Status: model.AmbulanceStatusActive,
	}}
	svc := newUpdateService(repo)

	_, err := svc.Update(context.Background(), &model.Principal{Role: model.RoleSuperadmin}, 1, &UpdateInput{Status: str("flying")})
	assert.Error(t, err)
}
