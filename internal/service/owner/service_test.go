package owner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
)

type stubHospitalRepo struct {
	repository.HospitalRepository
	existing map[int64]bool
}

func (s *stubHospitalRepo) Exists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

type stubFleetRepo struct {
	repository.FleetRepository
	existing map[int64]bool
}

func (s *stubFleetRepo) Exists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

func newTestService() *Service {
	return NewService(
		&stubHospitalRepo{existing: map[int64]bool{10: true}},
		&stubFleetRepo{existing: map[int64]bool{5: true}},
	)
}

func i64(v int64) *int64 { return &v }
func str(v string) *string { return &v }

func superadmin() *model.Principal {
	return &model.Principal{ID: 1, Role: model.RoleSuperadmin}
}

func TestValidateAcceptsExistingOwner(t *testing.T) {
	svc := newTestService()

	owner, err := svc.Validate(context.Background(), superadmin(), "hospital", "10")
	require.NoError(t, err)
	assert.Equal(t, model.Owner{Type: model.OwnerTypeHospital, ID: 10}, owner)

	owner, err = svc.Validate(context.Background(), superadmin(), "fleet", "5")
	require.NoError(t, err)
	assert.Equal(t, model.Owner{Type: model.OwnerTypeFleet, ID: 5}, owner)
}

func TestValidateRejectsBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Validate(ctx, superadmin(), "clinic", "10")
	assert.ErrorIs(t, err, ErrInvalidOwnerType)

	_, err = svc.Validate(ctx, superadmin(), "hospital", "abc")
	assert.ErrorIs(t, err, ErrInvalidOwnerID)

	_, err = svc.Validate(ctx, superadmin(), "hospital", "-3")
	assert.ErrorIs(t, err, ErrInvalidOwnerID)

	_, err = svc.Validate(ctx, superadmin(), "hospital", "999")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestValidateRoleRestriction(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	hospitalAdmin := &model.Principal{ID: 2, Role: model.RoleHospitalAdmin, HospitalID: i64(10)}
	_, err := svc.Validate(ctx, hospitalAdmin, "hospital", "10")
	assert.NoError(t, err)

	// A hospital_admin may not hand ownership to a fleet or to another
	// hospital. The role check fires before existence.
	_, err = svc.Validate(ctx, hospitalAdmin, "fleet", "5")
	assert.ErrorIs(t, err, ErrOwnershipForbiddenHo)
	_, err = svc.Validate(ctx, hospitalAdmin, "hospital", "999")
	assert.ErrorIs(t, err, ErrOwnershipForbiddenHo)

	fleetAdmin := &model.Principal{ID: 3, Role: model.RoleFleetAdmin, FleetID: i64(5)}
	_, err = svc.Validate(ctx, fleetAdmin, "fleet", "5")
	assert.NoError(t, err)
	_, err = svc.Validate(ctx, fleetAdmin, "hospital", "10")
	assert.ErrorIs(t, err, ErrOwnershipForbiddenFl)
}

func TestValidateUpdateBothOrNeither(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, changing, err := svc.ValidateUpdate(ctx, superadmin(), nil, nil)
	require.NoError(t, err)
	assert.False(t, changing)

	_, _, err = svc.ValidateUpdate(ctx, superadmin(), str("hospital"), nil)
	assert.ErrorIs(t, err, ErrIncompleteOwnerPair)

	_, _, err = svc.ValidateUpdate(ctx, superadmin(), nil, str("10"))
	assert.ErrorIs(t, err, ErrIncompleteOwnerPair)

	owner, changing, err := svc.ValidateUpdate(ctx, superadmin(), str("fleet"), str("5"))
	require.NoError(t, err)
	assert.True(t, changing)
	assert.Equal(t, model.Owner{Type: model.OwnerTypeFleet, ID: 5}, owner)
}
