package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }

func TestOwnerTypeValid(t *testing.T) {
	assert.True(t, OwnerTypeHospital.Valid())
	assert.True(t, OwnerTypeFleet.Valid())
	assert.False(t, OwnerType("clinic").Valid())
	assert.False(t, OwnerType("").Valid())
}

func TestOwnerTable(t *testing.T) {
	assert.Equal(t, "hospitals", Owner{Type: OwnerTypeHospital, ID: 1}.Table())
	assert.Equal(t, "fleets", Owner{Type: OwnerTypeFleet, ID: 1}.Table())
}

func TestStaffOwnershipBelongsTo(t *testing.T) {
	hospitalStaff := StaffOwnership{StaffID: 1, UserID: 2, HospitalID: i64(10)}
	fleetStaff := StaffOwnership{StaffID: 3, UserID: 4, FleetID: i64(5)}

	assert.True(t, hospitalStaff.BelongsTo(Owner{Type: OwnerTypeHospital, ID: 10}))
	assert.False(t, hospitalStaff.BelongsTo(Owner{Type: OwnerTypeHospital, ID: 11}))
	assert.False(t, hospitalStaff.BelongsTo(Owner{Type: OwnerTypeFleet, ID: 10}))

	assert.True(t, fleetStaff.BelongsTo(Owner{Type: OwnerTypeFleet, ID: 5}))
	assert.False(t, fleetStaff.BelongsTo(Owner{Type: OwnerTypeHospital, ID: 5}))
}

func TestAssignmentActive(t *testing.T) {
	now := time.Now()
	assert.True(t, (&Assignment{}).Active())
	assert.False(t, (&Assignment{RemovedAt: &now}).Active())
}

func TestNewPatientCode(t *testing.T) {
	code := NewPatientCode()
	assert.Regexp(t, `^P-[0-9A-F]{8}$`, code)
	assert.NotEqual(t, code, NewPatientCode())
}

func TestRoleHospitalAffiliated(t *testing.T) {
	assert.True(t, RoleHospitalAdmin.HospitalAffiliated())
	assert.True(t, RoleHospitalUser.HospitalAffiliated())
	assert.True(t, RoleDoctor.HospitalAffiliated())
	assert.True(t, RoleParamedic.HospitalAffiliated())
	assert.False(t, RoleSuperadmin.HospitalAffiliated())
	assert.False(t, RoleFleetAdmin.HospitalAffiliated())
}
