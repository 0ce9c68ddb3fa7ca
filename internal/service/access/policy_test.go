package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

func i64(v int64) *int64 { return &v }

func hospitalAmbulance(ownerID int64) *model.Ambulance {
	return &model.Ambulance{ID: 1, Owner: model.Owner{Type: model.OwnerTypeHospital, ID: ownerID}}
}

func fleetAmbulance(ownerID int64) *model.Ambulance {
	return &model.Ambulance{ID: 1, Owner: model.Owner{Type: model.OwnerTypeFleet, ID: ownerID}}
}

func TestDecideSuperadmin(t *testing.T) {
	p := &model.Principal{ID: 1, Role: model.RoleSuperadmin}
	assert.True(t, Decide(p, hospitalAmbulance(99), false, nil))
	assert.True(t, Decide(p, fleetAmbulance(99), false, nil))
}

func TestDecideFleetAdmin(t *testing.T) {
	tests := []struct {
		name      string
		fleetID   *int64
		ambulance *model.Ambulance
		want      bool
	}{
		{"own fleet", i64(5), fleetAmbulance(5), true},
		{"other fleet", i64(5), fleetAmbulance(6), false},
		{"hospital owned", i64(5), hospitalAmbulance(5), false},
		{"no fleet id", nil, fleetAmbulance(5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.Principal{ID: 1, Role: model.RoleFleetAdmin, FleetID: tt.fleetID}
			assert.Equal(t, tt.want, Decide(p, tt.ambulance, false, nil))
		})
	}
}

func TestDecideHospitalRoles(t *testing.T) {
	lockedToA := &model.Onboarding{Status: model.OnboardingStatusInTransit, SelectedHospitalID: i64(10)}
	lockedToB := &model.Onboarding{Status: model.OnboardingStatusInTransit, SelectedHospitalID: i64(20)}
	unlocked := &model.Onboarding{Status: model.OnboardingStatusApproved}

	tests := []struct {
		name       string
		ambulance  *model.Ambulance
		connected  bool
		onboarding *model.Onboarding
		want       bool
	}{
		{"own hospital ambulance", hospitalAmbulance(10), false, nil, true},
		{"other hospital ambulance", hospitalAmbulance(20), false, nil, false},
		{"fleet owned, no connection", fleetAmbulance(5), false, nil, false},
		{"fleet owned, connected, no transport", fleetAmbulance(5), true, nil, true},
		{"fleet owned, connected, transport without destination", fleetAmbulance(5), true, unlocked, true},
		{"fleet owned, connected, locked to us", fleetAmbulance(5), true, lockedToA, true},
		{"fleet owned, connected, locked to another hospital", fleetAmbulance(5), true, lockedToB, false},
	}

	for _, role := range []model.Role{model.RoleHospitalAdmin, model.RoleHospitalUser, model.RoleDoctor, model.RoleParamedic} {
		for _, tt := range tests {
			t.Run(string(role)+"/"+tt.name, func(t *testing.T) {
				p := &model.Principal{ID: 1, Role: role, HospitalID: i64(10)}
				assert.Equal(t, tt.want, Decide(p, tt.ambulance, tt.connected, tt.onboarding))
			})
		}
	}
}

func TestDecideHospitalRoleWithoutHospital(t *testing.T) {
	p := &model.Principal{ID: 1, Role: model.RoleDoctor}
	assert.False(t, Decide(p, hospitalAmbulance(10), false, nil))
	assert.False(t, Decide(p, fleetAmbulance(5), true, nil))
}

func TestDecideUnknownRole(t *testing.T) {
	p := &model.Principal{ID: 1, Role: "intern"}
	assert.False(t, Decide(p, hospitalAmbulance(10), true, nil))
}

func TestDecideNilInputs(t *testing.T) {
	assert.False(t, Decide(nil, hospitalAmbulance(1), false, nil))
	assert.False(t, Decide(&model.Principal{Role: model.RoleSuperadmin}, nil, false, nil))
}
