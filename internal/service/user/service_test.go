package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

func i64(v int64) *int64 { return &v }

func TestValidateAffiliation(t *testing.T) {
	tests := []struct {
		name       string
		role       model.Role
		hospitalID *int64
		fleetID    *int64
		wantErr    bool
	}{
		{"superadmin needs nothing", model.RoleSuperadmin, nil, nil, false},
		{"hospital_admin with hospital", model.RoleHospitalAdmin, i64(1), nil, false},
		{"hospital_admin without hospital", model.RoleHospitalAdmin, nil, nil, true},
		{"hospital_user without hospital", model.RoleHospitalUser, nil, i64(2), true},
		{"fleet_admin with fleet", model.RoleFleetAdmin, nil, i64(2), false},
		{"fleet_admin without fleet", model.RoleFleetAdmin, i64(1), nil, true},
		{"doctor with hospital only", model.RoleDoctor, i64(1), nil, false},
		{"doctor with fleet only", model.RoleDoctor, nil, i64(2), false},
		{"doctor with both", model.RoleDoctor, i64(1), i64(2), true},
		{"doctor with neither", model.RoleDoctor, nil, nil, true},
		{"paramedic with fleet only", model.RoleParamedic, nil, i64(2), false},
		{"paramedic with both", model.RoleParamedic, i64(1), i64(2), true},
		{"unknown role", model.Role("janitor"), i64(1), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAffiliation(tt.role, tt.hospitalID, tt.fleetID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
