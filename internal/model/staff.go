package model

import "time"

// AssigneeType selects which staff relation an assignment targets.
type AssigneeType string

const (
	AssigneeTypeParamedic AssigneeType = "paramedic"
	AssigneeTypeDoctor    AssigneeType = "doctor"
)

func (t AssigneeType) Valid() bool {
	return t == AssigneeTypeParamedic || t == AssigneeTypeDoctor
}

// Paramedic is a staff row linked to a user account. The owner pair is
// mirrored on the user row; both must change together.
type Paramedic struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Code           *string   `json:"code" db:"code"`
	Name           *string   `json:"name" db:"name"`
	Qualifications RawJSON   `json:"qualifications" db:"qualifications"`
	Profile        RawJSON   `json:"profile" db:"profile"`
	HospitalID     *int64    `json:"hospital_id,omitempty" db:"hospital_id"`
	FleetID        *int64    `json:"fleet_id,omitempty" db:"fleet_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type Doctor struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	LicenseNo      *string   `json:"license_no" db:"license_no"`
	Specialization *string   `json:"specialization" db:"specialization"`
	Profile        RawJSON   `json:"profile" db:"profile"`
	HospitalID     *int64    `json:"hospital_id,omitempty" db:"hospital_id"`
	FleetID        *int64    `json:"fleet_id,omitempty" db:"fleet_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// StaffOwnership is the resolved hospital/fleet affiliation of a staff
// member, read through its linked user row.
type StaffOwnership struct {
	StaffID    int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	HospitalID *int64 `db:"hospital_id"`
	FleetID    *int64 `db:"fleet_id"`
}

// BelongsTo reports whether the staff member belongs to the given owner.
func (s StaffOwnership) BelongsTo(owner Owner) bool {
	switch owner.Type {
	case OwnerTypeHospital:
		return s.HospitalID != nil && *s.HospitalID == owner.ID
	case OwnerTypeFleet:
		return s.FleetID != nil && *s.FleetID == owner.ID
	}
	return false
}
