package model

import "time"

// Role is the authorization role carried in the JWT principal.
type Role string

const (
	RoleSuperadmin    Role = "superadmin"
	RoleHospitalAdmin Role = "hospital_admin"
	RoleHospitalUser  Role = "hospital_user"
	RoleFleetAdmin    Role = "fleet_admin"
	RoleDoctor        Role = "doctor"
	RoleParamedic     Role = "paramedic"
)

// HospitalAffiliated reports whether the role resolves ambulance access
// through a hospital id (directly owned or via a fleet connection).
func (r Role) HospitalAffiliated() bool {
	switch r {
	case RoleHospitalAdmin, RoleHospitalUser, RoleDoctor, RoleParamedic:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     *string   `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	HospitalID   *int64    `json:"hospital_id" db:"hospital_id"`
	FleetID      *int64    `json:"fleet_id" db:"fleet_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role       Role
	HospitalID int64
	FleetID    int64
}

// Principal is the authenticated caller decoded from the bearer token.
type Principal struct {
	ID         int64  `json:"id"`
	Role       Role   `json:"role"`
	HospitalID *int64 `json:"hospital_id,omitempty"`
	FleetID    *int64 `json:"fleet_id,omitempty"`
}

// TokenResponse is the login payload.
type TokenResponse struct {
	Token string    `json:"token"`
	User  *SafeUser `json:"user"`
}

// SafeUser is the user shape returned to clients after login.
type SafeUser struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	HospitalID *int64  `json:"hospital_id"`
	FleetID    *int64  `json:"fleet_id"`
	FullName   *string `json:"full_name"`
}
