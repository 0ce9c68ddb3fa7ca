package model

import "time"

// AmbulanceStatus is the operational lifecycle of an ambulance.
type AmbulanceStatus string

const (
	AmbulanceStatusPendingApproval AmbulanceStatus = "pending_approval"
	AmbulanceStatusActive          AmbulanceStatus = "active"
	AmbulanceStatusSuspended       AmbulanceStatus = "suspended"
	AmbulanceStatusDisabled        AmbulanceStatus = "disabled"
)

func (s AmbulanceStatus) Valid() bool {
	switch s {
	case AmbulanceStatusPendingApproval, AmbulanceStatusActive, AmbulanceStatusSuspended, AmbulanceStatusDisabled:
		return true
	}
	return false
}

type Ambulance struct {
	ID        int64           `json:"id" db:"id"`
	Code      string          `json:"code" db:"code"`
	Name      *string         `json:"name" db:"name"`
	Owner                     // flattened to owner_type/owner_id in JSON
	Status    AmbulanceStatus `json:"status" db:"status"`
	DeviceIDs RawJSON         `json:"device_ids" db:"device_ids"`
	Metadata  RawJSON         `json:"metadata" db:"metadata"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`

	// Live counts of active assignments, populated on enriched reads.
	DoctorsCount    *int `json:"doctors_count,omitempty" db:"doctors_count"`
	ParamedicsCount *int `json:"paramedics_count,omitempty" db:"paramedics_count"`
}

// ambulanceRow flattens Owner for sqlx scanning.
type AmbulanceRow struct {
	ID              int64           `db:"id"`
	Code            string          `db:"code"`
	Name            *string         `db:"name"`
	OwnerType       OwnerType       `db:"owner_type"`
	OwnerID         int64           `db:"owner_id"`
	Status          AmbulanceStatus `db:"status"`
	DeviceIDs       RawJSON         `db:"device_ids"`
	Metadata        RawJSON         `db:"metadata"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	DoctorsCount    *int            `db:"doctors_count"`
	ParamedicsCount *int            `db:"paramedics_count"`
}

func (r *AmbulanceRow) Ambulance() *Ambulance {
	return &Ambulance{
		ID:              r.ID,
		Code:            r.Code,
		Name:            r.Name,
		Owner:           Owner{Type: r.OwnerType, ID: r.OwnerID},
		Status:          r.Status,
		DeviceIDs:       r.DeviceIDs,
		Metadata:        r.Metadata,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		DoctorsCount:    r.DoctorsCount,
		ParamedicsCount: r.ParamedicsCount,
	}
}

// AmbulanceFilter narrows list queries.
type AmbulanceFilter struct {
	OwnerType OwnerType
	OwnerID   int64
	Status    AmbulanceStatus
}
