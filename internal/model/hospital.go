package model

import "time"

type Hospital struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Address           *string   `json:"address" db:"address"`
	ContactPhone      *string   `json:"contact_phone" db:"contact_phone"`
	EmergencyServices bool      `json:"emergency_services" db:"emergency_services"`
	TotalBeds         *int      `json:"total_beds" db:"total_beds"`
	AvailableBeds     *int      `json:"available_beds" db:"available_beds"`
	Status            string    `json:"status" db:"status"`
	Metadata          RawJSON   `json:"metadata,omitempty" db:"metadata"`
	CreatedBy         *int64    `json:"created_by" db:"created_by"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type Fleet struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	CreatedBy    *int64    `json:"created_by" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
