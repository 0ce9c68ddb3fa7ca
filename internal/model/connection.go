package model

import "time"

// ConnectionRequestStatus is the lifecycle of a hospital's request to link
// to a fleet-owned ambulance.
type ConnectionRequestStatus string

const (
	ConnectionRequestPending  ConnectionRequestStatus = "pending"
	ConnectionRequestApproved ConnectionRequestStatus = "approved"
	ConnectionRequestRejected ConnectionRequestStatus = "rejected"
)

type ConnectionRequest struct {
	ID             int64                   `json:"id" db:"id"`
	AmbulanceCode  string                  `json:"ambulance_code" db:"ambulance_code"`
	FromHospitalID int64                   `json:"from_hospital_id" db:"from_hospital_id"`
	ToFleetID      int64                   `json:"to_fleet_id" db:"to_fleet_id"`
	Status         ConnectionRequestStatus `json:"status" db:"status"`
	RequestedBy    *int64                  `json:"requested_by" db:"requested_by"`
	RespondedBy    *int64                  `json:"responded_by" db:"responded_by"`
	CreatedAt      time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at" db:"updated_at"`
}

// AmbulanceConnection is the standing link the Access Policy consults for
// fleet-owned ambulances.
type AmbulanceConnection struct {
	ID          int64     `json:"id" db:"id"`
	AmbulanceID int64     `json:"ambulance_id" db:"ambulance_id"`
	HospitalID  int64     `json:"hospital_id" db:"hospital_id"`
	ConnectedBy *int64    `json:"connected_by" db:"connected_by"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
