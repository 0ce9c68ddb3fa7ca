package model

import "time"

// DeviceData is one telemetry sample reported by an ambulance device.
type DeviceData struct {
	ID          int64     `json:"id" db:"id"`
	AmbulanceID int64     `json:"ambulance_id" db:"ambulance_id"`
	DeviceID    *string   `json:"device_id" db:"device_id"`
	Payload     RawJSON   `json:"payload" db:"payload"`
	ReceivedAt  time.Time `json:"received_at" db:"received_at"`
}

// DeviceDataFilter bounds a telemetry window query.
type DeviceDataFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
