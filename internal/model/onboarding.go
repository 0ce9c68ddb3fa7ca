package model

import "time"

// OnboardingStatus is the lifecycle of one patient transport.
type OnboardingStatus string

const (
	OnboardingStatusRequested  OnboardingStatus = "requested"
	OnboardingStatusApproved   OnboardingStatus = "approved"
	OnboardingStatusInTransit  OnboardingStatus = "in_transit"
	OnboardingStatusOffboarded OnboardingStatus = "offboarded"
	OnboardingStatusRejected   OnboardingStatus = "rejected"
)

// ActiveOnboardingStatuses are the states during which the onboarding
// participates in the access-policy hospital lock.
var ActiveOnboardingStatuses = []OnboardingStatus{
	OnboardingStatusRequested,
	OnboardingStatusApproved,
	OnboardingStatusInTransit,
}

type Onboarding struct {
	ID                 int64            `json:"id" db:"id"`
	AmbulanceID        int64            `json:"ambulance_id" db:"ambulance_id"`
	PatientID          int64            `json:"patient_id" db:"patient_id"`
	InitiatedBy        *int64           `json:"initiated_by" db:"initiated_by"`
	SelectedHospitalID *int64           `json:"selected_hospital_id" db:"selected_hospital_id"`
	Status             OnboardingStatus `json:"status" db:"status"`
	Notes              *string          `json:"notes" db:"notes"`
	Audit              RawJSON          `json:"audit,omitempty" db:"audit"`
	Prescription       RawJSON          `json:"prescription,omitempty" db:"prescription"`
	StartTime          *time.Time       `json:"start_time" db:"start_time"`
	EndTime            *time.Time       `json:"end_time" db:"end_time"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// InitialOnboardingStatus derives the creation state from the ambulance
// owner: fleet-owned transports need fleet approval, hospital-owned ones
// are auto-approved.
func InitialOnboardingStatus(ownerType OwnerType) OnboardingStatus {
	if ownerType == OwnerTypeFleet {
		return OnboardingStatusRequested
	}
	return OnboardingStatusApproved
}
