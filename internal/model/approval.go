package model

import "time"

// ApprovalStatus tracks the vetting workflow of a newly created ambulance.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalRejectedOnDelete is the system reason written when an ambulance
// is deleted while its approval row is not yet rejected.
const ApprovalRejectedOnDelete = "Ambulance deleted"

type AmbulanceApproval struct {
	ID          int64          `json:"id" db:"id"`
	AmbulanceID int64          `json:"ambulance_id" db:"ambulance_id"`
	Status      ApprovalStatus `json:"approval_status" db:"approval_status"`
	RequestedBy *int64         `json:"requested_by" db:"requested_by"`
	ApprovedBy  *int64         `json:"approved_by" db:"approved_by"`
	Reason      *string        `json:"reason" db:"reason"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
