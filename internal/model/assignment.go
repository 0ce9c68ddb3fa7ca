package model

import "time"

// Assignment links one staff member to one ambulance. Removal is a soft
// delete: RemovedAt is stamped and the row is kept for history.
type Assignment struct {
	ID          int64        `json:"id" db:"id"`
	AmbulanceID int64        `json:"ambulance_id" db:"ambulance_id"`
	AssigneeID  int64        `json:"assignee_id" db:"assignee_id"`
	Type        AssigneeType `json:"assignee_type" db:"assignee_type"`
	AssignedAt  time.Time    `json:"assigned_at" db:"assigned_at"`
	RemovedAt   *time.Time   `json:"removed_at" db:"removed_at"`
	AssignedBy  *int64       `json:"assigned_by" db:"assigned_by"`
	Metadata    RawJSON      `json:"metadata,omitempty" db:"metadata"`

	// Display fields joined from the staff and user rows.
	Code      *string `json:"code,omitempty" db:"code"`
	Name      *string `json:"name,omitempty" db:"name"`
	UserEmail *string `json:"user_email,omitempty" db:"user_email"`
}

// Active reports whether the assignment is current.
func (a *Assignment) Active() bool {
	return a.RemovedAt == nil
}

// AssignmentResult is one entry of a batch assignment report.
type AssignmentResult struct {
	AssigneeID int64       `json:"assignee_id"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Assignment *Assignment `json:"assignment"`
}

// BatchAssignResponse is the aggregate envelope for batch assignment.
// RawResults keeps the unnormalized per-item outcomes for older clients.
type BatchAssignResponse struct {
	Results    []AssignmentResult `json:"results"`
	RawResults []AssignmentResult `json:"raw_results"`
	Ambulance  *Ambulance         `json:"ambulance"`
}

// ClearedAssignments reports how many active assignments a clear touched.
type ClearedAssignments struct {
	Paramedics int64 `json:"paramedics"`
	Doctors    int64 `json:"doctors"`
}
