package repository

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

type AmbulanceRepository interface {
	// Create inserts the ambulance and its pending approval row in one
	// transaction.
	Create(ctx context.Context, ambulance *model.Ambulance, requestedBy *int64) error
	Get(ctx context.Context, id int64) (*model.Ambulance, error)
	// GetEnriched includes live active-assignment counts.
	GetEnriched(ctx context.Context, id int64) (*model.Ambulance, error)
	GetByCode(ctx context.Context, code string) (*model.Ambulance, error)
	List(ctx context.Context, filter model.AmbulanceFilter) ([]*model.Ambulance, error)
	Update(ctx context.Context, ambulance *model.Ambulance) error
	// Delete row-locks the ambulance, force-rejects any non-rejected
	// approval rows, then deletes; returns the approval rows touched.
	Delete(ctx context.Context, id int64, deletedBy *int64) (int64, error)
	// ChangeOwner swaps the owner pair and soft-clears all active
	// assignments in the same transaction.
	ChangeOwner(ctx context.Context, id int64, owner model.Owner) (*model.ClearedAssignments, error)
}

type ApprovalRepository interface {
	List(ctx context.Context, status model.ApprovalStatus) ([]*model.AmbulanceApproval, error)
	Get(ctx context.Context, id int64) (*model.AmbulanceApproval, error)
	// Approve is idempotent: an already-approved record is returned
	// unchanged. Otherwise the approval and the ambulance status flip
	// to approved/active atomically.
	Approve(ctx context.Context, id int64, approvedBy *int64) (*model.AmbulanceApproval, error)
	// Reject marks the record rejected and disables the ambulance.
	Reject(ctx context.Context, id int64, approvedBy *int64, reason *string) (*model.AmbulanceApproval, error)
}

type AssignmentRepository interface {
	// ActiveExists reports whether an active (removed_at IS NULL)
	// assignment exists for the pair.
	ActiveExists(ctx context.Context, ambulanceID int64, typ model.AssigneeType, assigneeID int64) (bool, error)
	// Insert creates the assignment and returns it enriched with staff
	// display fields.
	Insert(ctx context.Context, ambulanceID int64, typ model.AssigneeType, assigneeID int64, assignedBy *int64) (*model.Assignment, error)
	// Remove soft-deletes the active assignment with the id, trying the
	// paramedic relation first and the doctor relation second.
	Remove(ctx context.Context, id int64) error
	// ListActive unions both relations, most recent first.
	ListActive(ctx context.Context, ambulanceID int64) ([]*model.Assignment, error)
	// ClearActive stamps removed_at on every active assignment of both
	// kinds for the ambulance.
	ClearActive(ctx context.Context, ambulanceID int64) (*model.ClearedAssignments, error)
}

type StaffRepository interface {
	CreateParamedic(ctx context.Context, p *model.Paramedic) error
	GetParamedic(ctx context.Context, id int64) (*model.Paramedic, error)
	UpdateParamedic(ctx context.Context, p *model.Paramedic) error
	ListParamedics(ctx context.Context, hospitalID, fleetID int64) ([]*model.Paramedic, error)

	CreateDoctor(ctx context.Context, d *model.Doctor) error
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, d *model.Doctor) error
	ListDoctors(ctx context.Context, hospitalID, fleetID int64) ([]*model.Doctor, error)

	// GetOwnership resolves the staff member's owner through its linked
	// user row.
	GetOwnership(ctx context.Context, typ model.AssigneeType, id int64) (*model.StaffOwnership, error)
	// UpdateOwner rewrites the owner pair on the linked user row; the
	// staff row mirrors it through the join. Runs in one transaction so
	// the dual write cannot half-apply.
	UpdateOwner(ctx context.Context, typ model.AssigneeType, id int64, owner model.Owner) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
}

type HospitalRepository interface {
	Create(ctx context.Context, h *model.Hospital) error
	Get(ctx context.Context, id int64) (*model.Hospital, error)
	Update(ctx context.Context, h *model.Hospital) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Hospital, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type FleetRepository interface {
	Create(ctx context.Context, f *model.Fleet) error
	Get(ctx context.Context, id int64) (*model.Fleet, error)
	Update(ctx context.Context, f *model.Fleet) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Fleet, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type ConnectionRepository interface {
	CreateRequest(ctx context.Context, req *model.ConnectionRequest) error
	GetRequest(ctx context.Context, id int64) (*model.ConnectionRequest, error)
	ListIncoming(ctx context.Context, toFleetID int64) ([]*model.ConnectionRequest, error)
	// ApproveRequest row-locks the request; a non-pending request is
	// returned unchanged. Approval inserts the standing connection and
	// flips the request in one transaction.
	ApproveRequest(ctx context.Context, id int64, ambulanceID int64, respondedBy *int64) (*model.ConnectionRequest, error)
	RejectRequest(ctx context.Context, id int64, respondedBy *int64) (*model.ConnectionRequest, error)
	ListConnections(ctx context.Context, hospitalID int64) ([]*model.AmbulanceConnection, error)
	// Connected reports a standing connected link between the hospital
	// and the ambulance.
	Connected(ctx context.Context, ambulanceID, hospitalID int64) (bool, error)
}

type OnboardingRepository interface {
	// Create inserts the onboarding and, when patient is non-nil, the
	// patient row first, in one transaction.
	Create(ctx context.Context, ob *model.Onboarding, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Onboarding, error)
	// UpdateStatusWhere performs the guarded conditional transition and
	// returns the row as it stands afterwards, changed or not.
	UpdateStatusWhere(ctx context.Context, id int64, to model.OnboardingStatus, from ...model.OnboardingStatus) (*model.Onboarding, error)
	// Start row-locks the onboarding before the approved->in_transit
	// conditional update so concurrent starts cannot both win.
	Start(ctx context.Context, id int64) (*model.Onboarding, error)
	// Offboard stamps end_time with the terminal transition.
	Offboard(ctx context.Context, id int64) (*model.Onboarding, error)
	// GetActiveForAmbulance returns the most recent onboarding in an
	// active status, or nil.
	GetActiveForAmbulance(ctx context.Context, ambulanceID int64) (*model.Onboarding, error)
	SetPrescription(ctx context.Context, id int64, prescription model.RawJSON) (*model.Onboarding, error)
}

type PatientRepository interface {
	// Create generates a code from a fresh identifier when absent and
	// retries with a suffix on a unique-violation.
	Create(ctx context.Context, p *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	GetByCode(ctx context.Context, code string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
}

type AuditRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}

type DeviceRepository interface {
	Insert(ctx context.Context, data *model.DeviceData) error
	ListForAmbulance(ctx context.Context, ambulanceID int64, filter model.DeviceDataFilter) ([]*model.DeviceData, error)
}
