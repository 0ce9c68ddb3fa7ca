package approval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/internal/service/audit"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type stubApprovalRepo struct {
	repository.ApprovalRepository

	row *model.AmbulanceApproval
}

func (s *stubApprovalRepo) Approve(_ context.Context, _ int64, approvedBy *int64) (*model.AmbulanceApproval, error) {
	s.row.Status = model.ApprovalStatusApproved
	s.row.ApprovedBy = approvedBy
	return s.row, nil
}

func (s *stubApprovalRepo) Reject(_ context.Context, _ int64, approvedBy *int64, reason *string) (*model.AmbulanceApproval, error) {
	s.row.Status = model.ApprovalStatusRejected
	s.row.ApprovedBy = approvedBy
	s.row.Reason = reason
	return s.row, nil
}

type stubUserRepo struct {
	repository.UserRepository

	users map[int64]*model.User
}

func (s *stubUserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

type stubAmbulanceRepo struct {
	repository.AmbulanceRepository
}

func (stubAmbulanceRepo) Get(context.Context, int64) (*model.Ambulance, error) {
	return &model.Ambulance{ID: 3, Code: "AMB-3"}, nil
}

type noopAuditRepo struct {
	repository.AuditRepository
}

func (noopAuditRepo) Create(context.Context, *model.AuditLog) error { return nil }

type sentDecision struct {
	to       string
	code     string
	decision string
}

// recordingEmail pushes decision notices onto a channel so tests can
// wait for the detached send.
type recordingEmail struct {
	decisions chan sentDecision
}

func (r *recordingEmail) SendApprovalDecision(_ context.Context, to, ambulanceCode, decision string) error {
	r.decisions <- sentDecision{to: to, code: ambulanceCode, decision: decision}
	return nil
}

func (r *recordingEmail) SendConnectionRequested(context.Context, string, string, string) error {
	return nil
}

func (r *recordingEmail) SendCustom(context.Context, string, string, string) error { return nil }

func i64(v int64) *int64 { return &v }

func newDecisionService(mailer *recordingEmail) *Service {
	log := logger.NewLogger(nil)
	repo := &stubApprovalRepo{row: &model.AmbulanceApproval{
		ID: 1, AmbulanceID: 3, Status: model.ApprovalStatusPending, RequestedBy: i64(8),
	}}
	users := &stubUserRepo{users: map[int64]*model.User{
		8: {ID: 8, Email: "requester@city.example"},
	}}
	return NewService(repo, stubAmbulanceRepo{}, users, mailer, audit.NewService(noopAuditRepo{}, log), log)
}

func waitDecision(t *testing.T, mailer *recordingEmail) sentDecision {
	t.Helper()
	select {
	case d := <-mailer.decisions:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("no decision email sent")
		return sentDecision{}
	}
}

func TestApproveNotifiesRequester(t *testing.T) {
	mailer := &recordingEmail{decisions: make(chan sentDecision, 1)}
	svc := newDecisionService(mailer)

	approval, err := svc.Approve(context.Background(), &model.Principal{ID: 2, Role: model.RoleSuperadmin}, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusApproved, approval.Status)

	sent := waitDecision(t, mailer)
	assert.Equal(t, "requester@city.example", sent.to)
	assert.Equal(t, "AMB-3", sent.code)
	assert.Equal(t, "approved", sent.decision)
}

func TestRejectNotifiesRequester(t *testing.T) {
	mailer := &recordingEmail{decisions: make(chan sentDecision, 1)}
	svc := newDecisionService(mailer)

	reason := "duplicate registration"
	approval, err := svc.Reject(context.Background(), &model.Principal{ID: 2, Role: model.RoleSuperadmin}, 1, &reason)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusRejected, approval.Status)

	sent := waitDecision(t, mailer)
	assert.Equal(t, "rejected", sent.decision)
}
