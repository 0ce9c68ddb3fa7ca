package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

func setupApprovalRepo(t *testing.T) (sqlmock.Sqlmock, repository.ApprovalRepository, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewApprovalRepository(sqlxDB)

	return mock, repo, func() { db.Close() }
}

func approvalRow(id, ambulanceID int64, status model.ApprovalStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "ambulance_id", "approval_status", "requested_by", "approved_by", "reason", "created_at", "updated_at",
	}).AddRow(id, ambulanceID, status, nil, nil, nil, now, now)
}

func TestApproveTransitionsApprovalAndAmbulance(t *testing.T) {
	mock, repo, cleanup := setupApprovalRepo(t)
	defer cleanup()

	approvedBy := int64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM ambulance_approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(approvalRow(1, 3, model.ApprovalStatusPending))
	mock.ExpectExec(`UPDATE ambulance_approvals SET approval_status = \$1`).
		WithArgs("approved", approvedBy, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE ambulances SET status = \$1`).
		WithArgs("active", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	approval, err := repo.Approve(context.Background(), 1, &approvedBy)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusApproved, approval.Status)
	require.NotNil(t, approval.ApprovedBy)
	assert.Equal(t, approvedBy, *approval.ApprovedBy)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveIsIdempotentForApprovedRecords(t *testing.T) {
	mock, repo, cleanup := setupApprovalRepo(t)
	defer cleanup()

	approvedBy := int64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM ambulance_approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(approvalRow(1, 3, model.ApprovalStatusApproved))
	mock.ExpectCommit()

	approval, err := repo.Approve(context.Background(), 1, &approvedBy)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusApproved, approval.Status)

	// No UPDATE statements may run for an already approved record.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveUnknownApprovalReturnsNotFound(t *testing.T) {
	mock, repo, cleanup := setupApprovalRepo(t)
	defer cleanup()

	approvedBy := int64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM ambulance_approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), 99, &approvedBy)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRecordsReason(t *testing.T) {
	mock, repo, cleanup := setupApprovalRepo(t)
	defer cleanup()

	approvedBy := int64(7)
	reason := "missing registration papers"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM ambulance_approvals WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnRows(approvalRow(2, 5, model.ApprovalStatusPending))
	mock.ExpectExec(`UPDATE ambulance_approvals SET approval_status = \$1`).
		WithArgs("rejected", approvedBy, reason, sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE ambulances SET status = \$1`).
		WithArgs("disabled", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	approval, err := repo.Reject(context.Background(), 2, &approvedBy, &reason)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusRejected, approval.Status)
	require.NotNil(t, approval.Reason)
	assert.Equal(t, reason, *approval.Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}
