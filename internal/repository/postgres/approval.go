package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type approvalRepository struct {
	BaseRepository
}

func NewApprovalRepository(db *sqlx.DB) repository.ApprovalRepository {
	return &approvalRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *approvalRepository) List(ctx context.Context, status model.ApprovalStatus) ([]*model.AmbulanceApproval, error) {
	var approvals []*model.AmbulanceApproval
	var err error
	if status != "" {
		err = r.db.SelectContext(ctx, &approvals,
			`SELECT * FROM ambulance_approvals WHERE approval_status = $1 ORDER BY id DESC`, status)
	} else {
		err = r.db.SelectContext(ctx, &approvals,
			`SELECT * FROM ambulance_approvals ORDER BY id DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

func (r *approvalRepository) Get(ctx context.Context, id int64) (*model.AmbulanceApproval, error) {
	var approval model.AmbulanceApproval
	if err := r.db.GetContext(ctx, &approval, `SELECT * FROM ambulance_approvals WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("approval")
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return &approval, nil
}

func (r *approvalRepository) Approve(ctx context.Context, id int64, approvedBy *int64) (*model.AmbulanceApproval, error) {
	var approval model.AmbulanceApproval
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &approval,
			`SELECT * FROM ambulance_approvals WHERE id = $1 FOR UPDATE`, id); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound("approval")
			}
			return err
		}

		// Idempotent: an approved record is returned as-is.
		if approval.Status == model.ApprovalStatusApproved {
			return nil
		}

		now := time.Now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE ambulance_approvals SET approval_status = $1, approved_by = $2, updated_at = $3 WHERE id = $4
		`, model.ApprovalStatusApproved, approvedBy, now, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE ambulances SET status = $1, updated_at = $2 WHERE id = $3
		`, model.AmbulanceStatusActive, now, approval.AmbulanceID); err != nil {
			return err
		}

		approval.Status = model.ApprovalStatusApproved
		approval.ApprovedBy = approvedBy
		approval.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) Reject(ctx context.Context, id int64, approvedBy *int64, reason *string) (*model.AmbulanceApproval, error) {
	var approval model.AmbulanceApproval
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &approval,
			`SELECT * FROM ambulance_approvals WHERE id = $1 FOR UPDATE`, id); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound("approval")
			}
			return err
		}

		now := time.Now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE ambulance_approvals SET approval_status = $1, approved_by = $2, reason = $3, updated_at = $4 WHERE id = $5
		`, model.ApprovalStatusRejected, approvedBy, reason, now, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE ambulances SET status = $1, updated_at = $2 WHERE id = $3
		`, model.AmbulanceStatusDisabled, now, approval.AmbulanceID); err != nil {
			return err
		}

		approval.Status = model.ApprovalStatusRejected
		approval.ApprovedBy = approvedBy
		approval.Reason = reason
		approval.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &approval, nil
}
