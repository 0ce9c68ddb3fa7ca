package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type ambulanceRepository struct {
	BaseRepository
}

func NewAmbulanceRepository(db *sqlx.DB) repository.AmbulanceRepository {
	return &ambulanceRepository{BaseRepository: NewBaseRepository(db)}
}

const ambulanceColumns = `id, code, name, owner_type, owner_id, status, device_ids, metadata, created_at, updated_at`

const ambulanceEnrichedQuery = `
	SELECT a.id, a.code, a.name, a.owner_type, a.owner_id, a.status, a.device_ids, a.metadata, a.created_at, a.updated_at,
		(SELECT COUNT(*) FROM ambulance_doctors ad WHERE ad.ambulance_id = a.id AND ad.removed_at IS NULL) AS doctors_count,
		(SELECT COUNT(*) FROM ambulance_paramedics ap WHERE ap.ambulance_id = a.id AND ap.removed_at IS NULL) AS paramedics_count
	FROM ambulances a WHERE a.id = $1
`

func (r *ambulanceRepository) Create(ctx context.Context, ambulance *model.Ambulance, requestedBy *int64) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		ambulance.CreatedAt = now
		ambulance.UpdatedAt = now

		query := `
			INSERT INTO ambulances (code, name, owner_type, owner_id, status, device_ids, metadata, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		if err := tx.QueryRowxContext(ctx, query,
			ambulance.Code,
			ambulance.Name,
			ambulance.Owner.Type,
			ambulance.Owner.ID,
			ambulance.Status,
			ambulance.DeviceIDs,
			ambulance.Metadata,
			ambulance.CreatedAt,
			ambulance.UpdatedAt,
		).Scan(&ambulance.ID); err != nil {
			return err
		}

		approvalQuery := `
			INSERT INTO ambulance_approvals (ambulance_id, requested_by, approval_status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.ExecContext(ctx, approvalQuery, ambulance.ID, requestedBy, model.ApprovalStatusPending, now, now)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("Ambulance code already exists")
		}
		return fmt.Errorf("failed to create ambulance: %w", err)
	}
	return nil
}

func (r *ambulanceRepository) Get(ctx context.Context, id int64) (*model.Ambulance, error) {
	var row model.AmbulanceRow
	query := fmt.Sprintf(`SELECT %s FROM ambulances WHERE id = $1`, ambulanceColumns)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("ambulance")
		}
		return nil, fmt.Errorf("failed to get ambulance: %w", err)
	}
	return row.Ambulance(), nil
}

func (r *ambulanceRepository) GetEnriched(ctx context.Context, id int64) (*model.Ambulance, error) {
	var row model.AmbulanceRow
	if err := r.db.GetContext(ctx, &row, ambulanceEnrichedQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("ambulance")
		}
		return nil, fmt.Errorf("failed to get ambulance: %w", err)
	}
	return row.Ambulance(), nil
}

func (r *ambulanceRepository) GetByCode(ctx context.Context, code string) (*model.Ambulance, error) {
	var row model.AmbulanceRow
	query := fmt.Sprintf(`SELECT %s FROM ambulances WHERE code = $1`, ambulanceColumns)
	if err := r.db.GetContext(ctx, &row, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("ambulance")
		}
		return nil, fmt.Errorf("failed to get ambulance by code: %w", err)
	}
	return row.Ambulance(), nil
}

func (r *ambulanceRepository) List(ctx context.Context, filter model.AmbulanceFilter) ([]*model.Ambulance, error) {
	cond := []string{}
	args := []interface{}{}
	if filter.OwnerType != "" {
		args = append(args, filter.OwnerType)
		cond = append(cond, fmt.Sprintf("owner_type = $%d", len(args)))
	}
	if filter.OwnerID != 0 {
		args = append(args, filter.OwnerID)
		cond = append(cond, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		cond = append(cond, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(cond) > 0 {
		where = "WHERE " + strings.Join(cond, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM ambulances %s ORDER BY id DESC`, ambulanceColumns, where)
	var rows []model.AmbulanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ambulances: %w", err)
	}

	ambulances := make([]*model.Ambulance, 0, len(rows))
	for i := range rows {
		ambulances = append(ambulances, rows[i].Ambulance())
	}
	return ambulances, nil
}

func (r *ambulanceRepository) Update(ctx context.Context, ambulance *model.Ambulance) error {
	query := `
		UPDATE ambulances
		SET name = $1, status = $2, device_ids = $3, metadata = $4, updated_at = $5
		WHERE id = $6
	`
	ambulance.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, query,
		ambulance.Name,
		ambulance.Status,
		ambulance.DeviceIDs,
		ambulance.Metadata,
		ambulance.UpdatedAt,
		ambulance.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ambulance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("ambulance")
	}
	return nil
}

// Delete force-rejects the approval history before removing the row so the
// workflow record survives the ambulance.
func (r *ambulanceRepository) Delete(ctx context.Context, id int64, deletedBy *int64) (int64, error) {
	var rejected int64
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var lockedID int64
		if err := tx.QueryRowxContext(ctx, `SELECT id FROM ambulances WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound("ambulance")
			}
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE ambulance_approvals
			SET approval_status = $1, reason = $2, approved_by = $3, updated_at = $4
			WHERE ambulance_id = $5 AND approval_status != $1
		`, model.ApprovalStatusRejected, model.ApprovalRejectedOnDelete, deletedBy, time.Now(), id)
		if err != nil {
			return err
		}
		rejected, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx, `DELETE FROM ambulances WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return rejected, nil
}

func (r *ambulanceRepository) ChangeOwner(ctx context.Context, id int64, owner model.Owner) (*model.ClearedAssignments, error) {
	cleared := &model.ClearedAssignments{}
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		res, err := tx.ExecContext(ctx, `
			UPDATE ambulances SET owner_type = $1, owner_id = $2, updated_at = $3 WHERE id = $4
		`, owner.Type, owner.ID, now, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("ambulance")
		}

		// Staff of the old owner are no longer valid for the new one.
		res, err = tx.ExecContext(ctx,
			`UPDATE ambulance_paramedics SET removed_at = $1 WHERE ambulance_id = $2 AND removed_at IS NULL`, now, id)
		if err != nil {
			return err
		}
		cleared.Paramedics, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx,
			`UPDATE ambulance_doctors SET removed_at = $1 WHERE ambulance_id = $2 AND removed_at IS NULL`, now, id)
		if err != nil {
			return err
		}
		cleared.Doctors, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cleared, nil
}
