package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type assignmentRepository struct {
	BaseRepository
}

func NewAssignmentRepository(db *sqlx.DB) repository.AssignmentRepository {
	return &assignmentRepository{BaseRepository: NewBaseRepository(db)}
}

func relationFor(typ model.AssigneeType) (table, fk string) {
	if typ == model.AssigneeTypeDoctor {
		return "ambulance_doctors", "doctor_id"
	}
	return "ambulance_paramedics", "paramedic_id"
}

func (r *assignmentRepository) ActiveExists(ctx context.Context, ambulanceID int64, typ model.AssigneeType, assigneeID int64) (bool, error) {
	table, fk := relationFor(typ)
	var exists bool
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE ambulance_id = $1 AND %s = $2 AND removed_at IS NULL)`,
		table, fk,
	)
	if err := r.db.GetContext(ctx, &exists, query, ambulanceID, assigneeID); err != nil {
		return false, fmt.Errorf("failed to check active assignment: %w", err)
	}
	return exists, nil
}

const paramedicAssignmentQuery = `
	SELECT ap.id, ap.ambulance_id, ap.paramedic_id AS assignee_id, ap.assigned_at, ap.removed_at, ap.assigned_by, ap.metadata,
		p.code AS code, p.name AS name, u.email AS user_email
	FROM ambulance_paramedics ap
	JOIN paramedics p ON p.id = ap.paramedic_id
	LEFT JOIN users u ON u.id = p.user_id
`

const doctorAssignmentQuery = `
	SELECT ad.id, ad.ambulance_id, ad.doctor_id AS assignee_id, ad.assigned_at, ad.removed_at, ad.assigned_by, ad.metadata,
		d.license_no AS code, d.specialization AS name, u.email AS user_email
	FROM ambulance_doctors ad
	JOIN doctors d ON d.id = ad.doctor_id
	LEFT JOIN users u ON u.id = d.user_id
`

func (r *assignmentRepository) Insert(ctx context.Context, ambulanceID int64, typ model.AssigneeType, assigneeID int64, assignedBy *int64) (*model.Assignment, error) {
	table, fk := relationFor(typ)
	var id int64
	query := fmt.Sprintf(
		`INSERT INTO %s (ambulance_id, %s, assigned_by, assigned_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		table, fk,
	)
	if err := r.db.QueryRowxContext(ctx, query, ambulanceID, assigneeID, assignedBy, time.Now()).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}

	enriched := paramedicAssignmentQuery + ` WHERE ap.id = $1`
	if typ == model.AssigneeTypeDoctor {
		enriched = doctorAssignmentQuery + ` WHERE ad.id = $1`
	}
	var assignment model.Assignment
	if err := r.db.GetContext(ctx, &assignment, enriched, id); err != nil {
		return nil, fmt.Errorf("failed to read assignment back: %w", err)
	}
	assignment.Type = typ
	return &assignment, nil
}

func (r *assignmentRepository) Remove(ctx context.Context, id int64) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE ambulance_paramedics SET removed_at = $1 WHERE id = $2 AND removed_at IS NULL`, now, id)
	if err != nil {
		return fmt.Errorf("failed to unassign paramedic: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	res, err = r.db.ExecContext(ctx,
		`UPDATE ambulance_doctors SET removed_at = $1 WHERE id = $2 AND removed_at IS NULL`, now, id)
	if err != nil {
		return fmt.Errorf("failed to unassign doctor: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return apperrors.NotFound("assignment")
}

func (r *assignmentRepository) ListActive(ctx context.Context, ambulanceID int64) ([]*model.Assignment, error) {
	var paramedics []*model.Assignment
	if err := r.db.SelectContext(ctx, &paramedics,
		paramedicAssignmentQuery+` WHERE ap.ambulance_id = $1 AND ap.removed_at IS NULL`, ambulanceID); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to list paramedic assignments: %w", err)
	}
	for _, a := range paramedics {
		a.Type = model.AssigneeTypeParamedic
	}

	var doctors []*model.Assignment
	if err := r.db.SelectContext(ctx, &doctors,
		doctorAssignmentQuery+` WHERE ad.ambulance_id = $1 AND ad.removed_at IS NULL`, ambulanceID); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to list doctor assignments: %w", err)
	}
	for _, a := range doctors {
		a.Type = model.AssigneeTypeDoctor
	}

	merged := append(paramedics, doctors...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID > merged[j].ID })
	return merged, nil
}

func (r *assignmentRepository) ClearActive(ctx context.Context, ambulanceID int64) (*model.ClearedAssignments, error) {
	cleared := &model.ClearedAssignments{}
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		res, err := tx.ExecContext(ctx,
			`UPDATE ambulance_paramedics SET removed_at = $1 WHERE ambulance_id = $2 AND removed_at IS NULL`, now, ambulanceID)
		if err != nil {
			return err
		}
		cleared.Paramedics, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx,
			`UPDATE ambulance_doctors SET removed_at = $1 WHERE ambulance_id = $2 AND removed_at IS NULL`, now, ambulanceID)
		if err != nil {
			return err
		}
		cleared.Doctors, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear assignments: %w", err)
	}
	return cleared, nil
}
