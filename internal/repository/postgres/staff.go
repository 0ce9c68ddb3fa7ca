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

type staffRepository struct {
	BaseRepository
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *staffRepository) CreateParamedic(ctx context.Context, p *model.Paramedic) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	query := `
		INSERT INTO paramedics (user_id, code, name, qualifications, profile, hospital_id, fleet_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.UserID, p.Code, p.Name, p.Qualifications, p.Profile, p.HospitalID, p.FleetID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("paramedic already exists")
		}
		return fmt.Errorf("failed to create paramedic: %w", err)
	}
	return nil
}

func (r *staffRepository) GetParamedic(ctx context.Context, id int64) (*model.Paramedic, error) {
	var p model.Paramedic
	if err := r.db.GetContext(ctx, &p, `SELECT * FROM paramedics WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("paramedic")
		}
		return nil, fmt.Errorf("failed to get paramedic: %w", err)
	}
	return &p, nil
}

func (r *staffRepository) UpdateParamedic(ctx context.Context, p *model.Paramedic) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE paramedics SET code = $1, name = $2, qualifications = $3, profile = $4, updated_at = $5 WHERE id = $6
	`, p.Code, p.Name, p.Qualifications, p.Profile, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update paramedic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("paramedic")
	}
	return nil
}

func (r *staffRepository) ListParamedics(ctx context.Context, hospitalID, fleetID int64) ([]*model.Paramedic, error) {
	cond := []string{}
	args := []interface{}{}
	if hospitalID != 0 {
		args = append(args, hospitalID)
		cond = append(cond, fmt.Sprintf("u.hospital_id = $%d", len(args)))
	}
	if fleetID != 0 {
		args = append(args, fleetID)
		cond = append(cond, fmt.Sprintf("u.fleet_id = $%d", len(args)))
	}
	where := ""
	if len(cond) > 0 {
		where = "WHERE " + strings.Join(cond, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.user_id, p.code, p.name, p.qualifications, p.profile, p.created_at, p.updated_at,
			u.hospital_id, u.fleet_id
		FROM paramedics p JOIN users u ON u.id = p.user_id %s ORDER BY p.id DESC
	`, where)
	var paramedics []*model.Paramedic
	if err := r.db.SelectContext(ctx, &paramedics, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list paramedics: %w", err)
	}
	return paramedics, nil
}

func (r *staffRepository) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	query := `
		INSERT INTO doctors (user_id, license_no, specialization, profile, hospital_id, fleet_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		d.UserID, d.LicenseNo, d.Specialization, d.Profile, d.HospitalID, d.FleetID, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("doctor already exists")
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *staffRepository) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	var d model.Doctor
	if err := r.db.GetContext(ctx, &d, `SELECT * FROM doctors WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &d, nil
}

func (r *staffRepository) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	d.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE doctors SET license_no = $1, specialization = $2, profile = $3, updated_at = $4 WHERE id = $5
	`, d.LicenseNo, d.Specialization, d.Profile, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("doctor")
	}
	return nil
}

func (r *staffRepository) ListDoctors(ctx context.Context, hospitalID, fleetID int64) ([]*model.Doctor, error) {
	cond := []string{}
	args := []interface{}{}
	if hospitalID != 0 {
		args = append(args, hospitalID)
		cond = append(cond, fmt.Sprintf("u.hospital_id = $%d", len(args)))
	}
	if fleetID != 0 {
		args = append(args, fleetID)
		cond = append(cond, fmt.Sprintf("u.fleet_id = $%d", len(args)))
	}
	where := ""
	if len(cond) > 0 {
		where = "WHERE " + strings.Join(cond, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT d.id, d.user_id, d.license_no, d.specialization, d.profile, d.created_at, d.updated_at,
			u.hospital_id, u.fleet_id
		FROM doctors d JOIN users u ON u.id = d.user_id %s ORDER BY d.id DESC
	`, where)
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *staffRepository) GetOwnership(ctx context.Context, typ model.AssigneeType, id int64) (*model.StaffOwnership, error) {
	query := `
		SELECT p.id, p.user_id, u.hospital_id, u.fleet_id
		FROM paramedics p JOIN users u ON u.id = p.user_id WHERE p.id = $1
	`
	if typ == model.AssigneeTypeDoctor {
		query = `
			SELECT d.id, d.user_id, u.hospital_id, u.fleet_id
			FROM doctors d JOIN users u ON u.id = d.user_id WHERE d.id = $1
		`
	}
	var ownership model.StaffOwnership
	if err := r.db.GetContext(ctx, &ownership, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound(string(typ))
		}
		return nil, fmt.Errorf("failed to resolve staff ownership: %w", err)
	}
	return &ownership, nil
}

// UpdateOwner rewrites both the staff row and its linked user row. The two
// writes share a transaction so ownership can never half-change.
func (r *staffRepository) UpdateOwner(ctx context.Context, typ model.AssigneeType, id int64, owner model.Owner) error {
	table := "paramedics"
	if typ == model.AssigneeTypeDoctor {
		table = "doctors"
	}

	var hospitalID, fleetID *int64
	if owner.Type == model.OwnerTypeHospital {
		hospitalID = &owner.ID
	} else {
		fleetID = &owner.ID
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		var userID int64
		query := fmt.Sprintf(`
			UPDATE %s SET hospital_id = $1, fleet_id = $2, updated_at = $3 WHERE id = $4 RETURNING user_id
		`, table)
		if err := tx.QueryRowxContext(ctx, query, hospitalID, fleetID, now, id).Scan(&userID); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound(string(typ))
			}
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE users SET hospital_id = $1, fleet_id = $2, updated_at = $3 WHERE id = $4
		`, hospitalID, fleetID, now, userID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("linked user %d missing for %s %d", userID, typ, id)
		}
		return nil
	})
}
