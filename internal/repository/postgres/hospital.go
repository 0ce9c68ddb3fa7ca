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

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *hospitalRepository) Create(ctx context.Context, h *model.Hospital) error {
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Status == "" {
		h.Status = "active"
	}
	query := `
		INSERT INTO hospitals (name, address, contact_phone, emergency_services, total_beds, available_beds, status, metadata, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		h.Name, h.Address, h.ContactPhone, h.EmergencyServices, h.TotalBeds, h.AvailableBeds,
		h.Status, h.Metadata, h.CreatedBy, h.CreatedAt, h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id int64) (*model.Hospital, error) {
	var h model.Hospital
	if err := r.db.GetContext(ctx, &h, `SELECT * FROM hospitals WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &h, nil
}

func (r *hospitalRepository) Update(ctx context.Context, h *model.Hospital) error {
	h.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE hospitals
		SET name = $1, address = $2, contact_phone = $3, emergency_services = $4, total_beds = $5, available_beds = $6, status = $7, metadata = $8, updated_at = $9
		WHERE id = $10
	`, h.Name, h.Address, h.ContactPhone, h.EmergencyServices, h.TotalBeds, h.AvailableBeds, h.Status, h.Metadata, h.UpdatedAt, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("hospital")
	}
	return nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, `SELECT * FROM hospitals ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM hospitals WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check hospital: %w", err)
	}
	return exists, nil
}

type fleetRepository struct {
	BaseRepository
}

func NewFleetRepository(db *sqlx.DB) repository.FleetRepository {
	return &fleetRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *fleetRepository) Create(ctx context.Context, f *model.Fleet) error {
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	query := `
		INSERT INTO fleets (name, contact_phone, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, f.Name, f.ContactPhone, f.CreatedBy, f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("failed to create fleet: %w", err)
	}
	return nil
}

func (r *fleetRepository) Get(ctx context.Context, id int64) (*model.Fleet, error) {
	var f model.Fleet
	if err := r.db.GetContext(ctx, &f, `SELECT * FROM fleets WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("fleet")
		}
		return nil, fmt.Errorf("failed to get fleet: %w", err)
	}
	return &f, nil
}

func (r *fleetRepository) Update(ctx context.Context, f *model.Fleet) error {
	f.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE fleets SET name = $1, contact_phone = $2, updated_at = $3 WHERE id = $4
	`, f.Name, f.ContactPhone, f.UpdatedAt, f.ID)
	if err != nil {
		return fmt.Errorf("failed to update fleet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("fleet")
	}
	return nil
}

func (r *fleetRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM fleets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fleet: %w", err)
	}
	return nil
}

func (r *fleetRepository) List(ctx context.Context) ([]*model.Fleet, error) {
	var fleets []*model.Fleet
	if err := r.db.SelectContext(ctx, &fleets, `SELECT * FROM fleets ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list fleets: %w", err)
	}
	return fleets, nil
}

func (r *fleetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM fleets WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check fleet: %w", err)
	}
	return exists, nil
}
