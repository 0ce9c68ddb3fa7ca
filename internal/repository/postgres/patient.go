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

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db)}
}

// codeRetries bounds the collision-retry loop on generated patient codes.
const codeRetries = 3

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO patients (patient_code, name, age, gender, contact, medical_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	code := p.Code
	for attempt := 0; ; attempt++ {
		err := r.db.QueryRowxContext(ctx, query,
			code, p.Name, p.Age, p.Gender, p.Contact, p.MedicalHistory, p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID)
		if err == nil {
			p.Code = code
			return nil
		}
		if !isUniqueViolation(err) || attempt >= codeRetries {
			if isUniqueViolation(err) {
				return apperrors.Conflict("patient code already exists")
			}
			return fmt.Errorf("failed to create patient: %w", err)
		}
		code = fmt.Sprintf("%s-%d", p.Code, attempt+1)
	}
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) GetByCode(ctx context.Context, code string) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE patient_code = $1`, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient by code: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, `SELECT * FROM patients ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
