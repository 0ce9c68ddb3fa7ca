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

type onboardingRepository struct {
	BaseRepository
}

func NewOnboardingRepository(db *sqlx.DB) repository.OnboardingRepository {
	return &onboardingRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *onboardingRepository) Create(ctx context.Context, ob *model.Onboarding, patient *model.Patient) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()

		if patient != nil {
			patient.CreatedAt = now
			patient.UpdatedAt = now
			if err := tx.QueryRowxContext(ctx, `
				INSERT INTO patients (patient_code, name, age, gender, contact, medical_history, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id
			`, patient.Code, patient.Name, patient.Age, patient.Gender, patient.Contact, patient.MedicalHistory,
				patient.CreatedAt, patient.UpdatedAt,
			).Scan(&patient.ID); err != nil {
				return fmt.Errorf("failed to create patient: %w", err)
			}
			ob.PatientID = patient.ID
		}

		ob.CreatedAt = now
		ob.UpdatedAt = now
		return tx.QueryRowxContext(ctx, `
			INSERT INTO onboardings (ambulance_id, patient_id, initiated_by, selected_hospital_id, status, notes, audit, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, ob.AmbulanceID, ob.PatientID, ob.InitiatedBy, ob.SelectedHospitalID, ob.Status, ob.Notes, ob.Audit,
			ob.CreatedAt, ob.UpdatedAt,
		).Scan(&ob.ID)
	})
}

func (r *onboardingRepository) Get(ctx context.Context, id int64) (*model.Onboarding, error) {
	var ob model.Onboarding
	if err := r.db.GetContext(ctx, &ob, `SELECT * FROM onboardings WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("onboarding")
		}
		return nil, fmt.Errorf("failed to get onboarding: %w", err)
	}
	return &ob, nil
}

func statusPlaceholders(from []model.OnboardingStatus, offset int) (string, []interface{}) {
	ph := make([]string, len(from))
	args := make([]interface{}, len(from))
	for i, s := range from {
		ph[i] = fmt.Sprintf("$%d", offset+i)
		args[i] = s
	}
	return strings.Join(ph, ", "), args
}

// UpdateStatusWhere is the guarded transition: if the current status is not
// in the source set the update matches no rows and the unchanged row is
// returned.
func (r *onboardingRepository) UpdateStatusWhere(ctx context.Context, id int64, to model.OnboardingStatus, from ...model.OnboardingStatus) (*model.Onboarding, error) {
	ph, fromArgs := statusPlaceholders(from, 4)
	query := fmt.Sprintf(
		`UPDATE onboardings SET status = $1, updated_at = $2 WHERE id = $3 AND status IN (%s)`, ph)
	args := append([]interface{}{to, time.Now(), id}, fromArgs...)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update onboarding status: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *onboardingRepository) Start(ctx context.Context, id int64) (*model.Onboarding, error) {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var lockedID int64
		if err := tx.QueryRowxContext(ctx,
			`SELECT id FROM onboardings WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound("onboarding")
			}
			return err
		}

		now := time.Now()
		_, err := tx.ExecContext(ctx, `
			UPDATE onboardings SET status = $1, start_time = $2, updated_at = $2 WHERE id = $3 AND status = $4
		`, model.OnboardingStatusInTransit, now, id, model.OnboardingStatusApproved)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *onboardingRepository) Offboard(ctx context.Context, id int64) (*model.Onboarding, error) {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		_, err := tx.ExecContext(ctx, `
			UPDATE onboardings SET status = $1, end_time = $2, updated_at = $2
			WHERE id = $3 AND status IN ($4, $5, $6)
		`, model.OnboardingStatusOffboarded, now, id,
			model.OnboardingStatusInTransit, model.OnboardingStatusApproved, model.OnboardingStatusRequested)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *onboardingRepository) GetActiveForAmbulance(ctx context.Context, ambulanceID int64) (*model.Onboarding, error) {
	var ob model.Onboarding
	err := r.db.GetContext(ctx, &ob, `
		SELECT * FROM onboardings
		WHERE ambulance_id = $1 AND status IN ($2, $3, $4)
		ORDER BY id DESC LIMIT 1
	`, ambulanceID,
		model.OnboardingStatusRequested, model.OnboardingStatusApproved, model.OnboardingStatusInTransit)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active onboarding: %w", err)
	}
	return &ob, nil
}

func (r *onboardingRepository) SetPrescription(ctx context.Context, id int64, prescription model.RawJSON) (*model.Onboarding, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE onboardings SET prescription = $1, updated_at = $2 WHERE id = $3
	`, prescription, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to set prescription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NotFound("onboarding")
	}
	return r.Get(ctx, id)
}
