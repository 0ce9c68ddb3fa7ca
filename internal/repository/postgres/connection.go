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

type connectionRepository struct {
	BaseRepository
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *connectionRepository) CreateRequest(ctx context.Context, req *model.ConnectionRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Status = model.ConnectionRequestPending
	query := `
		INSERT INTO connection_requests (ambulance_code, from_hospital_id, to_fleet_id, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		req.AmbulanceCode, req.FromHospitalID, req.ToFleetID, req.Status, req.RequestedBy, req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("failed to create connection request: %w", err)
	}
	return nil
}

func (r *connectionRepository) GetRequest(ctx context.Context, id int64) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	if err := r.db.GetContext(ctx, &req, `SELECT * FROM connection_requests WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("connection request")
		}
		return nil, fmt.Errorf("failed to get connection request: %w", err)
	}
	return &req, nil
}

func (r *connectionRepository) ListIncoming(ctx context.Context, toFleetID int64) ([]*model.ConnectionRequest, error) {
	var reqs []*model.ConnectionRequest
	if err := r.db.SelectContext(ctx, &reqs,
		`SELECT * FROM connection_requests WHERE to_fleet_id = $1 ORDER BY id DESC`, toFleetID); err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	return reqs, nil
}

func (r *connectionRepository) ApproveRequest(ctx context.Context, id int64, ambulanceID int64, respondedBy *int64) (*model.ConnectionRequest, error) {
	var req model.ConnectionRequest
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &req,
			`SELECT * FROM connection_requests WHERE id = $1 FOR UPDATE`, id); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.NotFound("connection request")
			}
			return err
		}

		// Already decided requests are returned unchanged.
		if req.Status != model.ConnectionRequestPending {
			return nil
		}

		now := time.Now()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ambulance_connections (ambulance_id, hospital_id, connected_by, status, created_at)
			VALUES ($1, $2, $3, 'connected', $4)
		`, ambulanceID, req.FromHospitalID, respondedBy, now); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE connection_requests SET status = $1, responded_by = $2, updated_at = $3 WHERE id = $4
		`, model.ConnectionRequestApproved, respondedBy, now, id); err != nil {
			return err
		}

		req.Status = model.ConnectionRequestApproved
		req.RespondedBy = respondedBy
		req.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *connectionRepository) RejectRequest(ctx context.Context, id int64, respondedBy *int64) (*model.ConnectionRequest, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE connection_requests SET status = $1, responded_by = $2, updated_at = $3 WHERE id = $4
	`, model.ConnectionRequestRejected, respondedBy, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reject connection request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.NotFound("connection request")
	}
	return r.GetRequest(ctx, id)
}

func (r *connectionRepository) ListConnections(ctx context.Context, hospitalID int64) ([]*model.AmbulanceConnection, error) {
	var conns []*model.AmbulanceConnection
	if err := r.db.SelectContext(ctx, &conns, `
		SELECT * FROM ambulance_connections WHERE hospital_id = $1 AND status = 'connected' ORDER BY id DESC
	`, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}

func (r *connectionRepository) Connected(ctx context.Context, ambulanceID, hospitalID int64) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM ambulance_connections
			WHERE ambulance_id = $1 AND hospital_id = $2 AND status = 'connected'
		)
	`, ambulanceID, hospitalID); err != nil {
		return false, fmt.Errorf("failed to check connection: %w", err)
	}
	return exists, nil
}
