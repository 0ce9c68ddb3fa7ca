package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
)

type deviceRepository struct {
	BaseRepository
}

func NewDeviceRepository(db *sqlx.DB) repository.DeviceRepository {
	return &deviceRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *deviceRepository) Insert(ctx context.Context, data *model.DeviceData) error {
	data.ReceivedAt = time.Now()
	query := `
		INSERT INTO device_data (ambulance_id, device_id, payload, received_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		data.AmbulanceID, data.DeviceID, data.Payload, data.ReceivedAt,
	).Scan(&data.ID)
	if err != nil {
		return fmt.Errorf("failed to insert device data: %w", err)
	}
	return nil
}

func (r *deviceRepository) ListForAmbulance(ctx context.Context, ambulanceID int64, filter model.DeviceDataFilter) ([]*model.DeviceData, error) {
	cond := "WHERE ambulance_id = $1"
	args := []interface{}{ambulanceID}
	if filter.From != nil {
		args = append(args, *filter.From)
		cond += fmt.Sprintf(" AND received_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		cond += fmt.Sprintf(" AND received_at <= $%d", len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)

	var rows []*model.DeviceData
	query := fmt.Sprintf(`SELECT * FROM device_data %s ORDER BY id DESC LIMIT $%d`, cond, len(args))
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list device data: %w", err)
	}
	return rows, nil
}
