package device

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

// Service ingests telemetry samples and stages a domain event for the
// outbox worker so downstream consumers see the data without coupling
// the ingest path to the broker.
type Service struct {
	repo   repository.DeviceRepository
	outbox repository.OutboxRepository
	log    *logger.Logger
}

func NewService(repo repository.DeviceRepository, outbox repository.OutboxRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, outbox: outbox, log: log}
}

func (s *Service) Ingest(ctx context.Context, ambulanceID int64, deviceID *string, payload model.RawJSON) (*model.DeviceData, error) {
	data := &model.DeviceData{
		AmbulanceID: ambulanceID,
		DeviceID:    deviceID,
		Payload:     payload,
		ReceivedAt:  time.Now(),
	}
	if err := s.repo.Insert(ctx, data); err != nil {
		return nil, err
	}

	event, err := json.Marshal(map[string]interface{}{
		"ambulance_id": ambulanceID,
		"device_id":    deviceID,
		"data_id":      data.ID,
		"received_at":  data.ReceivedAt,
	})
	if err == nil {
		err = s.outbox.Create(ctx, &model.OutboxEvent{
			EventType: "device.data_received",
			Payload:   event,
			Status:    model.OutboxStatusPending,
		})
	}
	if err != nil {
		// Telemetry is stored; losing the event only delays consumers.
		s.log.Warn("failed to stage device event", "ambulance_id", ambulanceID, "error", err.Error())
	}
	return data, nil
}

func (s *Service) ListForAmbulance(ctx context.Context, ambulanceID int64, filter model.DeviceDataFilter) ([]*model.DeviceData, error) {
	return s.repo.ListForAmbulance(ctx, ambulanceID, filter)
}
