package access

import (
	"context"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

var ErrAccessDenied = apperrors.Forbidden("not authorized for this ambulance")

type Servicer interface {
	// Authorize loads the ambulance and evaluates the access rule with
	// fresh connection and onboarding-lock state. Returns the ambulance
	// on allow; a missing ambulance is a 404 before any policy check.
	Authorize(ctx context.Context, principal *model.Principal, ambulanceID int64) (*model.Ambulance, error)
	// AuthorizeAmbulance evaluates the rule for an already loaded row.
	AuthorizeAmbulance(ctx context.Context, principal *model.Principal, ambulance *model.Ambulance) error
}

type Service struct {
	ambulances  repository.AmbulanceRepository
	connections repository.ConnectionRepository
	onboardings repository.OnboardingRepository
}

func NewService(ambulances repository.AmbulanceRepository, connections repository.ConnectionRepository, onboardings repository.OnboardingRepository) *Service {
	return &Service{
		ambulances:  ambulances,
		connections: connections,
		onboardings: onboardings,
	}
}

func (s *Service) Authorize(ctx context.Context, principal *model.Principal, ambulanceID int64) (*model.Ambulance, error) {
	ambulance, err := s.ambulances.Get(ctx, ambulanceID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeAmbulance(ctx, principal, ambulance); err != nil {
		return nil, err
	}
	return ambulance, nil
}

func (s *Service) AuthorizeAmbulance(ctx context.Context, principal *model.Principal, ambulance *model.Ambulance) error {
	if principal == nil {
		return apperrors.Unauthorized("authentication required")
	}

	// Connection and lock state only matter for the fleet-owned branch
	// of the rule; skip the queries everywhere else.
	var (
		connected  bool
		onboarding *model.Onboarding
	)
	if principal.Role.HospitalAffiliated() &&
		ambulance.Owner.Type == model.OwnerTypeFleet &&
		principal.HospitalID != nil {
		var err error
		connected, err = s.connections.Connected(ctx, ambulance.ID, *principal.HospitalID)
		if err != nil {
			return err
		}
		if connected {
			onboarding, err = s.onboardings.GetActiveForAmbulance(ctx, ambulance.ID)
			if err != nil {
				return err
			}
		}
	}

	if !Decide(principal, ambulance, connected, onboarding) {
		return ErrAccessDenied
	}
	return nil
}
