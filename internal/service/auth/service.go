package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	"github.com/bansalsd420/smart-ambulance-api/pkg/auth"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

var ErrInvalidCredentials = apperrors.Unauthorized("invalid email or password")

type Service struct {
	users repository.UserRepository
	jwt   auth.JWTService
}

func NewService(users repository.UserRepository, jwt auth.JWTService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login verifies the credentials and issues a bearer token. Lookup
// failures and password mismatches are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		Token: token,
		User: &model.SafeUser{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			HospitalID: user.HospitalID,
			FleetID:    user.FleetID,
			FullName:   user.FullName,
		},
	}, nil
}

// HashPassword derives the stored password hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
