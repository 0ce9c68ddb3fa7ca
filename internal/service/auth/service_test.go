package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/internal/repository"
	pkgauth "github.com/bansalsd420/smart-ambulance-api/pkg/auth"
	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

type stubUserRepo struct {
	repository.UserRepository

	byEmail map[string]*model.User
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func newLoginService(t *testing.T, users ...*model.User) *Service {
	t.Helper()
	byEmail := make(map[string]*model.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return NewService(&stubUserRepo{byEmail: byEmail}, pkgauth.NewJWTService("test-secret", time.Hour))
}

func testUser(t *testing.T, email, password string, active bool) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &model.User{
		ID:           7,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleHospitalAdmin,
		IsActive:     active,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newLoginService(t, testUser(t, "admin@city.example", "s3cret-pass", true))

	resp, err := svc.Login(context.Background(), "admin@city.example", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, model.RoleHospitalAdmin, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newLoginService(t, testUser(t, "admin@city.example", "s3cret-pass", true))

	_, err := svc.Login(context.Background(), "admin@city.example", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newLoginService(t)

	_, err := svc.Login(context.Background(), "nobody@city.example", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc := newLoginService(t, testUser(t, "admin@city.example", "s3cret-pass", false))

	_, err := svc.Login(context.Background(), "admin@city.example", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
