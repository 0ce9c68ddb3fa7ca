package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

// JWTService signs and verifies the opaque bearer tokens carried on every
// authenticated route.
type JWTService interface {
	GenerateToken(user *model.User) (string, error)
	ValidateToken(token string) (*model.Principal, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

type claims struct {
	UserID     int64      `json:"id"`
	Role       model.Role `json:"role"`
	HospitalID *int64     `json:"hospital_id,omitempty"`
	FleetID    *int64     `json:"fleet_id,omitempty"`
	jwt.RegisteredClaims
}

func (s *jwtService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	c := claims{
		UserID:     user.ID,
		Role:       user.Role,
		HospitalID: user.HospitalID,
		FleetID:    user.FleetID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *jwtService) ValidateToken(token string) (*model.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &model.Principal{
		ID:         c.UserID,
		Role:       c.Role,
		HospitalID: c.HospitalID,
		FleetID:    c.FleetID,
	}, nil
}
