package meeting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
)

// Token is an ephemeral credential for joining a telehealth call tied to
// an onboarding. Tokens are not persisted; the join service validates
// them independently.
type Token struct {
	Token     string    `json:"token"`
	RoomID    string    `json:"room_id"`
	JoinURL   string    `json:"join_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	baseURL string
	ttl     time.Duration
}

func NewService(baseURL string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{baseURL: baseURL, ttl: ttl}
}

// IssueToken mints a join token for the onboarding's call room.
func (s *Service) IssueToken(principal *model.Principal, onboardingID int64) *Token {
	token := uuid.NewString()
	room := fmt.Sprintf("onboarding-%d", onboardingID)
	return &Token{
		Token:     token,
		RoomID:    room,
		JoinURL:   fmt.Sprintf("%s/join/%s?token=%s", s.baseURL, room, token),
		ExpiresAt: time.Now().Add(s.ttl),
	}
}
