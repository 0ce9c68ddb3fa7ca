package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/bansalsd420/smart-ambulance-api/pkg/logger"
)

type Service interface {
	SendApprovalDecision(ctx context.Context, to, ambulanceCode, decision string) error
	SendConnectionRequested(ctx context.Context, to, ambulanceCode, hospitalName string) error
	SendCustom(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

func NewService(cfg Config, log *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (s *smtpService) SendApprovalDecision(ctx context.Context, to, ambulanceCode, decision string) error {
	subject := fmt.Sprintf("Ambulance %s %s", ambulanceCode, decision)
	body := fmt.Sprintf("The registration request for ambulance %s has been %s.", ambulanceCode, decision)
	return s.SendCustom(ctx, to, subject, body)
}

func (s *smtpService) SendConnectionRequested(ctx context.Context, to, ambulanceCode, hospitalName string) error {
	subject := fmt.Sprintf("Connection request for ambulance %s", ambulanceCode)
	body := fmt.Sprintf("%s has requested a connection to ambulance %s. Review it in the fleet dashboard.", hospitalName, ambulanceCode)
	return s.SendCustom(ctx, to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	s.log.Debug("email sent", "to", to, "subject", subject)
	return nil
}

// NoopService satisfies Service without an SMTP backend. Used when mail
// settings are absent, typically in development and tests.
type NoopService struct {
	log *logger.Logger
}

func NewNoopService(log *logger.Logger) *NoopService {
	return &NoopService{log: log}
}

func (s *NoopService) SendApprovalDecision(ctx context.Context, to, ambulanceCode, decision string) error {
	s.log.Debug("email disabled, skipping approval notice", "to", to, "code", ambulanceCode)
	return nil
}

func (s *NoopService) SendConnectionRequested(ctx context.Context, to, ambulanceCode, hospitalName string) error {
	s.log.Debug("email disabled, skipping connection notice", "to", to, "code", ambulanceCode)
	return nil
}

func (s *NoopService) SendCustom(ctx context.Context, to, subject, body string) error {
	s.log.Debug("email disabled, skipping message", "to", to, "subject", subject)
	return nil
}
