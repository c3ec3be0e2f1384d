package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/fonsecabarber/barber-api/internal/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Service interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPService delivers plain-text mail through a single SMTP relay.
type SMTPService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.NotifyConfig) *SMTPService {
	return &SMTPService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (s *SMTPService) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.compose(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPService) compose(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}
