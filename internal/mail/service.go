package mail

import (
	"context"
	"log/slog"
)

const (
	verifySubject  = "Verify Your Email"
	verifyTemplate = "confirm_mail"
)

type sender interface {
	Send(ctx context.Context, m Message) error
}

// Service wraps a sender and swallows its errors: callers only learn whether
// the message went out.
type Service struct {
	client sender
	log    *slog.Logger
}

func NewService(client sender, log *slog.Logger) *Service {
	return &Service{client: client, log: log}
}

func (s *Service) SendEmail(ctx context.Context, subject, template, to string, vars map[string]string) bool {
	err := s.client.Send(ctx, Message{
		To:       to,
		Subject:  subject,
		Template: template,
		Vars:     vars,
	})
	if err != nil {
		s.log.WarnContext(ctx, "send email failed", "template", template, "error", err)
		return false
	}
	return true
}

func (s *Service) SendVerificationEmail(ctx context.Context, email, code string) bool {
	return s.SendEmail(ctx, verifySubject, verifyTemplate, email, map[string]string{
		"code":     code,
		"username": email,
	})
}

// LogSender stands in for Mailgun when no credentials are configured. The
// one-time code is only written at debug level.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) LogSender {
	return LogSender{log: log}
}

func (s LogSender) SendVerificationEmail(ctx context.Context, email, code string) bool {
	s.log.InfoContext(ctx, "verification mail not sent, mailgun is not configured", "email", email)
	s.log.DebugContext(ctx, "verification code", "email", email, "code", code)
	return true
}
