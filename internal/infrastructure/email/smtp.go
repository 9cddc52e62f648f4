package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Config holds the SMTP relay settings for outgoing mail.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Validate reports whether the config is complete enough to send mail.
func (c Config) Validate() error {
	if c.Host == "" || c.Port == "" || c.From == "" {
		return errors.New("incomplete smtp configuration")
	}
	return nil
}

// SMTPSender delivers verification codes over a plain SMTP relay.
type SMTPSender struct {
	cfg Config
	log zerolog.Logger
}

func NewSMTPSender(cfg Config, log zerolog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) SendVerificationCode(_ context.Context, recipient, code string) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Your TailorHub verification code\r\n\r\nYour verification code is %s. It expires in 15 minutes.\r\n",
		recipient, code,
	))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{recipient}, msg); err != nil {
		s.log.Error().Err(err).Str("recipient", recipient).Msg("failed to send verification email")
		return errors.New("failed to send email")
	}

	s.log.Info().Str("recipient", recipient).Msg("verification email sent")
	return nil
}

// LogSender writes codes to the log instead of sending mail. Used in
// development when no SMTP relay is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerificationCode(_ context.Context, recipient, code string) error {
	s.log.Info().Str("recipient", recipient).Str("code", code).Msg("verification code (dev mode)")
	return nil
}
