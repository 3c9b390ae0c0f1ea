package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
)

// MailerConfig collects SMTP settings for outbound mail.
type MailerConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// Mailer delivers queued transactional email over SMTP.
type Mailer struct {
	cfg    MailerConfig
	logger *slog.Logger
}

// NewMailer constructs a Mailer.
func NewMailer(cfg MailerConfig, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// HandleSendEmail processes TaskTypeSendEmail tasks. A payload that cannot be
// decoded is dropped; delivery failures are returned so asynq retries them.
func (m *Mailer) HandleSendEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		m.logger.Error("send email payload undecodable", slog.Any("error", err))
		return asynq.SkipRetry
	}
	if err := m.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		m.logger.Warn("send email failed",
			slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	m.logger.Info("email sent",
		slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return nil
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	msg := buildMessage(m.cfg.From, to, subject, body)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("jobs: smtp send: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
