package auth

import (
	"context"
	"log/slog"
)

// Notifier enqueues outbound email for asynchronous, best-effort delivery.
// Implementations must not block on actual delivery; the auth service logs
// and swallows enqueue errors so notification failures never fail a request.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// LogNotifier drops messages after logging them. It stands in when no mail
// worker is configured, keeping registration and reset flows functional.
type LogNotifier struct {
	Logger *slog.Logger
}

// SendEmail logs the message instead of delivering it.
func (n LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	if n.Logger != nil {
		n.Logger.Info("mail delivery skipped", slog.String("to", to), slog.String("subject", subject))
	}
	return nil
}
