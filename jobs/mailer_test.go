package jobs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSendEmailTask(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{
		To:      "alice@example.com",
		Subject: "Reset your password",
		Body:    "click here",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())

	var payload SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "alice@example.com", payload.To)
	assert.Equal(t, "Reset your password", payload.Subject)
}

func TestHandleSendEmailBadPayloadSkipsRetry(t *testing.T) {
	mailer := NewMailer(MailerConfig{Host: "127.0.0.1", Port: 1025, From: "no-reply@taskforge.local"}, testLogger())

	task := asynq.NewTask(TaskTypeSendEmail, []byte("not-json"))
	err := mailer.HandleSendEmail(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleSendEmailDeliveryFailureIsRetryable(t *testing.T) {
	// Port 1 is never a listening SMTP server, so delivery fails and the
	// error must not be SkipRetry.
	mailer := NewMailer(MailerConfig{Host: "127.0.0.1", Port: 1, From: "no-reply@taskforge.local"}, testLogger())

	task, err := NewSendEmailTask(SendEmailPayload{To: "alice@example.com", Subject: "hi", Body: "hello"})
	require.NoError(t, err)

	err = mailer.HandleSendEmail(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("no-reply@taskforge.local", "alice@example.com", "Confirm your email", "click the link"))

	assert.True(t, strings.HasPrefix(msg, "From: no-reply@taskforge.local\r\n"))
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Confirm your email\r\n")

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, "Content-Type: text/plain")
	assert.Equal(t, "click the link\r\n", body)
}
