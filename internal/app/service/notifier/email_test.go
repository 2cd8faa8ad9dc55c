package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/subtrackr/subtrackr/pkg/config"
)

func TestNewEmailSender_DisabledWithoutCredentials(t *testing.T) {
	sender := NewEmailSender(&config.Config{}, zap.NewNop().Sugar())

	err := sender.SendEmail(context.Background(), "a@example.com", "subject", "body")
	require.ErrorIs(t, err, ErrChannelNotConfigured)
}

func TestNewEmailSender_FromDefaultsToUsername(t *testing.T) {
	cfg := &config.Config{}
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.Username = "noreply@example.com"
	cfg.SMTP.Password = "secret"

	sender := NewEmailSender(cfg, zap.NewNop().Sugar())
	smtpSender, ok := sender.(*SMTPSender)
	require.True(t, ok)
	require.Equal(t, "noreply@example.com", smtpSender.from)
}
