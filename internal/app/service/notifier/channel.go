package notifier

import (
	"context"
	"errors"
)

// ErrChannelNotConfigured is returned by a delivery channel whose provider
// credentials are absent. It is a terminal failure for that channel only;
// the other channel of the same subscription is unaffected.
var ErrChannelNotConfigured = errors.New("delivery channel not configured")

// EmailSender delivers a rendered reminder over email. Implementations must
// honor context cancellation; the caller bounds every send with a timeout.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers a rendered reminder over SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// disabledEmail and disabledSMS stand in when no provider is configured, so
// callers always have a channel to call and failures surface uniformly.
type disabledEmail struct{}

func (disabledEmail) SendEmail(ctx context.Context, to, subject, body string) error {
	return ErrChannelNotConfigured
}

type disabledSMS struct{}

func (disabledSMS) SendSMS(ctx context.Context, to, body string) error {
	return ErrChannelNotConfigured
}
