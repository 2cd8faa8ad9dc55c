package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/subtrackr/subtrackr/internal/app/service/subscription"
	"github.com/subtrackr/subtrackr/internal/app/service/user"
	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/config"
	"github.com/subtrackr/subtrackr/pkg/logctx"
	"github.com/subtrackr/subtrackr/pkg/metrics"
	"github.com/subtrackr/subtrackr/pkg/tool"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// ErrChannelDisabled is returned by SendTest when the requested channel is
// switched off in the user's preferences (or no phone number is on file).
var ErrChannelDisabled = errors.New("notification channel disabled for user")

// subscriptionStore and userStore are the collaborator slices the send
// paths need; the gorm-backed services satisfy them.
type subscriptionStore interface {
	FindDueWithin(ctx context.Context, start, end time.Time) ([]*models.Subscription, error)
	GetByID(ctx context.Context, userID, id string) (*models.Subscription, error)
}

type userStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type recorder interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Service runs the due-reminder sweep and the on-demand trigger. Every send
// attempt produces exactly one durable Notification record; one attempt's
// failure never aborts the others.
type Service struct {
	subs        subscriptionStore
	users       userStore
	store       recorder
	email       EmailSender
	sms         SMSSender
	log         *zap.SugaredLogger
	sendTimeout time.Duration
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, subs *subscription.Service, users *user.Service, store *Store, email EmailSender, sms SMSSender) *Service {
	return &Service{
		subs:        subs,
		users:       users,
		store:       store,
		email:       email,
		sms:         sms,
		log:         log,
		sendTimeout: cfg.Notifier.SendTimeout,
	}
}

// SweepResult reports what one sweep did.
type SweepResult struct {
	Processed     int                    `json:"processed"`
	Notifications []*models.Notification `json:"notifications"`
}

// RunDueSweep finds active subscriptions billing today and sends reminders
// over every channel the owning user has enabled. The window is the
// half-open [today, tomorrow) in local time; the ad-hoc due-soon query is a
// separate, caller-parameterized window and does not go through here.
func (s *Service) RunDueSweep(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	due, err := s.subs.FindDueWithin(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("due sweep query failed: %w", err)
	}

	result := &SweepResult{Processed: len(due)}
	for _, sub := range due {
		owner, err := s.users.GetByID(ctx, sub.UserID)
		if err != nil {
			// a missing owner is expected churn; anything else is the store failing
			if !errors.Is(err, user.ErrNotFound) {
				logctx.FromCtx(ctx, s.log).Errorw("user lookup failed during sweep",
					"user_id", sub.UserID, "subscription_id", sub.ID, "err", err)
			}
			continue
		}
		if !owner.IsActive {
			continue
		}

		message := RenderMessage(sub, DaysUntil(now, sub.NextBillingDate))
		prefs := owner.NotificationPrefs()

		if prefs.EmailNotifications {
			n := s.attempt(ctx, sub, owner.ID, types.NotificationTypeEmail, message, func(sendCtx context.Context) error {
				return s.email.SendEmail(sendCtx, owner.Email, "SubTrackr - Subscription Due", message)
			})
			result.Notifications = append(result.Notifications, n)
		}

		// the SMS attempt is independent of the email outcome
		if prefs.SmsNotifications && owner.Phone != "" {
			n := s.attempt(ctx, sub, owner.ID, types.NotificationTypeSMS, message, func(sendCtx context.Context) error {
				return s.sms.SendSMS(sendCtx, owner.Phone, message)
			})
			result.Notifications = append(result.Notifications, n)
		}
	}

	logctx.FromCtx(ctx, s.log).Infow("due sweep finished", "processed", result.Processed, "notifications", len(result.Notifications))
	return result, nil
}

// TriggerForSubscription sends reminders for one subscription immediately,
// outside the sweep, and returns the resulting records synchronously.
func (s *Service) TriggerForSubscription(ctx context.Context, userID, subscriptionID string) ([]*models.Notification, error) {
	sub, err := s.subs.GetByID(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs := owner.NotificationPrefs()
	notifications := []*models.Notification{}
	dueDate := sub.NextBillingDate.Format("1/2/2006")

	if prefs.EmailNotifications {
		message := fmt.Sprintf("Your subscription %q is due on %s. Amount: $%v", sub.Name, dueDate, sub.Amount)
		n := s.attempt(ctx, sub, owner.ID, types.NotificationTypeEmail, message, func(sendCtx context.Context) error {
			return s.email.SendEmail(sendCtx, owner.Email, "SubTrackr - Subscription Reminder", message)
		})
		notifications = append(notifications, n)
	}

	if prefs.SmsNotifications && owner.Phone != "" {
		message := fmt.Sprintf("SubTrackr: %s due %s. $%v", sub.Name, dueDate, sub.Amount)
		n := s.attempt(ctx, sub, owner.ID, types.NotificationTypeSMS, message, func(sendCtx context.Context) error {
			return s.sms.SendSMS(sendCtx, owner.Phone, message)
		})
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// SendTest sends an ad-hoc message over one channel, bypassing subscription
// lookup. Used by the preferences screen to verify a channel works.
func (s *Service) SendTest(ctx context.Context, userID string, channel types.NotificationType, message string) error {
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	prefs := owner.NotificationPrefs()

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	switch channel {
	case types.NotificationTypeEmail:
		if !prefs.EmailNotifications {
			return ErrChannelDisabled
		}
		return s.email.SendEmail(sendCtx, owner.Email, "SubTrackr Test Notification", message)
	case types.NotificationTypeSMS:
		if !prefs.SmsNotifications || owner.Phone == "" {
			return ErrChannelDisabled
		}
		return s.sms.SendSMS(sendCtx, owner.Phone, message)
	default:
		return fmt.Errorf("unsupported notification type %q", channel)
	}
}

// attempt performs one channel send and records the outcome. The record is
// created pending at attempt time and moved synchronously to sent or
// failed; channel errors are captured, never propagated.
func (s *Service) attempt(ctx context.Context, sub *models.Subscription, userID string, channel types.NotificationType, message string, send func(context.Context) error) *models.Notification {
	n := &models.Notification{
		ID:             tool.GenerateUUIDV7(),
		UserID:         userID,
		SubscriptionID: sub.ID,
		Type:           channel,
		Status:         types.NotificationStatusPending,
		Message:        message,
		ScheduledFor:   time.Now(),
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err := send(sendCtx)
	cancel()

	if err != nil {
		n.Status = types.NotificationStatusFailed
		n.Error = err.Error()
		metrics.IncNotificationFailed(string(channel))
		logctx.FromCtx(ctx, s.log).Warnw("notification delivery failed",
			"channel", channel, "subscription_id", sub.ID, "err", err)
	} else {
		now := time.Now()
		n.Status = types.NotificationStatusSent
		n.SentAt = &now
		metrics.IncNotificationSent(string(channel))
	}

	if err := s.store.Create(ctx, n); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("failed to persist notification record",
			"channel", channel, "subscription_id", sub.ID, "err", err)
	}
	return n
}
