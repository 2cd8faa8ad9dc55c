package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackr/subtrackr/internal/app/service/analysis"
	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/logctx"
	"github.com/subtrackr/subtrackr/pkg/tool"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// ErrNotFound is returned when a subscription does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("subscription not found")

type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	analyzer *analysis.Service
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, analyzer *analysis.Service) *Service {
	return &Service{db: db, log: log, analyzer: analyzer}
}

// ListQuery filters and sorts the subscription list. Zero values mean
// "no filter".
type ListQuery struct {
	Category  types.Category
	IsActive  *bool
	Search    string
	SortBy    string
	SortOrder string
}

var sortableColumns = map[string]bool{
	"next_billing_date": true,
	"name":              true,
	"amount":            true,
	"category":          true,
	"created_at":        true,
}

// List returns the user's subscriptions matching the query. Search is a
// case-insensitive substring match across name, description and notes.
func (s *Service) List(ctx context.Context, userID string, q ListQuery) ([]*models.Subscription, error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(notes) LIKE ?", pattern, pattern, pattern)
	}

	sortBy := q.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "next_billing_date"
	}
	order := "asc"
	if q.SortOrder == "desc" {
		order = "desc"
	}

	var subs []*models.Subscription
	if err := tx.Order(sortBy + " " + order).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// FindByUser returns every subscription of the user, active or not.
func (s *Service) FindByUser(ctx context.Context, userID string) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return subs, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *Service) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = tool.GenerateUUIDV7()
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	} else {
		sub.Currency = strings.ToUpper(sub.Currency)
	}
	if sub.Category == "" {
		sub.Category = types.CategoryOther
	}

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	s.analyzer.InvalidateUser(sub.UserID)
	logctx.FromCtx(ctx, s.log).Infow("subscription created", "user_id", sub.UserID, "subscription_id", sub.ID)
	return nil
}

// Update overwrites the mutable fields of an existing subscription. The
// caller supplies the full desired state; ownership is enforced by user id.
func (s *Service) Update(ctx context.Context, userID string, sub *models.Subscription) (*models.Subscription, error) {
	existing, err := s.GetByID(ctx, userID, sub.ID)
	if err != nil {
		return nil, err
	}

	sub.UserID = existing.UserID
	sub.CreatedAt = existing.CreatedAt
	// renewal accumulators are owned by Renew
	sub.TotalPaid = existing.TotalPaid
	sub.LastPaymentDate = existing.LastPaymentDate
	if sub.Currency == "" {
		sub.Currency = existing.Currency
	}

	if err := s.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	s.analyzer.InvalidateUser(userID)
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.analyzer.InvalidateUser(userID)
	return nil
}

// Renew advances the billing date by one cycle and rolls the payment into
// TotalPaid. This is the only write path for the renewal accumulators.
func (s *Service) Renew(ctx context.Context, userID, id string) (*models.Subscription, error) {
	sub, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub.NextBillingDate = sub.NextBillingDateAfterRenewal()
	sub.LastPaymentDate = &now
	sub.TotalPaid += sub.Amount

	if err := s.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}
	s.analyzer.InvalidateUser(userID)
	logctx.FromCtx(ctx, s.log).Infow("subscription renewed", "user_id", userID, "subscription_id", id, "next_billing_date", sub.NextBillingDate)
	return sub, nil
}

// FindDueWithin returns active subscriptions (any user) whose next billing
// date falls in [start, end). This is the sweep's half-open window; the
// user-facing due-soon view uses FindDueSoon instead.
func (s *Service) FindDueWithin(ctx context.Context, start, end time.Time) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND next_billing_date >= ? AND next_billing_date < ?", true, start, end).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due subscriptions: %w", err)
	}
	return subs, nil
}

// FindDueSoon returns the user's active subscriptions due within the next
// `days` days, soonest first. The day count is caller-supplied and
// independent of the sweep window.
func (s *Service) FindDueSoon(ctx context.Context, userID string, days int) ([]*models.Subscription, error) {
	deadline := time.Now().AddDate(0, 0, days)
	var subs []*models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND next_billing_date <= ?", userID, true, deadline).
		Order("next_billing_date asc").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due-soon subscriptions: %w", err)
	}
	return subs, nil
}
