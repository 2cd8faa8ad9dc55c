package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/logctx"
	"github.com/subtrackr/subtrackr/pkg/metrics"
)

// resultTTL bounds how stale a cached analysis may be. Subscription writes
// also drop the entry eagerly via InvalidateUser.
const resultTTL = time.Minute

type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	cache *ristretto.Cache
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) (*Service, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}
	return &Service{db: db, log: log, cache: cache}, nil
}

// AnalyzeUser loads the user's full subscription snapshot and computes the
// portfolio analysis. Results are cached briefly per user.
func (s *Service) AnalyzeUser(ctx context.Context, userID string) (*Result, error) {
	if v, ok := s.cache.Get(userID); ok {
		if r, ok := v.(*Result); ok {
			return r, nil
		}
	}

	start := time.Now()
	var subs []*models.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	result := Analyze(subs, time.Now())
	metrics.ObserveAnalysisDuration(time.Since(start))
	logctx.FromCtx(ctx, s.log).Debugw("analysis computed", "user_id", userID, "subscriptions", len(subs))

	s.cache.SetWithTTL(userID, result, 1, resultTTL)
	return result, nil
}

// InvalidateUser drops the cached analysis after a subscription write.
func (s *Service) InvalidateUser(userID string) {
	s.cache.Del(userID)
}

// HealthSummary condenses the analysis into the dashboard health card.
type HealthSummary struct {
	Score               int     `json:"score"`
	Level               string  `json:"level"`
	MonthlySpending     float64 `json:"monthly_spending"`
	YearlySpending      float64 `json:"yearly_spending"`
	ActiveSubscriptions int     `json:"active_subscriptions"`
	TopCategory         string  `json:"top_category"`
}

func (s *Service) HealthSummary(ctx context.Context, userID string) (*HealthSummary, error) {
	r, err := s.AnalyzeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, c := range r.Categories.Categories() {
		active += r.Categories.Get(c).Count
	}
	top := "none"
	if t, ok := topCategory(r.Categories); ok {
		top = string(t)
	}

	return &HealthSummary{
		Score:               r.HealthScore,
		Level:               healthLevel(r.HealthScore),
		MonthlySpending:     r.MonthlySpending,
		YearlySpending:      r.YearlySpending,
		ActiveSubscriptions: active,
		TopCategory:         top,
	}, nil
}

func healthLevel(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "poor"
	}
}

// SavingsSummary totals the potential savings across both lists.
type SavingsSummary struct {
	Opportunities              []Recommendation `json:"opportunities"`
	Recommendations            []Recommendation `json:"recommendations"`
	TotalPotentialSavings      float64          `json:"total_potential_savings"`
	MonthlySpending            float64          `json:"monthly_spending"`
	PotentialSavingsPercentage string           `json:"potential_savings_percentage"`
}

func (s *Service) SavingsSummary(ctx context.Context, userID string) (*SavingsSummary, error) {
	r, err := s.AnalyzeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, rec := range r.Recommendations {
		total += rec.PotentialSavings
	}
	for _, opp := range r.SavingsOpportunities {
		total += opp.PotentialSavings
	}

	pct := "0.0"
	if r.MonthlySpending > 0 {
		pct = fmt.Sprintf("%.1f", total/r.MonthlySpending*100)
	}

	return &SavingsSummary{
		Opportunities:              r.SavingsOpportunities,
		Recommendations:            r.Recommendations,
		TotalPotentialSavings:      total,
		MonthlySpending:            r.MonthlySpending,
		PotentialSavingsPercentage: pct,
	}, nil
}
