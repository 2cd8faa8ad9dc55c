package subscription

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/subtrackr/subtrackr/internal/app/service/analysis"
	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// upcomingWindow and upcomingLimit bound the "upcoming renewals" list on the
// overview card.
const (
	upcomingWindowDays = 30
	upcomingLimit      = 10
)

type OverviewTotals struct {
	TotalMonthly float64 `json:"total_monthly"`
	TotalYearly  float64 `json:"total_yearly"`
	Count        int     `json:"count"`
}

type CategoryStat struct {
	Category    types.Category `json:"category"`
	Count       int            `json:"count"`
	TotalAmount float64        `json:"total_amount"`
}

type Overview struct {
	Totals           OverviewTotals         `json:"overview"`
	CategoryStats    []CategoryStat         `json:"category_stats"`
	UpcomingRenewals []*models.Subscription `json:"upcoming_renewals"`
}

// Overview summarizes the user's active subscriptions: normalized totals,
// per-category raw amounts sorted by spend, and the next renewals.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	var active []*models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&active).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	totals := OverviewTotals{Count: len(active)}
	for _, sub := range active {
		totals.TotalMonthly += analysis.MonthlyAmount(sub.Amount, sub.BillingCycle)
		totals.TotalYearly += analysis.YearlyAmount(sub.Amount, sub.BillingCycle)
	}

	grouped := lo.GroupBy(active, func(sub *models.Subscription) types.Category { return sub.Category })
	stats := lo.MapToSlice(grouped, func(c types.Category, subs []*models.Subscription) CategoryStat {
		return CategoryStat{
			Category:    c,
			Count:       len(subs),
			TotalAmount: lo.SumBy(subs, func(sub *models.Subscription) float64 { return sub.Amount }),
		}
	})
	// highest raw spend first
	sort.Slice(stats, func(i, j int) bool { return stats[i].TotalAmount > stats[j].TotalAmount })

	deadline := time.Now().AddDate(0, 0, upcomingWindowDays)
	upcoming := lo.Filter(active, func(sub *models.Subscription, _ int) bool {
		return !sub.NextBillingDate.After(deadline)
	})
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].NextBillingDate.Before(upcoming[j].NextBillingDate) })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	return &Overview{Totals: totals, CategoryStats: stats, UpcomingRenewals: upcoming}, nil
}
