package analysis

import (
	"time"

	"github.com/samber/lo"

	"github.com/subtrackr/subtrackr/internal/models"
)

// Analyze computes the full portfolio analysis for one user's subscription
// snapshot. It is a pure function of its inputs: the same snapshot and
// evaluation time always produce the same result.
func Analyze(subs []*models.Subscription, now time.Time) *Result {
	if len(subs) == 0 {
		return &Result{
			Categories:           NewCategoryBreakdown(),
			Insights:             []Insight{},
			Recommendations:      []Recommendation{},
			HealthScore:          100,
			SavingsOpportunities: []Recommendation{},
		}
	}

	categories := categoryBreakdown(subs)
	monthly := monthlySpending(subs)

	return &Result{
		TotalSpending:        totalSpending(subs),
		MonthlySpending:      monthly,
		YearlySpending:       yearlySpending(subs),
		Categories:           categories,
		Insights:             generateInsights(subs, monthly, categories, now),
		Recommendations:      generateRecommendations(subs, categories),
		HealthScore:          healthScore(subs),
		SavingsOpportunities: findSavingsOpportunities(subs),
	}
}

func activeOnly(subs []*models.Subscription) []*models.Subscription {
	return lo.Filter(subs, func(s *models.Subscription, _ int) bool { return s.IsActive })
}

// totalSpending sums amount x charges-per-year over active subscriptions.
// It intentionally uses the raw cycle multiplier rather than YearlyAmount;
// both figures are exposed to callers independently.
func totalSpending(subs []*models.Subscription) float64 {
	return lo.SumBy(activeOnly(subs), func(s *models.Subscription) float64 {
		return s.Amount * CycleMultiplier(s.BillingCycle)
	})
}

func monthlySpending(subs []*models.Subscription) float64 {
	return lo.SumBy(activeOnly(subs), func(s *models.Subscription) float64 {
		return MonthlyAmount(s.Amount, s.BillingCycle)
	})
}

func yearlySpending(subs []*models.Subscription) float64 {
	return lo.SumBy(activeOnly(subs), func(s *models.Subscription) float64 {
		return YearlyAmount(s.Amount, s.BillingCycle)
	})
}

// categoryBreakdown groups active subscriptions by category, accumulating
// count and monthly-equivalent spend. Group order is first occurrence.
func categoryBreakdown(subs []*models.Subscription) *CategoryBreakdown {
	b := NewCategoryBreakdown()
	for _, s := range subs {
		if !s.IsActive {
			continue
		}
		stats := b.Upsert(s.Category)
		stats.Count++
		stats.TotalMonthly += MonthlyAmount(s.Amount, s.BillingCycle)
		stats.Subscriptions = append(stats.Subscriptions, s)
	}
	return b
}

// healthScore is a bounded heuristic in [0, 100] summarizing spending risk
// and diversity. Deductions are cumulative; the trial bonus applies when any
// subscription, active or not, carries a trial end date.
func healthScore(subs []*models.Subscription) int {
	score := 100
	active := activeOnly(subs)

	monthly := monthlySpending(active)
	if monthly > 100 {
		score -= 20
	}
	if monthly > 200 {
		score -= 20
	}

	if len(active) > 10 {
		score -= 15
	}
	if len(active) > 15 {
		score -= 15
	}

	if categoryBreakdown(active).Len() < 3 {
		score -= 10
	}

	hasTrial := lo.SomeBy(subs, func(s *models.Subscription) bool { return s.TrialEndDate != nil })
	if hasTrial {
		score += 5
	}

	return max(0, min(100, score))
}
