package analysis

import (
	"fmt"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// Cost thresholds (monthly-equivalent dollars) and assumed saving rates for
// the recommendation rules.
const (
	streamingConsolidationRate = 0.3
	highCostReviewThreshold    = 20.0
	highCostReviewRate         = 0.5
	annualSwitchThreshold      = 10.0
	annualSwitchRate           = 0.2
)

// generateRecommendations evaluates the recommendation rules. Each rule is
// independent; a subscription can appear in several recommendations.
func generateRecommendations(subs []*models.Subscription, categories *CategoryBreakdown) []Recommendation {
	recs := []Recommendation{}

	// Streaming consolidation: more than two active streaming services.
	if streaming := categories.Get(types.CategoryStreaming); streaming != nil && streaming.Count > 2 {
		recs = append(recs, Recommendation{
			Type:             RecommendationTypeOptimization,
			Title:            "Streaming Service Consolidation",
			Message:          fmt.Sprintf("You have %d streaming services costing $%.2f/month. Consider rotating services or using family plans.", streaming.Count, streaming.TotalMonthly),
			PotentialSavings: streaming.TotalMonthly * streamingConsolidationRate,
			Action:           "review_streaming",
		})
	}

	// Per-subscription review of anything above the monthly cost threshold.
	for _, s := range subs {
		if !s.IsActive {
			continue
		}
		monthly := MonthlyAmount(s.Amount, s.BillingCycle)
		if monthly <= highCostReviewThreshold {
			continue
		}
		recs = append(recs, Recommendation{
			Type:             RecommendationTypeReview,
			Title:            fmt.Sprintf("Review %s", s.Name),
			Message:          fmt.Sprintf("%s costs $%.2f/month. Consider if you're getting full value.", s.Name, monthly),
			PotentialSavings: monthly * highCostReviewRate,
			Action:           "review_subscription",
			SubscriptionID:   s.ID,
		})
	}

	// Annual switch: monthly billing above the amount threshold, assuming a
	// 20% annual-plan discount.
	for _, s := range subs {
		if !s.IsActive || s.BillingCycle != types.BillingCycleMonthly || s.Amount <= annualSwitchThreshold {
			continue
		}
		saving := s.Amount * annualSwitchRate
		recs = append(recs, Recommendation{
			Type:             RecommendationTypeSavings,
			Title:            fmt.Sprintf("Annual Plan for %s", s.Name),
			Message:          fmt.Sprintf("Switch to annual billing for %s to save ~$%.2f/year.", s.Name, saving),
			PotentialSavings: saving,
			Action:           "switch_to_annual",
			SubscriptionID:   s.ID,
		})
	}

	return recs
}
