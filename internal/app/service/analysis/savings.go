package analysis

import (
	"fmt"
	"strings"

	"github.com/subtrackr/subtrackr/internal/models"
)

const (
	// duplicateSavingsEstimate is a flat placeholder, not derived from the
	// duplicated subscriptions' actual amounts.
	duplicateSavingsEstimate = 15.0

	highCostAlternativeThreshold = 30.0
	highCostAlternativeRate      = 0.4
)

// findSavingsOpportunities evaluates the savings rules over active
// subscriptions. The high-cost rule intentionally overlaps with the
// recommendation rules; the two lists are separate channels.
func findSavingsOpportunities(subs []*models.Subscription) []Recommendation {
	opportunities := []Recommendation{}
	active := activeOnly(subs)

	// One generic opportunity when any case-insensitive duplicate name
	// exists, regardless of how many.
	if hasDuplicateNames(active) {
		opportunities = append(opportunities, Recommendation{
			Type:             RecommendationTypeDuplicate,
			Title:            "Potential Duplicate Services",
			Message:          "Found potential duplicate services. Review and cancel unused ones.",
			PotentialSavings: duplicateSavingsEstimate,
			Action:           "review_duplicates",
		})
	}

	for _, s := range active {
		monthly := MonthlyAmount(s.Amount, s.BillingCycle)
		if monthly <= highCostAlternativeThreshold {
			continue
		}
		opportunities = append(opportunities, Recommendation{
			Type:             RecommendationTypeHighCost,
			Title:            fmt.Sprintf("High-Cost Service: %s", s.Name),
			Message:          fmt.Sprintf("%s costs $%.2f/month. Look for alternatives or negotiate.", s.Name, monthly),
			PotentialSavings: monthly * highCostAlternativeRate,
			Action:           "review_high_cost",
			SubscriptionID:   s.ID,
		})
	}

	return opportunities
}

func hasDuplicateNames(subs []*models.Subscription) bool {
	seen := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		name := strings.ToLower(s.Name)
		if _, ok := seen[name]; ok {
			return true
		}
		seen[name] = struct{}{}
	}
	return false
}
