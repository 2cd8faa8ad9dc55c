package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

func TestSavings_DuplicateNamesCaseInsensitive(t *testing.T) {
	a := sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly)
	b := sub("netflix", types.CategoryStreaming, 10, types.BillingCycleMonthly)
	b.ID = "id-netflix-2"
	res := Analyze([]*models.Subscription{a, b}, time.Now())

	require.Len(t, res.SavingsOpportunities, 1)
	op := res.SavingsOpportunities[0]
	require.Equal(t, RecommendationTypeDuplicate, op.Type)
	require.Equal(t, "Potential Duplicate Services", op.Title)
	require.InDelta(t, 15, op.PotentialSavings, 1e-9)
	require.Equal(t, "review_duplicates", op.Action)
}

func TestSavings_SingleDuplicateOpportunityForManyPairs(t *testing.T) {
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly),
		sub("NETFLIX", types.CategoryStreaming, 10, types.BillingCycleMonthly),
		sub("Spotify", types.CategoryMusic, 10, types.BillingCycleMonthly),
		sub("spotify", types.CategoryMusic, 11, types.BillingCycleMonthly),
	}
	for i, s := range subs {
		s.ID = string(rune('a' + i))
	}
	res := Analyze(subs, time.Now())

	duplicates := 0
	for _, op := range res.SavingsOpportunities {
		if op.Type == RecommendationTypeDuplicate {
			duplicates++
		}
	}
	require.Equal(t, 1, duplicates)
}

func TestSavings_InactiveDuplicateDoesNotCount(t *testing.T) {
	a := sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly)
	b := sub("netflix", types.CategoryStreaming, 10, types.BillingCycleMonthly)
	b.ID = "id-netflix-2"
	b.IsActive = false
	res := Analyze([]*models.Subscription{a, b}, time.Now())

	require.Empty(t, res.SavingsOpportunities)
}

func TestSavings_HighCostAlternative(t *testing.T) {
	subs := []*models.Subscription{
		sub("Peloton", types.CategoryFitness, 44, types.BillingCycleMonthly),
		sub("Spotify", types.CategoryMusic, 11, types.BillingCycleMonthly),
	}
	res := Analyze(subs, time.Now())

	require.Len(t, res.SavingsOpportunities, 1)
	op := res.SavingsOpportunities[0]
	require.Equal(t, RecommendationTypeHighCost, op.Type)
	require.Equal(t, "High-Cost Service: Peloton", op.Title)
	require.InDelta(t, 44*0.4, op.PotentialSavings, 1e-9)
	require.Equal(t, "id-Peloton", op.SubscriptionID)
}

func TestSavings_ThresholdIsExclusive(t *testing.T) {
	subs := []*models.Subscription{sub("Gym", types.CategoryFitness, 30, types.BillingCycleMonthly)}
	res := Analyze(subs, time.Now())

	require.Empty(t, res.SavingsOpportunities)
}

// The cost rules deliberately surface the same subscription in both
// Recommendations and SavingsOpportunities.
func TestSavings_OverlapsWithRecommendations(t *testing.T) {
	subs := []*models.Subscription{sub("Adobe CC", types.CategorySoftware, 54.99, types.BillingCycleMonthly)}
	res := Analyze(subs, time.Now())

	var review, highCost bool
	for _, rec := range res.Recommendations {
		if rec.Type == RecommendationTypeReview && rec.SubscriptionID == "id-Adobe CC" {
			review = true
		}
	}
	for _, op := range res.SavingsOpportunities {
		if op.Type == RecommendationTypeHighCost && op.SubscriptionID == "id-Adobe CC" {
			highCost = true
		}
	}
	require.True(t, review)
	require.True(t, highCost)
}
