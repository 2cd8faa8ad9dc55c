package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

func TestInsights_HighMonthlySpending(t *testing.T) {
	subs := []*models.Subscription{sub("AWS", types.CategorySoftware, 150, types.BillingCycleMonthly)}
	res := Analyze(subs, time.Now())

	require.NotEmpty(t, res.Insights)
	first := res.Insights[0]
	require.Equal(t, InsightTypeWarning, first.Type)
	require.Equal(t, "High Monthly Spending", first.Title)
	require.Equal(t, PriorityHigh, first.Priority)
	require.Contains(t, first.Message, "$150.00")
}

func TestInsights_NoHighSpendingAtThreshold(t *testing.T) {
	subs := []*models.Subscription{sub("AWS", types.CategorySoftware, 100, types.BillingCycleMonthly)}
	res := Analyze(subs, time.Now())

	for _, in := range res.Insights {
		require.NotEqual(t, "High Monthly Spending", in.Title)
	}
}

func TestInsights_CategoryConcentration(t *testing.T) {
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 30, types.BillingCycleMonthly),
		sub("Spotify", types.CategoryMusic, 10, types.BillingCycleMonthly),
	}
	res := Analyze(subs, time.Now())

	var found *Insight
	for i := range res.Insights {
		if res.Insights[i].Title == "Category Concentration" {
			found = &res.Insights[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, InsightTypeInfo, found.Type)
	require.Equal(t, PriorityMedium, found.Priority)
	require.Equal(t, "Streaming services make up 75.0% of your spending.", found.Message)
}

func TestInsights_NoConcentrationAtExactHalf(t *testing.T) {
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 20, types.BillingCycleMonthly),
		sub("Spotify", types.CategoryMusic, 20, types.BillingCycleMonthly),
	}
	res := Analyze(subs, time.Now())

	for _, in := range res.Insights {
		require.NotEqual(t, "Category Concentration", in.Title)
	}
}

func TestInsights_ActiveTrials(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)
	past := now.AddDate(0, 0, -7)

	inTrial := sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly)
	inTrial.TrialEndDate = &future
	expired := sub("Spotify", types.CategoryMusic, 10, types.BillingCycleMonthly)
	expired.TrialEndDate = &past

	res := Analyze([]*models.Subscription{inTrial, expired}, now)

	var found *Insight
	for i := range res.Insights {
		if res.Insights[i].Title == "Active Trial Periods" {
			found = &res.Insights[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "You have 1 subscription(s) in trial period. Set reminders to avoid unexpected charges.", found.Message)
}

func TestInsights_InactiveSubscriptions(t *testing.T) {
	inactive := sub("Old Gym", types.CategoryFitness, 40, types.BillingCycleMonthly)
	inactive.IsActive = false
	res := Analyze([]*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly),
		inactive,
	}, time.Now())

	last := res.Insights[len(res.Insights)-1]
	require.Equal(t, InsightTypeSuccess, last.Type)
	require.Equal(t, "Inactive Subscriptions", last.Title)
	require.Equal(t, PriorityLow, last.Priority)
	require.Contains(t, last.Message, "1 inactive subscription(s)")
}

func TestInsights_FixedOrder(t *testing.T) {
	now := time.Now()
	future := now.AddDate(0, 0, 5)

	high := sub("AWS", types.CategorySoftware, 180, types.BillingCycleMonthly)
	trial := sub("Netflix", types.CategoryStreaming, 10, types.BillingCycleMonthly)
	trial.TrialEndDate = &future
	inactive := sub("Old Gym", types.CategoryFitness, 40, types.BillingCycleMonthly)
	inactive.IsActive = false

	res := Analyze([]*models.Subscription{high, trial, inactive}, now)

	titles := make([]string, 0, len(res.Insights))
	for _, in := range res.Insights {
		titles = append(titles, in.Title)
	}
	require.Equal(t, []string{
		"High Monthly Spending",
		"Category Concentration",
		"Active Trial Periods",
		"Inactive Subscriptions",
	}, titles)
}
