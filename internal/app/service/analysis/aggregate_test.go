package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

func sub(name string, category types.Category, amount float64, cycle types.BillingCycle) *models.Subscription {
	return &models.Subscription{
		ID:           "id-" + name,
		Name:         name,
		Category:     category,
		Amount:       amount,
		BillingCycle: cycle,
		IsActive:     true,
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	res := Analyze(nil, time.Now())

	require.Zero(t, res.TotalSpending)
	require.Zero(t, res.MonthlySpending)
	require.Zero(t, res.YearlySpending)
	require.Equal(t, 100, res.HealthScore)
	require.NotNil(t, res.Insights)
	require.Empty(t, res.Insights)
	require.NotNil(t, res.Recommendations)
	require.Empty(t, res.Recommendations)
	require.NotNil(t, res.SavingsOpportunities)
	require.Empty(t, res.SavingsOpportunities)
	require.Zero(t, res.Categories.Len())
}

func TestAnalyze_ExcludesInactiveFromSpending(t *testing.T) {
	inactive := sub("Old Gym", types.CategoryFitness, 50, types.BillingCycleMonthly)
	inactive.IsActive = false
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly),
		inactive,
	}

	res := Analyze(subs, time.Now())
	require.InDelta(t, 15, res.MonthlySpending, 1e-9)
	require.InDelta(t, 180, res.TotalSpending, 1e-9)
	require.InDelta(t, 180, res.YearlySpending, 1e-9)
	require.Nil(t, res.Categories.Get(types.CategoryFitness))
}

func TestAnalyze_CategoryInsertionOrder(t *testing.T) {
	subs := []*models.Subscription{
		sub("Spotify", types.CategoryMusic, 10, types.BillingCycleMonthly),
		sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly),
		sub("Tidal", types.CategoryMusic, 11, types.BillingCycleMonthly),
	}

	res := Analyze(subs, time.Now())
	require.Equal(t, []types.Category{types.CategoryMusic, types.CategoryStreaming}, res.Categories.Categories())

	music := res.Categories.Get(types.CategoryMusic)
	require.Equal(t, 2, music.Count)
	require.InDelta(t, 21, music.TotalMonthly, 1e-9)
	require.Len(t, music.Subscriptions, 2)
}

func TestCategoryBreakdown_MarshalPreservesOrder(t *testing.T) {
	b := NewCategoryBreakdown()
	b.Upsert(types.CategoryStreaming).Count = 1
	b.Upsert(types.CategoryMusic).Count = 2

	out, err := b.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"streaming":{"count":1,"total_monthly":0,"subscriptions":null},"music":{"count":2,"total_monthly":0,"subscriptions":null}}`, string(out))
	require.Less(t,
		indexOf(string(out), `"streaming"`),
		indexOf(string(out), `"music"`),
	)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestHealthScore_Deductions(t *testing.T) {
	// One cheap subscription in one category: only the diversity deduction.
	subs := []*models.Subscription{sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly)}
	require.Equal(t, 90, Analyze(subs, time.Now()).HealthScore)

	// Spending over both thresholds.
	subs = []*models.Subscription{sub("Everything", types.CategorySoftware, 250, types.BillingCycleMonthly)}
	require.Equal(t, 50, Analyze(subs, time.Now()).HealthScore)
}

func TestHealthScore_CountDeductionsAndFloor(t *testing.T) {
	var subs []*models.Subscription
	for i := 0; i < 16; i++ {
		s := sub(string(rune('a'+i)), types.CategorySoftware, 20, types.BillingCycleMonthly)
		subs = append(subs, s)
	}

	// monthly 320 (>100, >200): -40; 16 subs (>10, >15): -30; 1 category: -10.
	require.Equal(t, 20, Analyze(subs, time.Now()).HealthScore)
}

func TestHealthScore_TrialBonus(t *testing.T) {
	trialEnd := time.Now().AddDate(0, 0, 10)
	s := sub("Netflix", types.CategoryStreaming, 15, types.BillingCycleMonthly)
	s.TrialEndDate = &trialEnd

	require.Equal(t, 95, Analyze([]*models.Subscription{s}, time.Now()).HealthScore)
}

func TestHealthScore_ClampedTo100(t *testing.T) {
	trialEnd := time.Now().AddDate(0, 0, 10)
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 5, types.BillingCycleMonthly),
		sub("Spotify", types.CategoryMusic, 5, types.BillingCycleMonthly),
		sub("Notion", types.CategorySoftware, 5, types.BillingCycleMonthly),
	}
	subs[0].TrialEndDate = &trialEnd

	// No deductions apply, bonus would push past 100.
	require.Equal(t, 100, Analyze(subs, time.Now()).HealthScore)
}

func TestAnalyze_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	subs := []*models.Subscription{
		sub("Netflix", types.CategoryStreaming, 15.49, types.BillingCycleMonthly),
		sub("AWS", types.CategorySoftware, 120, types.BillingCycleMonthly),
		sub("Audible", types.CategoryEducation, 95, types.BillingCycleYearly),
	}

	first := Analyze(subs, now)
	second := Analyze(subs, now)
	require.Equal(t, first, second)
}
