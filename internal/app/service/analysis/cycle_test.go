package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subtrackr/pkg/types"
)

func TestMonthlyAmount_Factors(t *testing.T) {
	cases := []struct {
		cycle types.BillingCycle
		want  float64
	}{
		{types.BillingCycleDaily, 304.4},
		{types.BillingCycleWeekly, 43.3},
		{types.BillingCycleMonthly, 10},
		{types.BillingCycleQuarterly, 3.3},
		{types.BillingCycleYearly, 0.83},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, MonthlyAmount(10, c.cycle), 1e-9, "cycle %s", c.cycle)
	}
}

func TestMonthlyAmount_UnknownCycleFallsBackToMonthly(t *testing.T) {
	require.Equal(t, 9.99, MonthlyAmount(9.99, types.BillingCycle("biweekly")))
}

func TestCycleMultiplier(t *testing.T) {
	require.Equal(t, float64(365), CycleMultiplier(types.BillingCycleDaily))
	require.Equal(t, float64(52), CycleMultiplier(types.BillingCycleWeekly))
	require.Equal(t, float64(12), CycleMultiplier(types.BillingCycleMonthly))
	require.Equal(t, float64(4), CycleMultiplier(types.BillingCycleQuarterly))
	require.Equal(t, float64(1), CycleMultiplier(types.BillingCycleYearly))
	require.Equal(t, float64(12), CycleMultiplier(types.BillingCycle("")))
}

func TestYearlyAmount_UsesMultiplier(t *testing.T) {
	require.InDelta(t, 120, YearlyAmount(10, types.BillingCycleMonthly), 1e-9)
	require.InDelta(t, 10, YearlyAmount(10, types.BillingCycleYearly), 1e-9)
}

func TestAmounts_ScaleLinearly(t *testing.T) {
	for _, cycle := range []types.BillingCycle{
		types.BillingCycleDaily,
		types.BillingCycleWeekly,
		types.BillingCycleMonthly,
		types.BillingCycleQuarterly,
		types.BillingCycleYearly,
	} {
		require.InDelta(t, 3*MonthlyAmount(1, cycle), MonthlyAmount(3, cycle), 1e-9)
		require.InDelta(t, 3*YearlyAmount(1, cycle), YearlyAmount(3, cycle), 1e-9)
	}
}

// The two factor tables are rounded independently; monthly x12 only
// approximates yearly for the non-monthly cycles.
func TestMonthlyTimesTwelve_ApproximatesYearly(t *testing.T) {
	require.InDelta(t, YearlyAmount(100, types.BillingCycleWeekly), 12*MonthlyAmount(100, types.BillingCycleWeekly), 100)
	require.NotEqual(t, YearlyAmount(100, types.BillingCycleQuarterly), 12*MonthlyAmount(100, types.BillingCycleQuarterly))
}
