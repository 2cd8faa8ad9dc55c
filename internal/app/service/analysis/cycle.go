package analysis

import (
	"github.com/subtrackr/subtrackr/pkg/types"
)

// The monthly and yearly factor tables are independently rounded
// approximations (quarterly 0.33 vs 1/3, weekly 4.33 vs 52/12). Callers must
// not assume MonthlyAmount(x)*12 == YearlyAmount(x) exactly.

// MonthlyAmount normalizes an amount at the given cycle to a per-month
// figure. Unknown cycles are treated as already monthly; this fallback is
// deliberate, not an error.
func MonthlyAmount(amount float64, cycle types.BillingCycle) float64 {
	switch cycle {
	case types.BillingCycleDaily:
		return amount * 30.44
	case types.BillingCycleWeekly:
		return amount * 4.33
	case types.BillingCycleMonthly:
		return amount
	case types.BillingCycleQuarterly:
		return amount * 0.33
	case types.BillingCycleYearly:
		return amount * 0.083
	default:
		return amount
	}
}

// YearlyAmount normalizes an amount at the given cycle to a per-year figure.
// Unknown cycles fall back to monthly billing (x12).
func YearlyAmount(amount float64, cycle types.BillingCycle) float64 {
	return amount * CycleMultiplier(cycle)
}

// CycleMultiplier is the number of charges per year at the given cycle.
// Exposed separately from YearlyAmount because total spending is computed
// from the raw multiplier and both figures are reported to callers.
func CycleMultiplier(cycle types.BillingCycle) float64 {
	switch cycle {
	case types.BillingCycleDaily:
		return 365
	case types.BillingCycleWeekly:
		return 52
	case types.BillingCycleMonthly:
		return 12
	case types.BillingCycleQuarterly:
		return 4
	case types.BillingCycleYearly:
		return 1
	default:
		return 12
	}
}
