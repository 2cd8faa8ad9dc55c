package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// generateInsights evaluates the insight rules in a fixed order. Every rule
// that matches fires; rules are independent of one another.
func generateInsights(subs []*models.Subscription, monthly float64, categories *CategoryBreakdown, now time.Time) []Insight {
	insights := []Insight{}

	if monthly > 100 {
		insights = append(insights, Insight{
			Type:     InsightTypeWarning,
			Title:    "High Monthly Spending",
			Message:  fmt.Sprintf("You're spending $%.2f monthly on subscriptions. Consider reviewing your highest-cost services.", monthly),
			Priority: PriorityHigh,
		})
	}

	if top, ok := topCategory(categories); ok && categories.Get(top).TotalMonthly > monthly*0.5 {
		share := categories.Get(top).TotalMonthly / monthly * 100
		insights = append(insights, Insight{
			Type:     InsightTypeInfo,
			Title:    "Category Concentration",
			Message:  fmt.Sprintf("%s services make up %.1f%% of your spending.", titleCase(string(top)), share),
			Priority: PriorityMedium,
		})
	}

	trials := lo.CountBy(subs, func(s *models.Subscription) bool {
		return s.TrialEndDate != nil && s.TrialEndDate.After(now)
	})
	if trials > 0 {
		insights = append(insights, Insight{
			Type:     InsightTypeWarning,
			Title:    "Active Trial Periods",
			Message:  fmt.Sprintf("You have %d subscription(s) in trial period. Set reminders to avoid unexpected charges.", trials),
			Priority: PriorityHigh,
		})
	}

	inactive := lo.CountBy(subs, func(s *models.Subscription) bool { return !s.IsActive })
	if inactive > 0 {
		insights = append(insights, Insight{
			Type:     InsightTypeSuccess,
			Title:    "Inactive Subscriptions",
			Message:  fmt.Sprintf("You have %d inactive subscription(s). Consider removing them to clean up your list.", inactive),
			Priority: PriorityLow,
		})
	}

	return insights
}

// topCategory returns the category with the largest monthly total. Ties keep
// the earlier category in insertion order.
func topCategory(b *CategoryBreakdown) (types.Category, bool) {
	keys := b.Categories()
	if len(keys) == 0 {
		return "", false
	}
	return lo.MaxBy(keys, func(a, cur types.Category) bool {
		return b.Get(a).TotalMonthly > b.Get(cur).TotalMonthly
	}), true
}

// titleCase uppercases the first letter only; category names are ASCII.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
