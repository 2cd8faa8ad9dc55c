package notifier

import (
	"fmt"
	"math"
	"time"

	"github.com/subtrackr/subtrackr/internal/models"
)

// DaysUntil counts the whole days from now until due, rounding partial days
// up. A due date earlier the same day yields 0.
func DaysUntil(now, due time.Time) int {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// RenderMessage builds the reminder text for a subscription due in
// daysUntilDue days. The name and amount always appear; the phrasing shifts
// with how close the due date is.
func RenderMessage(sub *models.Subscription, daysUntilDue int) string {
	switch daysUntilDue {
	case 0:
		return fmt.Sprintf("Your subscription %q is due today! Amount: $%v", sub.Name, sub.Amount)
	case 1:
		return fmt.Sprintf("Your subscription %q is due tomorrow! Amount: $%v", sub.Name, sub.Amount)
	default:
		return fmt.Sprintf("Your subscription %q is due in %d days (%s). Amount: $%v",
			sub.Name, daysUntilDue, sub.NextBillingDate.Format("1/2/2006"), sub.Amount)
	}
}
