package models

import (
	"math"
	"time"

	"gorm.io/datatypes"

	"github.com/subtrackr/subtrackr/pkg/types"
)

// Subscription is a recurring service a user pays for.
// Amount is in the subscription's own Currency; no conversion is applied.
type Subscription struct {
	ID       string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID   string         `gorm:"column:user_id;type:varchar(64);not null;index:idx_subscription_user" json:"user_id"`
	Name     string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category types.Category `gorm:"column:category;type:varchar(32);not null;default:'other';index:idx_subscription_user_category,priority:2" json:"category"`
	// Description is free-form text shown alongside the name.
	Description  string             `gorm:"column:description;type:text" json:"description,omitempty"`
	Amount       float64            `gorm:"column:amount;not null" json:"amount"`
	Currency     string             `gorm:"column:currency;type:varchar(8);default:'USD'" json:"currency"`
	BillingCycle types.BillingCycle `gorm:"column:billing_cycle;type:varchar(16);not null" json:"billing_cycle"`
	// NextBillingDate drives both the reminder sweep and renewals.
	NextBillingDate time.Time  `gorm:"column:next_billing_date;not null;index:idx_subscription_due" json:"next_billing_date"`
	TrialEndDate    *time.Time `gorm:"column:trial_end_date;default:null" json:"trial_end_date,omitempty"`
	// IsActive=false keeps the record for history but excludes it from all
	// spending and health calculations.
	IsActive      bool                         `gorm:"column:is_active;not null;default:true;index:idx_subscription_due,priority:2" json:"is_active"`
	AutoRenew     bool                         `gorm:"column:auto_renew;not null;default:true" json:"auto_renew"`
	Website       string                       `gorm:"column:website;type:varchar(512)" json:"website,omitempty"`
	AccountEmail  string                       `gorm:"column:account_email;type:varchar(255)" json:"account_email,omitempty"`
	Notes         string                       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Tags          datatypes.JSONSlice[string]  `gorm:"column:tags;type:jsonb;default:'[]'" json:"tags,omitempty"`
	PaymentMethod string                       `gorm:"column:payment_method;type:varchar(64)" json:"payment_method,omitempty"`
	// LastPaymentDate and TotalPaid are updated only by Renew.
	LastPaymentDate *time.Time `gorm:"column:last_payment_date;default:null" json:"last_payment_date,omitempty"`
	TotalPaid       float64    `gorm:"column:total_paid;not null;default:0" json:"total_paid"`
	// CreatedAt / UpdatedAt are managed by GORM.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// cycleDays is the day count used to advance NextBillingDate on renewal.
// Intentionally coarse (a month is always 30 days).
var cycleDays = map[types.BillingCycle]int{
	types.BillingCycleDaily:     1,
	types.BillingCycleWeekly:    7,
	types.BillingCycleMonthly:   30,
	types.BillingCycleQuarterly: 90,
	types.BillingCycleYearly:    365,
}

// NextBillingDateAfterRenewal returns the billing date one cycle past the
// current one. Unknown cycles advance by a month.
func (s *Subscription) NextBillingDateAfterRenewal() time.Time {
	days, ok := cycleDays[s.BillingCycle]
	if !ok {
		days = 30
	}
	return s.NextBillingDate.AddDate(0, 0, days)
}

// AnnualCost is the amount charged over a full year at the current cycle.
func (s *Subscription) AnnualCost() float64 {
	switch s.BillingCycle {
	case types.BillingCycleDaily:
		return s.Amount * 365
	case types.BillingCycleWeekly:
		return s.Amount * 52
	case types.BillingCycleMonthly:
		return s.Amount * 12
	case types.BillingCycleQuarterly:
		return s.Amount * 4
	case types.BillingCycleYearly:
		return s.Amount
	default:
		return s.Amount * 12
	}
}

// IsDueSoon reports whether NextBillingDate falls within the next `days`
// days (and is not already past).
func (s *Subscription) IsDueSoon(now time.Time, days int) bool {
	diff := int(math.Ceil(s.NextBillingDate.Sub(now).Hours() / 24))
	return diff >= 0 && diff <= days
}
