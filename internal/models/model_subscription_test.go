package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/subtrackr/subtrackr/pkg/types"
)

func TestNextBillingDateAfterRenewal(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		cycle types.BillingCycle
		days  int
	}{
		{types.BillingCycleDaily, 1},
		{types.BillingCycleWeekly, 7},
		{types.BillingCycleMonthly, 30},
		{types.BillingCycleQuarterly, 90},
		{types.BillingCycleYearly, 365},
		{types.BillingCycle("unknown"), 30},
	}
	for _, c := range cases {
		s := &Subscription{BillingCycle: c.cycle, NextBillingDate: base}
		require.Equal(t, base.AddDate(0, 0, c.days), s.NextBillingDateAfterRenewal(), "cycle %s", c.cycle)
	}
}

func TestAnnualCost(t *testing.T) {
	cases := []struct {
		cycle types.BillingCycle
		want  float64
	}{
		{types.BillingCycleDaily, 3650},
		{types.BillingCycleWeekly, 520},
		{types.BillingCycleMonthly, 120},
		{types.BillingCycleQuarterly, 40},
		{types.BillingCycleYearly, 10},
		{types.BillingCycle(""), 120},
	}
	for _, c := range cases {
		s := &Subscription{Amount: 10, BillingCycle: c.cycle}
		require.InDelta(t, c.want, s.AnnualCost(), 1e-9, "cycle %s", c.cycle)
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	dueIn3 := &Subscription{NextBillingDate: now.Add(3 * 24 * time.Hour)}
	require.True(t, dueIn3.IsDueSoon(now, 7))
	require.False(t, dueIn3.IsDueSoon(now, 2))

	overdue := &Subscription{NextBillingDate: now.Add(-48 * time.Hour)}
	require.False(t, overdue.IsDueSoon(now, 7))

	dueNow := &Subscription{NextBillingDate: now}
	require.True(t, dueNow.IsDueSoon(now, 0))
}

func TestDefaultNotificationPreferences(t *testing.T) {
	prefs := DefaultNotificationPreferences()
	require.True(t, prefs.EmailNotifications)
	require.False(t, prefs.SmsNotifications)
	require.Equal(t, 3, prefs.ReminderDays)
}

func TestNotificationPrefs_EmptyColumnYieldsDefaults(t *testing.T) {
	u := &User{ID: "user-1"}
	require.Equal(t, DefaultNotificationPreferences(), u.NotificationPrefs())
}

func TestNotificationPrefs_StoredValuesPreserved(t *testing.T) {
	stored := NotificationPreferences{EmailNotifications: false, SmsNotifications: true, ReminderDays: 7}
	u := &User{ID: "user-1", Preferences: datatypes.NewJSONType(stored)}
	require.Equal(t, stored, u.NotificationPrefs())
}
