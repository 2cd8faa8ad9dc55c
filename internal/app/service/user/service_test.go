package user

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subtrackr/internal/models"
)

func TestApplyUpdate_PartialFields(t *testing.T) {
	base := models.DefaultNotificationPreferences()

	got := applyUpdate(base, PreferencesUpdate{SmsNotifications: lo.ToPtr(true)})
	require.True(t, got.EmailNotifications)
	require.True(t, got.SmsNotifications)
	require.Equal(t, 3, got.ReminderDays)
}

func TestApplyUpdate_AllFields(t *testing.T) {
	got := applyUpdate(models.DefaultNotificationPreferences(), PreferencesUpdate{
		EmailNotifications: lo.ToPtr(false),
		SmsNotifications:   lo.ToPtr(true),
		ReminderDays:       lo.ToPtr(7),
	})
	require.False(t, got.EmailNotifications)
	require.True(t, got.SmsNotifications)
	require.Equal(t, 7, got.ReminderDays)
}

func TestApplyUpdate_EmptyUpdateIsNoop(t *testing.T) {
	base := models.DefaultNotificationPreferences()
	require.Equal(t, base, applyUpdate(base, PreferencesUpdate{}))
}
