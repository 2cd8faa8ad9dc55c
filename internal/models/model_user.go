package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationPreferences are the user's reminder opt-in flags. ReminderDays
// is how far ahead the user wants the ad-hoc due-soon view to look.
type NotificationPreferences struct {
	EmailNotifications bool `json:"email_notifications"`
	SmsNotifications   bool `json:"sms_notifications"`
	ReminderDays       int  `json:"reminder_days"`
}

// DefaultNotificationPreferences is the fallback used when a user's stored
// preferences are empty.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{EmailNotifications: true, SmsNotifications: false, ReminderDays: 3}
}

// User holds contact info and notification preferences. Credentials and
// session handling live elsewhere.
type User struct {
	ID        string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email     string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone     string `gorm:"column:phone;type:varchar(32)" json:"phone,omitempty"`
	FirstName string `gorm:"column:first_name;type:varchar(128)" json:"first_name,omitempty"`
	LastName  string `gorm:"column:last_name;type:varchar(128)" json:"last_name,omitempty"`
	IsActive  bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	// Preferences is stored as jsonb so new flags do not need migrations.
	Preferences datatypes.JSONType[NotificationPreferences] `gorm:"column:preferences;type:jsonb;default:'{}'" json:"preferences"`
	CreatedAt   time.Time                                   `json:"created_at"`
	UpdatedAt   time.Time                                   `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}

// NotificationPrefs returns the stored preferences, substituting the signup
// defaults when the jsonb column is empty or decodes to the zero value.
func (u *User) NotificationPrefs() NotificationPreferences {
	prefs := u.Preferences.Data()
	if prefs == (NotificationPreferences{}) {
		return DefaultNotificationPreferences()
	}
	return prefs
}
