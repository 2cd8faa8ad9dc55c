package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/subtrackr/subtrackr/internal/models"
)

var ErrNotFound = errors.New("user not found")

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

func (s *Service) GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	return u.NotificationPrefs(), nil
}

// PreferencesUpdate carries a partial update; nil fields are left unchanged.
type PreferencesUpdate struct {
	EmailNotifications *bool `json:"email_notifications"`
	SmsNotifications   *bool `json:"sms_notifications"`
	ReminderDays       *int  `json:"reminder_days"`
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, upd PreferencesUpdate) (models.NotificationPreferences, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, err
	}

	prefs := applyUpdate(u.NotificationPrefs(), upd)
	u.Preferences = datatypes.NewJSONType(prefs)
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return models.NotificationPreferences{}, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}

func applyUpdate(prefs models.NotificationPreferences, upd PreferencesUpdate) models.NotificationPreferences {
	if upd.EmailNotifications != nil {
		prefs.EmailNotifications = *upd.EmailNotifications
	}
	if upd.SmsNotifications != nil {
		prefs.SmsNotifications = *upd.SmsNotifications
	}
	if upd.ReminderDays != nil {
		prefs.ReminderDays = *upd.ReminderDays
	}
	return prefs
}
