package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/subtrackr/subtrackr/pkg/types"
)

// Notification is the durable record of one reminder delivery attempt over
// one channel. Records are append-only: they are created at the moment a
// send is attempted and never deleted.
type Notification struct {
	ID             string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID         string                   `gorm:"column:user_id;type:varchar(64);not null;index:idx_notification_user" json:"user_id"`
	SubscriptionID string                   `gorm:"column:subscription_id;type:uuid;not null;index:idx_notification_subscription" json:"subscription_id"`
	Type           types.NotificationType   `gorm:"column:type;type:varchar(16);not null;index:idx_notification_subscription,priority:2" json:"type"`
	Status         types.NotificationStatus `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_notification_status" json:"status"`
	Message        string                   `gorm:"column:message;type:text;not null" json:"message"`
	// ScheduledFor is when the send was intended, SentAt when it succeeded.
	ScheduledFor time.Time  `gorm:"column:scheduled_for;not null" json:"scheduled_for"`
	SentAt       *time.Time `gorm:"column:sent_at;default:null" json:"sent_at,omitempty"`
	// Error carries the channel failure text when Status is failed.
	Error string `gorm:"column:error;type:text" json:"error,omitempty"`
	// Metadata is an open string-keyed bag for channel-specific extras
	// (provider message id, template name, ...).
	Metadata  datatypes.JSONMap `gorm:"column:metadata;type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notification"
}
