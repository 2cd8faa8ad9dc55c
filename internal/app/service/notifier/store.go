package notifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/tool"
	"github.com/subtrackr/subtrackr/pkg/types"
)

// Store persists notification records. The send paths use it in append-only
// mode; records are never updated or deleted once written.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewStore(db *gorm.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// HistoryPage is one page of a user's notification history, newest first.
type HistoryPage struct {
	Notifications []*models.Notification `json:"notifications"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	Pages         int64                  `json:"pages"`
}

func (s *Store) ListHistory(ctx context.Context, userID string, page, limit int, status types.NotificationStatus) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	var items []*models.Notification
	err := tx.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return &HistoryPage{Notifications: items, Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

type StatusCount struct {
	Status types.NotificationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

type TypeCount struct {
	Type   types.NotificationType `json:"type"`
	Count  int64                  `json:"count"`
	Sent   int64                  `json:"sent"`
	Failed int64                  `json:"failed"`
}

type Stats struct {
	StatusStats []StatusCount `json:"status_stats"`
	TypeStats   []TypeCount   `json:"type_stats"`
}

// Stats aggregates the user's notification history by status and by channel.
func (s *Store) Stats(ctx context.Context, userID string) (*Stats, error) {
	var byStatus []StatusCount
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by status: %w", err)
	}

	var byType []TypeCount
	err = s.db.WithContext(ctx).Model(&models.Notification{}).
		Select("type, COUNT(*) AS count, COUNT(*) FILTER (WHERE status = 'sent') AS sent, COUNT(*) FILTER (WHERE status = 'failed') AS failed").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&byType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}

	return &Stats{StatusStats: byStatus, TypeStats: byType}, nil
}
