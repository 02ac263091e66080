package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) ListNotificationsForUser(
	ctx context.Context,
	userID string,
	unreadOnly bool,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	var list []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NotificationGormRepository) MarkNotificationRead(
	ctx context.Context,
	id string,
	userID string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ notification.Repository = (*NotificationGormRepository)(nil)
