package notification

import (
	"context"

	"github.com/raksinkh/equipment-management/internal/models"
)

type Repository interface {
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	ListNotificationsForUser(
		ctx context.Context,
		userID string,
		unreadOnly bool,
	) ([]models.Notification, error)

	// Returns gorm.ErrRecordNotFound when the row does not belong to userID.
	MarkNotificationRead(
		ctx context.Context,
		id string,
		userID string,
	) error
}
