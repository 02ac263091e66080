package notification

import (
	"context"

	domain "github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/models"
)

type ListNotifications struct {
	repo domain.Repository
}

func NewListNotifications(repo domain.Repository) *ListNotifications {
	return &ListNotifications{repo: repo}
}

func (uc *ListNotifications) Execute(
	ctx context.Context,
	userID string,
	unreadOnly bool,
) ([]models.Notification, error) {
	return uc.repo.ListNotificationsForUser(ctx, userID, unreadOnly)
}

// MarkNotificationRead only touches rows owned by the caller.
type MarkNotificationRead struct {
	repo domain.Repository
}

func NewMarkNotificationRead(repo domain.Repository) *MarkNotificationRead {
	return &MarkNotificationRead{repo: repo}
}

func (uc *MarkNotificationRead) Execute(
	ctx context.Context,
	id string,
	userID string,
) error {
	return uc.repo.MarkNotificationRead(ctx, id, userID)
}
