package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/models"
)

// Notifier accepts notices for asynchronous delivery.
type Notifier interface {
	Publish(n notification.Notice)
}

// notifyManagers fans a notice out to every manager. A failed lookup only
// costs the notification, never the already committed write.
func notifyManagers(
	ctx context.Context,
	repo domain.Repository,
	notifier Notifier,
	log *zap.Logger,
	t notification.Type,
	b *models.Booking,
	eq *models.Equipment,
) {
	managers, err := repo.ListManagers(ctx)
	if err != nil {
		log.Error("failed to load managers for notification",
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
		return
	}
	if len(managers) == 0 {
		return
	}

	ids := make([]string, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.ID)
	}

	notifier.Publish(notification.Notice{
		Type:       t,
		Recipients: ids,
		Message:    notification.Message(t, b, eq),
		BookingID:  b.ID,
	})
}
