package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

// Pusher delivers a payload to the live connections of one user.
type Pusher interface {
	SendToUser(userID string, msgType string, payload any)
}

// ChatSender posts a plain-text message to the managers' chat.
type ChatSender interface {
	Send(text string) error
}

type Dispatcher struct {
	repo    notification.Repository
	pusher  Pusher
	chat    ChatSender
	metrics *metrics.Metrics
	log     *zap.Logger
	queue   chan notification.Notice
}

func NewDispatcher(
	repo notification.Repository,
	pusher Pusher,
	chat ChatSender,
	m *metrics.Metrics,
	log *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		repo:    repo,
		pusher:  pusher,
		chat:    chat,
		metrics: m,
		log:     log,
		queue:   make(chan notification.Notice, 100),
	}

	go d.worker()
	return d
}

// Publish queues a notice; a full queue drops it rather than stalling the caller.
func (d *Dispatcher) Publish(n notification.Notice) {
	if d == nil {
		return
	}
	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping notice",
			zap.String("type", string(n.Type)),
			zap.String("booking_id", n.BookingID),
		)
	}
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n notification.Notice) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, userID := range n.Recipients {
		row := &models.Notification{
			UserID:  userID,
			Type:    string(n.Type),
			Message: n.Message,
		}
		if err := d.repo.CreateNotification(ctx, row); err != nil {
			d.metrics.StoreErrors.WithLabelValues("create_notification").Inc()
			d.log.Error("failed to store notification",
				zap.String("user_id", userID),
				zap.String("type", string(n.Type)),
				zap.Error(err),
			)
			continue
		}
		d.metrics.NotificationsDelivered.WithLabelValues("store").Inc()

		if d.pusher != nil {
			d.pusher.SendToUser(userID, "notification", row)
			d.metrics.NotificationsDelivered.WithLabelValues("websocket").Inc()
		}
	}

	if d.chat != nil && n.Type.ForManagers() {
		if err := d.chat.Send(n.Message); err != nil {
			d.log.Warn("failed to send chat notification", zap.Error(err))
			return
		}
		d.metrics.NotificationsDelivered.WithLabelValues("telegram").Inc()
	}
}
