package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/audit"
	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ReviewBookingInput struct {
	BookingID string
	ManagerID string
	Status    domain.Status
}

// ======================================================
// USE CASE
// ======================================================

// ReviewBooking moves a booking to approved, rejected or completed and
// applies what that means for the booked item.
type ReviewBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewReviewBooking(
	repo domain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *zap.Logger,
) *ReviewBooking {
	return &ReviewBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		metrics:  m,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ReviewBooking) Execute(
	ctx context.Context,
	in ReviewBookingInput,
) (*models.Booking, error) {

	var b *models.Booking
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockBooking(ctx, in.BookingID)
		if err != nil {
			return err
		}

		from := locked.Status
		if err := domain.Transition(locked, in.Status); err != nil {
			return err
		}
		if err := tx.UpdateBookingStatus(ctx, locked.ID, in.Status); err != nil {
			return err
		}

		eq, err := tx.LockEquipment(ctx, locked.EquipmentID)
		if err != nil {
			return err
		}
		if next, ok := domain.EquipmentEffect(in.Status, equipment.Status(eq.Status)); ok {
			if err := tx.UpdateEquipmentStatus(ctx, eq.ID, next); err != nil {
				return err
			}
			eq.Status = string(next)
		}
		locked.Equipment = eq

		uc.log.Info("booking reviewed",
			zap.String("booking_id", locked.ID),
			zap.String("from", from),
			zap.String("to", string(in.Status)),
		)
		b = locked
		return nil
	})
	if err != nil {
		if _, rule := httperr.BusinessCode(err); !rule {
			uc.metrics.StoreErrors.WithLabelValues("review_booking").Inc()
		}
		return nil, err
	}

	uc.metrics.BookingTransitions.WithLabelValues(string(in.Status)).Inc()
	uc.notify(ctx, b, in.Status)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ManagerID,
		Action:   "booking_" + string(in.Status),
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"equipment_id": b.EquipmentID,
		},
	})

	return b, nil
}

func (uc *ReviewBooking) notify(ctx context.Context, b *models.Booking, next domain.Status) {
	switch next {
	case domain.StatusApproved, domain.StatusRejected:
		t := notification.TypeBookingApproved
		if next == domain.StatusRejected {
			t = notification.TypeBookingRejected
		}
		uc.notifier.Publish(notification.Notice{
			Type:       t,
			Recipients: []string{b.UserID},
			Message:    notification.Message(t, b, b.Equipment),
			BookingID:  b.ID,
		})
	case domain.StatusCompleted:
		notifyManagers(ctx, uc.repo, uc.notifier, uc.log, notification.TypeEquipmentReturned, b, b.Equipment)
	}
}
