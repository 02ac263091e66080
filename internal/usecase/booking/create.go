package booking

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"github.com/raksinkh/equipment-management/internal/audit"
	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/infra/cache"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
	"github.com/raksinkh/equipment-management/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID      string
	EquipmentID string

	StartDate string
	EndDate   string
	Purpose   string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	guard    cache.SubmitGuard
	notifier Notifier
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	log      *zap.Logger

	today func() models.Date
}

func NewCreateBooking(
	repo domain.Repository,
	guard cache.SubmitGuard,
	notifier Notifier,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *zap.Logger,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		guard:    guard,
		notifier: notifier,
		audit:    audit,
		metrics:  m,
		log:      log,
		today: func() models.Date {
			return timezone.TodayIn(tz)
		},
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Form validation, before any store call
	// --------------------------------------------------
	req := domain.Request{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Purpose:   in.Purpose,
	}
	start, end, err := req.Validate(uc.today())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Double submit
	// --------------------------------------------------
	key := in.UserID + ":" + in.EquipmentID
	token, acquired, err := uc.guard.Acquire(ctx, key)
	switch {
	case err != nil:
		// the row lock below still serializes competing requests
		uc.log.Warn("submit guard unavailable", zap.Error(err))
	case !acquired:
		return nil, httperr.ErrBusiness("duplicate_submission")
	default:
		defer func() {
			if err := uc.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
				uc.log.Warn("failed to release submit guard", zap.Error(err))
			}
		}()
	}

	// --------------------------------------------------
	// 3. Booking + equipment status, atomically
	// --------------------------------------------------
	b := &models.Booking{
		UserID:      in.UserID,
		EquipmentID: in.EquipmentID,
		StartDate:   start,
		EndDate:     end,
		Status:      string(domain.InitialStatus()),
		Purpose:     in.Purpose,
		Notes:       null.NewString(in.Notes, in.Notes != ""),
	}

	var eq *models.Equipment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockEquipment(ctx, in.EquipmentID)
		if err != nil {
			return err
		}
		if err := domain.CanBook(equipment.Status(locked.Status)); err != nil {
			return err
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.UpdateEquipmentStatus(ctx, locked.ID, equipment.StatusBorrowed); err != nil {
			return err
		}

		locked.Status = string(equipment.StatusBorrowed)
		eq = locked
		return nil
	})
	if err != nil {
		if _, rule := httperr.BusinessCode(err); !rule {
			uc.metrics.StoreErrors.WithLabelValues("create_booking").Inc()
		}
		return nil, err
	}
	b.Equipment = eq

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	uc.metrics.BookingsCreated.Inc()

	notifyManagers(ctx, uc.repo, uc.notifier, uc.log, notification.TypeBookingRequest, b, eq)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"equipment_id": b.EquipmentID,
			"start_date":   b.StartDate.String(),
			"end_date":     b.EndDate.String(),
		},
	})

	return b, nil
}
