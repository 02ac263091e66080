package equipment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/raksinkh/equipment-management/internal/domain/booking"
	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

type Detail struct {
	Equipment           *models.Equipment
	Bookings            []models.Booking
	Counts              booking.Counts
	BookingsUnavailable bool
}

// GetEquipmentDetail loads an item and its booking history side by side.
type GetEquipmentDetail struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewGetEquipmentDetail(repo domain.Repository, log *zap.Logger) *GetEquipmentDetail {
	return &GetEquipmentDetail{repo: repo, log: log}
}

// Execute fails only when the item itself cannot be read. A failed history
// read degrades to an empty list flagged as unavailable.
func (uc *GetEquipmentDetail) Execute(
	ctx context.Context,
	id string,
) (*Detail, error) {

	var (
		eq          *models.Equipment
		bookings    []models.Booking
		bookingsErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		eq, err = uc.repo.GetEquipment(gctx, id)
		return err
	})

	// never returns an error so the item read is not cancelled by it
	g.Go(func() error {
		bookings, bookingsErr = uc.repo.ListBookingsForEquipment(gctx, id)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Detail{Equipment: eq}
	if bookingsErr != nil {
		uc.log.Error("failed to load equipment bookings",
			zap.String("equipment_id", id),
			zap.Error(bookingsErr),
		)
		d.Bookings = []models.Booking{}
		d.BookingsUnavailable = true
		return d, nil
	}

	if bookings == nil {
		bookings = []models.Booking{}
	}
	d.Bookings = bookings
	d.Counts = booking.Count(bookings)
	return d, nil
}
