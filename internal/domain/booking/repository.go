package booking

import (
	"context"

	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

type Filter struct {
	Status      Status
	EquipmentID string
	UserID      string
	From        *models.Date
	To          *models.Date
}

type Repository interface {
	// -------- Equipment --------
	GetEquipment(
		ctx context.Context,
		id string,
	) (*models.Equipment, error)

	// Reads the row with a write lock; only meaningful inside Transaction.
	LockEquipment(
		ctx context.Context,
		id string,
	) (*models.Equipment, error)

	UpdateEquipmentStatus(
		ctx context.Context,
		id string,
		status equipment.Status,
	) error

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// Reads the booking with a write lock; only meaningful inside Transaction.
	LockBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	UpdateBookingStatus(
		ctx context.Context,
		id string,
		status Status,
	) error

	ListBookingsForUser(
		ctx context.Context,
		userID string,
	) ([]models.Booking, error)

	SearchBookings(
		ctx context.Context,
		f Filter,
	) ([]models.Booking, error)

	// -------- Users --------
	ListManagers(
		ctx context.Context,
	) ([]models.User, error)

	// -------- Tx --------
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
