package equipment

import (
	"context"

	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

// Fields are the four columns the equipment form edits.
type Fields struct {
	Name        string
	Description string
	Location    string
	Status      Status
}

var ErrStatusChanged = httperr.ErrBusiness("invalid_state")

type Repository interface {
	GetEquipment(
		ctx context.Context,
		id string,
	) (*models.Equipment, error)

	ListEquipment(
		ctx context.Context,
		status Status,
	) ([]models.Equipment, error)

	CreateEquipment(
		ctx context.Context,
		eq *models.Equipment,
	) error

	// UpdateEquipment writes fields only while the stored status is still from.
	// A row whose status moved in the meantime yields ErrStatusChanged.
	UpdateEquipment(
		ctx context.Context,
		id string,
		from Status,
		fields Fields,
	) error

	UpdateEquipmentImage(
		ctx context.Context,
		id string,
		url string,
	) error

	DeleteEquipment(
		ctx context.Context,
		id string,
	) error

	// Bookings referencing the item, newest first, each with its user's name and email.
	ListBookingsForEquipment(
		ctx context.Context,
		equipmentID string,
	) ([]models.Booking, error)
}
