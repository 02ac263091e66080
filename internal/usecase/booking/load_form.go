package booking

import (
	"context"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/models"
)

// LoadBookingForm fetches the item a booking form is opened for.
type LoadBookingForm struct {
	repo domain.Repository
}

func NewLoadBookingForm(repo domain.Repository) *LoadBookingForm {
	return &LoadBookingForm{repo: repo}
}

func (uc *LoadBookingForm) Execute(
	ctx context.Context,
	equipmentID string,
) (*models.Equipment, error) {
	return uc.repo.GetEquipment(ctx, equipmentID)
}
