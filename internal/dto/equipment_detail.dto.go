package dto

import (
	"github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/models"
)

type EquipmentDetailDTO struct {
	Equipment           *models.Equipment `json:"equipment"`
	Bookings            []BookingListDTO  `json:"bookings"`
	Counts              booking.Counts    `json:"counts"`
	BookingsUnavailable bool              `json:"bookings_unavailable"`
}
