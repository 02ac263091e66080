package dto

import (
	"time"

	"github.com/raksinkh/equipment-management/internal/models"
)

// BookingListDTO is one row of a booking table: the booking plus who asked
// for which item.
type BookingListDTO struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name,omitempty"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	Purpose       string    `json:"purpose"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewBookingListDTO(b models.Booking) BookingListDTO {
	out := BookingListDTO{
		ID:          b.ID,
		EquipmentID: b.EquipmentID,
		UserID:      b.UserID,
		StartDate:   b.StartDate.String(),
		EndDate:     b.EndDate.String(),
		Status:      b.Status,
		Purpose:     b.Purpose,
		Notes:       b.Notes.Ptr(),
		CreatedAt:   b.CreatedAt,
	}
	if b.Equipment != nil {
		out.EquipmentName = b.Equipment.Name
	}
	if b.User != nil {
		out.UserName = b.User.Name
		out.UserEmail = b.User.Email
	}
	return out
}

func NewBookingList(list []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, NewBookingListDTO(b))
	}
	return out
}
