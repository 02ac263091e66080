package notification

import (
	"fmt"

	"github.com/raksinkh/equipment-management/internal/models"
)

type Type string

const (
	TypeBookingRequest    Type = "booking_request"
	TypeBookingApproved   Type = "booking_approved"
	TypeBookingRejected   Type = "booking_rejected"
	TypeEquipmentReturned Type = "equipment_returned"
)

// ForManagers reports whether the type is addressed to managers rather than the booker.
func (t Type) ForManagers() bool {
	return t == TypeBookingRequest || t == TypeEquipmentReturned
}

func Message(t Type, b *models.Booking, eq *models.Equipment) string {
	name := b.EquipmentID
	if eq != nil && eq.Name != "" {
		name = eq.Name
	}

	switch t {
	case TypeBookingRequest:
		return fmt.Sprintf("New booking request for %s from %s to %s: %s", name, b.StartDate, b.EndDate, b.Purpose)
	case TypeBookingApproved:
		return fmt.Sprintf("Your booking of %s from %s to %s was approved", name, b.StartDate, b.EndDate)
	case TypeBookingRejected:
		return fmt.Sprintf("Your booking of %s from %s to %s was rejected", name, b.StartDate, b.EndDate)
	case TypeEquipmentReturned:
		return fmt.Sprintf("%s has been returned and is available again", name)
	}
	return ""
}

// Notice is one event fanned out to its recipients.
type Notice struct {
	Type       Type
	Recipients []string
	Message    string
	BookingID  string
}
