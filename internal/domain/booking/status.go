package booking

import (
	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCompleted},
	StatusRejected:  nil,
	StatusCompleted: nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

// InitialStatus is the status every new booking is inserted with.
func InitialStatus() Status {
	return StatusPending
}

func CanTransition(current, next Status) error {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// EquipmentEffect is the equipment status a booking transition implies.
// Rejected and completed bookings hand a borrowed item back; an item a
// manager moved elsewhere keeps its status.
func EquipmentEffect(next Status, current equipment.Status) (equipment.Status, bool) {
	if current != equipment.StatusBorrowed {
		return "", false
	}
	switch next {
	case StatusRejected, StatusCompleted:
		return equipment.StatusAvailable, true
	}
	return "", false
}
