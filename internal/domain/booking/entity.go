package booking

import (
	"strings"

	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

// ===============================
// Request validation
// ===============================

type Request struct {
	StartDate string
	EndDate   string
	Purpose   string
}

// Complete reports whether every required field of the booking form is filled.
func (r Request) Complete() bool {
	return strings.TrimSpace(r.StartDate) != "" &&
		strings.TrimSpace(r.EndDate) != "" &&
		strings.TrimSpace(r.Purpose) != ""
}

// Validate parses the requested range. The start may not lie before today
// and the range may not end before it starts.
func (r Request) Validate(today models.Date) (models.Date, models.Date, error) {
	if !r.Complete() {
		return models.Date{}, models.Date{}, httperr.ErrBusiness("missing_fields")
	}

	start, err := models.ParseDate(r.StartDate)
	if err != nil {
		return models.Date{}, models.Date{}, httperr.ErrBusiness("invalid_date")
	}
	end, err := models.ParseDate(r.EndDate)
	if err != nil {
		return models.Date{}, models.Date{}, httperr.ErrBusiness("invalid_date")
	}

	if start.Before(today) {
		return models.Date{}, models.Date{}, httperr.ErrBusiness("start_in_past")
	}
	if end.Before(start) {
		return models.Date{}, models.Date{}, httperr.ErrBusiness("invalid_date_range")
	}

	return start, end, nil
}

// ===============================
// Domain Actions
// ===============================

// CanBook only lets available items be requested. A borrowed or serviced item
// has to come back before anyone else can ask for it.
func CanBook(current equipment.Status) error {
	if current != equipment.StatusAvailable {
		return httperr.ErrBusiness("equipment_unavailable")
	}
	return equipment.CanTransition(current, equipment.StatusBorrowed)
}

func Transition(b *models.Booking, next Status) error {
	if err := CanTransition(Status(b.Status), next); err != nil {
		return err
	}
	b.Status = string(next)
	return nil
}
