package timezone

import (
	"time"

	"github.com/raksinkh/equipment-management/internal/models"
)

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn is the calendar day the booking form treats as its minimum start date.
func TodayIn(tz string) models.Date {
	return models.NewDate(NowIn(tz))
}
