package booking

import "github.com/raksinkh/equipment-management/internal/models"

type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
}

func Count(bookings []models.Booking) Counts {
	c := Counts{Total: len(bookings)}
	for _, b := range bookings {
		switch Status(b.Status) {
		case StatusPending:
			c.Pending++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}
