package booking

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/models"
)

func TestSearchBookings_Counts(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["b1"] = models.Booking{ID: "b1", Status: "pending"}
	repo.bookings["b2"] = models.Booking{ID: "b2", Status: "pending"}
	repo.bookings["b3"] = models.Booking{ID: "b3", Status: "completed"}

	list, counts, err := NewSearchBookings(repo).Execute(context.Background(), domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, domain.Counts{Total: 3, Pending: 2, Completed: 1}, counts)

	list, counts, err = NewSearchBookings(repo).Execute(context.Background(), domain.Filter{Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, counts.Total)
}

func TestListMyBookings(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["b1"] = models.Booking{ID: "b1", UserID: "u1"}
	repo.bookings["b2"] = models.Booking{ID: "b2", UserID: "u2"}

	list, err := NewListMyBookings(repo).Execute(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].ID)
}

func TestExportBookings(t *testing.T) {
	repo := newFakeRepo()
	start, _ := models.ParseDate("2025-01-10")
	end, _ := models.ParseDate("2025-01-12")
	repo.bookings["b1"] = models.Booking{
		ID:        "b1",
		Status:    "approved",
		Purpose:   "demo",
		StartDate: start,
		EndDate:   end,
		User:      &models.User{Name: "Ann", Email: "ann@example.com"},
		Equipment: &models.Equipment{Name: "Projector", Location: "Room 4"},
	}

	data, err := NewExportBookings(repo).Execute(context.Background(), domain.Filter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "b1", rows[1][0])
	assert.Equal(t, "Projector", rows[1][1])
	assert.Equal(t, "Ann", rows[1][3])
	assert.Equal(t, "2025-01-10", rows[1][5])
	assert.Equal(t, "approved", rows[1][7])
}
