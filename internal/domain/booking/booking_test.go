package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestRequestValidate(t *testing.T) {
	today := mustDate(t, "2025-01-05")

	t.Run("ok", func(t *testing.T) {
		start, end, err := Request{StartDate: "2025-01-10", EndDate: "2025-01-12", Purpose: "demo"}.Validate(today)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-10", start.String())
		assert.Equal(t, "2025-01-12", end.String())
	})

	t.Run("same day", func(t *testing.T) {
		_, _, err := Request{StartDate: "2025-01-05", EndDate: "2025-01-05", Purpose: "demo"}.Validate(today)
		assert.NoError(t, err)
	})

	cases := map[string]struct {
		req  Request
		code string
	}{
		"missing start":    {Request{EndDate: "2025-01-12", Purpose: "demo"}, "missing_fields"},
		"missing end":      {Request{StartDate: "2025-01-10", Purpose: "demo"}, "missing_fields"},
		"blank purpose":    {Request{StartDate: "2025-01-10", EndDate: "2025-01-12", Purpose: "  "}, "missing_fields"},
		"bad date":         {Request{StartDate: "10/01/2025", EndDate: "2025-01-12", Purpose: "demo"}, "invalid_date"},
		"start in past":    {Request{StartDate: "2025-01-04", EndDate: "2025-01-12", Purpose: "demo"}, "start_in_past"},
		"end before start": {Request{StartDate: "2025-01-12", EndDate: "2025-01-10", Purpose: "demo"}, "invalid_date_range"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := tc.req.Validate(today)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestTransition(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Transition(b, StatusApproved))
	require.NoError(t, Transition(b, StatusCompleted))
	assert.Equal(t, string(StatusCompleted), b.Status)

	err := Transition(b, StatusApproved)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	rejected := &models.Booking{Status: string(StatusRejected)}
	assert.Error(t, Transition(rejected, StatusCompleted))

	pending := &models.Booking{Status: string(StatusPending)}
	assert.Error(t, Transition(pending, StatusCompleted))
}

func TestEquipmentEffect(t *testing.T) {
	s, ok := EquipmentEffect(StatusRejected, equipment.StatusBorrowed)
	assert.True(t, ok)
	assert.Equal(t, equipment.StatusAvailable, s)

	s, ok = EquipmentEffect(StatusCompleted, equipment.StatusBorrowed)
	assert.True(t, ok)
	assert.Equal(t, equipment.StatusAvailable, s)

	_, ok = EquipmentEffect(StatusApproved, equipment.StatusBorrowed)
	assert.False(t, ok)

	_, ok = EquipmentEffect(StatusRejected, equipment.StatusMaintenance)
	assert.False(t, ok)

	_, ok = EquipmentEffect(StatusCompleted, equipment.StatusAvailable)
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	assert.Equal(t, Counts{}, Count(nil))

	list := []models.Booking{
		{Status: "pending"}, {Status: "pending"},
		{Status: "approved"},
		{Status: "rejected"},
		{Status: "completed"}, {Status: "completed"}, {Status: "completed"},
	}
	got := Count(list)
	assert.Equal(t, Counts{Total: 7, Pending: 2, Approved: 1, Rejected: 1, Completed: 3}, got)
	assert.Equal(t, got.Total, got.Pending+got.Approved+got.Rejected+got.Completed)
}

func TestCanBook(t *testing.T) {
	assert.NoError(t, CanBook(equipment.StatusAvailable))

	for _, s := range []equipment.Status{equipment.StatusBorrowed, equipment.StatusMaintenance} {
		err := CanBook(s)
		assert.True(t, httperr.IsBusiness(err, "equipment_unavailable"), "status %s", s)
	}
}
