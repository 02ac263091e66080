package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

func reviewRepo(bookingStatus, equipmentStatus string) *fakeRepo {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Name: "Projector", Status: equipmentStatus}
	repo.bookings["b1"] = models.Booking{ID: "b1", UserID: "u1", EquipmentID: "e1", Status: bookingStatus}
	repo.managers = []models.User{{ID: "m1", Role: models.RoleManager}}
	return repo
}

func review(t *testing.T, repo *fakeRepo, n *fakeNotifier, next domain.Status) (*ReviewBooking, *models.Booking, error) {
	t.Helper()
	uc := NewReviewBooking(repo, n, nil, testMetrics(t), zap.NewNop())
	b, err := uc.Execute(context.Background(), ReviewBookingInput{
		BookingID: "b1",
		ManagerID: "m1",
		Status:    next,
	})
	return uc, b, err
}

func TestReviewBooking_Approve(t *testing.T) {
	repo := reviewRepo("pending", "borrowed")
	n := &fakeNotifier{}

	uc, b, err := review(t, repo, n, domain.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, "approved", b.Status)
	assert.Equal(t, []string{
		"lock_booking b1",
		"update_booking b1 status=approved",
		"lock_equipment e1",
	}, repo.storeCalls())
	assert.Equal(t, "borrowed", repo.equipment["e1"].Status)

	require.Len(t, n.notices, 1)
	assert.Equal(t, notification.TypeBookingApproved, n.notices[0].Type)
	assert.Equal(t, []string{"u1"}, n.notices[0].Recipients)
	assert.Equal(t, float64(1), testutil.ToFloat64(uc.metrics.BookingTransitions.WithLabelValues("approved")))
}

func TestReviewBooking_RejectFreesEquipment(t *testing.T) {
	repo := reviewRepo("pending", "borrowed")
	n := &fakeNotifier{}

	_, b, err := review(t, repo, n, domain.StatusRejected)
	require.NoError(t, err)

	assert.Equal(t, "rejected", b.Status)
	assert.Equal(t, "available", repo.equipment["e1"].Status)
	assert.Equal(t, "available", b.Equipment.Status)

	require.Len(t, n.notices, 1)
	assert.Equal(t, notification.TypeBookingRejected, n.notices[0].Type)
	assert.Equal(t, []string{"u1"}, n.notices[0].Recipients)
}

func TestReviewBooking_CompleteReturnsEquipment(t *testing.T) {
	repo := reviewRepo("approved", "borrowed")
	n := &fakeNotifier{}

	_, _, err := review(t, repo, n, domain.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, "completed", repo.bookings["b1"].Status)
	assert.Equal(t, "available", repo.equipment["e1"].Status)

	require.Len(t, n.notices, 1)
	assert.Equal(t, notification.TypeEquipmentReturned, n.notices[0].Type)
	assert.Equal(t, []string{"m1"}, n.notices[0].Recipients)
}

func TestReviewBooking_RejectKeepsMaintenance(t *testing.T) {
	repo := reviewRepo("pending", "maintenance")
	n := &fakeNotifier{}

	_, b, err := review(t, repo, n, domain.StatusRejected)
	require.NoError(t, err)

	assert.Equal(t, "rejected", b.Status)
	assert.Equal(t, "maintenance", repo.equipment["e1"].Status)
	assert.Equal(t, "maintenance", b.Equipment.Status)
	assert.NotContains(t, repo.storeCalls(), "update_equipment e1 status=available")
}

func TestReviewBooking_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from string
		to   domain.Status
	}{
		{"pending", domain.StatusCompleted},
		{"approved", domain.StatusRejected},
		{"rejected", domain.StatusApproved},
		{"completed", domain.StatusApproved},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+string(tc.to), func(t *testing.T) {
			repo := reviewRepo(tc.from, "borrowed")
			n := &fakeNotifier{}

			_, _, err := review(t, repo, n, tc.to)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			assert.Equal(t, tc.from, repo.bookings["b1"].Status)
			assert.Equal(t, "borrowed", repo.equipment["e1"].Status)
			assert.Empty(t, n.notices)
		})
	}
}

func TestReviewBooking_EquipmentFailureRollsBack(t *testing.T) {
	repo := reviewRepo("pending", "borrowed")
	repo.failUpdateEquipment = errStore
	n := &fakeNotifier{}

	_, _, err := review(t, repo, n, domain.StatusRejected)
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, "pending", repo.bookings["b1"].Status)
	assert.Empty(t, n.notices)
}

func TestReviewBooking_NotFound(t *testing.T) {
	repo := newFakeRepo()
	_, _, err := review(t, repo, &fakeNotifier{}, domain.StatusApproved)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
