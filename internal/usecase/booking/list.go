package booking

import (
	"context"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/models"
)

type ListMyBookings struct {
	repo domain.Repository
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{repo: repo}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	userID string,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForUser(ctx, userID)
}

// SearchBookings is the manager's view over every booking.
type SearchBookings struct {
	repo domain.Repository
}

func NewSearchBookings(repo domain.Repository) *SearchBookings {
	return &SearchBookings{repo: repo}
}

func (uc *SearchBookings) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]models.Booking, domain.Counts, error) {

	list, err := uc.repo.SearchBookings(ctx, f)
	if err != nil {
		return nil, domain.Counts{}, err
	}
	return list, domain.Count(list), nil
}
