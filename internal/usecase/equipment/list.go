package equipment

import (
	"context"

	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

type ListEquipment struct {
	repo domain.Repository
}

func NewListEquipment(repo domain.Repository) *ListEquipment {
	return &ListEquipment{repo: repo}
}

// Execute lists every item when status is empty.
func (uc *ListEquipment) Execute(
	ctx context.Context,
	status string,
) ([]models.Equipment, error) {

	var s domain.Status
	if status != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		s = parsed
	}
	return uc.repo.ListEquipment(ctx, s)
}
