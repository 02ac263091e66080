package equipment

import (
	"context"

	"github.com/raksinkh/equipment-management/internal/audit"
	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/metrics"
)

type DeleteEquipmentInput struct {
	ID        string
	ActorID   string
	Confirmed bool
}

type DeleteEquipment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewDeleteEquipment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *DeleteEquipment {
	return &DeleteEquipment{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

// Execute issues exactly one delete once the caller confirmed it. Items
// still referenced by bookings are refused by the store's foreign key.
func (uc *DeleteEquipment) Execute(
	ctx context.Context,
	in DeleteEquipmentInput,
) error {

	if !in.Confirmed {
		return httperr.ErrBusiness("confirmation_required")
	}

	if err := uc.repo.DeleteEquipment(ctx, in.ID); err != nil {
		if httperr.IsForeignKeyViolation(err) {
			return httperr.ErrBusiness("equipment_has_bookings")
		}
		uc.metrics.StoreErrors.WithLabelValues("delete_equipment").Inc()
		return err
	}

	uc.metrics.EquipmentMutations.WithLabelValues("delete").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "equipment_deleted",
		Entity:   "equipment",
		EntityID: in.ID,
	})
	return nil
}
