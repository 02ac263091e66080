package equipment

import (
	"context"
	"errors"
	"strings"

	"github.com/raksinkh/equipment-management/internal/audit"
	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ======================================================
// INPUT
// ======================================================

type SaveEquipmentInput struct {
	Mode    Mode
	ID      string
	ActorID string

	Name        string
	Description string
	Location    string
	Status      string
}

// ======================================================
// USE CASE
// ======================================================

type SaveEquipment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewSaveEquipment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *SaveEquipment {
	return &SaveEquipment{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute inserts a new item in create mode and updates the four editable
// columns of an existing one in edit mode. Edit never inserts. An empty
// status means available on create and the stored status on edit.
func (uc *SaveEquipment) Execute(
	ctx context.Context,
	in SaveEquipmentInput,
) (*models.Equipment, error) {

	fields, err := normalize(in)
	if err != nil {
		return nil, err
	}

	switch in.Mode {
	case ModeCreate:
		return uc.create(ctx, in.ActorID, fields)
	case ModeEdit:
		if in.ID == "" {
			return nil, httperr.ErrBusiness("missing_id")
		}
		return uc.edit(ctx, in.ActorID, in.ID, fields)
	}
	return nil, httperr.ErrBusiness("invalid_mode")
}

func normalize(in SaveEquipmentInput) (domain.Fields, error) {
	f := domain.Fields{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
	}
	if f.Name == "" {
		return domain.Fields{}, httperr.ErrBusiness("missing_name")
	}
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return domain.Fields{}, err
		}
		f.Status = s
	}
	return f, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (uc *SaveEquipment) create(
	ctx context.Context,
	actorID string,
	f domain.Fields,
) (*models.Equipment, error) {

	if f.Status == "" {
		f.Status = domain.DefaultStatus()
	}

	eq := &models.Equipment{
		Name:        f.Name,
		Description: f.Description,
		Location:    f.Location,
		Status:      string(f.Status),
	}
	if err := uc.repo.CreateEquipment(ctx, eq); err != nil {
		uc.metrics.StoreErrors.WithLabelValues("create_equipment").Inc()
		return nil, err
	}

	uc.metrics.EquipmentMutations.WithLabelValues("create").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "equipment_created",
		Entity:   "equipment",
		EntityID: eq.ID,
		Metadata: map[string]any{"name": eq.Name, "status": eq.Status},
	})
	return eq, nil
}

// --------------------------------------------------
// Edit
// --------------------------------------------------

func (uc *SaveEquipment) edit(
	ctx context.Context,
	actorID string,
	id string,
	f domain.Fields,
) (*models.Equipment, error) {

	current, err := uc.repo.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	from := domain.Status(current.Status)
	if f.Status == "" {
		f.Status = from
	}
	if err := domain.CanTransition(from, f.Status); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateEquipment(ctx, id, from, f); err != nil {
		if !errors.Is(err, domain.ErrStatusChanged) {
			uc.metrics.StoreErrors.WithLabelValues("update_equipment").Inc()
		}
		return nil, err
	}

	current.Name = f.Name
	current.Description = f.Description
	current.Location = f.Location
	current.Status = string(f.Status)

	uc.metrics.EquipmentMutations.WithLabelValues("update").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "equipment_updated",
		Entity:   "equipment",
		EntityID: id,
		Metadata: map[string]any{"from_status": string(from), "to_status": current.Status},
	})
	return current, nil
}
