package equipment

import (
	"context"
	"io"

	"github.com/raksinkh/equipment-management/internal/audit"
	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/imaging"
	"github.com/raksinkh/equipment-management/internal/infra/storage"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

type UploadImageInput struct {
	ID      string
	ActorID string
	Image   io.Reader
}

type UploadImage struct {
	repo    domain.Repository
	store   storage.ObjectStore
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewUploadImage(
	repo domain.Repository,
	store storage.ObjectStore,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *UploadImage {
	return &UploadImage{
		repo:    repo,
		store:   store,
		audit:   audit,
		metrics: m,
	}
}

func (uc *UploadImage) Execute(
	ctx context.Context,
	in UploadImageInput,
) (*models.Equipment, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("storage_disabled")
	}

	eq, err := uc.repo.GetEquipment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	data, err := imaging.ToWebP(in.Image)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	url, err := uc.store.Put(ctx, storage.EquipmentImageKey(eq.ID), data, imaging.ContentType)
	if err != nil {
		uc.metrics.StoreErrors.WithLabelValues("put_image").Inc()
		return nil, err
	}

	if err := uc.repo.UpdateEquipmentImage(ctx, eq.ID, url); err != nil {
		uc.metrics.StoreErrors.WithLabelValues("update_equipment_image").Inc()
		return nil, err
	}
	eq.ImageURL.SetValid(url)

	uc.metrics.EquipmentMutations.WithLabelValues("image").Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "equipment_image_uploaded",
		Entity:   "equipment",
		EntityID: eq.ID,
		Metadata: map[string]any{"url": url, "bytes": len(data)},
	})
	return eq, nil
}
