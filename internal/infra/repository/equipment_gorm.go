package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

type EquipmentGormRepository struct {
	db *gorm.DB
}

func NewEquipmentGormRepository(db *gorm.DB) *EquipmentGormRepository {
	return &EquipmentGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *EquipmentGormRepository) GetEquipment(
	ctx context.Context,
	id string,
) (*models.Equipment, error) {

	var eq models.Equipment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&eq).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentGormRepository) ListEquipment(
	ctx context.Context,
	status equipment.Status,
) ([]models.Equipment, error) {

	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var items []models.Equipment
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *EquipmentGormRepository) ListBookingsForEquipment(
	ctx context.Context,
	equipmentID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User", selectUserContact).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *EquipmentGormRepository) CreateEquipment(
	ctx context.Context,
	eq *models.Equipment,
) error {
	return r.db.WithContext(ctx).Create(eq).Error
}

func (r *EquipmentGormRepository) UpdateEquipment(
	ctx context.Context,
	id string,
	from equipment.Status,
	fields equipment.Fields,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"name":        fields.Name,
			"description": fields.Description,
			"location":    fields.Location,
			"status":      string(fields.Status),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ?", id).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return equipment.ErrStatusChanged
}

func (r *EquipmentGormRepository) UpdateEquipmentImage(
	ctx context.Context,
	id string,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ?", id).
		Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EquipmentGormRepository) DeleteEquipment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Equipment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func selectUserContact(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// Compile-time check
var _ equipment.Repository = (*EquipmentGormRepository)(nil)
