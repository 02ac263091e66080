package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Equipment
// --------------------------------------------------

func (r *BookingGormRepository) GetEquipment(
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

func (r *BookingGormRepository) LockEquipment(
	ctx context.Context,
	id string,
) (*models.Equipment, error) {

	var eq models.Equipment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&eq).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *BookingGormRepository) UpdateEquipmentStatus(
	ctx context.Context,
	id string,
	status equipment.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) LockBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Equipment").
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	id string,
	status booking.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Equipment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) SearchBookings(
	ctx context.Context,
	f booking.Filter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("User", selectUserContact).
		Preload("Equipment")

	if preds := searchPredicates(f); len(preds) > 0 {
		where, args, err := preds.ToSql()
		if err != nil {
			return nil, err
		}
		q = q.Where(where, args...)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// searchPredicates keeps bookings whose date range overlaps [From, To].
func searchPredicates(f booking.Filter) sq.And {
	var preds sq.And

	if f.Status != "" {
		preds = append(preds, sq.Eq{"status": string(f.Status)})
	}
	if f.EquipmentID != "" {
		preds = append(preds, sq.Eq{"equipment_id": f.EquipmentID})
	}
	if f.UserID != "" {
		preds = append(preds, sq.Eq{"user_id": f.UserID})
	}
	if f.From != nil {
		preds = append(preds, sq.GtOrEq{"end_date": f.From.String()})
	}
	if f.To != nil {
		preds = append(preds, sq.LtOrEq{"start_date": f.To.String()})
	}

	return preds
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) ListManagers(
	ctx context.Context,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleManager).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Tx
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(repo booking.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
