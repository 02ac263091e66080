package equipment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	domain "github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	equipment map[string]models.Equipment
	bookings  []models.Booking

	calls []string

	failGet      error
	failBookings error
	failWrite    error

	// beforeUpdate runs between the read and the write of an edit.
	beforeUpdate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{equipment: map[string]models.Equipment{}}
}

func (f *fakeRepo) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRepo) GetEquipment(_ context.Context, id string) (*models.Equipment, error) {
	f.record("get %s", id)
	if f.failGet != nil {
		return nil, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	eq, ok := f.equipment[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &eq, nil
}

func (f *fakeRepo) ListEquipment(_ context.Context, status domain.Status) ([]models.Equipment, error) {
	f.record("list status=%s", status)
	var out []models.Equipment
	for _, eq := range f.equipment {
		if status == "" || eq.Status == string(status) {
			out = append(out, eq)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateEquipment(_ context.Context, eq *models.Equipment) error {
	f.record("insert name=%s description=%s location=%s status=%s", eq.Name, eq.Description, eq.Location, eq.Status)
	if f.failWrite != nil {
		return f.failWrite
	}
	eq.ID = fmt.Sprintf("e%d", len(f.equipment)+1)
	f.equipment[eq.ID] = *eq
	return nil
}

func (f *fakeRepo) UpdateEquipment(_ context.Context, id string, from domain.Status, fl domain.Fields) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.record("update %s name=%s description=%s location=%s status=%s", id, fl.Name, fl.Description, fl.Location, fl.Status)
	if f.failWrite != nil {
		return f.failWrite
	}
	eq, ok := f.equipment[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if eq.Status != string(from) {
		return domain.ErrStatusChanged
	}
	eq.Name, eq.Description, eq.Location, eq.Status = fl.Name, fl.Description, fl.Location, string(fl.Status)
	f.equipment[id] = eq
	return nil
}

func (f *fakeRepo) UpdateEquipmentImage(_ context.Context, id string, url string) error {
	f.record("update_image %s %s", id, url)
	if f.failWrite != nil {
		return f.failWrite
	}
	eq := f.equipment[id]
	eq.ImageURL.SetValid(url)
	f.equipment[id] = eq
	return nil
}

func (f *fakeRepo) DeleteEquipment(_ context.Context, id string) error {
	f.record("delete %s", id)
	if f.failWrite != nil {
		return f.failWrite
	}
	delete(f.equipment, id)
	return nil
}

func (f *fakeRepo) ListBookingsForEquipment(_ context.Context, id string) ([]models.Booking, error) {
	f.record("list_bookings %s", id)
	if f.failBookings != nil {
		return nil, f.failBookings
	}
	return f.bookings, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) snapshotCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var (
	errStore = errors.New("connection reset")
	errFK    = &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
)

func testMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	return metrics.New(prometheus.NewRegistry())
}
