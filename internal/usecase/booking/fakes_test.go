package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/raksinkh/equipment-management/internal/domain/booking"
	"github.com/raksinkh/equipment-management/internal/domain/equipment"
	"github.com/raksinkh/equipment-management/internal/domain/notification"
	"github.com/raksinkh/equipment-management/internal/infra/cache"
	"github.com/raksinkh/equipment-management/internal/metrics"
	"github.com/raksinkh/equipment-management/internal/models"
)

// fakeRepo keeps rows in memory and records every store call in order.
// Transaction snapshots the rows and restores them when fn fails.
type fakeRepo struct {
	mu sync.Mutex

	equipment map[string]models.Equipment
	bookings  map[string]models.Booking
	managers  []models.User

	calls []string

	failCreateBooking   error
	failUpdateEquipment error
	failListManagers    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		equipment: map[string]models.Equipment{},
		bookings:  map[string]models.Booking{},
	}
}

func (f *fakeRepo) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRepo) GetEquipment(_ context.Context, id string) (*models.Equipment, error) {
	f.record("get_equipment %s", id)
	eq, ok := f.equipment[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &eq, nil
}

func (f *fakeRepo) LockEquipment(_ context.Context, id string) (*models.Equipment, error) {
	f.record("lock_equipment %s", id)
	eq, ok := f.equipment[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &eq, nil
}

func (f *fakeRepo) UpdateEquipmentStatus(_ context.Context, id string, status equipment.Status) error {
	f.record("update_equipment %s status=%s", id, status)
	if f.failUpdateEquipment != nil {
		return f.failUpdateEquipment
	}
	eq, ok := f.equipment[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	eq.Status = string(status)
	f.equipment[id] = eq
	return nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.record("insert_booking equipment=%s start=%s end=%s purpose=%s status=%s",
		b.EquipmentID, b.StartDate, b.EndDate, b.Purpose, b.Status)
	if f.failCreateBooking != nil {
		return f.failCreateBooking
	}
	if b.ID == "" {
		b.ID = fmt.Sprintf("b%d", len(f.bookings)+1)
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeRepo) LockBooking(_ context.Context, id string) (*models.Booking, error) {
	f.record("lock_booking %s", id)
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if eq, ok := f.equipment[b.EquipmentID]; ok {
		b.Equipment = &eq
	}
	return &b, nil
}

func (f *fakeRepo) UpdateBookingStatus(_ context.Context, id string, status domain.Status) error {
	f.record("update_booking %s status=%s", id, status)
	b, ok := f.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = string(status)
	f.bookings[id] = b
	return nil
}

func (f *fakeRepo) ListBookingsForUser(_ context.Context, userID string) ([]models.Booking, error) {
	f.record("list_user_bookings %s", userID)
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) SearchBookings(_ context.Context, fl domain.Filter) ([]models.Booking, error) {
	f.record("search_bookings status=%s", fl.Status)
	var out []models.Booking
	for _, b := range f.bookings {
		if fl.Status != "" && b.Status != string(fl.Status) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) ListManagers(context.Context) ([]models.User, error) {
	f.record("list_managers")
	if f.failListManagers != nil {
		return nil, f.failListManagers
	}
	return f.managers, nil
}

func (f *fakeRepo) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	eqSnap := make(map[string]models.Equipment, len(f.equipment))
	for k, v := range f.equipment {
		eqSnap[k] = v
	}
	bSnap := make(map[string]models.Booking, len(f.bookings))
	for k, v := range f.bookings {
		bSnap[k] = v
	}

	f.record("begin")
	if err := fn(f); err != nil {
		f.equipment = eqSnap
		f.bookings = bSnap
		f.record("rollback")
		return err
	}
	f.record("commit")
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// storeCalls drops the transaction markers and the post-commit manager lookup.
func (f *fakeRepo) storeCalls() []string {
	var out []string
	for _, c := range f.calls {
		switch c {
		case "begin", "commit", "rollback", "list_managers":
			continue
		}
		out = append(out, c)
	}
	return out
}

type fakeNotifier struct {
	notices []notification.Notice
}

func (f *fakeNotifier) Publish(n notification.Notice) {
	f.notices = append(f.notices, n)
}

type fakeGuard struct {
	held     map[string]string
	released int
	err      error
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{held: map[string]string{}}
}

func (g *fakeGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	if g.err != nil {
		return "", false, g.err
	}
	if _, ok := g.held[key]; ok {
		return "", false, nil
	}
	token := fmt.Sprintf("t%d", len(g.held)+g.released+1)
	g.held[key] = token
	return token, true, nil
}

func (g *fakeGuard) Release(_ context.Context, key, token string) error {
	g.released++
	if g.held[key] == token {
		delete(g.held, key)
	}
	return nil
}

var _ cache.SubmitGuard = (*fakeGuard)(nil)

var errStore = errors.New("connection reset")

func testMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	return metrics.New(prometheus.NewRegistry())
}

func fixedToday(t *testing.T, s string) func() models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return func() models.Date { return d }
}

func newTestCreate(t *testing.T, repo *fakeRepo, guard cache.SubmitGuard, n *fakeNotifier) *CreateBooking {
	t.Helper()
	uc := NewCreateBooking(repo, guard, n, nil, testMetrics(t), zap.NewNop(), "UTC")
	uc.today = fixedToday(t, "2025-01-05")
	return uc
}
