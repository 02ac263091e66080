package equipment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

func TestSaveEquipment_CreateDefaultsToAvailable(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	eq, err := uc.Execute(context.Background(), SaveEquipmentInput{
		Mode:        ModeCreate,
		Name:        "Projector",
		Description: "1080p",
		Location:    "Room 4",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"insert name=Projector description=1080p location=Room 4 status=available",
	}, repo.snapshotCalls())
	assert.Equal(t, "available", eq.Status)
	assert.NotEmpty(t, eq.ID)
}

func TestSaveEquipment_EditUpdatesNeverInserts(t *testing.T) {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Name: "Old", Status: "available"}
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	eq, err := uc.Execute(context.Background(), SaveEquipmentInput{
		Mode:     ModeEdit,
		ID:       "e1",
		Name:     "Projector",
		Location: "Room 4",
		Status:   "maintenance",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"get e1",
		"update e1 name=Projector description= location=Room 4 status=maintenance",
	}, repo.snapshotCalls())
	assert.Equal(t, "maintenance", eq.Status)
	assert.Len(t, repo.equipment, 1)
}

func TestSaveEquipment_EditWithoutStatusKeepsCurrent(t *testing.T) {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Name: "Old", Status: "borrowed"}
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	eq, err := uc.Execute(context.Background(), SaveEquipmentInput{
		Mode: ModeEdit,
		ID:   "e1",
		Name: "Projector",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"get e1",
		"update e1 name=Projector description= location= status=borrowed",
	}, repo.snapshotCalls())
	assert.Equal(t, "borrowed", eq.Status)
	assert.Equal(t, "borrowed", repo.equipment["e1"].Status)
}

func TestSaveEquipment_EditLosesToConcurrentBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Name: "Projector", Status: "available"}
	repo.beforeUpdate = func() {
		eq := repo.equipment["e1"]
		eq.Status = "borrowed"
		repo.equipment["e1"] = eq
	}
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	_, err := uc.Execute(context.Background(), SaveEquipmentInput{
		Mode:     ModeEdit,
		ID:       "e1",
		Name:     "Projector",
		Location: "Room 4",
		Status:   "available",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "got %v", err)
	assert.Equal(t, "borrowed", repo.equipment["e1"].Status)
	assert.Empty(t, repo.equipment["e1"].Location)
}

func TestSaveEquipment_EditIllegalTransition(t *testing.T) {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Name: "Drill", Status: "maintenance"}
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	_, err := uc.Execute(context.Background(), SaveEquipmentInput{
		Mode:   ModeEdit,
		ID:     "e1",
		Name:   "Drill",
		Status: "borrowed",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, []string{"get e1"}, repo.snapshotCalls())
}

func TestSaveEquipment_EditMissingRow(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSaveEquipment(repo, nil, testMetrics(t))

	_, err := uc.Execute(context.Background(), SaveEquipmentInput{Mode: ModeEdit, ID: "nope", Name: "x"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSaveEquipment_Rejects(t *testing.T) {
	cases := map[string]struct {
		in   SaveEquipmentInput
		code string
	}{
		"blank name":      {SaveEquipmentInput{Mode: ModeCreate, Name: "  "}, "missing_name"},
		"unknown status":  {SaveEquipmentInput{Mode: ModeCreate, Name: "x", Status: "lost"}, "invalid_status"},
		"edit without id": {SaveEquipmentInput{Mode: ModeEdit, Name: "x"}, "missing_id"},
		"unknown mode":    {SaveEquipmentInput{Mode: "upsert", Name: "x"}, "invalid_mode"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newFakeRepo()
			_, err := NewSaveEquipment(repo, nil, testMetrics(t)).Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			assert.Empty(t, repo.snapshotCalls())
		})
	}
}

func TestSaveEquipment_StoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failWrite = errStore

	_, err := NewSaveEquipment(repo, nil, testMetrics(t)).Execute(context.Background(), SaveEquipmentInput{
		Mode: ModeCreate,
		Name: "Projector",
	})
	assert.ErrorIs(t, err, errStore)
	assert.Empty(t, repo.equipment)
}
