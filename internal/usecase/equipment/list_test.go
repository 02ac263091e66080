package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksinkh/equipment-management/internal/httperr"
	"github.com/raksinkh/equipment-management/internal/models"
)

func TestListEquipment(t *testing.T) {
	repo := newFakeRepo()
	repo.equipment["e1"] = models.Equipment{ID: "e1", Status: "available"}
	repo.equipment["e2"] = models.Equipment{ID: "e2", Status: "borrowed"}
	uc := NewListEquipment(repo)

	all, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	avail, err := uc.Execute(context.Background(), "available")
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, "e1", avail[0].ID)

	_, err = uc.Execute(context.Background(), "lost")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
