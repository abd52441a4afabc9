package memory

import (
	// Go Internal Packages
	"context"
	"testing"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusIsGuarded(t *testing.T) {
	ctx := context.Background()
	repo := NewTxRepository()
	saved, err := repo.Save(ctx, models.Transaction{ExternalID: uuid.New(), StatusID: 1})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	rows, err := repo.UpdateStatus(ctx, saved.ExternalID, 2, []int{1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.UpdateStatus(ctx, saved.ExternalID, 3, []int{1})
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	got, found, err := repo.FindByExternalID(ctx, saved.ExternalID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, got.StatusID)
}

func TestUpdateUnknownTransaction(t *testing.T) {
	rows, err := NewTxRepository().UpdateStatus(context.Background(), uuid.New(), 2, []int{1})

	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestSaveRejectsDuplicateExternalID(t *testing.T) {
	ctx := context.Background()
	repo := NewTxRepository()
	tx := models.Transaction{ExternalID: uuid.New()}

	_, err := repo.Save(ctx, tx)
	require.NoError(t, err)
	_, err = repo.Save(ctx, tx)
	assert.Error(t, err)
}

func TestStatusCatalogLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusRepository(models.DefaultStatuses)

	byCode, ok, err := repo.FindByCode(ctx, models.StatusRejected)
	require.NoError(t, err)
	require.True(t, ok)
	byID, ok, err := repo.FindByID(ctx, byCode.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byCode, byID)

	_, ok, err = repo.FindByCode(ctx, "CANCELLED")
	require.NoError(t, err)
	assert.False(t, ok)
}
