package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge-backend/internal/model"
)

func TestMemoryStoreMissingIDReturnsNil(t *testing.T) {
	store := NewMemoryStore()
	rec, err := store.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryStorePutAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, &model.RestaurantRecord{
		BusinessID: "biz-1",
		Name:       "Trattoria X",
		Rating:     "4.5",
	}))

	rec, err := store.GetByID(ctx, "biz-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Trattoria X", rec.Name)
	assert.Equal(t, "4.5", rec.Rating)
}

func TestMemoryStoreRecordsAreImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, &model.RestaurantRecord{BusinessID: "biz-1", Name: "Original"}))
	require.NoError(t, store.Put(ctx, &model.RestaurantRecord{BusinessID: "biz-1", Name: "Overwrite"}))

	rec, err := store.GetByID(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", rec.Name)
}
