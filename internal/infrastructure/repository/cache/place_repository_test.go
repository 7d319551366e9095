package cache

import (
	"context"
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/memory"
	basecache "github.com/nilosmferreira/damasios-ai/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPlaces struct {
	place.Repository
	lists int
	gets  int
}

func (c *countingPlaces) List(ctx context.Context) ([]place.Place, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func (c *countingPlaces) GetByID(ctx context.Context, id string) (place.Place, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, id)
}

func TestPlaceRepository_ListIsCached(t *testing.T) {
	inner := &countingPlaces{Repository: memory.NewSeededStore().Places()}
	repo := NewPlaceRepository(inner, basecache.NewStore[[]place.Place](time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, 1, inner.lists)
}

func TestPlaceRepository_GetByIDSeesPlacesWrittenBehindTheCache(t *testing.T) {
	inner := &countingPlaces{Repository: memory.NewSeededStore().Places()}
	repo := NewPlaceRepository(inner, basecache.NewStore[[]place.Place](time.Minute))
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)

	// Written straight to the store, as the seed command does from its own process.
	require.NoError(t, inner.Repository.Upsert(ctx, place.Place{ID: "quadra-2", Name: "Quadra Norte"}))

	got, exists, err := repo.GetByID(ctx, "quadra-2")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Quadra Norte", got.Name)
	assert.Equal(t, 1, inner.gets)
}

func TestPlaceRepository_ZeroTTLReadsThrough(t *testing.T) {
	inner := &countingPlaces{Repository: memory.NewSeededStore().Places()}
	repo := NewPlaceRepository(inner, basecache.NewStore[[]place.Place](0))
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)
	require.NoError(t, inner.Repository.Upsert(ctx, place.Place{ID: "quadra-2", Name: "Quadra Norte"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, inner.lists)
}

func TestPlaceRepository_UpsertInvalidatesList(t *testing.T) {
	inner := &countingPlaces{Repository: memory.NewSeededStore().Places()}
	repo := NewPlaceRepository(inner, basecache.NewStore[[]place.Place](time.Minute))
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, place.Place{ID: "quadra-2", Name: "Quadra Norte"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, inner.lists)

	_, exists, err := repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPlaceRepository_ListReturnsCopies(t *testing.T) {
	repo := NewPlaceRepository(memory.NewSeededStore().Places(), basecache.NewStore[[]place.Place](0))
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Name = "changed"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, place.Default().Name, again[0].Name)
}
