package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() *CatalogCacheRepo {
	return NewCatalogCacheRepo(nil, converter.NewCatalogConverter(), nil, logger.NewNop())
}

func TestDecodeCatalogKeepsPricePrecision(t *testing.T) {
	repo := newTestRepo()
	products := []domain.Product{
		{ID: 1, Title: "Pen", Price: decimal.RequireFromString("0.10"), Currency: "USD", Rating: 4.2, Image: "pen.png"},
		{ID: 2, Title: "Ink", Price: decimal.RequireFromString("19.99"), Currency: "EUR"},
	}

	data, err := json.Marshal(repo.conv.ToRedisModel(products))
	require.NoError(t, err)

	got, err := repo.decodeCatalog(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, "pen.png", got[0].Image)
	assert.Equal(t, "EUR", got[1].Currency)
}

func TestDecodeCatalogRejectsOtherVersion(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.decodeCatalog([]byte(`{"version":99,"products":[]}`))
	require.Error(t, err)

	_, err = repo.decodeCatalog([]byte(`not json`))
	require.Error(t, err)

	_, err = repo.decodeCatalog([]byte(`{"version":1,"products":[{"id":1,"price":"abc"}]}`))
	require.Error(t, err)
}

func TestNoopCatalogCache(t *testing.T) {
	var cache NoopCatalogCache
	ctx := context.Background()

	require.NoError(t, cache.SetCatalog(ctx, []domain.Product{{ID: 1}}))
	_, err := cache.GetCatalog(ctx)
	assert.ErrorIs(t, err, e.ErrCacheMiss)
	assert.NoError(t, cache.DeleteCatalog(ctx))
}
