package redis

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
)

// NoopCatalogCache используется, когда Redis не настроен: каждый запрос — промах.
type NoopCatalogCache struct{}

func (NoopCatalogCache) GetCatalog(context.Context) ([]domain.Product, error) {
	return nil, e.ErrCacheMiss
}

func (NoopCatalogCache) SetCatalog(context.Context, []domain.Product) error {
	return nil
}

func (NoopCatalogCache) DeleteCatalog(context.Context) error {
	return nil
}

var _ usecase.CatalogCacheRepository = NoopCatalogCache{}
