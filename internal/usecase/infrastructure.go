package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// ProductSourceInfra загружает каталог из внешнего API.
type ProductSourceInfra interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

type ImagesInfra interface {
	ResolveImageURL(ctx context.Context, ref string) (string, error)
}

type EventsInfra interface {
	PublishCartItemAdded(ctx context.Context, event *CartItemAddedEvent) error
}

type MetricsInfra interface {
	SessionStarted()
	SessionsEvicted(n int)
	CartItemAdded(currency string)
	CatalogLoaded(source string)
	CatalogImported(n int)
}
