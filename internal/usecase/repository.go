package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// ProductRepository — зеркало каталога в PostgreSQL.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpsertProducts(ctx context.Context, products []domain.Product) (int, error)
}

// CatalogCacheRepository хранит весь каталог одним значением.
// При промахе GetCatalog возвращает e.ErrCacheMiss.
type CatalogCacheRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	DeleteCatalog(ctx context.Context) error
}

// TxManager выполняет fn в одной транзакции; транзакция передаётся через ctx.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageRepository выдаёт временные ссылки на объекты в хранилище изображений.
type ImageRepository interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
