package usecase

import (
	"context"

	"github.com/google/uuid"
)

type StorefrontUC interface {
	StartSession(ctx context.Context) (*StorefrontSnapshot, error)
	Snapshot(ctx context.Context, id uuid.UUID) (*StorefrontSnapshot, error)
	RevealMore(ctx context.Context, id uuid.UUID) (*StorefrontSnapshot, error)
	Search(ctx context.Context, id uuid.UUID, term string) (*StorefrontSnapshot, error)
	Sort(ctx context.Context, id uuid.UUID, key string) (*StorefrontSnapshot, error)
	AddToCart(ctx context.Context, id uuid.UUID, productID int64) (*StorefrontSnapshot, error)
	ImportCatalog(ctx context.Context) (*ImportCatalogRes, error)
}
