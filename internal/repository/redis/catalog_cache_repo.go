package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const catalogKey = "storefront:catalog"

type CatalogCacheRepo struct {
	client *clients.RedisClient
	conv   converter.CatalogConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCatalogCacheRepo(client *clients.RedisClient, conv converter.CatalogConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CatalogCacheRepo {
	return &CatalogCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный каталог или e.ErrCacheMiss.
// Повреждённое значение удаляется и считается промахом.
func (c *CatalogCacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, e.ErrCacheMiss
	}
	if err != nil {
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products, err := c.decodeCatalog(data)
	if err != nil {
		c.logger.Warnf("Cached catalog is unusable: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(context.Background(), catalogKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, e.ErrCacheMiss
	}

	return products, nil
}

// SetCatalog кэширует каталог целиком с TTL из конфигурации.
func (c *CatalogCacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(c.conv.ToRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, catalogKey, data, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CatalogCacheRepo) DeleteCatalog(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// decodeCatalog десериализует JSON из кэша и проверяет версию формата.
func (c *CatalogCacheRepo) decodeCatalog(data []byte) ([]domain.Product, error) {
	var model converter.CatalogRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	if model.Version != converter.CatalogVersion {
		return nil, fmt.Errorf("cache version %d, expected %d", model.Version, converter.CatalogVersion)
	}

	return c.conv.ToEntities(&model)
}

var _ usecase.CatalogCacheRepository = (*CatalogCacheRepo)(nil)
