package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo выдаёт подписанные ссылки на изображения товаров из бакета MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// PresignGet возвращает подписанную ссылку на чтение объекта. Браузеру
// разрешено кэшировать изображение не дольше срока жизни ссылки.
func (i *ImageRepo) PresignGet(ctx context.Context, ref string, ttl time.Duration) (string, error) {
	key := objectKey(ref, i.cfg.BucketName)
	if key == "" {
		return "", e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	params := url.Values{}
	params.Set("response-cache-control", fmt.Sprintf("private, max-age=%d", int(ttl.Seconds())))

	u, err := i.mc.PresignedGetObject(ctx, i.cfg.BucketName, key, ttl, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}

// objectKey приводит ссылку из каталога к ключу объекта: "s3://bucket/a.png",
// "/bucket/a.png" и "a.png" дают "a.png".
func objectKey(ref, bucket string) string {
	key := strings.TrimPrefix(ref, "s3://")
	key = strings.TrimLeft(key, "/")
	key = strings.TrimPrefix(key, bucket+"/")

	return key
}

var _ usecase.ImageRepository = (*ImageRepo)(nil)
