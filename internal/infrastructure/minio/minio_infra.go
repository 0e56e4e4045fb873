package minio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type presigned struct {
	url       string
	expiresAt time.Time
}

// MinioInfrastructure превращает ссылки на изображения товаров в адреса для браузера.
// Абсолютные URL возвращаются как есть, ключи объектов подписываются в MinIO.
type MinioInfrastructure struct {
	imageRepo usecase.ImageRepository // nil, если MinIO не настроен
	ttl       time.Duration
	logger    logger.Logger
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]presigned
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, ttl time.Duration, logger logger.Logger) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo: imageRepo,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		cache:     make(map[string]presigned),
	}
}

// ResolveImageURL возвращает адрес изображения. Подписанная ссылка переиспользуется,
// пока не прошла половина её срока жизни.
func (m *MinioInfrastructure) ResolveImageURL(ctx context.Context, ref string) (string, error) {
	const op = "MinioInfrastructure.ResolveImageURL"

	ref = strings.TrimSpace(ref)
	if ref == "" || isAbsolute(ref) || m.imageRepo == nil {
		return ref, nil
	}

	key := strings.TrimPrefix(ref, "/")
	now := m.now()

	m.mu.Lock()
	if p, ok := m.cache[key]; ok && now.Before(p.expiresAt) {
		m.mu.Unlock()
		return p.url, nil
	}
	m.mu.Unlock()

	u, err := m.imageRepo.PresignGet(ctx, key, m.ttl)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	m.mu.Lock()
	m.cache[key] = presigned{url: u, expiresAt: now.Add(m.ttl / 2)}
	m.mu.Unlock()

	return u, nil
}

func isAbsolute(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}

var _ usecase.ImagesInfra = (*MinioInfrastructure)(nil)
