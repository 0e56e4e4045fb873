package minio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageRepo struct {
	calls int
	err   error
}

func (f *fakeImageRepo) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://minio.local/images/" + key + "?sig=abc", nil
}

func TestResolveImageURLPassesAbsoluteThrough(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := NewMinioInfrastructure(repo, time.Minute, logger.NewNop())

	for _, ref := range []string{"https://cdn.example.com/a.png", "HTTP://x/y.jpg", "data:image/png;base64,AAA", ""} {
		got, err := infra.ResolveImageURL(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}
	assert.Equal(t, 0, repo.calls)
}

func TestResolveImageURLPresignsAndCaches(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := NewMinioInfrastructure(repo, time.Minute, logger.NewNop())
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	infra.now = func() time.Time { return now }

	got, err := infra.ResolveImageURL(context.Background(), "/products/1.png")
	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/images/products/1.png?sig=abc", got)

	_, err = infra.ResolveImageURL(context.Background(), "products/1.png")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	now = now.Add(31 * time.Second)
	_, err = infra.ResolveImageURL(context.Background(), "products/1.png")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestResolveImageURLWithoutStorage(t *testing.T) {
	infra := NewMinioInfrastructure(nil, time.Minute, logger.NewNop())

	got, err := infra.ResolveImageURL(context.Background(), "products/1.png")
	require.NoError(t, err)
	assert.Equal(t, "products/1.png", got)
}

func TestResolveImageURLError(t *testing.T) {
	infra := NewMinioInfrastructure(&fakeImageRepo{err: errors.New("no such bucket")}, time.Minute, logger.NewNop())

	_, err := infra.ResolveImageURL(context.Background(), "k.png")
	require.Error(t, err)
}
