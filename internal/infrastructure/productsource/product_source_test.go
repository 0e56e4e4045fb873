package productsource

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
	{"id": 1, "title": "Phone", "description": "A phone", "price": 20, "currency": "usd", "image": "/path/to/image.jpg", "rating": 4.5},
	{"id": 2, "title": "Laptop", "description": "A laptop", "price": 30.99, "currency": "USD", "image": "/path/to/image2.jpg", "rating": 7}
]`

func newSource(url string, retries int) *HTTPProductSource {
	backoff := jitter.NewBackoff(time.Millisecond, 5*time.Millisecond, 0).WithRand(rand.New(rand.NewSource(1)))
	return NewHTTPProductSource(&http.Client{Timeout: time.Second}, url, retries, backoff, logger.NewNop())
}

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	products, err := newSource(srv.URL, 3).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Phone", products[0].Title)
	assert.Equal(t, "USD", products[0].Currency)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(20)))
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("30.99")))
	assert.Equal(t, 5.0, products[1].Rating)
}

func TestFetchProductsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{"id": 9, "title": "Cup", "price": "3.50"}]}`))
	}))
	defer srv.Close()

	products, err := newSource(srv.URL, 1).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "USD", products[0].Currency)
}

func TestFetchProductsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	products, err := newSource(srv.URL, 3).FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchProductsGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newSource(srv.URL, 2).FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchProductsDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newSource(srv.URL, 5).FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchProductsMalformedBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := newSource(srv.URL, 3).FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestToEntitiesSkipsInvalid(t *testing.T) {
	s := newSource("http://unused", 1)
	products := s.toEntities([]productModel{
		{ID: 1, Title: "ok", Price: decimal.NewFromInt(1)},
		{ID: 1, Title: "duplicate", Price: decimal.NewFromInt(1)},
		{ID: 2, Title: " ", Price: decimal.NewFromInt(1)},
		{ID: 3, Title: "negative", Price: decimal.NewFromInt(-1)},
		{ID: 4, Title: "low", Price: decimal.Zero, Rating: -2},
	})

	require.Len(t, products, 2)
	assert.Equal(t, int64(4), products[1].ID)
	assert.Equal(t, 0.0, products[1].Rating)
}
