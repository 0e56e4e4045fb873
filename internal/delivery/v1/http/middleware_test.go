package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	mu    sync.Mutex
	paths map[string]int
}

func (o *recordingObserver) ObserveHTTP(_, path string, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.paths[path]++
}

func TestObserveUsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{paths: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(observe(obs))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, path := range []string{"/items/1", "/items/2", "/scan/0", "/scan/1", "/scan/2", "/scan/3", "/scan/4"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, map[string]int{
		"/items/{id}":  2,
		unmatchedRoute: 5,
	}, obs.paths)
}
