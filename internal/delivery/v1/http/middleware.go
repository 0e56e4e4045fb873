package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPObserver принимает результат каждого запроса (метрики).
type HTTPObserver interface {
	ObserveHTTP(method, path string, status int, duration time.Duration)
}

// requestLogger пишет в лог метод, маршрут, статус и длительность запроса.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Infof("%s %s %d %s req_id=%s",
				r.Method, r.URL.Path, status(ww), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

// unmatchedRoute — метка пути для запросов, не совпавших ни с одним маршрутом.
const unmatchedRoute = "unmatched"

// observe передаёт метрики запроса. Метка пути — шаблон маршрута chi, поэтому
// число серий ограничено набором маршрутов.
func observe(obs HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			obs.ObserveHTTP(r.Method, path, status(ww), time.Since(start))
		})
	}
}

func status(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
