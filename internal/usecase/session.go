package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/google/uuid"
)

// Session — состояние одного посетителя: окно каталога, корзина и индикатор добавления.
// Все изменения идут под mu, поэтому обработчики одной сессии выполняются по очереди.
type Session struct {
	ID uuid.UUID

	mu    sync.Mutex
	view  *catalog.View
	cart  *cart.Cart
	pulse *catalog.Pulse

	lastSeen atomic.Int64 // unix nano
}

func newSession(view *catalog.View, pulse *catalog.Pulse, now time.Time) *Session {
	s := &Session{
		ID:    uuid.New(),
		view:  view,
		cart:  cart.New(),
		pulse: pulse,
	}
	s.touch(now)

	return s
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

func (s *Session) close() {
	s.pulse.Stop()
}
