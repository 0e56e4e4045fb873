package catalog

import (
	"sync"
	"time"
)

// DefaultPulseDuration — сколько держится подсветка счётчика корзины после добавления товара.
const DefaultPulseDuration = 300 * time.Millisecond

// Pulse — косметический флаг, который взводится при добавлении в корзину и
// сбрасывается по таймеру. Повторный Trigger отменяет прежний таймер и запускает новый;
// устаревший таймер, успевший сработать, ничего не делает.
type Pulse struct {
	mu       sync.Mutex
	duration time.Duration
	active   bool
	gen      uint64
	timer    *time.Timer
}

func NewPulse(duration time.Duration) *Pulse {
	if duration <= 0 {
		duration = DefaultPulseDuration
	}

	return &Pulse{duration: duration}
}

// Trigger взводит флаг и перезапускает таймер сброса.
func (p *Pulse) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}

	p.gen++
	gen := p.gen
	p.active = true
	p.timer = time.AfterFunc(p.duration, func() {
		p.expire(gen)
	})
}

// Active сообщает, взведён ли флаг.
func (p *Pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active
}

// Stop отменяет таймер и сбрасывает флаг.
func (p *Pulse) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	p.active = false
}

func (p *Pulse) expire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return
	}
	p.active = false
	p.timer = nil
}
