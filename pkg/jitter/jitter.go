// Package jitter добавляет случайность в интервалы повторных попыток,
// чтобы клиенты не приходили к источнику каталога одновременно после сбоя.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Backoff описывает экспоненциальную задержку с джиттером.
type Backoff struct {
	Base   time.Duration // задержка перед второй попыткой
	Max    time.Duration // потолок задержки без учёта джиттера
	Factor float64       // коэффициент джиттера, 0.5 означает +0..50%
	rng    *rand.Rand
}

// NewBackoff создаёт Backoff с общим генератором случайных чисел.
func NewBackoff(base, max time.Duration, factor float64) *Backoff {
	return &Backoff{Base: base, Max: max, Factor: factor}
}

// WithRand фиксирует генератор. Полезно в тестах.
func (b *Backoff) WithRand(rng *rand.Rand) *Backoff {
	b.rng = rng
	return b
}

// Next возвращает задержку перед попыткой attempt (нумерация с нуля).
// Результат находится в диапазоне [d, d*(1+Factor)], где d = min(Base*2^attempt, Max).
func (b *Backoff) Next(attempt int) time.Duration {
	d := b.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			d = b.Max
			break
		}
	}

	if b.rng != nil {
		return DurationWithSeed(d, b.Factor, b.rng)
	}

	return Duration(d, b.Factor)
}

// Duration возвращает продолжительность с применённым джиттером.
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	j := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(j)
}

// DurationWithSeed применяет джиттер, используя заданный генератор.
func DurationWithSeed(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	return d + time.Duration(rng.Float64()*jitterFactor*float64(d))
}
