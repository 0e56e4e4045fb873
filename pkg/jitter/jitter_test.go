package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffStaysWithinBounds(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, time.Second, DefaultJitter).WithRand(rand.New(rand.NewSource(1)))

	cases := []struct {
		attempt int
		base    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{10, time.Second},
	}

	for _, c := range cases {
		got := b.Next(c.attempt)
		assert.GreaterOrEqual(t, got, c.base, "attempt %d", c.attempt)
		assert.LessOrEqual(t, got, time.Duration(float64(c.base)*(1+DefaultJitter)), "attempt %d", c.attempt)
	}
}

func TestZeroFactorIsDeterministic(t *testing.T) {
	b := NewBackoff(50*time.Millisecond, time.Second, 0)
	assert.Equal(t, 200*time.Millisecond, b.Next(2))
}

func TestDurationWithSeedRepeatable(t *testing.T) {
	a := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}
