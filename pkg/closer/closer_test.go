package closer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(time.Second)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Func {
		return func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	c.Add("db", record("db"))
	c.Add("redis", record("redis"))
	c.AddFunc("http", func() { _ = record("http")(context.Background()) })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "db"}, order)
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)
	c.Add("kafka", func(context.Context) error { return errors.New("broker gone") })
	c.Add("ok", func(context.Context) error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker gone")
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCloser(time.Second)
	calls := 0
	c.Add("once", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(time.Second)

	var firstForced atomic.Bool
	c.Add("first", func(ctx context.Context) error {
		firstForced.Store(ctx.Err() == nil)
		return nil
	})

	var slowCalls atomic.Int32
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	c.Add("slow", func(context.Context) error {
		if slowCalls.Add(1) == 1 {
			<-block
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted after 0/2 funcs")
	assert.True(t, firstForced.Load())
	assert.Equal(t, int32(2), slowCalls.Load())
}
