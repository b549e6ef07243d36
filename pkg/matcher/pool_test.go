package matcher

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	pool, err := NewPool(3)
	require.NoError(t, err)
	assert.Equal(t, 3, pool.Size())

	pool, err = NewPool(0)
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), pool.Size())
}

func TestNewPool_NegativeRejected(t *testing.T) {
	pool, err := NewPool(-1)
	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.Contains(t, err.Error(), "-1")
}

func TestPool_Closed(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close(), "close is idempotent")

	_, err = NewParallel(pool, testChunks).MatchAll([]byte{1, 2, 3}, mustCompile(t, "02"))
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	var running, peak atomic.Int32
	err = pool.run(16, func(int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_SharedAcrossScans(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	m := NewParallel(pool, testChunks)
	buf := []byte{0x00, 0x33, 0x35, 0x00, 0x33, 0x35}
	p := mustCompile(t, "33 35")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			offsets, err := m.MatchAll(buf, p)
			assert.NoError(t, err)
			assert.Equal(t, []int{1, 4}, offsets)
		}()
	}
	wg.Wait()
}

func TestPool_RunCallsEveryTaskOnce(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)
	defer pool.Close()

	calls := make([]atomic.Int32, 50)
	require.NoError(t, pool.run(len(calls), func(i int) error {
		calls[i].Add(1)
		return nil
	}))
	for i := range calls {
		assert.Equal(t, int32(1), calls[i].Load(), "task %d", i)
	}
}

func TestPool_RunPropagatesErrors(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	boom := errors.New("boom")
	err = pool.run(4, func(i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestPool_RunRecoversPanics(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	err = pool.run(3, func(i int) error {
		if i == 1 {
			panic("worker exploded")
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "worker exploded")

	// The panicking worker released its slot.
	require.NoError(t, pool.run(2, func(int) error { return nil }))
}
