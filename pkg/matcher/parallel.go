package matcher

import (
	"sync"
	"sync/atomic"

	"github.com/praetorian-inc/sigscan/pkg/types"
)

// Parallel splits the candidate offsets of a buffer into contiguous ranges
// and scans them on workers borrowed from a Pool.
//
// Workers only read the buffer and the pattern. Each writes its result to
// its own slot, and slots are merged after all workers have joined.
type Parallel struct {
	pool   *Pool
	chunks ChunkConfig
}

// NewParallel creates a parallel matcher borrowing workers from pool.
// A zero ChunkConfig selects DefaultChunkConfig().
func NewParallel(pool *Pool, chunks ChunkConfig) *Parallel {
	return &Parallel{
		pool:   pool,
		chunks: chunks.withDefaults(),
	}
}

// partition splits the candidate offsets of buf for p.
func (m *Parallel) partition(buf []byte, p types.Pattern) []Range {
	return Partition(candidates(buf, p), m.pool.Size()*m.chunks.ChunksPerWorker, m.chunks.MinChunkSize)
}

// MatchAll returns every matching start offset in ascending order,
// independent of the order in which workers finish.
func (m *Parallel) MatchAll(buf []byte, p types.Pattern) ([]int, error) {
	ranges := m.partition(buf, p)
	if len(ranges) == 0 {
		return nil, nil
	}

	parts := make([][]int, len(ranges))
	err := m.pool.run(len(ranges), func(i int) error {
		parts[i] = scanRange(nil, buf, p, ranges[i].Start, ranges[i].End)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergeOffsets(parts), nil
}

// MatchFirst returns the lowest matching start offset. Every range
// reports its own lowest match and the smallest of those wins, so the
// result equals the sequential one.
func (m *Parallel) MatchFirst(buf []byte, p types.Pattern) (int, bool, error) {
	ranges := m.partition(buf, p)
	if len(ranges) == 0 {
		return 0, false, nil
	}

	firsts := make([]int, len(ranges))
	err := m.pool.run(len(ranges), func(i int) error {
		firsts[i] = -1
		if off, ok := firstInRange(buf, p, ranges[i].Start, ranges[i].End, nil); ok {
			firsts[i] = off
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	// Ranges are ascending, so the first range with a hit holds the answer.
	for _, off := range firsts {
		if off >= 0 {
			return off, true, nil
		}
	}
	return 0, false, nil
}

// MatchAny returns some matching offset, stopping all workers as soon as
// one of them finds a hit.
//
// The result is order-agnostic: when the pattern matches more than once
// it is not necessarily the lowest offset and may differ between calls.
// Use MatchFirst or Unique when the offset must be the lowest or the only
// one.
func (m *Parallel) MatchAny(buf []byte, p types.Pattern) (int, bool, error) {
	ranges := m.partition(buf, p)
	if len(ranges) == 0 {
		return 0, false, nil
	}

	var (
		stop  atomic.Bool
		once  sync.Once
		found int
	)
	err := m.pool.run(len(ranges), func(i int) error {
		if stop.Load() {
			return nil
		}
		if off, ok := firstInRange(buf, p, ranges[i].Start, ranges[i].End, &stop); ok {
			once.Do(func() {
				found = off
				stop.Store(true)
			})
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return found, stop.Load(), nil
}
