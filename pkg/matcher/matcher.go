// Package matcher finds every window of a buffer that matches a compiled
// byte pattern, either sequentially or split across a worker pool.
package matcher

import "github.com/praetorian-inc/sigscan/pkg/types"

// Matcher scans a buffer for windows matching a compiled pattern.
//
// Implementations never modify buf or p. An empty pattern or one longer
// than buf yields no matches and no error.
type Matcher interface {
	// MatchAll returns every matching start offset in ascending order.
	MatchAll(buf []byte, p types.Pattern) ([]int, error)

	// MatchFirst returns the lowest matching start offset.
	MatchFirst(buf []byte, p types.Pattern) (int, bool, error)
}

// Config for matcher initialization.
type Config struct {
	// Pool to borrow workers from. A nil pool selects the sequential engine.
	// The matcher never closes the pool.
	Pool *Pool

	// Chunking controls how candidate offsets are split across workers.
	// The zero value means DefaultChunkConfig().
	Chunking ChunkConfig
}

// New creates a Matcher for the given config.
func New(cfg Config) Matcher {
	if cfg.Pool == nil {
		return NewSequential()
	}
	return NewParallel(cfg.Pool, cfg.Chunking)
}

// candidates returns the number of window start offsets in buf.
func candidates(buf []byte, p types.Pattern) int {
	if len(p) == 0 || len(p) > len(buf) {
		return 0
	}
	return len(buf) - len(p) + 1
}
