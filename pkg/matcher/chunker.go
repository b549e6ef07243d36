package matcher

// ChunkConfig configures how candidate offsets are split into ranges.
type ChunkConfig struct {
	MinChunkSize    int // Smallest range worth a goroutine, in candidate offsets (default: 64KB)
	ChunksPerWorker int // Ranges per pool worker, for load balancing (default: 4)
}

// DefaultChunkConfig returns production defaults
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MinChunkSize:    64 * 1024,
		ChunksPerWorker: 4,
	}
}

// withDefaults fills unset fields from DefaultChunkConfig.
func (c ChunkConfig) withDefaults() ChunkConfig {
	def := DefaultChunkConfig()
	if c.MinChunkSize <= 0 {
		c.MinChunkSize = def.MinChunkSize
	}
	if c.ChunksPerWorker <= 0 {
		c.ChunksPerWorker = def.ChunksPerWorker
	}
	return c
}

// Range is a half-open span [Start, End) of candidate start offsets.
type Range struct {
	Start int
	End   int
}

// Len returns the number of offsets in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits the offsets [0, n) into at most parts contiguous,
// non-overlapping ranges that cover every offset exactly once.
// Ranges are never shorter than minChunk unless n itself is; sizes differ
// by at most one. Returns nil when n <= 0.
func Partition(n, parts, minChunk int) []Range {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if minChunk < 1 {
		minChunk = 1
	}
	parts = min(parts, max(1, n/minChunk))

	size, rem := n/parts, n%parts
	ranges := make([]Range, parts)
	start := 0
	for i := range ranges {
		end := start + size
		if i < rem {
			end++
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	return ranges
}
