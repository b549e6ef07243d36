package matcher

import "github.com/praetorian-inc/sigscan/pkg/types"

// Sequential scans the whole buffer on the calling goroutine.
type Sequential struct{}

// NewSequential creates a sequential matcher.
func NewSequential() *Sequential {
	return &Sequential{}
}

// MatchAll returns every matching start offset in ascending order.
// The error is always nil.
func (s *Sequential) MatchAll(buf []byte, p types.Pattern) ([]int, error) {
	n := candidates(buf, p)
	if n == 0 {
		return nil, nil
	}
	return scanRange(nil, buf, p, 0, n), nil
}

// MatchFirst returns the lowest matching start offset.
func (s *Sequential) MatchFirst(buf []byte, p types.Pattern) (int, bool, error) {
	off, ok := firstInRange(buf, p, 0, candidates(buf, p), nil)
	return off, ok, nil
}
