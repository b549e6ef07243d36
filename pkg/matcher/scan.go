package matcher

import (
	"bytes"
	"sync/atomic"

	"github.com/praetorian-inc/sigscan/pkg/types"
)

// scanRange appends to dst every matching start offset in [lo, hi).
// hi must not exceed candidates(buf, p).
//
// When p has an exact token, bytes.IndexByte jumps straight to the next
// window whose anchor position holds the anchor byte; only those windows
// are verified. All-wildcard patterns match every window.
func scanRange(dst []int, buf []byte, p types.Pattern, lo, hi int) []int {
	pos, anchor, ok := p.Anchor()
	if !ok {
		for off := lo; off < hi; off++ {
			dst = append(dst, off)
		}
		return dst
	}

	for off := lo; off < hi; off++ {
		i := bytes.IndexByte(buf[off+pos:hi+pos], anchor)
		if i < 0 {
			break
		}
		off += i
		if p.MatchAt(buf, off) {
			dst = append(dst, off)
		}
	}
	return dst
}

// firstInRange returns the lowest matching start offset in [lo, hi).
// A non-nil stop flag is polled between candidate windows; once it is set
// the scan gives up and reports no match.
func firstInRange(buf []byte, p types.Pattern, lo, hi int, stop *atomic.Bool) (int, bool) {
	if lo >= hi {
		return 0, false
	}
	pos, anchor, ok := p.Anchor()
	if !ok {
		return lo, true
	}

	for off := lo; off < hi; off++ {
		if stop != nil && stop.Load() {
			return 0, false
		}
		i := bytes.IndexByte(buf[off+pos:hi+pos], anchor)
		if i < 0 {
			return 0, false
		}
		off += i
		if p.MatchAt(buf, off) {
			return off, true
		}
	}
	return 0, false
}
