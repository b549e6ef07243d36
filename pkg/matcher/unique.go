package matcher

import "github.com/praetorian-inc/sigscan/pkg/types"

// Unique returns the only offset at which p matches buf.
//
// No match is not an error: ok is false. Two or more matches fail with a
// *NonUniqueError. Every match is computed first, so the outcome never
// depends on worker scheduling.
func Unique(m Matcher, buf []byte, p types.Pattern) (offset int, ok bool, err error) {
	offsets, err := m.MatchAll(buf, p)
	if err != nil {
		return 0, false, err
	}

	switch len(offsets) {
	case 0:
		return 0, false, nil
	case 1:
		return offsets[0], true, nil
	default:
		return 0, false, &NonUniqueError{
			Count:  len(offsets),
			First:  offsets[0],
			Second: offsets[1],
		}
	}
}

// Any returns some matching offset. Parallel matchers stop at the first
// hit of any worker, so with several matches the offset is not
// necessarily the lowest; other matchers fall back to MatchFirst.
func Any(m Matcher, buf []byte, p types.Pattern) (int, bool, error) {
	if pm, ok := m.(*Parallel); ok {
		return pm.MatchAny(buf, p)
	}
	return m.MatchFirst(buf, p)
}
