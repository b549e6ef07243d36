package types

import (
	"fmt"
	"strings"
)

// Token is a single position of a compiled pattern: either an exact byte
// or a wildcard that matches any byte.
type Token struct {
	Value    byte
	Wildcard bool
}

// Exact returns a token matching only b.
func Exact(b byte) Token {
	return Token{Value: b}
}

// Any returns a wildcard token.
func Any() Token {
	return Token{Wildcard: true}
}

// Matches reports whether b satisfies the token.
func (t Token) Matches(b byte) bool {
	return t.Wildcard || t.Value == b
}

// String returns "?" for wildcards and two upper-case hex digits otherwise.
func (t Token) String() string {
	if t.Wildcard {
		return "?"
	}
	return fmt.Sprintf("%02X", t.Value)
}

// Pattern is a compiled, fixed-length byte mask.
// It is never mutated after compilation and may be shared by any number of
// concurrent scans.
type Pattern []Token

// Len returns the window size of the pattern.
func (p Pattern) Len() int {
	return len(p)
}

// ExactCount returns the number of non-wildcard tokens.
func (p Pattern) ExactCount() int {
	n := 0
	for _, t := range p {
		if !t.Wildcard {
			n++
		}
	}
	return n
}

// MatchAt reports whether the window of buf starting at off matches p.
// The caller guarantees off+len(p) <= len(buf).
func (p Pattern) MatchAt(buf []byte, off int) bool {
	window := buf[off : off+len(p)]
	for k, t := range p {
		if !t.Wildcard && window[k] != t.Value {
			return false
		}
	}
	return true
}

// String renders the canonical text form, e.g. "AA BB ? CC".
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Anchor picks the exact token used to skip between candidate windows.
// The rarest byte according to byteRank wins; ties go to the earliest
// position. ok is false when every token is a wildcard.
func (p Pattern) Anchor() (pos int, b byte, ok bool) {
	best := -1
	for i, t := range p {
		if t.Wildcard {
			continue
		}
		if best < 0 || byteRank[t.Value] < byteRank[p[best].Value] {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, p[best].Value, true
}

// byteRank approximates how common a byte is in executable images.
// Lower rank = rarer byte = better anchor.
var byteRank = func() [256]byte {
	var r [256]byte
	for i := range r {
		r[i] = 16
	}
	// Padding, alignment fill and the most frequent x86 opcode bytes.
	common := []byte{
		0x00, 0xFF, 0xCC, 0x90, 0x48, 0x8B, 0x89, 0x01,
		0x0F, 0x24, 0x4C, 0xE8, 0x85, 0x83, 0xC3, 0x20,
	}
	for i, b := range common {
		r[b] = byte(255 - i)
	}
	return r
}()
