// Package pattern compiles human-readable byte patterns such as
// "48 8B ? ? 89" into fixed-length masks.
//
// Grammar:
//
//	pattern  := token (whitespace+ token)*
//	token    := wildcard | hex_byte
//	wildcard := "?" | "??"
//	hex_byte := [0-9a-fA-F]{2}
package pattern

import (
	"strconv"
	"strings"

	"github.com/praetorian-inc/sigscan/pkg/types"
)

// Compile parses text into a pattern. Any run of whitespace separates
// tokens. Compilation stops at the first malformed token.
func Compile(text string) (types.Pattern, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &ByteLengthError{}
	}

	p := make(types.Pattern, 0, len(fields))
	for _, tok := range fields {
		t, err := compileToken(tok)
		if err != nil {
			return nil, err
		}
		p = append(p, t)
	}
	return p, nil
}

// IsWildcard reports whether tok is one of the wildcard spellings.
func IsWildcard(tok string) bool {
	return tok == "?" || tok == "??"
}

func compileToken(tok string) (types.Token, error) {
	if IsWildcard(tok) {
		return types.Any(), nil
	}
	if len(tok) != 2 {
		return types.Token{}, &ByteLengthError{Token: tok}
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return types.Token{}, &InvalidByteError{Token: tok, Err: err}
	}
	return types.Exact(byte(v)), nil
}

// ParseHexBytes decodes whitespace-separated hex bytes without wildcards,
// e.g. signature examples. It shares Compile's token rules.
func ParseHexBytes(text string) ([]byte, error) {
	fields := strings.Fields(text)
	out := make([]byte, 0, len(fields))
	for _, tok := range fields {
		if IsWildcard(tok) {
			return nil, &InvalidByteError{Token: tok, Err: strconv.ErrSyntax}
		}
		t, err := compileToken(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t.Value)
	}
	return out, nil
}
