package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is matched by every compilation error via errors.Is.
var ErrInvalidPattern = errors.New("invalid pattern")

// ByteLengthError reports a non-wildcard token that is not exactly two
// characters long. An empty pattern is reported with an empty Token.
type ByteLengthError struct {
	Token string
}

func (e *ByteLengthError) Error() string {
	if e.Token == "" {
		return "pattern is empty"
	}
	return fmt.Sprintf("the pattern byte %q is invalid (must be 2 characters long)", e.Token)
}

func (e *ByteLengthError) Is(target error) bool { return target == ErrInvalidPattern }

// InvalidByteError reports a two-character token that is not hexadecimal.
//
// The underlying *strconv.NumError can be accessed via errors.Unwrap.
type InvalidByteError struct {
	Token string
	Err   error
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("failed to parse the pattern byte %q as a byte: %v", e.Token, e.Err)
}

func (e *InvalidByteError) Unwrap() error { return e.Err }

func (e *InvalidByteError) Is(target error) bool { return target == ErrInvalidPattern }
