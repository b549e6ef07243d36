package matcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNonUniquePattern is returned when a unique match was requested
	// but the pattern matched more than once.
	ErrNonUniquePattern = errors.New("pattern is not unique")

	// ErrInvalidWorkers is returned when a pool is sized below zero.
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrPoolClosed is returned when scanning with a closed pool.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrUnknown signals an internal fault, such as a panicking worker.
	ErrUnknown = errors.New("unknown pattern scanner error")
)

// NonUniqueError reports how ambiguous a pattern was.
// It matches ErrNonUniquePattern with errors.Is.
type NonUniqueError struct {
	Count  int // total number of matches
	First  int // lowest matching offset
	Second int // second lowest matching offset
}

func (e *NonUniqueError) Error() string {
	return fmt.Sprintf("pattern is not unique: %d matches (first at 0x%X, 0x%X)", e.Count, e.First, e.Second)
}

func (e *NonUniqueError) Is(target error) bool { return target == ErrNonUniquePattern }
