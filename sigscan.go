// Package sigscan finds wildcard byte patterns in memory buffers.
//
// A pattern is written as whitespace-separated tokens, each either a
// two-digit hex byte or a wildcard ("?" or "??") that matches any byte:
//
//	"48 8B ? ? 89"
//
// # Basic Usage
//
// Create a scanner over a buffer and look for a pattern that must occur
// exactly once:
//
//	scanner, err := sigscan.NewScanner(sigscan.WithBytes(image))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer scanner.Close()
//
//	p, err := sigscan.Compile("48 8B ? ? 89")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	offset, found, err := scanner.Scan(p)
//	if errors.Is(err, sigscan.ErrNonUniquePattern) {
//	    // the pattern occurs more than once
//	}
//
// # One-shot scans
//
// ScanAll and ScanUnique compile the pattern and scan in a single call:
//
//	offsets, err := sigscan.ScanAll(buf, "FF ?? FF", true)
package sigscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/praetorian-inc/sigscan/pkg/matcher"
	"github.com/praetorian-inc/sigscan/pkg/pattern"
	"github.com/praetorian-inc/sigscan/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/sigscan" without subpackages.
type (
	// Pattern is a compiled sequence of exact and wildcard tokens.
	Pattern = types.Pattern

	// Token is one position of a compiled pattern.
	Token = types.Token

	// Match describes a pattern occurrence found in a scanned buffer.
	Match = types.Match

	// Signature is a named, documented pattern.
	Signature = types.Signature

	// Pool is a bounded set of worker slots shared by parallel scans.
	Pool = matcher.Pool

	// ByteLengthError reports a token that is not exactly two characters.
	ByteLengthError = pattern.ByteLengthError

	// InvalidByteError reports a two-character token that is not valid hex.
	InvalidByteError = pattern.InvalidByteError

	// NonUniquePatternError reports that a unique scan found several matches.
	NonUniquePatternError = matcher.NonUniqueError
)

// Re-export error sentinels.
var (
	ErrInvalidPattern   = pattern.ErrInvalidPattern
	ErrNonUniquePattern = matcher.ErrNonUniquePattern
	ErrInvalidWorkers   = matcher.ErrInvalidWorkers
	ErrPoolClosed       = matcher.ErrPoolClosed
	ErrUnknown          = matcher.ErrUnknown
)

// Scanner scans a stored buffer, or caller-supplied buffers, for patterns.
// A Scanner is safe for concurrent use.
type Scanner struct {
	matcher  matcher.Matcher
	pool     *matcher.Pool
	ownsPool bool
	config   *scannerConfig
	logger   *Logger
	mu       sync.RWMutex
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	bytes      []byte
	workers    int
	pool       *matcher.Pool
	sequential bool
	chunking   matcher.ChunkConfig
	logger     *Logger
}

// Option configures a Scanner.
type Option func(*scannerConfig)

// WithBytes stores a copy of buf as the scanner's default buffer.
func WithBytes(buf []byte) Option {
	return func(c *scannerConfig) {
		c.bytes = append([]byte(nil), buf...)
	}
}

// WithWorkers sets the size of the scanner's own worker pool.
// Zero (the default) uses the host's parallelism; negative values are rejected.
func WithWorkers(workers int) Option {
	return func(c *scannerConfig) {
		c.workers = workers
	}
}

// WithPool makes the scanner borrow an existing pool instead of creating one.
// The scanner never closes a borrowed pool.
func WithPool(pool *Pool) Option {
	return func(c *scannerConfig) {
		c.pool = pool
	}
}

// WithSequential disables parallel scanning.
func WithSequential() Option {
	return func(c *scannerConfig) {
		c.sequential = true
	}
}

// WithChunking tunes how buffers are split across workers.
func WithChunking(chunking matcher.ChunkConfig) Option {
	return func(c *scannerConfig) {
		c.chunking = chunking
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *Logger) Option {
	return func(c *scannerConfig) {
		c.logger = logger
	}
}

// NewScanner creates a new Scanner with the given options.
//
// By default, the scanner:
//   - Has an empty default buffer
//   - Scans in parallel on its own pool sized to the host's parallelism
//   - Discards log output
func NewScanner(opts ...Option) (*Scanner, error) {
	config := &scannerConfig{
		chunking: matcher.DefaultChunkConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	s := &Scanner{
		config: config,
		logger: config.logger,
	}
	if s.logger == nil {
		s.logger = NoopLogger()
	}

	switch {
	case config.sequential:
		s.matcher = matcher.NewSequential()
	case config.pool != nil:
		s.pool = config.pool
	default:
		pool, err := matcher.NewPool(config.workers)
		if err != nil {
			return nil, fmt.Errorf("creating worker pool: %w", err)
		}
		s.pool = pool
		s.ownsPool = true
	}
	if s.matcher == nil {
		s.matcher = matcher.New(matcher.Config{
			Pool:     s.pool,
			Chunking: config.chunking,
		})
	}

	return s, nil
}

// Scan looks for p in the stored buffer and returns its offset when it
// occurs exactly once. Several occurrences yield a *NonUniquePatternError.
func (s *Scanner) Scan(p Pattern) (int, bool, error) {
	return s.ScanWithBytes(s.config.bytes, p)
}

// ScanWithBytes is Scan over buf instead of the stored buffer.
func (s *Scanner) ScanWithBytes(buf []byte, p Pattern) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	offset, ok, err := matcher.Unique(s.matcher, buf, p)
	s.log("unique", p, buf, count(ok), start, err)
	return offset, ok, err
}

// ScanAll returns every offset of p in the stored buffer, ascending.
func (s *Scanner) ScanAll(p Pattern) ([]int, error) {
	return s.ScanAllWithBytes(s.config.bytes, p)
}

// ScanAllWithBytes returns every offset of p in buf, ascending.
func (s *Scanner) ScanAllWithBytes(buf []byte, p Pattern) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	offsets, err := s.matcher.MatchAll(buf, p)
	s.log("all", p, buf, len(offsets), start, err)
	return offsets, err
}

// ScanFirst returns the lowest offset of p in the stored buffer.
func (s *Scanner) ScanFirst(p Pattern) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	offset, ok, err := s.matcher.MatchFirst(s.config.bytes, p)
	s.log("first", p, s.config.bytes, count(ok), start, err)
	return offset, ok, err
}

// ScanAny returns the offset of some occurrence of p in the stored buffer.
// In parallel mode this is whichever worker finds one first, which is not
// necessarily the lowest offset.
func (s *Scanner) ScanAny(p Pattern) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	offset, ok, err := matcher.Any(s.matcher, s.config.bytes, p)
	s.log("any", p, s.config.bytes, count(ok), start, err)
	return offset, ok, err
}

// ScanFile reads a file whole and returns every offset of p in it.
func (s *Scanner) ScanFile(path string, p Pattern) ([]int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.ScanAllWithBytes(content, p)
}

// Close releases the scanner's own pool. Borrowed pools are left open.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ownsPool && s.pool != nil {
		return s.pool.Close()
	}
	return nil
}

// Workers returns the number of worker slots available to the scanner.
// Sequential scanners report 1.
func (s *Scanner) Workers() int {
	if s.pool == nil {
		return 1
	}
	return s.pool.Size()
}

// Parallel reports whether the scanner splits buffers across workers.
func (s *Scanner) Parallel() bool {
	return s.pool != nil
}

// Bytes returns the stored buffer. Callers must not modify it.
func (s *Scanner) Bytes() []byte {
	return s.config.bytes
}

func (s *Scanner) log(op string, p Pattern, buf []byte, matches int, start time.Time, err error) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, slog.LevelDebug) && (err == nil || errors.Is(err, ErrNonUniquePattern)) {
		return
	}
	mode := "sequential"
	if s.pool != nil {
		mode = "parallel"
	}
	s.logger.WithPattern(p).LogScan(ctx, op, len(buf), matches, mode, time.Since(start), err)
}

func count(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// Compile parses pattern text into a Pattern.
func Compile(text string) (Pattern, error) {
	return pattern.Compile(text)
}

// ScanAll compiles text and returns every offset of it in buf, ascending.
// When parallel is true a pool sized to the host's parallelism is created
// for the call and closed on return.
func ScanAll(buf []byte, text string, parallel bool) ([]int, error) {
	p, err := pattern.Compile(text)
	if err != nil {
		return nil, err
	}
	s, err := oneShot(parallel)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ScanAllWithBytes(buf, p)
}

// ScanUnique compiles text and returns its offset in buf when it occurs
// exactly once.
func ScanUnique(buf []byte, text string, parallel bool) (int, bool, error) {
	p, err := pattern.Compile(text)
	if err != nil {
		return 0, false, err
	}
	s, err := oneShot(parallel)
	if err != nil {
		return 0, false, err
	}
	defer s.Close()
	return s.ScanWithBytes(buf, p)
}

func oneShot(parallel bool) (*Scanner, error) {
	if parallel {
		return NewScanner()
	}
	return NewScanner(WithSequential())
}
