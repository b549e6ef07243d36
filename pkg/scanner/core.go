// Package scanner runs a set of signatures over whole buffers.
package scanner

import (
	"errors"
	"fmt"
	"sync"

	"github.com/praetorian-inc/sigscan/pkg/matcher"
	"github.com/praetorian-inc/sigscan/pkg/pattern"
	"github.com/praetorian-inc/sigscan/pkg/signature"
	"github.com/praetorian-inc/sigscan/pkg/types"
)

var (
	// cachedBuiltinSignatures holds builtin signatures loaded once per process
	cachedBuiltinSignatures []*types.Signature
	cachedSignaturesErr     error
	cacheOnce               sync.Once
)

// loadBuiltinSignaturesCached loads builtin signatures once and caches them
func loadBuiltinSignaturesCached() ([]*types.Signature, error) {
	cacheOnce.Do(func() {
		loader := signature.NewLoader()
		cachedBuiltinSignatures, cachedSignaturesErr = loader.LoadBuiltin()
	})
	return cachedBuiltinSignatures, cachedSignaturesErr
}

// Engine scans one buffer for one compiled pattern.
// *sigscan.Scanner satisfies it.
type Engine interface {
	ScanAllWithBytes(buf []byte, p types.Pattern) ([]int, error)
	ScanWithBytes(buf []byte, p types.Pattern) (int, bool, error)
}

// compiled pairs a signature with its compiled pattern.
type compiled struct {
	sig     *types.Signature
	pattern types.Pattern
}

// Core runs a fixed set of signatures over buffers.
// It is safe for concurrent use when the Engine is.
type Core struct {
	engine Engine
	sigs   []compiled
	unique bool
}

// NewCore compiles sigs for scanning with engine. With unique set, every
// signature must occur at most once per buffer; repeats are reported as
// Failures.
func NewCore(engine Engine, sigs []*types.Signature, unique bool) (*Core, error) {
	if engine == nil {
		return nil, errors.New("scanner: engine is required")
	}

	c := &Core{
		engine: engine,
		sigs:   make([]compiled, 0, len(sigs)),
		unique: unique,
	}
	for _, s := range sigs {
		p, err := pattern.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", s.ID, err)
		}
		c.sigs = append(c.sigs, compiled{sig: s, pattern: p})
	}
	return c, nil
}

// SignatureCount returns the number of signatures loaded.
func (c *Core) SignatureCount() int {
	return len(c.sigs)
}

// Scan runs every signature over content.
func (c *Core) Scan(content []byte, blobID types.BlobID, source string) (*ScanResult, error) {
	result := &ScanResult{Source: source}

	for _, cs := range c.sigs {
		if !c.unique {
			offsets, err := c.engine.ScanAllWithBytes(content, cs.pattern)
			if err != nil {
				return nil, fmt.Errorf("signature %s: %w", cs.sig.ID, err)
			}
			for _, off := range offsets {
				result.Matches = append(result.Matches, types.NewMatch(blobID, source, cs.sig, content, off, cs.pattern.Len()))
			}
			continue
		}

		offset, ok, err := c.engine.ScanWithBytes(content, cs.pattern)
		var nonUnique *matcher.NonUniqueError
		switch {
		case errors.As(err, &nonUnique):
			result.Failures = append(result.Failures, &Failure{
				Source:      source,
				SignatureID: cs.sig.ID,
				Count:       nonUnique.Count,
				First:       nonUnique.First,
				Second:      nonUnique.Second,
			})
		case err != nil:
			return nil, fmt.Errorf("signature %s: %w", cs.sig.ID, err)
		case ok:
			result.Matches = append(result.Matches, types.NewMatch(blobID, source, cs.sig, content, offset, cs.pattern.Len()))
		}
	}

	return result, nil
}

// ScanBatch scans multiple content items in order. The first scan error
// aborts the batch.
func (c *Core) ScanBatch(items []ContentItem) (*BatchScanResult, error) {
	batch := &BatchScanResult{}

	for _, item := range items {
		blobID := item.BlobID
		if blobID == (types.BlobID{}) {
			blobID = types.ComputeBlobID(item.Content)
		}

		source := item.Source
		if source == "" {
			source = types.BufferProvenance{}.Path()
		}

		result, err := c.Scan(item.Content, blobID, source)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", source, err)
		}

		batch.Results = append(batch.Results, *result)
		batch.Total += len(result.Matches)
		batch.Failures += len(result.Failures)
	}

	return batch, nil
}

// GetBuiltinSignatures returns the builtin signatures (cached).
// Callers must not modify the returned signatures.
func GetBuiltinSignatures() ([]*types.Signature, error) {
	return loadBuiltinSignaturesCached()
}
