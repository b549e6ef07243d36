// Package enum discovers files to scan and loads each one fully into memory.
package enum

import (
	"context"

	"github.com/praetorian-inc/sigscan/pkg/types"
)

// Callback receives one whole file. It may be invoked concurrently from
// several goroutines and must not retain or modify content after returning
// unless it copies it.
type Callback func(content []byte, blobID types.BlobID, prov types.Provenance) error

// Enumerator discovers content to scan from a source.
type Enumerator interface {
	// Enumerate yields whole-file buffers from the source.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is a file or the starting directory for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks scans regular files reached through symbolic links.
	// Links to directories are never descended.
	FollowSymlinks bool

	// Readers is the number of files read concurrently (0 = runtime.NumCPU()).
	Readers int
}
