package scanner

import "github.com/praetorian-inc/sigscan/pkg/types"

// ContentItem represents a buffer to scan
type ContentItem struct {
	Source  string // e.g. a file path; empty means an unnamed in-memory buffer
	Content []byte
	BlobID  types.BlobID // computed from Content when zero
}

// Failure records a signature that occurred more than once in a buffer
// during a unique scan.
type Failure struct {
	Source      string `json:"source"`
	SignatureID string `json:"signature_id"`
	Count       int    `json:"count"`
	First       int    `json:"first"`
	Second      int    `json:"second"`
}

// ScanResult represents scan results for a single item
type ScanResult struct {
	Source   string         `json:"source"`
	Matches  []*types.Match `json:"matches"`
	Failures []*Failure     `json:"failures,omitempty"`
}

// BatchScanResult represents batch scan results
type BatchScanResult struct {
	Results  []ScanResult `json:"results"`
	Total    int          `json:"total"`
	Failures int          `json:"failures"`
}
