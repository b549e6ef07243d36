package types

import "encoding/hex"

// Match is a single signature hit inside a scanned buffer.
type Match struct {
	BlobID        BlobID `json:"blob_id"`
	Source        string `json:"source"`         // e.g. file path
	SignatureID   string `json:"signature_id"`   // e.g., "fmt.elf.1"
	SignatureName string `json:"signature_name"` // e.g., "ELF header"
	Offset        int64  `json:"offset"`
	Length        int    `json:"length"`
	Matched       string `json:"matched"` // hex of the matched window
}

// NewMatch builds a Match for the window buf[offset:offset+length].
func NewMatch(blobID BlobID, source string, sig *Signature, buf []byte, offset, length int) *Match {
	return &Match{
		BlobID:        blobID,
		Source:        source,
		SignatureID:   sig.ID,
		SignatureName: sig.Name,
		Offset:        int64(offset),
		Length:        length,
		Matched:       hex.EncodeToString(buf[offset : offset+length]),
	}
}

// End returns the exclusive end offset of the match.
func (m *Match) End() int64 {
	return m.Offset + int64(m.Length)
}
