package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// BlobID identifies scanned content by its Git-style SHA-1 hash (20 bytes).
// Identical buffers scanned from different sources share one BlobID.
type BlobID [20]byte

// ComputeBlobID hashes content the way git hash-object does:
// SHA-1("blob {len}\0{content}").
func ComputeBlobID(content []byte) BlobID {
	h := sha1.New()
	h.Write([]byte("blob "))
	h.Write([]byte(strconv.Itoa(len(content))))
	h.Write([]byte{0})
	h.Write(content)

	var id BlobID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns the 40-character lower-case hex form.
func (id BlobID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id BlobID) String() string {
	return id.Hex()
}

// ParseBlobID parses a 40-character hex string.
func ParseBlobID(hexStr string) (BlobID, error) {
	if len(hexStr) != 2*len(BlobID{}) {
		return BlobID{}, fmt.Errorf("invalid blob ID length: expected 40, got %d", len(hexStr))
	}

	var id BlobID
	if _, err := hex.Decode(id[:], []byte(hexStr)); err != nil {
		return BlobID{}, fmt.Errorf("invalid hex string: %w", err)
	}
	return id, nil
}

// MarshalJSON encodes the ID as a hex string.
func (id BlobID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON decodes a hex string produced by MarshalJSON.
func (id *BlobID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseBlobID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
