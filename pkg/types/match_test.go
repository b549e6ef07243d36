package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	buf := []byte{0x00, 0x7F, 0x45, 0x4C, 0x46, 0x02}
	blobID := ComputeBlobID(buf)
	sig := &Signature{ID: "fmt.elf.1", Name: "ELF header", Pattern: "7F 45 4C 46"}

	m := NewMatch(blobID, "a.out", sig, buf, 1, 4)

	assert.Equal(t, blobID, m.BlobID)
	assert.Equal(t, "a.out", m.Source)
	assert.Equal(t, "fmt.elf.1", m.SignatureID)
	assert.Equal(t, "ELF header", m.SignatureName)
	assert.Equal(t, int64(1), m.Offset)
	assert.Equal(t, int64(5), m.End())
	assert.Equal(t, "7f454c46", m.Matched)
}

func TestMatch_JSON(t *testing.T) {
	buf := []byte{0x33, 0x35}
	sig := &Signature{ID: "t.1", Name: "Test"}
	m := NewMatch(ComputeBlobID(buf), "mem", sig, buf, 0, 2)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.BlobID.Hex(), decoded["blob_id"])
	assert.Equal(t, "t.1", decoded["signature_id"])
	assert.Equal(t, float64(0), decoded["offset"])
	assert.Equal(t, "3335", decoded["matched"])
}
