package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	sig := Signature{
		ID:               "fmt.elf.1",
		Name:             "ELF header",
		Pattern:          "7F 45 4C 46",
		Description:      "ELF magic",
		Examples:         []string{"7F 45 4C 46 02"},
		NegativeExamples: []string{"4D 5A"},
		Categories:       []string{"format", "executable"},
	}

	assert.Equal(t, "fmt.elf.1", sig.ID)
	assert.Equal(t, "ELF header", sig.Name)
	require.Len(t, sig.Examples, 1)
	require.Len(t, sig.NegativeExamples, 1)
	require.Len(t, sig.Categories, 2)
}

func TestSignature_ComputeStructuralID(t *testing.T) {
	sig := Signature{ID: "a", Pattern: "AA BB ? CC"}
	id := sig.ComputeStructuralID()
	assert.Len(t, id, 40)

	// Whitespace, hex case and wildcard spelling do not matter.
	same := Signature{ID: "b", Pattern: "  aa\tbb ??   cc "}
	assert.Equal(t, id, same.ComputeStructuralID())

	different := Signature{ID: "a", Pattern: "AA BB ? CD"}
	assert.NotEqual(t, id, different.ComputeStructuralID())
}

func TestCanonicalPattern(t *testing.T) {
	assert.Equal(t, "AA ? ? 0F", CanonicalPattern("aa ?? ?\n0f"))
	assert.Equal(t, "", CanonicalPattern("   "))
}
