package types

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Signature is a named byte pattern with metadata.
type Signature struct {
	ID               string   `json:"id"`                          // e.g., "fmt.elf.1"
	Name             string   `json:"name"`                        // human-readable name
	Pattern          string   `json:"pattern"`                     // hex/wildcard pattern text
	StructuralID     string   `json:"structural_id"`               // SHA-1 of canonical pattern (computed)
	Description      string   `json:"description,omitempty"`       // optional
	Examples         []string `json:"examples,omitempty"`          // hex byte strings that must match
	NegativeExamples []string `json:"negative_examples,omitempty"` // hex byte strings that must not match
	References       []string `json:"references,omitempty"`        // documentation URLs
	Categories       []string `json:"categories,omitempty"`        // classification tags
}

// ComputeStructuralID computes SHA-1 of the canonical pattern text.
// Patterns differing only in whitespace, hex case or "?" vs "??" share an ID.
func (s *Signature) ComputeStructuralID() string {
	h := sha1.New()
	h.Write([]byte(CanonicalPattern(s.Pattern)))
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalPattern normalizes pattern text without validating it:
// single-space separated, upper-case hex, "?" for every wildcard.
func CanonicalPattern(text string) string {
	fields := strings.Fields(text)
	for i, f := range fields {
		if f == "??" {
			fields[i] = "?"
			continue
		}
		fields[i] = strings.ToUpper(f)
	}
	return strings.Join(fields, " ")
}
