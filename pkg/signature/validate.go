package signature

import (
	"fmt"

	"github.com/praetorian-inc/sigscan/pkg/matcher"
	"github.com/praetorian-inc/sigscan/pkg/pattern"
	"github.com/praetorian-inc/sigscan/pkg/types"
)

// Validate checks signature consistency and required fields.
func Validate(s *types.Signature) error {
	if s == nil {
		return fmt.Errorf("signature is nil")
	}

	if s.ID == "" {
		return fmt.Errorf("signature ID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("signature %s: name is required", s.ID)
	}
	p, err := pattern.Compile(s.Pattern)
	if err != nil {
		return fmt.Errorf("signature %s: %w", s.ID, err)
	}
	// A signature of wildcards only matches at every offset.
	if p.ExactCount() == 0 {
		return fmt.Errorf("signature %s: pattern has no exact bytes", s.ID)
	}

	expectedID := s.ComputeStructuralID()
	if s.StructuralID != "" && s.StructuralID != expectedID {
		return fmt.Errorf("signature %s has inconsistent StructuralID: got %s, expected %s",
			s.ID, s.StructuralID, expectedID)
	}

	return nil
}

// Test runs a signature against its own examples: every example must
// contain a match and no negative example may.
func Test(s *types.Signature) error {
	return testWith(matcher.NewSequential(), s)
}

func testWith(m matcher.Matcher, s *types.Signature) error {
	if err := Validate(s); err != nil {
		return err
	}

	p, err := pattern.Compile(s.Pattern)
	if err != nil {
		return fmt.Errorf("signature %s: %w", s.ID, err)
	}

	for i, ex := range s.Examples {
		buf, err := pattern.ParseHexBytes(ex)
		if err != nil {
			return fmt.Errorf("signature %s: example %d: %w", s.ID, i+1, err)
		}
		_, ok, err := m.MatchFirst(buf, p)
		if err != nil {
			return fmt.Errorf("signature %s: example %d: %w", s.ID, i+1, err)
		}
		if !ok {
			return fmt.Errorf("signature %s: example %d does not match", s.ID, i+1)
		}
	}

	for i, ex := range s.NegativeExamples {
		buf, err := pattern.ParseHexBytes(ex)
		if err != nil {
			return fmt.Errorf("signature %s: negative example %d: %w", s.ID, i+1, err)
		}
		off, ok, err := m.MatchFirst(buf, p)
		if err != nil {
			return fmt.Errorf("signature %s: negative example %d: %w", s.ID, i+1, err)
		}
		if ok {
			return fmt.Errorf("signature %s: negative example %d matches at offset %d", s.ID, i+1, off)
		}
	}

	return nil
}
