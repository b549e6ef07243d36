package signature

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/praetorian-inc/sigscan/pkg/types"
)

// FilterConfig specifies include and exclude patterns for signature IDs.
type FilterConfig struct {
	Include []string // Regex patterns - only matching signatures included
	Exclude []string // Regex patterns - matching signatures excluded
}

// ParsePatterns splits a comma-separated string into trimmed patterns.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include then exclude patterns to signature IDs.
// Empty include means "include all".
func Filter(sigs []*types.Signature, config FilterConfig) ([]*types.Signature, error) {
	if len(sigs) == 0 {
		return sigs, nil
	}

	include, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	result := make([]*types.Signature, 0, len(sigs))
	for _, s := range sigs {
		if len(include) > 0 && !matchesAny(s.ID, include) {
			continue
		}
		if matchesAny(s.ID, exclude) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func matchesAny(id string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}
