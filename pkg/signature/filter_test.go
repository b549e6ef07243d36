package signature

import (
	"testing"

	"github.com/praetorian-inc/sigscan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string returns empty slice", input: "", expected: []string{}},
		{name: "single pattern", input: "fmt.*", expected: []string{"fmt.*"}},
		{name: "multiple patterns", input: "fmt.*,x86.*", expected: []string{"fmt.*", "x86.*"}},
		{name: "spaces trimmed and blanks dropped", input: " fmt.* , ,x86.* ", expected: []string{"fmt.*", "x86.*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePatterns(tt.input))
		})
	}
}

func testSignatures() []*types.Signature {
	return []*types.Signature{
		{ID: "fmt.elf.1", Name: "ELF"},
		{ID: "fmt.pe.1", Name: "MZ"},
		{ID: "fmt.pe.2", Name: "PE"},
		{ID: "x86.call.1", Name: "call"},
	}
}

func ids(sigs []*types.Signature) []string {
	out := make([]string, len(sigs))
	for i, s := range sigs {
		out[i] = s.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		config   FilterConfig
		expected []string
	}{
		{
			name:     "no patterns keeps everything",
			config:   FilterConfig{},
			expected: []string{"fmt.elf.1", "fmt.pe.1", "fmt.pe.2", "x86.call.1"},
		},
		{
			name:     "include only",
			config:   FilterConfig{Include: []string{`^fmt\.pe`}},
			expected: []string{"fmt.pe.1", "fmt.pe.2"},
		},
		{
			name:     "exclude only",
			config:   FilterConfig{Exclude: []string{`^fmt\.`}},
			expected: []string{"x86.call.1"},
		},
		{
			name:     "include then exclude",
			config:   FilterConfig{Include: []string{`^fmt\.`}, Exclude: []string{`\.2$`}},
			expected: []string{"fmt.elf.1", "fmt.pe.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := Filter(testSignatures(), tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(filtered))
		})
	}
}

func TestFilter_InvalidRegex(t *testing.T) {
	_, err := Filter(testSignatures(), FilterConfig{Include: []string{"("}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")

	_, err = Filter(testSignatures(), FilterConfig{Exclude: []string{"["}})
	assert.Error(t, err)
}

func TestFilter_Empty(t *testing.T) {
	filtered, err := Filter(nil, FilterConfig{Include: []string{"("}})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
