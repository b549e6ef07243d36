package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	assert.True(t, Any().Matches(0x00))
	assert.True(t, Any().Matches(0xFF))
	assert.True(t, Exact(0xAA).Matches(0xAA))
	assert.False(t, Exact(0xAA).Matches(0xAB))

	assert.Equal(t, "?", Any().String())
	assert.Equal(t, "0A", Exact(0x0a).String())
}

func TestPattern_MatchAt(t *testing.T) {
	buf := []byte{0x00, 0x33, 0x35, 0x36}
	p := Pattern{Exact(0x33), Any(), Exact(0x36)}

	assert.True(t, p.MatchAt(buf, 1))
	assert.False(t, p.MatchAt(buf, 0))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.ExactCount())
}

func TestPattern_String(t *testing.T) {
	p := Pattern{Exact(0xaa), Exact(0xbb), Any(), Any(), Exact(0xcc)}
	assert.Equal(t, "AA BB ? ? CC", p.String())
}

func TestPattern_Anchor(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		pos     int
		b       byte
		ok      bool
	}{
		{
			name:    "all wildcards",
			pattern: Pattern{Any(), Any()},
			ok:      false,
		},
		{
			name:    "single exact",
			pattern: Pattern{Any(), Exact(0x00)},
			pos:     1,
			b:       0x00,
			ok:      true,
		},
		{
			name:    "prefers rare byte over padding",
			pattern: Pattern{Exact(0x00), Exact(0x00), Exact(0x7F)},
			pos:     2,
			b:       0x7F,
			ok:      true,
		},
		{
			name:    "ties go to earliest",
			pattern: Pattern{Exact(0x41), Exact(0x42)},
			pos:     0,
			b:       0x41,
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, b, ok := tt.pattern.Anchor()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.pos, pos)
				assert.Equal(t, tt.b, b)
			}
		})
	}
}
