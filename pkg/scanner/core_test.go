package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/sigscan/pkg/matcher"
	"github.com/praetorian-inc/sigscan/pkg/types"
)

// matcherEngine adapts a matcher.Matcher to Engine.
type matcherEngine struct {
	m matcher.Matcher
}

func (e matcherEngine) ScanAllWithBytes(buf []byte, p types.Pattern) ([]int, error) {
	return e.m.MatchAll(buf, p)
}

func (e matcherEngine) ScanWithBytes(buf []byte, p types.Pattern) (int, bool, error) {
	return matcher.Unique(e.m, buf, p)
}

// failingEngine always fails.
type failingEngine struct{ err error }

func (e failingEngine) ScanAllWithBytes([]byte, types.Pattern) ([]int, error) { return nil, e.err }
func (e failingEngine) ScanWithBytes([]byte, types.Pattern) (int, bool, error) {
	return 0, false, e.err
}

func testSignatures() []*types.Signature {
	return []*types.Signature{
		{ID: "test.ab", Name: "AB", Pattern: "AB ?"},
		{ID: "test.elf", Name: "ELF", Pattern: "7F 45 4C 46"},
	}
}

func TestNewCore(t *testing.T) {
	c, err := NewCore(matcherEngine{matcher.NewSequential()}, testSignatures(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, c.SignatureCount())

	_, err = NewCore(nil, testSignatures(), false)
	assert.Error(t, err)

	_, err = NewCore(matcherEngine{matcher.NewSequential()}, []*types.Signature{{ID: "bad", Pattern: "XYZ"}}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `signature "bad"`)
}

func TestCore_Scan(t *testing.T) {
	c, err := NewCore(matcherEngine{matcher.NewSequential()}, testSignatures(), false)
	require.NoError(t, err)

	content := []byte{0x7F, 0x45, 0x4C, 0x46, 0xAB, 0x01, 0xAB, 0x02}
	result, err := c.Scan(content, types.ComputeBlobID(content), "image.bin")
	require.NoError(t, err)

	assert.Equal(t, "image.bin", result.Source)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, "test.ab", result.Matches[0].SignatureID)
	assert.EqualValues(t, 4, result.Matches[0].Offset)
	assert.Equal(t, "ab01", result.Matches[0].Matched)
	assert.EqualValues(t, 6, result.Matches[1].Offset)
	assert.Equal(t, "test.elf", result.Matches[2].SignatureID)
	assert.Equal(t, 4, result.Matches[2].Length)
	assert.Empty(t, result.Failures)
}

func TestCore_ScanUnique(t *testing.T) {
	c, err := NewCore(matcherEngine{matcher.NewSequential()}, testSignatures(), true)
	require.NoError(t, err)

	content := []byte{0x7F, 0x45, 0x4C, 0x46, 0xAB, 0x01, 0xAB, 0x02}
	result, err := c.Scan(content, types.ComputeBlobID(content), "image.bin")
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "test.elf", result.Matches[0].SignatureID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, &Failure{
		Source:      "image.bin",
		SignatureID: "test.ab",
		Count:       2,
		First:       4,
		Second:      6,
	}, result.Failures[0])
}

func TestCore_ScanEngineError(t *testing.T) {
	sentinel := errors.New("engine down")
	c, err := NewCore(failingEngine{sentinel}, testSignatures(), false)
	require.NoError(t, err)

	_, err = c.Scan([]byte{1}, types.BlobID{}, "x")
	assert.ErrorIs(t, err, sentinel)
}

func TestCore_ScanBatch(t *testing.T) {
	pool, err := matcher.NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	engine := matcherEngine{matcher.NewParallel(pool, matcher.ChunkConfig{MinChunkSize: 2, ChunksPerWorker: 2})}
	c, err := NewCore(engine, testSignatures(), true)
	require.NoError(t, err)

	first := []byte{0xAB, 0x00, 0x00, 0xAB, 0x01}
	batch, err := c.ScanBatch([]ContentItem{
		{Source: "a", Content: first},
		{Source: "b", Content: []byte{0x7F, 0x45, 0x4C, 0x46}},
		{Source: "c", Content: nil},
		{Content: []byte{0x00, 0x7F, 0x45, 0x4C, 0x46}},
	})
	require.NoError(t, err)

	require.Len(t, batch.Results, 4)
	assert.Equal(t, 2, batch.Total)
	assert.Equal(t, 1, batch.Failures)
	assert.Equal(t, "a", batch.Results[0].Failures[0].Source)
	assert.Equal(t, types.ComputeBlobID([]byte{0x7F, 0x45, 0x4C, 0x46}), batch.Results[1].Matches[0].BlobID)
	assert.Empty(t, batch.Results[2].Matches)

	unnamed := batch.Results[3]
	assert.Equal(t, "<memory>", unnamed.Source)
	require.Len(t, unnamed.Matches, 1)
	assert.Equal(t, "<memory>", unnamed.Matches[0].Source)
	assert.EqualValues(t, 1, unnamed.Matches[0].Offset)
}

func TestCore_ScanBatchError(t *testing.T) {
	c, err := NewCore(failingEngine{errors.New("boom")}, testSignatures(), false)
	require.NoError(t, err)

	_, err = c.ScanBatch([]ContentItem{{Source: "a", Content: []byte{1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning a")
}

func TestGetBuiltinSignatures(t *testing.T) {
	first, err := GetBuiltinSignatures()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := GetBuiltinSignatures()
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])
}
