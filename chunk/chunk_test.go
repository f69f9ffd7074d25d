package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	assert.Nil(t, Split("", DefaultChunkSize, DefaultOverlapChars))
	assert.Nil(t, Split("   \n\t  ", DefaultChunkSize, DefaultOverlapChars))
}

func TestSplit_SingleChunk(t *testing.T) {
	text := strings.Repeat("word ", 500) // well under the default chunk size
	chunks := Split(text, DefaultChunkSize, DefaultOverlapChars)

	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(text), chunks[0])
}

func TestSplit_OversizedWord(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := Split("start "+long+" end", 20, 0)

	require.Len(t, chunks, 3)
	assert.Equal(t, "start", chunks[0])
	assert.Equal(t, long, chunks[1])
	assert.Equal(t, "end", chunks[2])
}

func TestSplit_OverlapSeeding(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("w%02d", i))
	}
	text := strings.Join(words, " ")

	// chunkSize 40 chars, overlap 20 chars -> 2 seed words
	chunks := Split(text, 40, 20)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])

		seed := OverlapWords(20)
		if seed >= len(prev) {
			seed = len(prev) - 1
		}
		require.GreaterOrEqual(t, len(cur), seed)
		assert.Equal(t, prev[len(prev)-seed:], cur[:seed],
			"chunk %d should start with the tail of chunk %d", i, i-1)
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	var words []string
	for i := 0; i < 5000; i++ {
		words = append(words, fmt.Sprintf("token%d", i))
	}
	text := strings.Join(words, " ")
	require.Greater(t, len(text), 50000)

	chunks := Split(text, DefaultChunkSize, DefaultOverlapChars)
	require.Greater(t, len(chunks), 1)

	// Dropping each chunk's overlap seed must reproduce the original
	// word sequence exactly.
	var rebuilt []string
	rebuilt = append(rebuilt, strings.Fields(chunks[0])...)
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		seed := OverlapWords(DefaultOverlapChars)
		if seed >= len(prev) {
			seed = len(prev) - 1
		}
		rebuilt = append(rebuilt, strings.Fields(chunks[i])[seed:]...)
	}
	assert.Equal(t, words, rebuilt)
}

func TestSplit_RespectsChunkSize(t *testing.T) {
	text := strings.Repeat("some transcript words here ", 3000)
	chunks := Split(text, DefaultChunkSize, DefaultOverlapChars)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize, "chunk %d too large", i)
		assert.NotEmpty(t, c)
	}
}

func TestSplit_NoOverlap(t *testing.T) {
	var words []string
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("w%02d", i))
	}
	chunks := Split(strings.Join(words, " "), 40, 0)
	require.Greater(t, len(chunks), 1)

	var rebuilt []string
	for _, c := range chunks {
		rebuilt = append(rebuilt, strings.Fields(c)...)
	}
	assert.Equal(t, words, rebuilt)
}
