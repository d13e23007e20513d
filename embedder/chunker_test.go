package embedder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextChunkerSplitsLongText(t *testing.T) {
	var sentences []string
	for i := 0; i < 40; i++ {
		sentences = append(sentences, "Roast the chestnuts over an open fire until fragrant and golden.")
	}
	text := strings.Join(sentences, " ")

	tc := NewTextChunker(WithChunkSize(50), WithChunkOverlap(10))
	chunks := tc.Chunk(text)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.NotEmpty(t, c.Text)
		assert.Greater(t, c.TokenSize, 0)
		assert.Greater(t, c.EndSentence, c.StartSentence)
	}
}

func TestTextChunkerOverlap(t *testing.T) {
	var sentences []string
	for i := 0; i < 20; i++ {
		sentences = append(sentences, "Simmer gently for ten minutes.")
	}
	text := strings.Join(sentences, " ")

	tc := NewTextChunker(WithChunkSize(20), WithChunkOverlap(5))
	chunks := tc.Chunk(text)
	require.Greater(t, len(chunks), 1)
	// adjacent chunks share sentences
	for i := 1; i < len(chunks); i++ {
		assert.Less(t, chunks[i].StartSentence, chunks[i-1].EndSentence)
	}
}

func TestTextChunkerShortText(t *testing.T) {
	tc := NewTextChunker()
	chunks := tc.Chunk("Whip the cream. Fold in the mascarpone.")
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].StartSentence)
	assert.Equal(t, 2, chunks[0].EndSentence)
}

func TestDefaultTokenCounter(t *testing.T) {
	dtc := &DefaultTokenCounter{}
	assert.Equal(t, 5, dtc.Count("stir until the sauce thickens"))
	assert.Equal(t, 0, dtc.Count("   "))
}
