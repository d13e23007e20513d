package embedder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTikTokenCounterCount(t *testing.T) {
	counter, err := NewTikTokenCounter("cl100k_base")
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}
	assert.Equal(t, 2, counter.Count("hello world"))
	assert.Greater(t, counter.Count("Simmer the brodo with parmesan rinds for an hour."), 5)
}

func TestNewTikTokenCounterUnknownEncoding(t *testing.T) {
	_, err := NewTikTokenCounter("no_such_encoding")
	require.Error(t, err)
}

func TestTextChunkerWithTikTokenCounter(t *testing.T) {
	counter, err := NewTikTokenCounter("cl100k_base")
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}
	chunker := NewTextChunker(
		WithChunkSize(20),
		WithChunkOverlap(5),
		WithTokenCounter(counter),
	)
	text := "Roast the chestnuts until fragrant. Whip the mascarpone with sugar. " +
		"Layer the savoiardi in the dish. Dust with cocoa before serving. " +
		"Chill overnight for the best texture."
	chunks := chunker.Chunk(text)
	require.NotEmpty(t, chunks)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.Positive(t, chunk.TokenSize)
	}
}
