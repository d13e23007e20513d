package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/embedder"
	"cenone/store"
)

func TestExtractFromTextEmpty(t *testing.T) {
	s := newTestRecipeStore(t)
	parser := NewDocParser(store.NewLoader(s))

	recipes, err := parser.ExtractFromText(context.Background(), "   \n  ", nil)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestNewDocParserDefaults(t *testing.T) {
	s := newTestRecipeStore(t)
	parser := NewDocParser(store.NewLoader(s))
	assert.Equal(t, "document_parsing_agent", parser.Name())
	assert.NotNil(t, parser.parser)

	chunker, ok := parser.chunker.(*embedder.TextChunker)
	require.True(t, ok)
	assert.Equal(t, 1500, chunker.ChunkSize)
	assert.Equal(t, 150, chunker.ChunkOverlap)
	assert.NotNil(t, chunker.TokenCounter)
}
