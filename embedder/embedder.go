package embedder

import (
	"context"

	"cenone/llm"
)

// Embedder turns text into dense vectors via an external embedding model.
type Embedder interface {
	Provider() Provider
	Model() string
	Embed(context.Context, string, *Embedding, *llm.Usage) error
	BatchEmbed(ctx context.Context, parts []string, usage *llm.Usage) ([]Embedding, error)
}
