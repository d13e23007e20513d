package vectordb

import "context"

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
	Milvus  EngineType = "milvus"
)

// Engine abstracts a vector store capable of similarity search over
// embedded documents grouped into named collections.
type Engine interface {
	Insert(ctx context.Context, collection string, records ...Record) error
	Search(ctx context.Context, vectors []float64, opts ...SearchOption) ([]Record, error)
	Get(ctx context.Context, collection string, id string) (*Record, error)
	Count(ctx context.Context, collection string) (int, error)
	Drop(ctx context.Context, collection string) error
}
