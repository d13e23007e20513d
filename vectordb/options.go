package vectordb

type Options struct {
	EngineType EngineType // Engine type (e.g., "milvus", "chromem", "memory")
	TopK       int        // Maximum number of results to return
	MinScore   float64    // Minimum similarity score threshold
	Dimension  int        // Vector dimension
}

// Option is a function type for configuring engine instances.
type Option func(*Options)

func WithEngine(engine EngineType) Option {
	return func(c *Options) {
		c.EngineType = engine
	}
}

// WithTopK sets the default maximum number of results to return when a search
// does not specify its own limit.
func WithTopK(k int) Option {
	return func(c *Options) {
		c.TopK = k
	}
}

// WithMinScore sets the minimum similarity score threshold.
// Results with scores below this threshold will be filtered out.
func WithMinScore(score float64) Option {
	return func(c *Options) {
		c.MinScore = score
	}
}

// WithDimension sets the dimension of vectors to be stored.
// This must match the dimension of your embedding model:
// - text-embedding-3-small: 1536
// - nomic-embed-text: 768
func WithDimension(dimension int) Option {
	return func(c *Options) {
		c.Dimension = dimension
	}
}
