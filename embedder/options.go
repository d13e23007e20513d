package embedder

// Options holds the configuration for creating an Embedder instance.
type Options struct {
	// provider specifies the embedding service to use
	provider Provider
	// model specifies the model to use
	model string
}

// Option is a function type for configuring an Embedder.
type Option func(*Options)

func WithProvider(provider Provider) Option {
	return func(o *Options) {
		o.provider = provider
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func (o Options) Provider() Provider {
	return o.provider
}

func (o Options) Model() string {
	return o.model
}
