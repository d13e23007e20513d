package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Provider selects which LLM backend the agents talk to.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderCohere    Provider = "cohere"
)

// VectorEngine selects the vector database backing the recipe store.
type VectorEngine string

const (
	EngineMemory  VectorEngine = "memory"
	EngineChromem VectorEngine = "chromem"
	EngineMilvus  VectorEngine = "milvus"
)

// VectorDB configures the recipe store backend.
type VectorDB struct {
	// Engine picks the backend implementation
	Engine VectorEngine `yaml:"engine" validate:"oneof=memory chromem milvus"`
	// Path enables on-disk persistence for the chromem engine
	Path string `yaml:"path,omitempty"`
	// Address of the milvus server
	Address string `yaml:"address,omitempty"`
	// Collection holding the recipes
	Collection string `yaml:"collection,omitempty"`
}

// Settings is the application configuration. Values come from defaults, then
// an optional YAML file, then environment variables.
type Settings struct {
	Provider Provider `yaml:"provider" validate:"oneof=openai ollama anthropic cohere"`

	OpenAIAPIKey  string `yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL string `yaml:"openai_base_url,omitempty"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key,omitempty"`
	AnthropicBaseURL string `yaml:"anthropic_base_url,omitempty"`

	CohereAPIKey  string `yaml:"cohere_api_key,omitempty"`
	CohereBaseURL string `yaml:"cohere_base_url,omitempty"`

	// OllamaBaseURL points at an OpenAI-compatible Ollama endpoint
	OllamaBaseURL string `yaml:"ollama_base_url,omitempty"`
	OllamaModel   string `yaml:"ollama_model,omitempty"`

	// Model used for chat completions on cloud providers
	Model string `yaml:"model" validate:"required"`
	// EmbeddingModel used for the recipe store
	EmbeddingModel string `yaml:"embedding_model" validate:"required"`
	// EmbeddingDimensions of the embedding model's vectors
	EmbeddingDimensions int `yaml:"embedding_dimensions" validate:"gt=0"`

	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gt=0"`

	VectorDB VectorDB `yaml:"vectordb"`

	// SearxNGURL is the base URL of the SearxNG instance for web research
	SearxNGURL string `yaml:"searxng_url,omitempty"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Settings {
	return &Settings{
		Provider:            ProviderOpenAI,
		Model:               "gpt-4o-mini",
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
		OllamaBaseURL:       "http://localhost:11434/v1",
		OllamaModel:         "llama3.1:8b",
		Temperature:         0.7,
		MaxTokens:           2000,
		VectorDB: VectorDB{
			Engine:     EngineChromem,
			Collection: "christmas_recipes",
		},
	}
}

// Load builds the settings from defaults, the optional YAML file at path and
// environment variable overrides, then validates the result.
func Load(path string) (*Settings, error) {
	s := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bs, s); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	s.applyEnv()
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

func (s *Settings) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		s.Provider = Provider(v)
	}
	setString(&s.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&s.OpenAIBaseURL, "OPENAI_API_BASE_URL")
	setString(&s.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&s.AnthropicBaseURL, "ANTHROPIC_API_BASE_URL")
	setString(&s.CohereAPIKey, "COHERE_API_KEY")
	setString(&s.CohereBaseURL, "COHERE_API_BASE_URL")
	setString(&s.OllamaBaseURL, "OLLAMA_BASE_URL")
	setString(&s.OllamaModel, "OLLAMA_MODEL")
	setString(&s.Model, "DEFAULT_MODEL")
	setString(&s.EmbeddingModel, "EMBEDDING_MODEL")
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.EmbeddingDimensions = n
		}
	}
	setString(&s.SearxNGURL, "SEARXNG_BASE_URL")
	if v := os.Getenv("TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			s.Temperature = float32(f)
		}
	}
	if v := os.Getenv("MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxTokens = n
		}
	}
	if v := os.Getenv("VECTOR_ENGINE"); v != "" {
		s.VectorDB.Engine = VectorEngine(v)
	}
	setString(&s.VectorDB.Path, "CHROMEM_PATH")
	setString(&s.VectorDB.Address, "MILVUS_ADDRESS")
	setString(&s.VectorDB.Collection, "RECIPE_COLLECTION")
}

// ChatModel returns the model name for the configured provider.
func (s *Settings) ChatModel() string {
	if s.Provider == ProviderOllama {
		return s.OllamaModel
	}
	return s.Model
}

// ProviderInfo renders the provider and model as one display line.
func (s *Settings) ProviderInfo() string {
	if s.Provider == ProviderOllama {
		return fmt.Sprintf("Ollama (%s) at %s", s.OllamaModel, s.OllamaBaseURL)
	}
	return fmt.Sprintf("%s (%s)", s.Provider, s.Model)
}
