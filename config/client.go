package config

import (
	"context"
	"fmt"

	"github.com/bububa/instructor-go"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	chromem "github.com/philippgille/chromem-go"
	openai "github.com/sashabaranov/go-openai"

	"cenone/embedder"
	openaiEmbedder "cenone/embedder/openai"
	"cenone/vectordb"
	"cenone/vectordb/engines"
)

// NewInstructor builds the structured-output client for the configured
// provider. Ollama is served through its OpenAI-compatible endpoint.
func NewInstructor(s *Settings) instructor.Instructor {
	switch s.Provider {
	case ProviderAnthropic:
		opts := make([]anthropic.ClientOption, 0, 1)
		if s.AnthropicBaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(s.AnthropicBaseURL))
		}
		clt := anthropic.NewClient(s.AnthropicAPIKey, opts...)
		return instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	case ProviderCohere:
		opts := make([]cohereOption.RequestOption, 0, 2)
		opts = append(opts, cohereOption.WithToken(s.CohereAPIKey))
		if s.CohereBaseURL != "" {
			opts = append(opts, cohereOption.WithBaseURL(s.CohereBaseURL))
		}
		clt := cohereClient.NewClient(opts...)
		return instructor.FromCohere(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	case ProviderOllama:
		cfg := openai.DefaultConfig("ollama")
		cfg.BaseURL = s.OllamaBaseURL
		clt := openai.NewClientWithConfig(cfg)
		return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	default:
		cfg := openai.DefaultConfig(s.OpenAIAPIKey)
		if s.OpenAIBaseURL != "" {
			cfg.BaseURL = s.OpenAIBaseURL
		}
		clt := openai.NewClientWithConfig(cfg)
		return instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
	}
}

// NewEmbedder builds the embedding client. Ollama serves embeddings over the
// same OpenAI-compatible endpoint as completions.
func NewEmbedder(s *Settings) embedder.Embedder {
	var cfg openai.ClientConfig
	if s.Provider == ProviderOllama {
		cfg = openai.DefaultConfig("ollama")
		cfg.BaseURL = s.OllamaBaseURL
	} else {
		cfg = openai.DefaultConfig(s.OpenAIAPIKey)
		if s.OpenAIBaseURL != "" {
			cfg.BaseURL = s.OpenAIBaseURL
		}
	}
	clt := openai.NewClientWithConfig(cfg)
	return openaiEmbedder.New(clt, embedder.WithModel(s.EmbeddingModel))
}

// NewEngine builds the vector database engine from the settings.
func NewEngine(ctx context.Context, s *Settings) (vectordb.Engine, error) {
	switch s.VectorDB.Engine {
	case EngineMemory:
		return engines.FromMemory()
	case EngineMilvus:
		clt, err := milvusClient.NewClient(ctx, milvusClient.Config{Address: s.VectorDB.Address})
		if err != nil {
			return nil, fmt.Errorf("connect milvus: %w", err)
		}
		return engines.FromMilvus(clt, vectordb.WithDimension(s.EmbeddingDimensions)), nil
	case EngineChromem:
		if s.VectorDB.Path != "" {
			db, err := chromem.NewPersistentDB(s.VectorDB.Path, false)
			if err != nil {
				return nil, fmt.Errorf("open chromem db: %w", err)
			}
			return engines.FromChromem(db), nil
		}
		return engines.FromChromem(chromem.NewDB()), nil
	}
	return nil, fmt.Errorf("unknown vector engine: %s", s.VectorDB.Engine)
}
