package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, s.Provider)
	assert.Equal(t, "gpt-4o-mini", s.Model)
	assert.Equal(t, "text-embedding-3-small", s.EmbeddingModel)
	assert.Equal(t, 1536, s.EmbeddingDimensions)
	assert.Equal(t, EngineChromem, s.VectorDB.Engine)
	assert.Equal(t, "christmas_recipes", s.VectorDB.Collection)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: ollama
ollama_model: mistral:7b
temperature: 0.2
vectordb:
  engine: memory
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, s.Provider)
	assert.Equal(t, "mistral:7b", s.ChatModel())
	assert.InDelta(t, 0.2, float64(s.Temperature), 0.001)
	assert.Equal(t, EngineMemory, s.VectorDB.Engine)
	// untouched fields keep their defaults
	assert.Equal(t, 2000, s.MaxTokens)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("DEFAULT_MODEL", "claude-sonnet")
	t.Setenv("MAX_TOKENS", "4096")
	t.Setenv("EMBEDDING_DIMENSIONS", "768")
	t.Setenv("VECTOR_ENGINE", "milvus")
	t.Setenv("MILVUS_ADDRESS", "localhost:19530")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, s.Provider)
	assert.Equal(t, "claude-sonnet", s.Model)
	assert.Equal(t, 4096, s.MaxTokens)
	assert.Equal(t, 768, s.EmbeddingDimensions)
	assert.Equal(t, EngineMilvus, s.VectorDB.Engine)
	assert.Equal(t, "localhost:19530", s.VectorDB.Address)
}

func TestLoadInvalidProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "geminy")
	_, err := Load("")
	assert.Error(t, err)
}

func TestProviderInfo(t *testing.T) {
	s := Default()
	assert.Equal(t, "openai (gpt-4o-mini)", s.ProviderInfo())

	s.Provider = ProviderOllama
	assert.Contains(t, s.ProviderInfo(), "Ollama (llama3.1:8b)")
}
