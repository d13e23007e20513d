package recipesearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/embedder"
	"cenone/llm"
	"cenone/models"
	"cenone/store"
	"cenone/vectordb"
	memoryengine "cenone/vectordb/engines/memory"
)

type fixedEmbedder struct{}

func (fixedEmbedder) Provider() embedder.Provider { return embedder.ProviderOpenAI }
func (fixedEmbedder) Model() string               { return "fixed" }

func (fixedEmbedder) Embed(_ context.Context, text string, emb *embedder.Embedding, _ *llm.Usage) error {
	emb.Object = text
	emb.Embedding = []float64{float64(len(text)%7) + 1, 1, 0.5}
	return nil
}

func (f fixedEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *llm.Usage) ([]embedder.Embedding, error) {
	ret := make([]embedder.Embedding, 0, len(parts))
	for i, part := range parts {
		var emb embedder.Embedding
		if err := f.Embed(ctx, part, &emb, usage); err != nil {
			return nil, err
		}
		emb.Index = i
		ret = append(ret, emb)
	}
	return ret, nil
}

func newTool(t *testing.T) *Tool {
	t.Helper()
	engine, err := memoryengine.New(vectordb.WithTopK(30))
	require.NoError(t, err)
	s := store.New(engine, fixedEmbedder{})
	loader := store.NewLoader(s)
	_, err = loader.LoadSamples(context.Background(), nil)
	require.NoError(t, err)
	return New(s)
}

func TestRunFiltersByCategory(t *testing.T) {
	tool := newTool(t)
	out := new(Output)
	err := tool.Run(context.Background(), &Input{
		Query:    "festive dessert",
		Category: models.CategoryDessert,
	}, out)
	require.NoError(t, err)
	require.NotEmpty(t, out.Recipes)
	assert.LessOrEqual(t, len(out.Recipes), 3)
	for _, r := range out.Recipes {
		assert.Equal(t, models.CategoryDessert, r.Category)
	}
	assert.Contains(t, out.Formatted, "(ID: dessert_")
}

func TestRunVeganFilter(t *testing.T) {
	tool := newTool(t)
	out := new(Output)
	err := tool.Run(context.Background(), &Input{
		Query:      "something plant based",
		Category:   models.CategorySecondPlate,
		IsVegan:    true,
		NumResults: 5,
	}, out)
	require.NoError(t, err)
	require.NotEmpty(t, out.Recipes)
	for _, r := range out.Recipes {
		assert.True(t, r.SuitableFor(models.TagVegan))
	}
}

func TestRunOrchestration(t *testing.T) {
	tool := newTool(t)
	result, err := tool.RunOrchestration(context.Background(), NewInput("warm starter", models.CategoryAppetizer))
	require.NoError(t, err)
	out, ok := result.(*Output)
	require.True(t, ok)
	assert.NotEmpty(t, out.Recipes)

	_, err = tool.RunOrchestration(context.Background(), "not a schema")
	assert.Error(t, err)
}

func TestFormatRecipesEmpty(t *testing.T) {
	assert.Equal(t, "No recipes found matching the criteria.", FormatRecipes(nil))
}

func TestRecipeDetails(t *testing.T) {
	tool := newTool(t)
	details, err := tool.RecipeDetails(context.Background(), "app_003")
	require.NoError(t, err)
	assert.Contains(t, details, "Stuffed Mushrooms")
	assert.Contains(t, details, "Ingredients:")
	assert.Contains(t, details, "1. Remove mushroom stems")

	missing, err := tool.RecipeDetails(context.Background(), "nope")
	require.NoError(t, err)
	assert.Contains(t, missing, "not found")
}
