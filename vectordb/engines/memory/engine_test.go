package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/embedder"
	"cenone/vectordb"
)

func newRecord(text string, vec []float64, meta map[string]string) vectordb.Record {
	return vectordb.Record{
		Embedding: embedder.Embedding{
			Object:    text,
			Embedding: vec,
			Meta:      meta,
		},
	}
}

func TestInsertAndCount(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	err = e.Insert(ctx, "recipes",
		newRecord("roast goose", []float64{1, 0, 0}, map[string]string{"category": "main_dish"}),
		newRecord("panettone", []float64{0, 1, 0}, map[string]string{"category": "dessert"}),
	)
	require.NoError(t, err)

	count, err := e.Count(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	e, err := New(vectordb.WithTopK(10))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, e.Insert(ctx, "recipes",
		newRecord("roast goose", []float64{1, 0, 0}, nil),
		newRecord("panettone", []float64{0, 1, 0}, nil),
		newRecord("glazed ham", []float64{0.9, 0.1, 0}, nil),
	))

	records, err := e.Search(ctx, []float64{1, 0, 0}, vectordb.SearchWithCollection("recipes"), vectordb.SearchWithTopK(2))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "roast goose", records[0].Embedding.Object)
	assert.Equal(t, "glazed ham", records[1].Embedding.Object)
}

func TestSearchMetaFilter(t *testing.T) {
	e, err := New(vectordb.WithTopK(10))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, e.Insert(ctx, "recipes",
		newRecord("roast goose", []float64{1, 0, 0}, map[string]string{"category": "main_dish", "is_vegan": "false"}),
		newRecord("nut roast", []float64{0.9, 0.1, 0}, map[string]string{"category": "main_dish", "is_vegan": "true"}),
		newRecord("panettone", []float64{0, 1, 0}, map[string]string{"category": "dessert", "is_vegan": "false"}),
	))

	records, err := e.Search(ctx, []float64{1, 0, 0},
		vectordb.SearchWithCollection("recipes"),
		vectordb.SearchWithMeta(map[string]string{"category": "main_dish", "is_vegan": "true"}),
	)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "nut roast", records[0].Embedding.Object)
}

func TestSearchIncludeExclude(t *testing.T) {
	e, err := New(vectordb.WithTopK(10))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, e.Insert(ctx, "recipes",
		newRecord("roast goose with chestnuts", []float64{1, 0, 0}, nil),
		newRecord("roast potatoes", []float64{0.9, 0.1, 0}, nil),
	))

	records, err := e.Search(ctx, []float64{1, 0, 0},
		vectordb.SearchWithCollection("recipes"),
		vectordb.SearchWithInclude("roast"),
		vectordb.SearchWithExclude("chestnuts"),
	)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "roast potatoes", records[0].Embedding.Object)
}

func TestGetAndDrop(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	rec := newRecord("roast goose", []float64{1, 0, 0}, nil)
	rec.ID = "goose-1"
	require.NoError(t, e.Insert(ctx, "recipes", rec))

	got, err := e.Get(ctx, "recipes", "goose-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "roast goose", got.Embedding.Object)

	missing, err := e.Get(ctx, "recipes", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, e.Drop(ctx, "recipes"))
	count, err := e.Count(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
