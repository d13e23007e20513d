package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"cenone/embedder"
	"cenone/llm"
	"cenone/models"
	"cenone/vectordb"
)

const (
	// DefaultCollection is the vector collection holding all recipes.
	DefaultCollection = "christmas_recipes"
	// DefaultTopK limits search results when a query does not say otherwise.
	DefaultTopK = 5
)

// Filter narrows a recipe search. Boolean filters only restrict when true,
// matching how guests state requirements ("needs vegan options") rather than
// exclusions.
type Filter struct {
	Category          models.Category
	IsVegan           bool
	IsVegetarian      bool
	IsGlutenFree      bool
	IsDairyFree       bool
	IsNutFree         bool
	MaxPrepTime       int
	PreferTraditional bool
	TopK              int
}

// RecipeStore is a vector-backed recipe catalogue supporting filtered
// similarity search.
type RecipeStore struct {
	engine     vectordb.Engine
	embedder   embedder.Embedder
	collection string
	logger     *zap.Logger
}

type StoreOption func(*RecipeStore)

func WithCollection(name string) StoreOption {
	return func(s *RecipeStore) {
		s.collection = name
	}
}

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *RecipeStore) {
		s.logger = l
	}
}

func New(engine vectordb.Engine, emb embedder.Embedder, opts ...StoreOption) *RecipeStore {
	ret := &RecipeStore{
		engine:     engine,
		embedder:   emb,
		collection: DefaultCollection,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *RecipeStore) Collection() string {
	return s.collection
}

// recipeMeta flattens a recipe into the string metadata the engines can
// filter on. The full recipe travels along as recipe_json so search results
// can be decoded without a second lookup.
func recipeMeta(recipe *models.Recipe) (map[string]string, error) {
	recipeJSON, err := json.Marshal(recipe)
	if err != nil {
		return nil, err
	}
	allergens, err := json.Marshal(recipe.Allergens)
	if err != nil {
		return nil, err
	}
	tags, err := json.Marshal(recipe.DietaryTags)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"category":                 string(recipe.Category),
		"is_vegan":                 strconv.FormatBool(recipe.HasTag(models.TagVegan)),
		"is_vegetarian":            strconv.FormatBool(recipe.HasTag(models.TagVegetarian)),
		"is_gluten_free":           strconv.FormatBool(recipe.HasTag(models.TagGlutenFree)),
		"is_dairy_free":            strconv.FormatBool(recipe.HasTag(models.TagDairyFree)),
		"is_nut_free":              strconv.FormatBool(recipe.HasTag(models.TagNutFree)),
		"is_christmas_traditional": strconv.FormatBool(recipe.IsChristmasTraditional),
		"difficulty":               string(recipe.Difficulty),
		"prep_time_minutes":        strconv.Itoa(recipe.PrepTimeMinutes),
		"cook_time_minutes":        strconv.Itoa(recipe.CookTimeMinutes),
		"servings":                 strconv.Itoa(recipe.Servings),
		"allergens":                string(allergens),
		"dietary_tags":             string(tags),
		"recipe_json":              string(recipeJSON),
	}, nil
}

// AddRecipe embeds a single recipe and stores it.
func (s *RecipeStore) AddRecipe(ctx context.Context, recipe *models.Recipe, usage *llm.Usage) error {
	return s.AddRecipes(ctx, []models.Recipe{*recipe}, usage)
}

// AddRecipes embeds the recipes in one batch and stores them.
func (s *RecipeStore) AddRecipes(ctx context.Context, recipes []models.Recipe, usage *llm.Usage) error {
	if len(recipes) == 0 {
		return nil
	}
	texts := make([]string, 0, len(recipes))
	for i := range recipes {
		texts = append(texts, recipes[i].SearchText())
	}
	embeddings, err := s.embedder.BatchEmbed(ctx, texts, usage)
	if err != nil {
		return err
	}
	records := make([]vectordb.Record, 0, len(recipes))
	for i := range recipes {
		if i >= len(embeddings) {
			break
		}
		meta, err := recipeMeta(&recipes[i])
		if err != nil {
			return err
		}
		emb := embeddings[i]
		emb.Meta = meta
		records = append(records, vectordb.Record{
			ID:        recipes[i].ID,
			Embedding: emb,
		})
	}
	return s.engine.Insert(ctx, s.collection, records...)
}

// searchMeta converts a Filter into engine metadata equality clauses.
// MaxPrepTime is not included; engines only match exact values, so prep time
// is applied as a post-filter in Search.
func searchMeta(filter *Filter) map[string]string {
	meta := make(map[string]string, 7)
	if filter.Category != "" {
		meta["category"] = string(filter.Category)
	}
	if filter.IsVegan {
		meta["is_vegan"] = "true"
	}
	if filter.IsVegetarian {
		meta["is_vegetarian"] = "true"
	}
	if filter.IsGlutenFree {
		meta["is_gluten_free"] = "true"
	}
	if filter.IsDairyFree {
		meta["is_dairy_free"] = "true"
	}
	if filter.IsNutFree {
		meta["is_nut_free"] = "true"
	}
	if filter.PreferTraditional {
		meta["is_christmas_traditional"] = "true"
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// Search embeds the query and returns recipes matching the filter, most
// similar first. If the filtered search fails the query is retried without
// filters so the host still gets candidates to work with.
func (s *RecipeStore) Search(ctx context.Context, query string, filter *Filter, usage *llm.Usage) ([]models.Recipe, error) {
	if filter == nil {
		filter = new(Filter)
	}
	topK := filter.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	emb := new(embedder.Embedding)
	if err := s.embedder.Embed(ctx, query, emb, usage); err != nil {
		return nil, err
	}
	// over-fetch so the prep time post-filter still leaves topK results
	fetchK := topK
	if filter.MaxPrepTime > 0 {
		fetchK = topK * 2
	}
	records, err := s.engine.Search(ctx, emb.Embedding,
		vectordb.SearchWithCollection(s.collection),
		vectordb.SearchWithTopK(fetchK),
		vectordb.SearchWithMeta(searchMeta(filter)),
	)
	if err != nil {
		s.logger.Warn("filtered search failed, retrying without filters", zap.Error(err))
		records, err = s.engine.Search(ctx, emb.Embedding,
			vectordb.SearchWithCollection(s.collection),
			vectordb.SearchWithTopK(fetchK),
		)
		if err != nil {
			return nil, err
		}
	}
	recipes := make([]models.Recipe, 0, len(records))
	for _, record := range records {
		recipe, err := decodeRecord(&record)
		if err != nil {
			s.logger.Warn("skipping undecodable recipe record", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		if filter.MaxPrepTime > 0 && recipe.PrepTimeMinutes > filter.MaxPrepTime {
			continue
		}
		recipes = append(recipes, *recipe)
		if len(recipes) == topK {
			break
		}
	}
	return recipes, nil
}

// GetByID returns the recipe with the given ID, or nil when absent.
func (s *RecipeStore) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	record, err := s.engine.Get(ctx, s.collection, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return decodeRecord(record)
}

// ByCategory returns up to 30 recipes for one course.
func (s *RecipeStore) ByCategory(ctx context.Context, category models.Category, usage *llm.Usage) ([]models.Recipe, error) {
	return s.Search(ctx, "recipe", &Filter{Category: category, TopK: 30}, usage)
}

// Count returns the number of stored recipes.
func (s *RecipeStore) Count(ctx context.Context) (int, error) {
	return s.engine.Count(ctx, s.collection)
}

// Clear removes every recipe from the store.
func (s *RecipeStore) Clear(ctx context.Context) error {
	return s.engine.Drop(ctx, s.collection)
}

func decodeRecord(record *vectordb.Record) (*models.Recipe, error) {
	recipeJSON := record.Embedding.Meta["recipe_json"]
	if recipeJSON == "" {
		return nil, errors.New("record has no recipe payload")
	}
	recipe := new(models.Recipe)
	if err := json.Unmarshal([]byte(recipeJSON), recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
