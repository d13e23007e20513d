package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"cenone/llm"
	"cenone/models"
)

//go:embed samples.json
var sampleRecipes []byte

// Loader populates the recipe store from JSON sources, skipping entries that
// fail validation.
type Loader struct {
	store    *RecipeStore
	validate *validator.Validate
	logger   *zap.Logger
}

type LoaderOption func(*Loader)

func LoaderWithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

func NewLoader(s *RecipeStore, opts ...LoaderOption) *Loader {
	ret := &Loader{
		store:    s,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// recipeFile accepts both a bare JSON array and an object with a recipes key.
type recipeFile struct {
	Recipes []json.RawMessage `json:"recipes"`
}

// LoadJSONFile loads recipes from a JSON file and returns how many were
// stored.
func (l *Loader) LoadJSONFile(ctx context.Context, path string, usage *llm.Usage) (int, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read recipe file: %w", err)
	}
	return l.LoadJSON(ctx, bs, usage)
}

// LoadJSON loads recipes from raw JSON and returns how many were stored.
func (l *Loader) LoadJSON(ctx context.Context, bs []byte, usage *llm.Usage) (int, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(bs, &raws); err != nil {
		var file recipeFile
		if err := json.Unmarshal(bs, &file); err != nil {
			return 0, fmt.Errorf("decode recipes: %w", err)
		}
		raws = file.Recipes
	}
	recipes := make([]models.Recipe, 0, len(raws))
	for _, raw := range raws {
		var recipe models.Recipe
		if err := json.Unmarshal(raw, &recipe); err != nil {
			l.logger.Warn("skipping malformed recipe", zap.Error(err))
			continue
		}
		if err := l.validate.Struct(&recipe); err != nil {
			l.logger.Warn("skipping invalid recipe", zap.String("id", recipe.ID), zap.Error(err))
			continue
		}
		recipes = append(recipes, recipe)
	}
	return l.LoadRecipes(ctx, recipes, usage)
}

// LoadRecipes stores already decoded recipes.
func (l *Loader) LoadRecipes(ctx context.Context, recipes []models.Recipe, usage *llm.Usage) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}
	if err := l.store.AddRecipes(ctx, recipes, usage); err != nil {
		return 0, err
	}
	return len(recipes), nil
}

// LoadSamples loads the bundled Christmas recipe collection.
func (l *Loader) LoadSamples(ctx context.Context, usage *llm.Usage) (int, error) {
	return l.LoadJSON(ctx, sampleRecipes, usage)
}
