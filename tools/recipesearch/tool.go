package recipesearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cenone/llm"
	"cenone/models"
	"cenone/schema"
	"cenone/store"
	"cenone/tools"
)

// Input describes a semantic recipe search with optional dietary filters.
// One tool serves every course; the category field selects which.
type Input struct {
	schema.Base
	// Query is a natural language description of the desired dish
	Query string `json:"query" jsonschema:"title=query,description=Natural language description of what you're looking for. For example 'light vegetable appetizers'."`
	// Category restricts the search to one course
	Category models.Category `json:"category" jsonschema:"title=category,description=Course to search.,enum=appetizer,enum=main_dish,enum=second_plate,enum=dessert"`
	IsVegan      bool `json:"is_vegan,omitempty" jsonschema:"title=is_vegan,description=Filter for vegan recipes only."`
	IsVegetarian bool `json:"is_vegetarian,omitempty" jsonschema:"title=is_vegetarian,description=Filter for vegetarian recipes only."`
	IsGlutenFree bool `json:"is_gluten_free,omitempty" jsonschema:"title=is_gluten_free,description=Filter for gluten-free recipes only."`
	IsDairyFree  bool `json:"is_dairy_free,omitempty" jsonschema:"title=is_dairy_free,description=Filter for dairy-free recipes only."`
	IsNutFree    bool `json:"is_nut_free,omitempty" jsonschema:"title=is_nut_free,description=Filter for nut-free recipes only."`
	// MaxPrepTime caps preparation time in minutes. Zero means no limit.
	MaxPrepTime int `json:"max_prep_time,omitempty" jsonschema:"title=max_prep_time,description=Maximum preparation time in minutes."`
	// PreferTraditional restricts to traditional Christmas dishes
	PreferTraditional bool `json:"prefer_traditional,omitempty" jsonschema:"title=prefer_traditional,description=Prefer traditional Christmas recipes."`
	// NumResults is the number of results to return, default 3
	NumResults int `json:"n_results,omitempty" jsonschema:"title=n_results,description=Number of results to return. Default 3."`
}

func NewInput(query string, category models.Category) *Input {
	return &Input{
		Query:    query,
		Category: category,
	}
}

// Output carries the matching recipes plus a pre-rendered text block agents
// can quote directly.
type Output struct {
	schema.Base
	Recipes   []models.Recipe `json:"recipes" jsonschema:"title=recipes,description=Matching recipes."`
	Formatted string          `json:"formatted" jsonschema:"title=formatted,description=Human readable listing of the matching recipes."`
}

func (o Output) String() string {
	return o.Formatted
}

// Tool searches the recipe store with the filters the course agents ask for.
type Tool struct {
	tools.Config
	store *store.RecipeStore
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.OrchestrationTool   = (*Tool)(nil)
)

func New(s *store.RecipeStore, opts ...tools.Option) *Tool {
	ret := &Tool{
		store: s,
	}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("RecipeSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search for recipes in the database using semantic search with dietary filters.")
	}
	return ret
}

// Run executes the search and fills output.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	topK := input.NumResults
	if topK <= 0 {
		topK = 3
	}
	filter := &store.Filter{
		Category:          input.Category,
		IsVegan:           input.IsVegan,
		IsVegetarian:      input.IsVegetarian,
		IsGlutenFree:      input.IsGlutenFree,
		IsDairyFree:       input.IsDairyFree,
		IsNutFree:         input.IsNutFree,
		MaxPrepTime:       input.MaxPrepTime,
		PreferTraditional: input.PreferTraditional,
		TopK:              topK,
	}
	usage := new(llm.Usage)
	recipes, err := t.store.Search(ctx, input.Query, filter, usage)
	if err != nil {
		return err
	}
	output.Recipes = recipes
	output.Formatted = FormatRecipes(recipes)
	return nil
}

// RunOrchestration runs the search with untyped input for agent tool wiring.
func (t *Tool) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecipeDetails renders the full recipe card for one recipe ID.
func (t *Tool) RecipeDetails(ctx context.Context, recipeID string) (string, error) {
	recipe, err := t.store.GetByID(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if recipe == nil {
		return fmt.Sprintf("Recipe with ID '%s' not found.", recipeID), nil
	}
	return FormatRecipeDetails(recipe), nil
}

// FormatRecipes renders search results as the numbered listing the course
// agents read.
func FormatRecipes(recipes []models.Recipe) string {
	if len(recipes) == 0 {
		return "No recipes found matching the criteria."
	}
	blocks := make([]string, 0, len(recipes))
	for i, recipe := range recipes {
		dietary := joinTags(recipe.DietaryTags)
		allergens := "none"
		if len(recipe.Allergens) > 0 {
			allergens = strings.Join(recipe.Allergens, ", ")
		}
		traditional := "No"
		if recipe.IsChristmasTraditional {
			traditional = "Yes"
		}
		blocks = append(blocks, fmt.Sprintf(
			"%d. **%s** (ID: %s)\n"+
				"   Description: %s\n"+
				"   Dietary tags: %s\n"+
				"   Allergens: %s\n"+
				"   Prep time: %d min | Cook time: %d min\n"+
				"   Servings: %d | Difficulty: %s\n"+
				"   Traditional Christmas: %s",
			i+1, recipe.Name, recipe.ID,
			recipe.Description,
			dietary,
			allergens,
			recipe.PrepTimeMinutes, recipe.CookTimeMinutes,
			recipe.Servings, recipe.Difficulty,
			traditional,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatRecipeDetails renders a full recipe card with ingredients and steps.
func FormatRecipeDetails(recipe *models.Recipe) string {
	dietary := joinTags(recipe.DietaryTags)
	allergens := "none"
	if len(recipe.Allergens) > 0 {
		allergens = strings.Join(recipe.Allergens, ", ")
	}
	traditional := "No"
	if recipe.IsChristmasTraditional {
		traditional = "Yes"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "**%s** (ID: %s)\n", recipe.Name, recipe.ID)
	fmt.Fprintf(sb, "Category: %s\n", recipe.Category)
	fmt.Fprintf(sb, "Description: %s\n\n", recipe.Description)
	sb.WriteString("Details:\n")
	fmt.Fprintf(sb, "   - Servings: %d\n", recipe.Servings)
	fmt.Fprintf(sb, "   - Prep time: %d minutes\n", recipe.PrepTimeMinutes)
	fmt.Fprintf(sb, "   - Cook time: %d minutes\n", recipe.CookTimeMinutes)
	fmt.Fprintf(sb, "   - Total time: %d minutes\n", recipe.TotalTimeMinutes())
	fmt.Fprintf(sb, "   - Difficulty: %s\n", recipe.Difficulty)
	fmt.Fprintf(sb, "   - Traditional Christmas: %s\n\n", traditional)
	fmt.Fprintf(sb, "Dietary Tags: %s\n", dietary)
	fmt.Fprintf(sb, "Allergens: %s\n\n", allergens)
	sb.WriteString("Ingredients:\n")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(sb, "   - %s\n", ing)
	}
	sb.WriteString("\nInstructions:\n")
	for i, step := range recipe.Instructions {
		fmt.Fprintf(sb, "   %d. %s\n", i+1, step)
	}
	return sb.String()
}

func joinTags(tags []models.DietaryTag) string {
	if len(tags) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, string(tag))
	}
	return strings.Join(parts, ", ")
}
