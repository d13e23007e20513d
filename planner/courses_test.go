package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/models"
	"cenone/tools/recipesearch"
)

func TestPinnedSearchForcesCategory(t *testing.T) {
	s := newTestRecipeStore(t)
	tool := recipesearch.New(s)
	pinned := &pinnedSearch{category: models.CategoryDessert, tool: tool}

	// the model asked for appetizers, the pin overrides it
	result, err := pinned.RunOrchestration(context.Background(), &recipesearch.Input{
		Query:    "something festive",
		Category: models.CategoryAppetizer,
	})
	require.NoError(t, err)
	out, ok := result.(*recipesearch.Output)
	require.True(t, ok)
	require.NotEmpty(t, out.Recipes)
	for _, recipe := range out.Recipes {
		assert.Equal(t, models.CategoryDessert, recipe.Category)
	}
}

func TestPinnedSearchInvalidInput(t *testing.T) {
	s := newTestRecipeStore(t)
	pinned := &pinnedSearch{category: models.CategoryDessert, tool: recipesearch.New(s)}

	_, err := pinned.RunOrchestration(context.Background(), "not a schema")
	assert.Error(t, err)
}

func TestNewCourseAgentUnknownCategory(t *testing.T) {
	s := newTestRecipeStore(t)
	_, err := NewCourseAgent(models.Category("soup"), recipesearch.New(s))
	assert.Error(t, err)
}

func TestBuildCoursePrompt(t *testing.T) {
	spec := courseSpecs[models.CategoryAppetizer]
	prefs := &models.UserPreferences{
		NumberOfGuests:     10,
		HasVegetarians:     true,
		VegetarianCount:    3,
		Allergies:          []models.Allergy{models.AllergyShellfish},
		CustomAllergies:    []string{"celery"},
		PreferTraditional:  true,
		MaxPrepTimeMinutes: 45,
	}

	prompt := buildCoursePrompt(&spec, prefs, "the host loves mushrooms")
	assert.Contains(t, prompt, "Number of guests: 10")
	assert.Contains(t, prompt, "Vegetarian guests: 3")
	assert.Contains(t, prompt, "Vegan guests: None")
	assert.Contains(t, prompt, "Allergies to avoid: shellfish, celery")
	assert.Contains(t, prompt, "Prefer traditional recipes: Yes")
	assert.Contains(t, prompt, "Maximum preparation time per recipe: 45 minutes")
	assert.Contains(t, prompt, "Additional context: the host loves mushrooms")
	assert.Contains(t, prompt, "recommend 3 options")
}

func TestBuildCoursePromptNilPreferences(t *testing.T) {
	spec := courseSpecs[models.CategoryDessert]
	prompt := buildCoursePrompt(&spec, nil, "")
	assert.Contains(t, prompt, "Number of guests: 6")
	assert.Contains(t, prompt, "recommend 2 options")
}

func TestCourseSuggestionsFormat(t *testing.T) {
	s := &CourseSuggestions{
		Category: models.CategoryDessert,
		Picks: []CoursePick{
			{RecipeID: "dessert-1", Name: "Tiramisu", Reason: "a crowd favorite"},
			{RecipeID: "dessert-2", Name: "Panettone"},
		},
		Summary: "Both can be prepared ahead.",
	}
	text := s.Format()
	assert.Contains(t, text, "1. Tiramisu (ID: dessert-1)")
	assert.Contains(t, text, "Why: a crowd favorite")
	assert.Contains(t, text, "2. Panettone (ID: dessert-2)")
	assert.Contains(t, text, "Both can be prepared ahead.")

	empty := &CourseSuggestions{Category: models.CategoryAppetizer}
	assert.Equal(t, "No suggestions available.", empty.Format())
}

func TestCourseAgentCategory(t *testing.T) {
	s := newTestRecipeStore(t)
	tool := recipesearch.New(s)
	for _, cat := range models.Categories() {
		agent, err := NewCourseAgent(cat, tool)
		require.NoError(t, err)
		assert.Equal(t, cat, agent.Category())
		assert.NotEmpty(t, agent.Name())
	}
}
