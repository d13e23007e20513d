package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecipe() Recipe {
	return Recipe{
		ID:              "stuffed-mushrooms",
		Name:            "Stuffed Mushrooms",
		Description:     "Mushroom caps filled with herbs and breadcrumbs",
		Category:        CategoryAppetizer,
		Ingredients:     []string{"mushrooms", "breadcrumbs", "garlic", "parsley"},
		Servings:        6,
		PrepTimeMinutes: 20,
		CookTimeMinutes: 25,
		DietaryTags:     []DietaryTag{TagVegetarian, TagNutFree},
		Allergens:       []string{"gluten"},
		Difficulty:      DifficultyEasy,
	}
}

func TestRecipeSuitableFor(t *testing.T) {
	r := sampleRecipe()
	assert.True(t, r.SuitableFor(TagVegetarian))
	assert.True(t, r.SuitableFor(TagVegetarian, TagNutFree))
	assert.False(t, r.SuitableFor(TagVegan))
	assert.True(t, r.SuitableFor())
}

func TestRecipeContainsAllergens(t *testing.T) {
	r := sampleRecipe()
	assert.True(t, r.ContainsAllergens("gluten"))
	assert.True(t, r.ContainsAllergens("GLUTEN"))
	assert.False(t, r.ContainsAllergens("nuts", "dairy"))
	assert.False(t, r.ContainsAllergens())
}

func TestRecipeTotalTime(t *testing.T) {
	r := sampleRecipe()
	assert.Equal(t, 45, r.TotalTimeMinutes())
}

func TestRecipeSearchText(t *testing.T) {
	r := sampleRecipe()
	text := r.SearchText()
	assert.Contains(t, text, "Stuffed Mushrooms")
	assert.Contains(t, text, "Category: appetizer")
	assert.Contains(t, text, "vegetarian, nut_free")
	assert.Contains(t, text, "mushrooms, breadcrumbs")

	plain := Recipe{Name: "Plain Rice", Category: CategorySecondPlate}
	assert.Contains(t, plain.SearchText(), "no special diet")
}

func TestDietarySummary(t *testing.T) {
	p := UserPreferences{NumberOfGuests: 8}
	assert.Equal(t, "No special requirements", p.DietarySummary())

	p.HasVegans = true
	p.VeganCount = 2
	p.HasVegetarians = true
	p.Allergies = []Allergy{AllergyNuts}
	p.CustomAllergies = []string{"celery"}
	summary := p.DietarySummary()
	assert.Contains(t, summary, "2 vegan(s)")
	assert.Contains(t, summary, "some vegetarian(s)")
	assert.Contains(t, summary, "allergies: nuts")
	assert.Contains(t, summary, "other allergies: celery")
}

func TestAllergens(t *testing.T) {
	p := UserPreferences{
		Allergies:       []Allergy{AllergyNuts, AllergyDairy},
		CustomAllergies: []string{"celery"},
	}
	assert.Equal(t, []string{"nuts", "dairy", "celery"}, p.Allergens())
}
