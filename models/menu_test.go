package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuAddRecipeRoutesByCategory(t *testing.T) {
	m := NewMenu("")
	assert.Equal(t, "Christmas Menu", m.Title)

	m.AddRecipe(Recipe{ID: "a", Name: "Bruschetta", Category: CategoryAppetizer, PrepTimeMinutes: 10})
	m.AddRecipe(Recipe{ID: "b", Name: "Lasagna", Category: CategoryMainDish, PrepTimeMinutes: 40, CookTimeMinutes: 50})
	m.AddRecipe(Recipe{ID: "c", Name: "Tiramisu", Category: CategoryDessert, PrepTimeMinutes: 30})

	assert.Len(t, m.Appetizers.Recipes, 1)
	assert.Len(t, m.MainDishes.Recipes, 1)
	assert.Empty(t, m.SecondPlates.Recipes)
	assert.Len(t, m.Desserts.Recipes, 1)
	assert.Len(t, m.AllRecipes(), 3)
}

func TestMenuSectionRejectsWrongCategory(t *testing.T) {
	s := MenuSection{Category: CategoryDessert}
	s.AddRecipe(Recipe{Name: "Roast Goose", Category: CategoryMainDish})
	assert.Empty(t, s.Recipes)
}

func TestMenuTotals(t *testing.T) {
	m := NewMenu("Test")
	m.AddRecipe(Recipe{Name: "Bruschetta", Category: CategoryAppetizer, PrepTimeMinutes: 10, CookTimeMinutes: 5})
	m.AddRecipe(Recipe{Name: "Lasagna", Category: CategoryMainDish, PrepTimeMinutes: 40, CookTimeMinutes: 50})

	assert.Equal(t, 50, m.TotalPrepTime())
	assert.Equal(t, 55, m.TotalCookTime())
	assert.Equal(t, 105, m.TotalTime())
}

func TestMenuFormat(t *testing.T) {
	m := NewMenu("Christmas Eve Dinner")
	m.NumberOfGuests = 8
	m.Description = "A traditional Italian feast"
	m.SummaryNotes = "All dishes can be prepared a day ahead"
	m.AddRecipe(Recipe{
		Name:        "Bruschetta al Pomodoro",
		Description: "Grilled bread with tomatoes",
		Category:    CategoryAppetizer,
		DietaryTags: []DietaryTag{TagVegan},
	})

	out := m.Format()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "🎄 Christmas Eve Dinner 🎄")
	assert.Contains(t, out, "For 8 guests")
	assert.Contains(t, out, "🥗 APPETIZERS")
	assert.Contains(t, out, "1. Bruschetta al Pomodoro [vegan]")
	assert.Contains(t, out, "No recipes selected yet")
	assert.Contains(t, out, "📋 NOTES")
	assert.Contains(t, out, "Total preparation time")
}

func TestMenuFormatTruncatesLongDescriptionOnRunes(t *testing.T) {
	m := NewMenu("Feast")
	m.AddRecipe(Recipe{
		Name:        "Crème Brûlée di Natale",
		Description: strings.Repeat("è", 100),
		Category:    CategoryDessert,
	})

	out := m.Format()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("è", 80)+"...")
	assert.NotContains(t, out, "�")
}
