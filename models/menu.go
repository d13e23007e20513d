package models

import (
	"fmt"
	"strings"
)

// MenuSection groups the chosen recipes for one course.
type MenuSection struct {
	Category Category `json:"category" yaml:"category"`
	Recipes  []Recipe `json:"recipes" yaml:"recipes"`
	Notes    string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AddRecipe appends a recipe if it belongs to this section's course.
func (s *MenuSection) AddRecipe(recipe Recipe) {
	if recipe.Category == s.Category {
		s.Recipes = append(s.Recipes, recipe)
	}
}

func (s *MenuSection) TotalPrepTime() int {
	total := 0
	for _, r := range s.Recipes {
		total += r.PrepTimeMinutes
	}
	return total
}

func (s *MenuSection) TotalCookTime() int {
	total := 0
	for _, r := range s.Recipes {
		total += r.CookTimeMinutes
	}
	return total
}

// Menu is the complete Christmas dinner plan across all four courses.
type Menu struct {
	Title          string      `json:"title" yaml:"title"`
	Description    string      `json:"description,omitempty" yaml:"description,omitempty"`
	Appetizers     MenuSection `json:"appetizers" yaml:"appetizers"`
	MainDishes     MenuSection `json:"main_dishes" yaml:"main_dishes"`
	SecondPlates   MenuSection `json:"second_plates" yaml:"second_plates"`
	Desserts       MenuSection `json:"desserts" yaml:"desserts"`
	NumberOfGuests int         `json:"number_of_guests,omitempty" yaml:"number_of_guests,omitempty"`
	SummaryNotes   string      `json:"summary_notes,omitempty" yaml:"summary_notes,omitempty"`
}

// NewMenu returns an empty menu with its sections bound to the four courses.
func NewMenu(title string) *Menu {
	if title == "" {
		title = "Christmas Menu"
	}
	return &Menu{
		Title:        title,
		Appetizers:   MenuSection{Category: CategoryAppetizer},
		MainDishes:   MenuSection{Category: CategoryMainDish},
		SecondPlates: MenuSection{Category: CategorySecondPlate},
		Desserts:     MenuSection{Category: CategoryDessert},
	}
}

// Section returns the section for the given course.
func (m *Menu) Section(category Category) *MenuSection {
	switch category {
	case CategoryAppetizer:
		return &m.Appetizers
	case CategoryMainDish:
		return &m.MainDishes
	case CategorySecondPlate:
		return &m.SecondPlates
	case CategoryDessert:
		return &m.Desserts
	}
	return nil
}

// AddRecipe routes a recipe to the section matching its category.
func (m *Menu) AddRecipe(recipe Recipe) {
	if section := m.Section(recipe.Category); section != nil {
		section.AddRecipe(recipe)
	}
}

// AllRecipes returns every recipe across all courses in serving order.
func (m *Menu) AllRecipes() []Recipe {
	recipes := make([]Recipe, 0,
		len(m.Appetizers.Recipes)+len(m.MainDishes.Recipes)+len(m.SecondPlates.Recipes)+len(m.Desserts.Recipes))
	recipes = append(recipes, m.Appetizers.Recipes...)
	recipes = append(recipes, m.MainDishes.Recipes...)
	recipes = append(recipes, m.SecondPlates.Recipes...)
	recipes = append(recipes, m.Desserts.Recipes...)
	return recipes
}

func (m *Menu) TotalPrepTime() int {
	return m.Appetizers.TotalPrepTime() + m.MainDishes.TotalPrepTime() +
		m.SecondPlates.TotalPrepTime() + m.Desserts.TotalPrepTime()
}

func (m *Menu) TotalCookTime() int {
	return m.Appetizers.TotalCookTime() + m.MainDishes.TotalCookTime() +
		m.SecondPlates.TotalCookTime() + m.Desserts.TotalCookTime()
}

func (m *Menu) TotalTime() int {
	return m.TotalPrepTime() + m.TotalCookTime()
}

// Format renders the menu as printable text.
func (m *Menu) Format() string {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("🎄 %s 🎄", m.Title),
		fmt.Sprintf("For %d guests", m.NumberOfGuests),
		"",
	)
	if m.Description != "" {
		lines = append(lines, m.Description, "")
	}

	sections := []struct {
		title   string
		section *MenuSection
	}{
		{"🥗 APPETIZERS", &m.Appetizers},
		{"🍝 MAIN DISHES", &m.MainDishes},
		{"🥩 SECOND PLATES", &m.SecondPlates},
		{"🍰 DESSERTS", &m.Desserts},
	}
	for _, s := range sections {
		lines = append(lines, formatSection(s.title, s.section)...)
		lines = append(lines, "")
	}

	if m.SummaryNotes != "" {
		lines = append(lines, "📋 NOTES", strings.Repeat("-", 40), "  "+m.SummaryNotes, "")
	}

	lines = append(lines,
		fmt.Sprintf("⏱️  Total preparation time: ~%d minutes", m.TotalPrepTime()),
		fmt.Sprintf("⏱️  Total cooking time: ~%d minutes", m.TotalCookTime()),
	)
	return strings.Join(lines, "\n")
}

func formatSection(title string, section *MenuSection) []string {
	lines := []string{title, strings.Repeat("-", 40)}
	if len(section.Recipes) > 0 {
		for i, recipe := range section.Recipes {
			var dietaryStr string
			if len(recipe.DietaryTags) > 0 {
				parts := make([]string, 0, len(recipe.DietaryTags))
				for _, tag := range recipe.DietaryTags {
					parts = append(parts, string(tag))
				}
				dietaryStr = " [" + strings.Join(parts, ", ") + "]"
			}
			desc := recipe.Description
			if runes := []rune(desc); len(runes) > 80 {
				desc = string(runes[:80]) + "..."
			}
			lines = append(lines,
				fmt.Sprintf("  %d. %s%s", i+1, recipe.Name, dietaryStr),
				"     "+desc,
			)
		}
	} else {
		lines = append(lines, "  No recipes selected yet")
	}
	if section.Notes != "" {
		lines = append(lines, "  📝 Note: "+section.Notes)
	}
	return lines
}
