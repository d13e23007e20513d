package models

import (
	"fmt"
	"strings"
)

// Category is the course a recipe belongs to.
type Category string

const (
	CategoryAppetizer   Category = "appetizer"
	CategoryMainDish    Category = "main_dish"
	CategorySecondPlate Category = "second_plate"
	CategoryDessert     Category = "dessert"
)

// Categories lists every course in serving order.
func Categories() []Category {
	return []Category{CategoryAppetizer, CategoryMainDish, CategorySecondPlate, CategoryDessert}
}

// DietaryTag marks a diet a recipe is compatible with.
type DietaryTag string

const (
	TagVegan       DietaryTag = "vegan"
	TagVegetarian  DietaryTag = "vegetarian"
	TagGlutenFree  DietaryTag = "gluten_free"
	TagDairyFree   DietaryTag = "dairy_free"
	TagNutFree     DietaryTag = "nut_free"
	TagLowCarb     DietaryTag = "low_carb"
	TagTraditional DietaryTag = "traditional"
)

// Difficulty grades how demanding a recipe is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recipe is a single dish with everything needed to cook and filter it.
type Recipe struct {
	ID          string   `json:"id" yaml:"id" validate:"required" jsonschema:"title=id,description=Unique recipe identifier."`
	Name        string   `json:"name" yaml:"name" validate:"required" jsonschema:"title=name,description=Recipe name."`
	Description string   `json:"description" yaml:"description" jsonschema:"title=description,description=Short description of the dish."`
	Category    Category `json:"category" yaml:"category" validate:"required,oneof=appetizer main_dish second_plate dessert" jsonschema:"title=category,description=Course the recipe belongs to.,enum=appetizer,enum=main_dish,enum=second_plate,enum=dessert"`

	Ingredients  []string `json:"ingredients" yaml:"ingredients" jsonschema:"title=ingredients,description=Ingredient list."`
	Instructions []string `json:"instructions" yaml:"instructions" jsonschema:"title=instructions,description=Step by step instructions."`

	Servings        int `json:"servings" yaml:"servings" validate:"gt=0" jsonschema:"title=servings,description=Number of servings the recipe yields."`
	PrepTimeMinutes int `json:"prep_time_minutes,omitempty" yaml:"prep_time_minutes,omitempty" jsonschema:"title=prep_time_minutes,description=Preparation time in minutes."`
	CookTimeMinutes int `json:"cook_time_minutes,omitempty" yaml:"cook_time_minutes,omitempty" jsonschema:"title=cook_time_minutes,description=Cooking time in minutes."`

	DietaryTags []DietaryTag `json:"dietary_tags" yaml:"dietary_tags" jsonschema:"title=dietary_tags,description=Diets the recipe is compatible with."`
	Allergens   []string     `json:"allergens" yaml:"allergens" jsonschema:"title=allergens,description=Allergens present in the recipe."`

	Difficulty             Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard" jsonschema:"title=difficulty,description=Preparation difficulty.,enum=easy,enum=medium,enum=hard"`
	IsChristmasTraditional bool       `json:"is_christmas_traditional,omitempty" yaml:"is_christmas_traditional,omitempty" jsonschema:"title=is_christmas_traditional,description=Whether the dish is a Christmas classic."`
}

// SuitableFor reports whether the recipe carries every required dietary tag.
func (r *Recipe) SuitableFor(requirements ...DietaryTag) bool {
	tags := make(map[DietaryTag]struct{}, len(r.DietaryTags))
	for _, tag := range r.DietaryTags {
		tags[tag] = struct{}{}
	}
	for _, req := range requirements {
		if _, ok := tags[req]; !ok {
			return false
		}
	}
	return true
}

// ContainsAllergens reports whether any of the given allergens appear in the
// recipe. Comparison is case-insensitive.
func (r *Recipe) ContainsAllergens(allergens ...string) bool {
	present := make(map[string]struct{}, len(r.Allergens))
	for _, a := range r.Allergens {
		present[strings.ToLower(a)] = struct{}{}
	}
	for _, a := range allergens {
		if _, ok := present[strings.ToLower(a)]; ok {
			return true
		}
	}
	return false
}

// TotalTimeMinutes returns prep plus cook time.
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// HasTag reports whether the recipe carries the given dietary tag.
func (r *Recipe) HasTag(tag DietaryTag) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText renders the recipe as the text that gets embedded for
// similarity search.
func (r *Recipe) SearchText() string {
	dietary := "no special diet"
	if len(r.DietaryTags) > 0 {
		parts := make([]string, 0, len(r.DietaryTags))
		for _, tag := range r.DietaryTags {
			parts = append(parts, string(tag))
		}
		dietary = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s. %s. Category: %s. Diet: %s. Ingredients: %s",
		r.Name, r.Description, r.Category, dietary, strings.Join(r.Ingredients, ", "))
}
