package models

import (
	"fmt"
	"strings"
)

// Allergy is a common food allergy guests may declare.
type Allergy string

const (
	AllergyNuts      Allergy = "nuts"
	AllergyPeanuts   Allergy = "peanuts"
	AllergySesame    Allergy = "sesame"
	AllergyDairy     Allergy = "dairy"
	AllergyEggs      Allergy = "eggs"
	AllergyFish      Allergy = "fish"
	AllergyShellfish Allergy = "shellfish"
	AllergyGluten    Allergy = "gluten"
	AllergyWheat     Allergy = "wheat"
	AllergySoy       Allergy = "soy"
)

// UserPreferences captures everything gathered about the dinner party before
// menu planning starts.
type UserPreferences struct {
	NumberOfGuests     int       `json:"number_of_guests" yaml:"number_of_guests" validate:"gte=0" jsonschema:"title=number_of_guests,description=Total number of guests attending."`
	HasVegetarians     bool      `json:"has_vegetarians" yaml:"has_vegetarians" jsonschema:"title=has_vegetarians,description=Whether any guest is vegetarian."`
	VegetarianCount    int       `json:"vegetarian_count" yaml:"vegetarian_count" validate:"gte=0" jsonschema:"title=vegetarian_count,description=Number of vegetarian guests."`
	HasVegans          bool      `json:"has_vegans" yaml:"has_vegans" jsonschema:"title=has_vegans,description=Whether any guest is vegan."`
	VeganCount         int       `json:"vegan_count" yaml:"vegan_count" validate:"gte=0" jsonschema:"title=vegan_count,description=Number of vegan guests."`
	Allergies          []Allergy `json:"allergies" yaml:"allergies" jsonschema:"title=allergies,description=Known allergies among the guests."`
	CustomAllergies    []string  `json:"custom_allergies" yaml:"custom_allergies" jsonschema:"title=custom_allergies,description=Allergies not covered by the common list."`
	PreferTraditional  bool      `json:"prefer_traditional" yaml:"prefer_traditional" jsonschema:"title=prefer_traditional,description=Whether to favor traditional Christmas dishes."`
	MaxDifficulty      string    `json:"max_difficulty" yaml:"max_difficulty" jsonschema:"title=max_difficulty,description=Maximum acceptable recipe difficulty.,enum=easy,enum=medium,enum=hard"`
	MaxPrepTimeMinutes int       `json:"max_prep_time_minutes,omitempty" yaml:"max_prep_time_minutes,omitempty" jsonschema:"title=max_prep_time_minutes,description=Maximum preparation time per recipe in minutes. Zero means no limit."`
	MaxCookTimeMinutes int       `json:"max_cook_time_minutes,omitempty" yaml:"max_cook_time_minutes,omitempty" jsonschema:"title=max_cook_time_minutes,description=Maximum cooking time per recipe in minutes. Zero means no limit."`
	AdditionalNotes    string    `json:"additional_notes,omitempty" yaml:"additional_notes,omitempty" jsonschema:"title=additional_notes,description=Anything else the host mentioned."`
}

// DefaultPreferences are used when preference gathering fails or the host has
// nothing to declare.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		NumberOfGuests:    6,
		PreferTraditional: true,
		MaxDifficulty:     string(DifficultyMedium),
	}
}

// DietarySummary renders the dietary requirements as one line of prose.
func (p *UserPreferences) DietarySummary() string {
	var requirements []string
	if p.HasVegans {
		count := "some"
		if p.VeganCount > 0 {
			count = fmt.Sprintf("%d", p.VeganCount)
		}
		requirements = append(requirements, fmt.Sprintf("%s vegan(s)", count))
	}
	if p.HasVegetarians {
		count := "some"
		if p.VegetarianCount > 0 {
			count = fmt.Sprintf("%d", p.VegetarianCount)
		}
		requirements = append(requirements, fmt.Sprintf("%s vegetarian(s)", count))
	}
	if len(p.Allergies) > 0 {
		parts := make([]string, 0, len(p.Allergies))
		for _, a := range p.Allergies {
			parts = append(parts, string(a))
		}
		requirements = append(requirements, "allergies: "+strings.Join(parts, ", "))
	}
	if len(p.CustomAllergies) > 0 {
		requirements = append(requirements, "other allergies: "+strings.Join(p.CustomAllergies, ", "))
	}
	if len(requirements) == 0 {
		return "No special requirements"
	}
	return strings.Join(requirements, ", ")
}

// Allergens returns every declared allergen, common and custom.
func (p *UserPreferences) Allergens() []string {
	allergens := make([]string, 0, len(p.Allergies)+len(p.CustomAllergies))
	for _, a := range p.Allergies {
		allergens = append(allergens, string(a))
	}
	allergens = append(allergens, p.CustomAllergies...)
	return allergens
}
