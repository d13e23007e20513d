package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cenone/agents"
	"cenone/llm"
	"cenone/models"
	"cenone/schema"
	"cenone/systemprompt/simple"
	"cenone/tools/recipesearch"
)

const appetizerPrompt = `You are an expert Christmas appetizer specialist. Your role is to:

1. Search for appetizer recipes that match the user's preferences
2. Consider dietary restrictions (vegan, vegetarian, allergies)
3. Recommend 2-3 appetizers that complement each other
4. Prefer traditional Christmas appetizers when requested
5. Consider preparation time and difficulty

When searching:
- Use the recipe search with appropriate dietary filters
- If vegan guests are present, ensure at least one vegan option
- If vegetarian guests are present, ensure at least one vegetarian option
- Balance light and rich appetizers

Output your recommendations with the recipe IDs and brief explanations for why each was chosen.`

const mainDishPrompt = `You are an expert Christmas main dish (primo piatto) specialist. Your role is to:

1. Search for main dish recipes - typically pasta, risotto, or soup
2. Consider dietary restrictions (vegan, vegetarian, allergies)
3. Recommend 1-2 main dishes appropriate for a Christmas feast
4. Prefer traditional Christmas main dishes when requested
5. Consider the flow of the meal - this comes before the second plate

When searching:
- Use the recipe search with appropriate dietary filters
- If vegan guests are present, ensure at least one vegan option
- Traditional Italian Christmas main dishes include: tortellini in brodo, lasagna, pasta al forno
- Consider richness - the main dish should not overpower the second plate

Output your recommendations with the recipe IDs and brief explanations for why each was chosen.`

const secondPlatePrompt = `You are an expert Christmas second plate (secondo piatto) specialist. Your role is to:

1. Search for second plate recipes - typically meat or fish dishes
2. Consider dietary restrictions (vegan, vegetarian, allergies)
3. Recommend 1-2 second plates appropriate for a Christmas feast
4. Prefer traditional Christmas second plates when requested
5. This is often the centerpiece of the meal

When searching:
- Use the recipe search with appropriate dietary filters
- For vegan/vegetarian guests, suggest plant-based main courses
- Traditional options include: roasted turkey, beef tenderloin, baked fish
- Consider cooking time - some dishes need hours of preparation

Output your recommendations with the recipe IDs and brief explanations for why each was chosen.`

const dessertPrompt = `You are an expert Christmas dessert specialist. Your role is to:

1. Search for dessert recipes that complete the Christmas feast
2. Consider dietary restrictions (vegan, vegetarian, allergies)
3. Recommend 1-2 desserts appropriate for Christmas
4. Prefer traditional Christmas desserts when requested
5. Balance richness with the rest of the meal

When searching:
- Use the recipe search with appropriate dietary filters
- Traditional Italian Christmas desserts: panettone, pandoro, tiramisù
- If guests have dietary restrictions, ensure alternatives exist
- Consider make-ahead desserts for easier meal preparation

Output your recommendations with the recipe IDs and brief explanations for why each was chosen.`

type courseSpec struct {
	name        string
	prompt      string
	courseName  string
	recommended int
}

var courseSpecs = map[models.Category]courseSpec{
	models.CategoryAppetizer:   {"appetizer_agent", appetizerPrompt, "appetizer", 3},
	models.CategoryMainDish:    {"main_dish_agent", mainDishPrompt, "main dish", 2},
	models.CategorySecondPlate: {"second_plate_agent", secondPlatePrompt, "second plate", 2},
	models.CategoryDessert:     {"dessert_agent", dessertPrompt, "dessert", 2},
}

// CoursePick is one recommended recipe with the reason it was chosen.
type CoursePick struct {
	// RecipeID identifies the recipe in the store
	RecipeID string `json:"recipe_id" jsonschema:"title=recipe_id,description=ID of the recommended recipe." validate:"required"`
	// Name of the recipe
	Name string `json:"name" jsonschema:"title=name,description=Name of the recommended recipe."`
	// Reason why this recipe was chosen
	Reason string `json:"reason,omitempty" jsonschema:"title=reason,description=Brief explanation of why this recipe was chosen."`
}

// CourseSuggestions is one course agent's recommendations.
type CourseSuggestions struct {
	schema.Base
	// Category is the course these suggestions cover
	Category models.Category `json:"category,omitempty" jsonschema:"title=category,description=Course these suggestions cover.,enum=appetizer,enum=main_dish,enum=second_plate,enum=dessert"`
	// Picks are the recommended recipes in order of preference
	Picks []CoursePick `json:"picks" jsonschema:"title=picks,description=Recommended recipes in order of preference."`
	// Summary explains how the picks work together
	Summary string `json:"summary,omitempty" jsonschema:"title=summary,description=How the recommended recipes work together."`
}

func (s CourseSuggestions) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Format renders the suggestions as the text block the menu creator reads.
func (s *CourseSuggestions) Format() string {
	if len(s.Picks) == 0 {
		return "No suggestions available."
	}
	sb := new(strings.Builder)
	for i, pick := range s.Picks {
		fmt.Fprintf(sb, "%d. %s (ID: %s)", i+1, pick.Name, pick.RecipeID)
		if pick.Reason != "" {
			fmt.Fprintf(sb, "\n   Why: %s", pick.Reason)
		}
		sb.WriteString("\n")
	}
	if s.Summary != "" {
		fmt.Fprintf(sb, "\n%s", s.Summary)
	}
	return sb.String()
}

// pinnedSearch forces every search issued by a course agent onto its own
// course, whatever category the model asked for.
type pinnedSearch struct {
	category models.Category
	tool     *recipesearch.Tool
}

func (p *pinnedSearch) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*recipesearch.Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	in.Category = p.category
	return p.tool.RunOrchestration(ctx, in)
}

// CourseAgent recommends recipes for a single course. The model first fills
// the search parameters, the pinned recipe search runs, and a second pass
// turns the results into ranked picks.
type CourseAgent struct {
	category models.Category
	spec     courseSpec
	agent    *agents.ToolAgent[schema.Input, recipesearch.Input, CourseSuggestions]
}

// NewCourseAgent builds the agent for one course around the shared recipe
// search tool.
func NewCourseAgent(category models.Category, tool *recipesearch.Tool, opts ...agents.Option) (*CourseAgent, error) {
	spec, ok := courseSpecs[category]
	if !ok {
		return nil, fmt.Errorf("unknown course category: %s", category)
	}
	opts = append(opts,
		agents.WithName(spec.name),
		agents.WithSystemPromptGenerator(simple.New(spec.prompt)),
	)
	agent := agents.NewToolAgent[schema.Input, recipesearch.Input, CourseSuggestions](opts...)
	agent.SetTool(&pinnedSearch{category: category, tool: tool})
	return &CourseAgent{
		category: category,
		spec:     spec,
		agent:    agent,
	}, nil
}

func (a *CourseAgent) Category() models.Category {
	return a.category
}

func (a *CourseAgent) Name() string {
	return a.spec.name
}

// Search runs a fresh recommendation round for the given preferences. The
// extra string carries any additional context such as web research findings.
func (a *CourseAgent) Search(ctx context.Context, prefs *models.UserPreferences, extra string, llmResp *llm.Response) (*CourseSuggestions, error) {
	a.agent.ResetMemory()
	prompt := buildCoursePrompt(&a.spec, prefs, extra)
	out := new(CourseSuggestions)
	if err := a.agent.Run(ctx, schema.NewInput(prompt), out, llmResp); err != nil {
		return nil, err
	}
	out.Category = a.category
	return out, nil
}

func buildCoursePrompt(spec *courseSpec, prefs *models.UserPreferences, extra string) string {
	if prefs == nil {
		prefs = models.DefaultPreferences()
	}
	veganCount := "None"
	if prefs.HasVegans {
		veganCount = fmt.Sprintf("%d", prefs.VeganCount)
	}
	vegetarianCount := "None"
	if prefs.HasVegetarians {
		vegetarianCount = fmt.Sprintf("%d", prefs.VegetarianCount)
	}
	allergens := "None"
	if list := prefs.Allergens(); len(list) > 0 {
		allergens = strings.Join(list, ", ")
	}
	traditional := "No"
	if prefs.PreferTraditional {
		traditional = "Yes"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Number of guests: %d\n", prefs.NumberOfGuests)
	fmt.Fprintf(sb, "Vegan guests: %s\n", veganCount)
	fmt.Fprintf(sb, "Vegetarian guests: %s\n", vegetarianCount)
	fmt.Fprintf(sb, "Allergies to avoid: %s\n", allergens)
	fmt.Fprintf(sb, "Prefer traditional recipes: %s\n", traditional)
	if prefs.MaxPrepTimeMinutes > 0 {
		fmt.Fprintf(sb, "Maximum preparation time per recipe: %d minutes\n", prefs.MaxPrepTimeMinutes)
	}
	if extra != "" {
		fmt.Fprintf(sb, "\nAdditional context: %s\n", extra)
	}
	fmt.Fprintf(sb, "\nPlease search for %s recipes and recommend %d options.\n", spec.courseName, spec.recommended)
	sb.WriteString("Ensure vegan/vegetarian options are included if needed.")
	return sb.String()
}
