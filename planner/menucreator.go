package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cenone/agents"
	"cenone/llm"
	"cenone/models"
	"cenone/schema"
	"cenone/store"
	"cenone/systemprompt/simple"
	"cenone/tools/portions"
)

const menuCreatorPrompt = `You are an expert Christmas menu curator and food coordinator. Your role is to:

1. REVIEW recipe suggestions from the specialized agents (appetizers, main dishes, second plates, desserts)
2. SELECT the best combination that creates a balanced and harmonious menu
3. ENSURE dietary requirements are met for all guests
4. SUGGEST wine pairings that complement the dishes
5. PROVIDE a preparation timeline for the cook

Menu Creation Guidelines:
- Balance flavors: don't repeat similar tastes across courses
- Balance richness: alternate lighter and richer dishes
- Consider preparation complexity: spread difficult dishes across the day
- Respect tradition while accommodating modern dietary needs
- Ensure vegan/vegetarian guests have satisfying options for EVERY course
- Check portions with the calculator first: evaluate how a candidate recipe's
  yield scales to the guest count (for example 'guests / base_servings') and
  prefer combinations that scale cleanly

Output:
Select recipes by their IDs from the suggestions, pick a fitting menu title,
and include wine pairings, a preparation timeline and shopping tips.`

// MenuSelection is one recipe the curator put on the menu.
type MenuSelection struct {
	// RecipeID identifies the selected recipe
	RecipeID string `json:"recipe_id" jsonschema:"title=recipe_id,description=ID of the selected recipe." validate:"required"`
	// Note on why or how to serve it
	Note string `json:"note,omitempty" jsonschema:"title=note,description=Serving or selection note for this recipe."`
}

// MenuDraft is the curator's structured menu before recipe resolution.
type MenuDraft struct {
	schema.Base
	// Title for the menu
	Title string `json:"title" jsonschema:"title=title,description=Title for the menu. For example 'Christmas Dinner 2026'."`
	// Description is a short introduction to the menu
	Description string `json:"description,omitempty" jsonschema:"title=description,description=Short introduction to the menu."`
	// Appetizers selected for the menu
	Appetizers []MenuSelection `json:"appetizers" jsonschema:"title=appetizers,description=Selected appetizers."`
	// MainDishes selected for the menu
	MainDishes []MenuSelection `json:"main_dishes" jsonschema:"title=main_dishes,description=Selected main dishes."`
	// SecondPlates selected for the menu
	SecondPlates []MenuSelection `json:"second_plates" jsonschema:"title=second_plates,description=Selected second plates."`
	// Desserts selected for the menu
	Desserts []MenuSelection `json:"desserts" jsonschema:"title=desserts,description=Selected desserts."`
	// WinePairings suggested for the menu
	WinePairings string `json:"wine_pairings,omitempty" jsonschema:"title=wine_pairings,description=Wine pairing suggestions."`
	// PreparationTimeline for the cook
	PreparationTimeline string `json:"preparation_timeline,omitempty" jsonschema:"title=preparation_timeline,description=Preparation timeline for the cook."`
	// ShoppingTips for the host
	ShoppingTips string `json:"shopping_tips,omitempty" jsonschema:"title=shopping_tips,description=Shopping and preparation tips."`
}

func (d MenuDraft) String() string {
	bs, _ := json.Marshal(d)
	return string(bs)
}

// MenuCreator compiles the course agents' suggestions into the final menu,
// resolving the curator's recipe picks against the store. The agent's middle
// step is the portion calculator, so the curator checks how its candidate
// recipes scale to the guest count before committing to the draft.
type MenuCreator struct {
	agent  *agents.ToolAgent[schema.Input, portions.Input, MenuDraft]
	store  *store.RecipeStore
	logger *zap.Logger
}

type MenuCreatorOption func(*MenuCreator)

func MenuCreatorWithLogger(l *zap.Logger) MenuCreatorOption {
	return func(c *MenuCreator) {
		c.logger = l
	}
}

func MenuCreatorWithAgentOptions(opts ...agents.Option) MenuCreatorOption {
	return func(c *MenuCreator) {
		opts = append(opts,
			agents.WithName("menu_creator"),
			agents.WithSystemPromptGenerator(simple.New(menuCreatorPrompt)),
		)
		c.agent = agents.NewToolAgent[schema.Input, portions.Input, MenuDraft](opts...)
		c.agent.SetTool(portions.New())
	}
}

func NewMenuCreator(s *store.RecipeStore, opts ...MenuCreatorOption) *MenuCreator {
	ret := &MenuCreator{
		store:  s,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.agent == nil {
		MenuCreatorWithAgentOptions()(ret)
	}
	return ret
}

func (c *MenuCreator) Name() string {
	return c.agent.Name()
}

// Compose runs the curator over the course suggestions and returns the
// resolved menu.
func (c *MenuCreator) Compose(ctx context.Context, prefs *models.UserPreferences, suggestions map[models.Category]*CourseSuggestions, llmResp *llm.Response) (*models.Menu, error) {
	if prefs == nil {
		prefs = models.DefaultPreferences()
	}
	c.agent.ResetMemory()
	prompt := buildMenuPrompt(prefs, suggestions)
	draft := new(MenuDraft)
	if err := c.agent.Run(ctx, schema.NewInput(prompt), draft, llmResp); err != nil {
		return nil, err
	}
	return c.resolveDraft(ctx, draft, prefs)
}

// resolveDraft looks up every selected recipe and assembles the menu,
// skipping IDs that no longer exist in the store.
func (c *MenuCreator) resolveDraft(ctx context.Context, draft *MenuDraft, prefs *models.UserPreferences) (*models.Menu, error) {
	menu := models.NewMenu(draft.Title)
	menu.Description = draft.Description
	menu.NumberOfGuests = prefs.NumberOfGuests

	courses := []struct {
		category   models.Category
		selections []MenuSelection
	}{
		{models.CategoryAppetizer, draft.Appetizers},
		{models.CategoryMainDish, draft.MainDishes},
		{models.CategorySecondPlate, draft.SecondPlates},
		{models.CategoryDessert, draft.Desserts},
	}
	for _, course := range courses {
		for _, sel := range course.selections {
			recipe, err := c.store.GetByID(ctx, sel.RecipeID)
			if err != nil {
				return nil, err
			}
			if recipe == nil {
				c.logger.Warn("curator selected unknown recipe",
					zap.String("id", sel.RecipeID),
					zap.String("category", string(course.category)))
				continue
			}
			if recipe.Category != course.category {
				c.logger.Warn("curator placed recipe in wrong course",
					zap.String("id", sel.RecipeID),
					zap.String("category", string(recipe.Category)))
			}
			menu.AddRecipe(*recipe)
		}
	}

	menu.SummaryNotes = buildSummaryNotes(draft, menu, prefs)
	return menu, nil
}

// buildSummaryNotes joins the curator's notes with per-recipe scaling hints.
func buildSummaryNotes(draft *MenuDraft, menu *models.Menu, prefs *models.UserPreferences) string {
	var parts []string
	if draft.WinePairings != "" {
		parts = append(parts, "Wine pairings: "+draft.WinePairings)
	}
	if draft.PreparationTimeline != "" {
		parts = append(parts, "Preparation timeline: "+draft.PreparationTimeline)
	}
	if draft.ShoppingTips != "" {
		parts = append(parts, "Shopping tips: "+draft.ShoppingTips)
	}
	if prefs.NumberOfGuests > 0 {
		var scaling []string
		for _, recipe := range menu.AllRecipes() {
			batches := portions.Scale(recipe.Servings, prefs.NumberOfGuests)
			if batches > 1 {
				scaling = append(scaling, fmt.Sprintf("%s: prepare %.1fx the quantities (serves %d as written)",
					recipe.Name, batches, recipe.Servings))
			}
		}
		if len(scaling) > 0 {
			parts = append(parts, "Scaling for "+fmt.Sprintf("%d", prefs.NumberOfGuests)+" guests: "+strings.Join(scaling, "; "))
		}
	}
	return strings.Join(parts, "\n")
}

func buildMenuPrompt(prefs *models.UserPreferences, suggestions map[models.Category]*CourseSuggestions) string {
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
	courseText := func(category models.Category) string {
		if s, ok := suggestions[category]; ok && s != nil {
			return s.Format()
		}
		return "No suggestions available."
	}
	return fmt.Sprintf(`Create a complete Christmas dinner menu:

GUEST INFORMATION:
- Number of guests: %d
- Vegan guests: %s
- Vegetarian guests: %s
- Allergies to avoid: %s
- Prefer traditional: %s

APPETIZER SUGGESTIONS:
%s

MAIN DISH SUGGESTIONS:
%s

SECOND PLATE SUGGESTIONS:
%s

DESSERT SUGGESTIONS:
%s

Instructions:
1. Select the best recipes from each category by their IDs
2. Ensure dietary requirements are met for every course
3. Suggest wine pairings
4. Create a preparation timeline
5. Add shopping tips`,
		prefs.NumberOfGuests,
		veganCount,
		vegetarianCount,
		allergens,
		traditional,
		courseText(models.CategoryAppetizer),
		courseText(models.CategoryMainDish),
		courseText(models.CategorySecondPlate),
		courseText(models.CategoryDessert),
	)
}
