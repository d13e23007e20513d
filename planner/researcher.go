package planner

import (
	"context"
	"fmt"

	"cenone/agents"
	"cenone/llm"
	"cenone/schema"
	"cenone/systemprompt/simple"
	"cenone/tools/websearch"
	"cenone/tools/webscraper"
)

const researcherPrompt = `You are a recipe research expert. Your role is to:

1. Search the web for Christmas recipes when needed
2. Find recipes that match specific dietary requirements
3. Discover trending and popular Christmas dishes
4. Find alternatives for common allergens

When searching:
- Be specific in your search queries
- Look for recipes from reputable cooking sites
- Consider regional Christmas traditions
- Always verify dietary claims (vegan, gluten-free, etc.)

Output clear recipe suggestions with names, brief descriptions, and source URLs.`

// Researcher discovers recipes on the web that the local store is missing.
// The model plans the search queries, the search runs, and a second pass
// turns the hits into recipe suggestions.
type Researcher struct {
	agent   *agents.ToolAgent[schema.Input, websearch.Input, schema.Output]
	scraper *webscraper.Tool
}

type ResearcherOption func(*Researcher)

func ResearcherWithScraper(t *webscraper.Tool) ResearcherOption {
	return func(r *Researcher) {
		r.scraper = t
	}
}

func ResearcherWithAgentOptions(opts ...agents.Option) ResearcherOption {
	return func(r *Researcher) {
		opts = append(opts,
			agents.WithName("recipe_researcher"),
			agents.WithSystemPromptGenerator(simple.New(researcherPrompt)),
		)
		r.agent = agents.NewToolAgent[schema.Input, websearch.Input, schema.Output](opts...)
	}
}

func NewResearcher(searchTool *websearch.Tool, opts ...ResearcherOption) *Researcher {
	ret := new(Researcher)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.agent == nil {
		ResearcherWithAgentOptions()(ret)
	}
	ret.agent.SetTool(searchTool)
	if ret.scraper == nil {
		ret.scraper = webscraper.New()
	}
	return ret
}

func (r *Researcher) Name() string {
	return r.agent.Name()
}

// Research searches the web for recipes matching the query and returns the
// model's suggestions.
func (r *Researcher) Research(ctx context.Context, query, dietaryRequirements string, llmResp *llm.Response) (string, error) {
	r.agent.ResetMemory()
	prompt := fmt.Sprintf("Search for Christmas recipes matching: %s\n", query)
	if dietaryRequirements != "" {
		prompt += fmt.Sprintf("Dietary requirements: %s\n", dietaryRequirements)
	}
	prompt += `
Find 2-3 suitable recipes and provide:
- Recipe name
- Brief description
- Key ingredients
- Why it's a good choice`
	out := new(schema.Output)
	if err := r.agent.Run(ctx, schema.NewInput(prompt), out, llmResp); err != nil {
		return "", err
	}
	return out.ChatMessage, nil
}

// FetchPage pulls a recipe page's content as markdown for closer inspection.
func (r *Researcher) FetchPage(ctx context.Context, pageURL string) (*webscraper.Output, error) {
	out := new(webscraper.Output)
	if err := r.scraper.Run(ctx, webscraper.NewInput(pageURL), out); err != nil {
		return nil, err
	}
	return out, nil
}
