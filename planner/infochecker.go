package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cenone/agents"
	"cenone/llm"
	"cenone/models"
	"cenone/schema"
	"cenone/systemprompt/simple"
)

const infoCheckerPrompt = `You are an expert Christmas menu planning assistant. Your role is to gather all the information needed to plan the perfect Christmas menu.

## INFORMATION TO COLLECT

**REQUIRED (must have before proceeding):**
- Number of guests (essential for portion planning)

**IMPORTANT (should ask if not mentioned):**
- Dietary restrictions: Are there vegetarian guests? How many? Are there vegan guests? How many?
- Food allergies: Does anyone have allergies? (nuts, dairy, gluten, shellfish, etc.)

**OPTIONAL (nice to have):**
- Preference for traditional vs modern recipes
- Time/difficulty constraints (easy, medium, hard recipes)
- Any additional notes or special requests

## YOUR BEHAVIOR

1. EXTRACT any information the user has already provided
2. IDENTIFY what information is still missing
3. ASK friendly follow-up questions for the missing information
4. DO NOT assume information, always ask if unclear

## IMPORTANT GUIDELINES

- The NUMBER OF GUESTS is absolutely required, always ask if not provided
- Even if the user doesn't mention dietary restrictions or allergies, you MUST ask to confirm there are none
- Be conversational and friendly, not like a form
- Remember context from previous messages
- Ask 2-3 questions at a time maximum, don't overwhelm the user

## OUTPUT

Fill the structured extraction result:
- is_complete=true ONLY if you have the number of guests AND confirmed dietary restrictions/allergies
- preferences: the structured preferences with defaults for unknown optional fields
- missing_info: the fields still missing when incomplete
- questions: friendly follow-up questions for the user when information is missing
- summary: what you know so far`

// PreferenceExtraction is the structured result of a preference gathering
// turn. When extraction is incomplete the agent fills questions for the host
// instead of preferences.
type PreferenceExtraction struct {
	schema.Base
	// IsComplete reports whether all required information has been gathered
	IsComplete bool `json:"is_complete" jsonschema:"title=is_complete,description=Whether all required information has been gathered."`
	// Preferences holds the extracted preferences, with defaults for unknowns
	Preferences *models.UserPreferences `json:"preferences,omitempty" jsonschema:"title=preferences,description=The extracted user preferences."`
	// MissingInfo lists the fields that are still missing
	MissingInfo []string `json:"missing_info,omitempty" jsonschema:"title=missing_info,description=Names of required fields that are still missing."`
	// Questions to ask the user for missing information
	Questions []string `json:"questions,omitempty" jsonschema:"title=questions,description=Follow-up questions for the user when information is missing."`
	// Summary of what is known so far
	Summary string `json:"summary,omitempty" jsonschema:"title=summary,description=Human readable summary of the preferences gathered so far."`
}

func (e PreferenceExtraction) String() string {
	bs, _ := json.Marshal(e)
	return string(bs)
}

// InfoChecker extracts and validates the host's preferences across a
// conversation. Memory keeps earlier answers so follow-ups only need to fill
// the gaps.
type InfoChecker struct {
	agent *agents.Agent[schema.Input, PreferenceExtraction]
}

// NewInfoChecker returns an InfoChecker. Pass agent options for the client
// and model; the system prompt and conversation memory live on the agent.
func NewInfoChecker(opts ...agents.Option) *InfoChecker {
	opts = append(opts,
		agents.WithName("info_checker"),
		agents.WithSystemPromptGenerator(simple.New(infoCheckerPrompt)),
	)
	return &InfoChecker{
		agent: agents.NewAgent[schema.Input, PreferenceExtraction](opts...),
	}
}

func (c *InfoChecker) Name() string {
	return c.agent.Name()
}

// Extract analyzes the user's message and returns the structured extraction.
// Context from previous turns in this conversation is taken into account.
func (c *InfoChecker) Extract(ctx context.Context, userMessage string, llmResp *llm.Response) (*PreferenceExtraction, error) {
	prompt := fmt.Sprintf(`Analyze the following user message and extract preferences for their Christmas menu.

User message: "%s"

Steps:
1. Extract all information the user provided (guests, dietary needs, allergies, preferences)
2. Combine with any information from previous messages in our conversation
3. Set is_complete=true ONLY if you have the number of guests AND confirmed dietary/allergy info
4. Include questions for any missing information

Remember: you need at minimum the number of guests, and should confirm dietary restrictions and allergies.`, userMessage)
	out := new(PreferenceExtraction)
	if err := c.agent.Run(ctx, schema.NewInput(prompt), out, llmResp); err != nil {
		return nil, err
	}
	return out, nil
}

// Update combines additional information from the host with what is already
// known from earlier turns.
func (c *InfoChecker) Update(ctx context.Context, additionalInfo string, llmResp *llm.Response) (*PreferenceExtraction, error) {
	prompt := fmt.Sprintf(`The user has provided additional information: "%s"

Steps:
1. Combine this new information with what we already know from our conversation
2. Set is_complete=true ONLY if you have the number of guests AND confirmed dietary/allergy info
3. Include questions for any still-missing information

Remember: you need at minimum the number of guests, and should confirm dietary restrictions and allergies.`, additionalInfo)
	out := new(PreferenceExtraction)
	if err := c.agent.Run(ctx, schema.NewInput(prompt), out, llmResp); err != nil {
		return nil, err
	}
	return out, nil
}

// AskMissingInfo renders the follow-up questions for missing fields without a
// model round trip.
func (c *InfoChecker) AskMissingInfo(prefs *models.UserPreferences, missing []string) string {
	var questions []string
	for _, field := range missing {
		if field == "number_of_guests" {
			questions = append(questions, "How many guests are you expecting for Christmas dinner?")
		}
	}
	if prefs == nil || (!prefs.HasVegetarians && !prefs.HasVegans) {
		questions = append(questions, "Are there any vegetarian or vegan guests?")
	}
	if prefs == nil || len(prefs.Allergies) == 0 {
		questions = append(questions, "Does anyone have food allergies I should be aware of?")
	}
	if len(questions) == 0 {
		return "I have all the information I need!"
	}
	return strings.Join(questions, "\n")
}

// ClearMemory drops the conversation history for a fresh start.
func (c *InfoChecker) ClearMemory() {
	c.agent.ResetMemory()
}
