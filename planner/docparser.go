package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cenone/agents"
	"cenone/document"
	"cenone/embedder"
	"cenone/llm"
	"cenone/models"
	"cenone/schema"
	"cenone/store"
	"cenone/systemprompt/simple"
)

const docParserPrompt = `You are an expert at extracting recipe information from text.
Your task is to analyze text from documents and extract structured recipe information.

For each recipe you find, extract:
- Recipe name
- Description
- Category (appetizer, main_dish, second_plate, or dessert)
- Ingredients list
- Instructions
- Estimated servings (default to 4 if not specified)
- Estimated prep time and cook time in minutes (if mentioned)
- Dietary tags (vegan, vegetarian, gluten_free, dairy_free, nut_free)
- Allergens
- Difficulty level (easy, medium, hard)
- Whether it's a traditional Christmas recipe

Only extract recipes that are actually present in the text. Leave the list
empty when the text contains no recipes.`

// RecipeExtraction is the structured result of parsing one document chunk.
type RecipeExtraction struct {
	schema.Base
	// Recipes found in the analyzed text
	Recipes []models.Recipe `json:"recipes" jsonschema:"title=recipes,description=Recipes found in the analyzed text."`
}

func (e RecipeExtraction) String() string {
	bs, _ := json.Marshal(e)
	return string(bs)
}

// DocParser ingests recipe documents: it parses PDFs to text, chunks long
// documents, extracts structured recipes with the model and stores the valid
// ones.
type DocParser struct {
	agent    *agents.Agent[schema.Input, RecipeExtraction]
	parser   document.Parser
	chunker  embedder.Chunker
	loader   *store.Loader
	validate *validator.Validate
	logger   *zap.Logger
}

type DocParserOption func(*DocParser)

func DocParserWithParser(p document.Parser) DocParserOption {
	return func(d *DocParser) {
		d.parser = p
	}
}

func DocParserWithChunker(c embedder.Chunker) DocParserOption {
	return func(d *DocParser) {
		d.chunker = c
	}
}

func DocParserWithLogger(l *zap.Logger) DocParserOption {
	return func(d *DocParser) {
		d.logger = l
	}
}

func DocParserWithAgentOptions(opts ...agents.Option) DocParserOption {
	return func(d *DocParser) {
		opts = append(opts,
			agents.WithName("document_parsing_agent"),
			agents.WithSystemPromptGenerator(simple.New(docParserPrompt)),
		)
		d.agent = agents.NewAgent[schema.Input, RecipeExtraction](opts...)
	}
}

func NewDocParser(loader *store.Loader, opts ...DocParserOption) *DocParser {
	ret := &DocParser{
		loader:   loader,
		parser:   document.NewPDFParser(),
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.agent == nil {
		DocParserWithAgentOptions()(ret)
	}
	if ret.chunker == nil {
		chunkerOpts := []embedder.TextChunkerOption{
			embedder.WithChunkSize(1500),
			embedder.WithChunkOverlap(150),
		}
		if counter, err := embedder.NewTikTokenCounter("cl100k_base"); err == nil {
			chunkerOpts = append(chunkerOpts, embedder.WithTokenCounter(counter))
		} else {
			ret.logger.Warn("tiktoken encoding unavailable, counting tokens by whitespace", zap.Error(err))
		}
		ret.chunker = embedder.NewTextChunker(chunkerOpts...)
	}
	return ret
}

func (d *DocParser) Name() string {
	return d.agent.Name()
}

// IngestFile parses a recipe document from disk and stores the extracted
// recipes, returning how many were stored. HTML files are converted to
// markdown before extraction, everything else goes through the configured
// parser.
func (d *DocParser) IngestFile(ctx context.Context, path string, usage *llm.Usage) (int, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}
	parser := d.parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		parser = document.NewHTML2MDParser()
	}
	return d.ingest(ctx, parser, bs, usage)
}

// Ingest parses raw document bytes and stores the extracted recipes.
func (d *DocParser) Ingest(ctx context.Context, content []byte, usage *llm.Usage) (int, error) {
	return d.ingest(ctx, d.parser, content, usage)
}

func (d *DocParser) ingest(ctx context.Context, parser document.Parser, content []byte, usage *llm.Usage) (int, error) {
	buf := new(bytes.Buffer)
	if err := parser.Parse(ctx, bytes.NewReader(content), buf); err != nil {
		return 0, fmt.Errorf("parse document: %w", err)
	}
	recipes, err := d.ExtractFromText(ctx, buf.String(), usage)
	if err != nil {
		return 0, err
	}
	return d.loader.LoadRecipes(ctx, recipes, usage)
}

// ExtractFromText runs the extraction model over the text chunk by chunk and
// returns the validated recipes. Recipes without an ID get one assigned.
// Duplicate names across overlapping chunks are dropped.
func (d *DocParser) ExtractFromText(ctx context.Context, text string, usage *llm.Usage) ([]models.Recipe, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	chunks := d.chunker.Chunk(text)
	seen := make(map[string]struct{})
	var recipes []models.Recipe
	for _, chunk := range chunks {
		d.agent.ResetMemory()
		prompt := fmt.Sprintf("Extract all recipe information from the following text.\n\nText to analyze:\n%s", chunk.Text)
		out := new(RecipeExtraction)
		llmResp := new(llm.Response)
		if err := d.agent.Run(ctx, schema.NewInput(prompt), out, llmResp); err != nil {
			return nil, err
		}
		if usage != nil {
			usage.Merge(llmResp.Usage)
		}
		for _, recipe := range out.Recipes {
			key := strings.ToLower(strings.TrimSpace(recipe.Name))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			if recipe.ID == "" {
				recipe.ID = uuid.New().String()
			}
			if recipe.Servings <= 0 {
				recipe.Servings = 4
			}
			if recipe.Difficulty == "" {
				recipe.Difficulty = models.DifficultyMedium
			}
			if err := d.validate.Struct(&recipe); err != nil {
				d.logger.Warn("skipping invalid extracted recipe",
					zap.String("name", recipe.Name), zap.Error(err))
				continue
			}
			seen[key] = struct{}{}
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}
