package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"cenone/agents"
	"cenone/config"
	"cenone/llm"
	"cenone/models"
	"cenone/planner"
	"cenone/store"
	"cenone/tools/recipesearch"
	"cenone/tools/websearch"
)

func main() {
	var (
		configPath  string
		request     string
		recipesFile string
		docFile     string
		research    string
		interactive bool
		stream      bool
		verbose     bool
	)
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&request, "request", "", "menu request, e.g. 'Christmas dinner for 8, two vegetarians'")
	flag.StringVar(&recipesFile, "recipes", "", "reload the recipe store from this JSON file")
	flag.StringVar(&docFile, "ingest", "", "ingest recipes from this document (PDF or HTML)")
	flag.StringVar(&research, "research", "", "search the web for recipes matching this query")
	flag.BoolVar(&interactive, "interactive", false, "ask follow-up questions instead of assuming defaults")
	flag.BoolVar(&stream, "stream", false, "print progress while the menu is being planned")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(verbose)
	defer logger.Sync()

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("starting menu planner", zap.String("provider", settings.ProviderInfo()))

	ctx := context.Background()
	orch, docParser, err := buildPipeline(ctx, settings, logger)
	if err != nil {
		logger.Fatal("build pipeline", zap.Error(err))
	}

	usage := new(llm.Usage)
	if recipesFile != "" {
		n, err := orch.ReloadRecipes(ctx, recipesFile, usage)
		if err != nil {
			logger.Fatal("reload recipes", zap.Error(err))
		}
		logger.Info("recipes reloaded", zap.Int("count", n))
	} else if _, err := orch.EnsureRecipesLoaded(ctx, usage); err != nil {
		logger.Fatal("load recipes", zap.Error(err))
	}

	if docFile != "" {
		n, err := docParser.IngestFile(ctx, docFile, usage)
		if err != nil {
			logger.Fatal("ingest document", zap.Error(err))
		}
		logger.Info("document ingested", zap.String("path", docFile), zap.Int("recipes", n))
	}

	if research != "" {
		llmResp := new(llm.Response)
		found, err := orch.SearchWebRecipes(ctx, research, "", llmResp)
		if err != nil {
			logger.Fatal("web research", zap.Error(err))
		}
		fmt.Println(found)
		return
	}

	if request == "" {
		if docFile != "" || recipesFile != "" {
			return
		}
		flag.Usage()
		os.Exit(2)
	}

	if stream {
		runStreaming(ctx, orch, request)
		return
	}
	runOnce(ctx, orch, request, interactive)
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// buildPipeline wires the whole pipeline from the settings: vector store,
// tools and every agent.
func buildPipeline(ctx context.Context, settings *config.Settings, logger *zap.Logger) (*planner.Orchestrator, *planner.DocParser, error) {
	engine, err := config.NewEngine(ctx, settings)
	if err != nil {
		return nil, nil, err
	}
	recipeStore := store.New(engine, config.NewEmbedder(settings),
		store.WithCollection(settings.VectorDB.Collection),
		store.WithLogger(logger),
	)
	loader := store.NewLoader(recipeStore, store.LoaderWithLogger(logger))

	clt := config.NewInstructor(settings)
	agentOpts := []agents.Option{
		agents.WithClient(clt),
		agents.WithModel(settings.ChatModel()),
		agents.WithTemperature(settings.Temperature),
		agents.WithMaxTokens(settings.MaxTokens),
	}

	searchTool := recipesearch.New(recipeStore)
	courses := make([]planner.CourseSearcher, 0, 4)
	for _, category := range models.Categories() {
		course, err := planner.NewCourseAgent(category, searchTool, agentOpts...)
		if err != nil {
			return nil, nil, err
		}
		courses = append(courses, course)
	}

	opts := []planner.OrchestratorOption{
		planner.WithInfoChecker(planner.NewInfoChecker(agentOpts...)),
		planner.WithCourses(courses...),
		planner.WithMenuCreator(planner.NewMenuCreator(recipeStore,
			planner.MenuCreatorWithLogger(logger),
			planner.MenuCreatorWithAgentOptions(agentOpts...),
		)),
		planner.WithStore(recipeStore, loader),
		planner.WithLogger(logger),
	}
	if settings.SearxNGURL != "" {
		webTool := websearch.New(websearch.WithBaseURL(settings.SearxNGURL))
		opts = append(opts, planner.WithResearcher(planner.NewResearcher(webTool,
			planner.ResearcherWithAgentOptions(agentOpts...),
		)))
	}
	orch, err := planner.NewOrchestrator(opts...)
	if err != nil {
		return nil, nil, err
	}

	docParser := planner.NewDocParser(loader,
		planner.DocParserWithLogger(logger),
		planner.DocParserWithAgentOptions(
			agents.WithClient(clt),
			agents.WithModel(settings.ChatModel()),
			agents.WithTemperature(0.1),
			agents.WithMaxTokens(settings.MaxTokens),
		),
	)
	return orch, docParser, nil
}

func runOnce(ctx context.Context, orch *planner.Orchestrator, request string, interactive bool) {
	result, err := orch.Run(ctx, request, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "menu planning failed: %v\n", err)
		os.Exit(1)
	}
	if !result.Success {
		fmt.Println("I need a bit more information before planning your menu:")
		for _, q := range result.Questions {
			fmt.Println("  - " + q)
		}
		if interactive {
			promptAndRerun(ctx, orch, request)
		}
		return
	}
	fmt.Println(result.Formatted)
}

// promptAndRerun reads one more line of answers from the host and retries
// with the combined request.
func promptAndRerun(ctx context.Context, orch *planner.Orchestrator, request string) {
	fmt.Print("> ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return
	}
	result, err := orch.Run(ctx, request+"\n"+answer, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "menu planning failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result.Formatted)
}

func runStreaming(ctx context.Context, orch *planner.Orchestrator, request string) {
	var result *planner.Result
	for ev := range orch.RunStream(ctx, request) {
		switch ev.Type {
		case planner.CompleteEvent:
			result = ev.Result
			fmt.Println(ev.Message)
		case planner.ErrorEvent:
			fmt.Fprintf(os.Stderr, "step %s failed: %s\n", ev.Step, ev.Message)
			os.Exit(1)
		default:
			fmt.Println(ev.Message)
		}
	}
	if result != nil {
		fmt.Println()
		fmt.Println(result.Formatted)
	}
}
