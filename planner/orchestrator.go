package planner

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cenone/llm"
	"cenone/models"
	"cenone/store"
)

// PreferenceExtractor gathers the host's preferences conversationally.
type PreferenceExtractor interface {
	Extract(ctx context.Context, userMessage string, llmResp *llm.Response) (*PreferenceExtraction, error)
	ClearMemory()
}

// CourseSearcher recommends recipes for one course.
type CourseSearcher interface {
	Category() models.Category
	Search(ctx context.Context, prefs *models.UserPreferences, extra string, llmResp *llm.Response) (*CourseSuggestions, error)
}

// MenuComposer compiles course suggestions into the final menu.
type MenuComposer interface {
	Compose(ctx context.Context, prefs *models.UserPreferences, suggestions map[models.Category]*CourseSuggestions, llmResp *llm.Response) (*models.Menu, error)
}

// Result is the outcome of one planning run.
type Result struct {
	Success     bool                                    `json:"success"`
	Menu        *models.Menu                            `json:"menu,omitempty"`
	Formatted   string                                  `json:"formatted,omitempty"`
	Preferences *models.UserPreferences                 `json:"preferences,omitempty"`
	Courses     map[models.Category]*CourseSuggestions  `json:"courses,omitempty"`
	Questions   []string                                `json:"questions,omitempty"`
	Usage       llm.Usage                               `json:"usage"`
}

// EventType classifies streaming progress events.
type EventType string

const (
	StatusEvent   EventType = "status"
	ProgressEvent EventType = "progress"
	WarningEvent  EventType = "warning"
	CompleteEvent EventType = "complete"
	ErrorEvent    EventType = "error"
)

// Event is one streaming progress update from RunStream.
type Event struct {
	Type    EventType `json:"type"`
	Step    string    `json:"step,omitempty"`
	Message string    `json:"message,omitempty"`
	Result  *Result   `json:"result,omitempty"`
	Err     error     `json:"-"`
}

// Orchestrator coordinates the whole planning pipeline: preference
// extraction, concurrent per-course recipe search and final menu creation.
type Orchestrator struct {
	infoChecker PreferenceExtractor
	courses     []CourseSearcher
	menuCreator MenuComposer
	researcher  *Researcher
	store       *store.RecipeStore
	loader      *store.Loader
	logger      *zap.Logger
}

type OrchestratorOption func(*Orchestrator)

func WithInfoChecker(c PreferenceExtractor) OrchestratorOption {
	return func(o *Orchestrator) {
		o.infoChecker = c
	}
}

func WithCourses(courses ...CourseSearcher) OrchestratorOption {
	return func(o *Orchestrator) {
		o.courses = courses
	}
}

func WithMenuCreator(c MenuComposer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.menuCreator = c
	}
}

func WithResearcher(r *Researcher) OrchestratorOption {
	return func(o *Orchestrator) {
		o.researcher = r
	}
}

func WithStore(s *store.RecipeStore, l *store.Loader) OrchestratorOption {
	return func(o *Orchestrator) {
		o.store = s
		o.loader = l
	}
}

func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

func NewOrchestrator(opts ...OrchestratorOption) (*Orchestrator, error) {
	ret := &Orchestrator{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.infoChecker == nil {
		return nil, errors.New("orchestrator requires an info checker")
	}
	if len(ret.courses) == 0 {
		return nil, errors.New("orchestrator requires course agents")
	}
	if ret.menuCreator == nil {
		return nil, errors.New("orchestrator requires a menu creator")
	}
	return ret, nil
}

// EnsureRecipesLoaded seeds the store with the bundled recipes when it is
// empty. Returns how many recipes were loaded.
func (o *Orchestrator) EnsureRecipesLoaded(ctx context.Context, usage *llm.Usage) (int, error) {
	if o.store == nil || o.loader == nil {
		return 0, nil
	}
	count, err := o.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	o.logger.Info("loading sample recipes into database")
	loaded, err := o.loader.LoadSamples(ctx, usage)
	if err != nil {
		return 0, err
	}
	o.logger.Info("sample recipes loaded", zap.Int("count", loaded))
	return loaded, nil
}

// ReloadRecipes clears the store and reloads it, from a JSON file when given
// or from the bundled recipes otherwise.
func (o *Orchestrator) ReloadRecipes(ctx context.Context, jsonFile string, usage *llm.Usage) (int, error) {
	if o.store == nil || o.loader == nil {
		return 0, errors.New("orchestrator has no recipe store")
	}
	if err := o.store.Clear(ctx); err != nil {
		return 0, err
	}
	if jsonFile != "" {
		return o.loader.LoadJSONFile(ctx, jsonFile, usage)
	}
	return o.loader.LoadSamples(ctx, usage)
}

// RecipeCount returns the number of recipes in the store.
func (o *Orchestrator) RecipeCount(ctx context.Context) (int, error) {
	if o.store == nil {
		return 0, nil
	}
	return o.store.Count(ctx)
}

// SearchWebRecipes asks the research agent for recipes from the web.
func (o *Orchestrator) SearchWebRecipes(ctx context.Context, query, dietaryRequirements string, llmResp *llm.Response) (string, error) {
	if o.researcher == nil {
		return "", errors.New("orchestrator has no researcher")
	}
	return o.researcher.Research(ctx, query, dietaryRequirements, llmResp)
}

// ClearMemory resets the preference gathering conversation.
func (o *Orchestrator) ClearMemory() {
	o.infoChecker.ClearMemory()
}

// Run executes the whole pipeline for one request. In interactive mode an
// incomplete extraction stops early and returns the follow-up questions;
// otherwise missing information is filled with defaults.
func (o *Orchestrator) Run(ctx context.Context, userRequest string, interactive bool) (*Result, error) {
	result := &Result{
		Courses: make(map[models.Category]*CourseSuggestions, len(o.courses)),
	}

	o.logger.Info("analyzing requirements")
	prefs, questions, err := o.extractPreferences(ctx, userRequest, &result.Usage)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 && interactive {
		result.Questions = questions
		return result, nil
	}
	result.Preferences = prefs
	o.logger.Info("preferences extracted", zap.Int("guests", prefs.NumberOfGuests))

	o.logger.Info("searching recipes")
	if err := o.searchCourses(ctx, prefs, result); err != nil {
		return nil, err
	}

	o.logger.Info("creating menu")
	menuResp := new(llm.Response)
	menu, err := o.menuCreator.Compose(ctx, prefs, result.Courses, menuResp)
	if err != nil {
		return nil, err
	}
	result.Usage.Merge(menuResp.Usage)
	result.Menu = menu
	result.Formatted = menu.Format()
	result.Success = true
	o.logger.Info("menu created")
	return result, nil
}

// RunStream executes the pipeline and reports progress on the returned
// channel. The channel is closed when the run finishes.
func (o *Orchestrator) RunStream(ctx context.Context, userRequest string) <-chan Event {
	events := make(chan Event, 16)
	go func() {
		defer close(events)
		emit := func(ev Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}

		result := &Result{
			Courses: make(map[models.Category]*CourseSuggestions, len(o.courses)),
		}

		emit(Event{Type: StatusEvent, Message: "🎄 Starting Christmas menu planner..."})
		emit(Event{Type: StatusEvent, Message: "📋 Analyzing your requirements..."})
		prefs, questions, err := o.extractPreferences(ctx, userRequest, &result.Usage)
		if err != nil {
			emit(Event{Type: ErrorEvent, Step: "info_checker", Message: err.Error(), Err: err})
			return
		}
		if len(questions) > 0 {
			emit(Event{Type: WarningEvent, Step: "info_checker", Message: "⚠️ Using defaults for missing information"})
		}
		result.Preferences = prefs
		emit(Event{Type: ProgressEvent, Step: "info_checker", Message: "✅ Preferences extracted"})

		emit(Event{Type: StatusEvent, Message: "🔍 Searching for recipes..."})
		if err := o.searchCourses(ctx, prefs, result); err != nil {
			emit(Event{Type: ErrorEvent, Step: "recipe_search", Message: err.Error(), Err: err})
			return
		}
		for _, course := range o.courses {
			emit(Event{Type: ProgressEvent, Step: string(course.Category()), Message: "✅ Found " + string(course.Category()) + " suggestions"})
		}

		emit(Event{Type: StatusEvent, Message: "📝 Creating your personalized menu..."})
		menuResp := new(llm.Response)
		menu, err := o.menuCreator.Compose(ctx, prefs, result.Courses, menuResp)
		if err != nil {
			emit(Event{Type: ErrorEvent, Step: "menu_creator", Message: err.Error(), Err: err})
			return
		}
		result.Usage.Merge(menuResp.Usage)
		result.Menu = menu
		result.Formatted = menu.Format()
		result.Success = true
		emit(Event{Type: CompleteEvent, Message: "✅ Menu created successfully!", Result: result})
	}()
	return events
}

// extractPreferences runs the info checker and falls back to defaults when
// extraction fails or stays incomplete. The returned questions are non-empty
// when information was missing.
func (o *Orchestrator) extractPreferences(ctx context.Context, userRequest string, usage *llm.Usage) (*models.UserPreferences, []string, error) {
	llmResp := new(llm.Response)
	extraction, err := o.infoChecker.Extract(ctx, userRequest, llmResp)
	if err != nil {
		o.logger.Warn("preference extraction failed, using defaults", zap.Error(err))
		return models.DefaultPreferences(), []string{"Preference extraction failed"}, nil
	}
	usage.Merge(llmResp.Usage)
	if extraction.IsComplete && extraction.Preferences != nil {
		return extraction.Preferences, nil, nil
	}
	questions := extraction.Questions
	if len(questions) == 0 {
		questions = []string{"Could you share the number of guests and any dietary restrictions?"}
	}
	prefs := extraction.Preferences
	if prefs == nil {
		prefs = models.DefaultPreferences()
	}
	if prefs.NumberOfGuests <= 0 {
		prefs.NumberOfGuests = models.DefaultPreferences().NumberOfGuests
	}
	o.logger.Warn("using defaults for missing information")
	return prefs, questions, nil
}

// searchCourses fans the course agents out concurrently and collects their
// suggestions into the result.
func (o *Orchestrator) searchCourses(ctx context.Context, prefs *models.UserPreferences, result *Result) error {
	var mtx sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	for _, course := range o.courses {
		eg.Go(func() error {
			llmResp := new(llm.Response)
			suggestions, err := course.Search(ctx, prefs, "", llmResp)
			if err != nil {
				return err
			}
			mtx.Lock()
			result.Courses[course.Category()] = suggestions
			result.Usage.Merge(llmResp.Usage)
			mtx.Unlock()
			return nil
		})
	}
	return eg.Wait()
}
