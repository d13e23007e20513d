package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/llm"
	"cenone/models"
)

type fakeExtractor struct {
	extraction *PreferenceExtraction
	err        error
	cleared    bool
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, llmResp *llm.Response) (*PreferenceExtraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if llmResp != nil {
		llmResp.Usage = &llm.Usage{InputTokens: 10, OutputTokens: 5}
	}
	return f.extraction, nil
}

func (f *fakeExtractor) ClearMemory() {
	f.cleared = true
}

type fakeCourse struct {
	category models.Category
	err      error
}

func (f *fakeCourse) Category() models.Category {
	return f.category
}

func (f *fakeCourse) Search(_ context.Context, _ *models.UserPreferences, _ string, llmResp *llm.Response) (*CourseSuggestions, error) {
	if f.err != nil {
		return nil, f.err
	}
	if llmResp != nil {
		llmResp.Usage = &llm.Usage{InputTokens: 20, OutputTokens: 10}
	}
	return &CourseSuggestions{
		Category: f.category,
		Picks:    []CoursePick{{RecipeID: string(f.category) + "-1", Name: "Pick for " + string(f.category)}},
	}, nil
}

type fakeComposer struct {
	err error
}

func (f *fakeComposer) Compose(_ context.Context, prefs *models.UserPreferences, suggestions map[models.Category]*CourseSuggestions, llmResp *llm.Response) (*models.Menu, error) {
	if f.err != nil {
		return nil, f.err
	}
	if llmResp != nil {
		llmResp.Usage = &llm.Usage{InputTokens: 30, OutputTokens: 15}
	}
	menu := models.NewMenu("Test Menu")
	menu.NumberOfGuests = prefs.NumberOfGuests
	for _, s := range suggestions {
		menu.Section(s.Category).Notes = s.Picks[0].Name
	}
	return menu, nil
}

func completeExtraction(guests int) *PreferenceExtraction {
	return &PreferenceExtraction{
		IsComplete: true,
		Preferences: &models.UserPreferences{
			NumberOfGuests:    guests,
			PreferTraditional: true,
			MaxDifficulty:     "medium",
		},
	}
}

func allCourses() []CourseSearcher {
	courses := make([]CourseSearcher, 0, 4)
	for _, cat := range models.Categories() {
		courses = append(courses, &fakeCourse{category: cat})
	}
	return courses
}

func newTestOrchestrator(t *testing.T, extractor PreferenceExtractor, composer MenuComposer) *Orchestrator {
	t.Helper()
	orch, err := NewOrchestrator(
		WithInfoChecker(extractor),
		WithCourses(allCourses()...),
		WithMenuCreator(composer),
	)
	require.NoError(t, err)
	return orch
}

func TestRunCompletePipeline(t *testing.T) {
	orch := newTestOrchestrator(t, &fakeExtractor{extraction: completeExtraction(8)}, &fakeComposer{})

	result, err := orch.Run(context.Background(), "Christmas dinner for 8", false)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Menu)
	assert.Equal(t, 8, result.Menu.NumberOfGuests)
	assert.Len(t, result.Courses, 4)
	assert.NotEmpty(t, result.Formatted)
	// info checker + 4 courses + menu creator
	assert.Equal(t, 10+4*20+30, result.Usage.InputTokens)
}

func TestRunInteractiveStopsOnMissingInfo(t *testing.T) {
	extractor := &fakeExtractor{extraction: &PreferenceExtraction{
		IsComplete: false,
		Questions:  []string{"How many guests are you expecting?"},
	}}
	orch := newTestOrchestrator(t, extractor, &fakeComposer{})

	result, err := orch.Run(context.Background(), "I need a Christmas menu", true)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Menu)
	assert.Equal(t, []string{"How many guests are you expecting?"}, result.Questions)
}

func TestRunUsesDefaultsWhenIncomplete(t *testing.T) {
	extractor := &fakeExtractor{extraction: &PreferenceExtraction{IsComplete: false}}
	orch := newTestOrchestrator(t, extractor, &fakeComposer{})

	result, err := orch.Run(context.Background(), "I need a Christmas menu", false)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Preferences)
	assert.Equal(t, 6, result.Preferences.NumberOfGuests)
	assert.True(t, result.Preferences.PreferTraditional)
}

func TestRunUsesDefaultsOnExtractionError(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	orch := newTestOrchestrator(t, extractor, &fakeComposer{})

	result, err := orch.Run(context.Background(), "dinner please", false)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 6, result.Preferences.NumberOfGuests)
}

func TestRunCourseFailure(t *testing.T) {
	courses := allCourses()
	courses[2] = &fakeCourse{category: models.CategorySecondPlate, err: errors.New("search failed")}
	orch, err := NewOrchestrator(
		WithInfoChecker(&fakeExtractor{extraction: completeExtraction(4)}),
		WithCourses(courses...),
		WithMenuCreator(&fakeComposer{}),
	)
	require.NoError(t, err)

	_, err = orch.Run(context.Background(), "dinner for 4", false)
	assert.Error(t, err)
}

func TestRunStream(t *testing.T) {
	orch := newTestOrchestrator(t, &fakeExtractor{extraction: completeExtraction(6)}, &fakeComposer{})

	var complete *Event
	for ev := range orch.RunStream(context.Background(), "Christmas dinner for 6") {
		if ev.Type == CompleteEvent {
			complete = &ev
		}
		assert.NotEqual(t, ErrorEvent, ev.Type)
	}
	require.NotNil(t, complete)
	require.NotNil(t, complete.Result)
	assert.True(t, complete.Result.Success)
	assert.Len(t, complete.Result.Courses, 4)
}

func TestRunStreamComposerError(t *testing.T) {
	orch := newTestOrchestrator(t, &fakeExtractor{extraction: completeExtraction(6)}, &fakeComposer{err: errors.New("boom")})

	var sawError bool
	for ev := range orch.RunStream(context.Background(), "dinner") {
		if ev.Type == ErrorEvent {
			sawError = true
			assert.Equal(t, "menu_creator", ev.Step)
		}
	}
	assert.True(t, sawError)
}

func TestNewOrchestratorValidation(t *testing.T) {
	_, err := NewOrchestrator(WithCourses(allCourses()...), WithMenuCreator(&fakeComposer{}))
	assert.Error(t, err)

	_, err = NewOrchestrator(WithInfoChecker(&fakeExtractor{}), WithMenuCreator(&fakeComposer{}))
	assert.Error(t, err)

	_, err = NewOrchestrator(WithInfoChecker(&fakeExtractor{}), WithCourses(allCourses()...))
	assert.Error(t, err)
}

func TestClearMemory(t *testing.T) {
	extractor := &fakeExtractor{extraction: completeExtraction(6)}
	orch := newTestOrchestrator(t, extractor, &fakeComposer{})
	orch.ClearMemory()
	assert.True(t, extractor.cleared)
}
