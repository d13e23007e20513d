package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"cenone/schema"
	"cenone/tools"
)

type Category = string

const (
	GeneralCategory Category = "general"
	NewsCategory    Category = "news"
)

// Input is a set of search queries for a SearxNG instance. The recipe
// research agent uses it to find dishes missing from the local store.
type Input struct {
	schema.Base
	// Queries list of search queries.
	Queries []string `json:"queries" jsonschema:"title=queries,description=List of search queries." validate:"required"`
	// Category of the search queries.
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,default=general,description=Category of the search queries."`
}

func NewInput(category Category, queries []string) *Input {
	if category == "" {
		category = GeneralCategory
	}
	return &Input{
		Queries:  queries,
		Category: category,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	schema.Base
	// URL The URL of the search result
	URL string `json:"url" jsonschema:"title=url,description=The URL of the search result" validate:"required,url"`
	// Title The title of the search result
	Title string `json:"title" jsonschema:"title=title,description=The title of the search result" validate:"required"`
	// Content The content snippet of the search result
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The content snippet of the search result"`
	// Query The query used to obtain this search result
	Query string `json:"query" jsonschema:"title=query,description=The query used to obtain this search result" validate:"required"`
}

func (s SearchResultItem) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// searchResponse is the JSON payload SearxNG returns
type searchResponse struct {
	Query           string             `json:"query"`
	NumberOfResults int                `json:"number_of_results"`
	Results         []SearchResultItem `json:"results"`
}

// Output represents the output of the web search tool.
type Output struct {
	schema.Base
	// Results List of search result items
	Results []SearchResultItem `json:"results,omitempty" jsonschema:"title=results,description=List of search result items"`
	// Category The category of the search results
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,default=general,description=Category of the search results."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	language   string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Tool performs web searches against a SearxNG instance.
type Tool struct {
	Config
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.OrchestrationTool   = (*Tool)(nil)
)

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WebSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search the web for recipes and cooking references, returning result snippets and URLs.")
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run performs every query concurrently, dedupes by URL and keeps the first
// maxResults items.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	if len(input.Queries) == 0 {
		return errors.New("no search queries provided")
	}
	var (
		mtx     sync.Mutex
		results []SearchResultItem
	)
	eg, ctx := errgroup.WithContext(ctx)
	for _, query := range input.Queries {
		eg.Go(func() error {
			items, err := t.fetchSearchResults(ctx, query, input.Category)
			if err != nil {
				return err
			}
			mtx.Lock()
			results = append(results, items...)
			mtx.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(results))
	unique := make([]SearchResultItem, 0, len(results))
	for _, item := range results {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		unique = append(unique, item)
		if len(unique) == t.maxResults {
			break
		}
	}
	output.Results = unique
	output.Category = input.Category
	return nil
}

// RunOrchestration runs the search with untyped input for agent tool wiring.
func (t *Tool) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchSearchResults queries the search engine and returns the parsed results
func (t *Tool) fetchSearchResults(ctx context.Context, query string, category Category) ([]SearchResultItem, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	values.Set("engines", "bing,duckduckgo,google,startpage,yandex")
	if t.language != "" {
		values.Set("language", t.language)
	}
	if category != "" {
		values.Set("categories", category)
	}
	searchURL := fmt.Sprintf("%s/search?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}

	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	for idx := range resp.Results {
		resp.Results[idx].Query = query
	}

	return resp.Results, nil
}
