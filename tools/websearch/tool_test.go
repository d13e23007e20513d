package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		resp := searchResponse{
			Query: query,
			Results: []SearchResultItem{
				{URL: "https://example.com/roast-goose", Title: "Roast Goose Recipe", Content: "A classic roast goose."},
				{URL: "https://example.com/shared", Title: "Shared Result", Content: "Appears for every query."},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestRunDedupesResults(t *testing.T) {
	srv := newSearchServer(t)
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL), WithMaxResults(10))
	out := new(Output)
	err := tool.Run(context.Background(), NewInput(GeneralCategory, []string{"roast goose", "christmas goose"}), out)
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)
	for _, item := range out.Results {
		assert.NotEmpty(t, item.Query)
	}
}

func TestRunMaxResults(t *testing.T) {
	srv := newSearchServer(t)
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL), WithMaxResults(1))
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("", []string{"panettone"}), out)
	require.NoError(t, err)
	assert.Len(t, out.Results, 1)
}

func TestRunNoQueries(t *testing.T) {
	tool := New(WithBaseURL("http://localhost:1"))
	out := new(Output)
	err := tool.Run(context.Background(), &Input{}, out)
	assert.Error(t, err)
}

func TestRunServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("", []string{"tiramisu"}), out)
	assert.Error(t, err)
}
