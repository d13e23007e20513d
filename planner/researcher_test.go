package planner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cenone/tools/websearch"
)

func TestResearcherFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Roast Goose</title></head><body><main><h1>Roast Goose</h1><p>A festive centerpiece.</p></main></body></html>`))
	}))
	defer srv.Close()

	researcher := NewResearcher(websearch.New())
	out, err := researcher.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Roast Goose")
	assert.Equal(t, "Roast Goose", out.Metadata.Title)
}

func TestNewResearcherDefaults(t *testing.T) {
	researcher := NewResearcher(websearch.New())
	assert.Equal(t, "recipe_researcher", researcher.Name())
	assert.NotNil(t, researcher.scraper)
}
