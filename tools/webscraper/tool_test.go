package webscraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<title>Roast Goose with Chestnuts</title>
<meta name="author" content="Nonna Maria">
<meta name="description" content="A traditional Christmas roast goose recipe.">
<meta property="og:site_name" content="Festive Kitchen">
</head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Roast Goose with Chestnuts</h1>
<p>Serves 8. Roast the goose for three hours, basting every thirty minutes.</p>
</main>
<footer>Copyright Festive Kitchen</footer>
</body>
</html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
}

func TestRunScrapesMainContent(t *testing.T) {
	srv := newPageServer(t)
	defer srv.Close()

	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput(srv.URL), out)
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Roast Goose with Chestnuts")
	assert.Contains(t, out.Content, "basting every thirty minutes")
	assert.NotContains(t, out.Content, "Copyright Festive Kitchen")
	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Roast Goose with Chestnuts", out.Metadata.Title)
	assert.Equal(t, "Nonna Maria", out.Metadata.Author)
	assert.Equal(t, "Festive Kitchen", out.Metadata.SiteName)
}

func TestRunInvalidURL(t *testing.T) {
	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput("not-a-url"), out)
	assert.Error(t, err)
}

func TestRunServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tool := New()
	out := new(Output)
	err := tool.Run(context.Background(), NewInput(srv.URL), out)
	assert.Error(t, err)
}
