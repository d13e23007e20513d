package document

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML2MDParserParse(t *testing.T) {
	html := `<html><body><h1>Tiramisu</h1><p>Classic <strong>Italian</strong> dessert.</p></body></html>`
	parser := NewHTML2MDParser()
	buf := new(bytes.Buffer)
	require.NoError(t, parser.Parse(context.Background(), bytes.NewReader([]byte(html)), buf))
	out := buf.String()
	assert.Contains(t, out, "# Tiramisu")
	assert.Contains(t, out, "**Italian**")
}
