package document

import (
	"bytes"
	"context"
	"io"
)

// Parser extracts plain text (or markdown) from a raw document.
type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}
