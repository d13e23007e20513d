package document

import (
	"bytes"
	"context"
	"io"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// HTML2MDParser converts HTML content to markdown, used when ingesting recipe
// pages fetched from the web.
type HTML2MDParser struct {
	opts []converter.ConvertOptionFunc
}

var _ Parser = (*HTML2MDParser)(nil)

func NewHTML2MDParser(opts ...converter.ConvertOptionFunc) *HTML2MDParser {
	return &HTML2MDParser{
		opts: opts,
	}
}

func (h *HTML2MDParser) Parse(_ context.Context, reader *bytes.Reader, writer io.Writer) error {
	bs, err := htmltomarkdown.ConvertReader(reader, h.opts...)
	if err != nil {
		return err
	}
	_, err = writer.Write(bs)
	return err
}
