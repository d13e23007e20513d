package webscraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"cenone/schema"
	"cenone/tools"
)

// Input names the webpage to scrape. The recipe research agent points it at
// pages found by the web search tool.
type Input struct {
	schema.Base
	// URL of the webpage to scrape.
	URL string `json:"url" jsonschema:"title=url,description=URL of the webpage to scrape." validate:"required,url"`
}

func NewInput(link string) *Input {
	return &Input{
		URL: link,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Metadata describes the scraped webpage.
type Metadata struct {
	// Title is the title of the webpage.
	Title string `json:"title,omitempty" jsonschema:"title=title,description=The title of the webpage."`
	// Author is the author of the webpage content.
	Author string `json:"author,omitempty" jsonschema:"title=author,description=The author of the webpage."`
	// Description is the meta description of the webpage.
	Description string `json:"description,omitempty" jsonschema:"title=description,description=The meta description of the webpage."`
	// SiteName is the name of the website.
	SiteName string `json:"sitename,omitempty" jsonschema:"title=sitename,description=The name of the website."`
	// Domain is the domain name of the website.
	Domain string `json:"domain,omitempty" jsonschema:"title=domain,description=The domain name of the website."`
}

// Output carries the page content converted to markdown.
type Output struct {
	schema.Base
	// Content The scraped content in markdown format.
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The scraped content in markdown format."`
	// Metadata is metadata about the scraped webpage.
	Metadata *Metadata `json:"metadata,omitempty" jsonschema:"title=metadata,description=Metadata about the webpage."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	// userAgent User agent string to use for requests.
	userAgent string
	// timeout Timeout in seconds for HTTP requests
	timeout int
	// maxContentLength Maximum content length in bytes to process.
	maxContentLength int64
	httpClient       *http.Client
}

// Tool fetches a webpage and converts its main content to markdown.
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
		ret.SetTitle("WebpageScraperTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch a webpage and return its main content as markdown for recipe extraction.")
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout == 0 {
		ret.timeout = 30
	}
	if ret.maxContentLength == 0 {
		ret.maxContentLength = 1_000_000
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: time.Second * time.Duration(ret.timeout)}
	}
	return ret
}

// Run fetches the page, extracts the main content and converts it to markdown.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	parsedURL, err := url.ParseRequestURI(input.URL)
	if err != nil {
		return err
	}
	doc, err := t.fetch(ctx, input)
	if err != nil {
		return err
	}
	mainContent := t.extractMainContent(doc)
	markdown, err := htmltomarkdown.ConvertString(
		mainContent,
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return err
	}
	meta := new(Metadata)
	meta.Domain = parsedURL.Host
	t.extractMetadata(doc, meta)
	output.Content = t.cleanMarkdownContent(markdown)
	output.Metadata = meta
	return nil
}

// RunOrchestration scrapes with untyped input for agent tool wiring.
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

func (t *Tool) fetch(ctx context.Context, input *Input) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpReq.Header.Set("Connection", "keep-alive")
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from webpage: %d", httpResp.StatusCode)
	}
	if httpResp.ContentLength > t.maxContentLength {
		return nil, fmt.Errorf("content length exceeds maximum of %d bytes", t.maxContentLength)
	}
	return goquery.NewDocumentFromReader(httpResp.Body)
}

func (t *Tool) extractMetadata(doc *goquery.Document, meta *Metadata) {
	meta.Title = strings.TrimSpace(doc.Find("head title").Text())
	meta.Author, _ = doc.Find("meta[name='author']").Attr("content")
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
}

// extractMainContent picks the most likely content container, falling back to
// the whole document.
func (t *Tool) extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer"} {
		doc.Find(tag).Remove()
	}
	contentCandidates := []string{
		"main",
		"article",
		"#content, #main",
		".content, .main",
		"body",
	}
	var mainContent string
	for _, selector := range contentCandidates {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			if txt, err := sel.Html(); err == nil {
				mainContent = txt
				break
			}
		}
	}
	if mainContent == "" {
		mainContent, _ = doc.Html()
	}
	return mainContent
}

// cleanMarkdownContent collapses blank lines and trims trailing whitespace.
func (t *Tool) cleanMarkdownContent(content string) string {
	re := regexp.MustCompile(`\r?\n{2,}`)
	content = re.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	content = strings.Join(lines, "\n")
	return strings.TrimSpace(content) + "\n"
}
