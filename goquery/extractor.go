// Package goquery provides the heuristic pagesum.Extractor built on goquery
// CSS selectors.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesum"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Ensure Extractor implements pagesum.Extractor at compile time.
var _ pagesum.Extractor = (*Extractor)(nil)

// Extractor finds a page title, strips noise elements and returns the
// cleaned visible text of the rest of the document.
type Extractor struct {
	rules Rules
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTitleSelectors replaces the ordered title selectors.
func WithTitleSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.rules.TitleSelectors = selectors
	}
}

// WithNoiseSelectors replaces the selectors of elements removed before
// text extraction.
func WithNoiseSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.rules.NoiseSelectors = selectors
	}
}

// WithTextRules replaces the line cleaning and truncation rules.
func WithTextRules(r pagesum.TextRules) Option {
	return func(e *Extractor) {
		e.rules.Text = r
	}
}

// NewExtractor creates a new Extractor using DefaultRules.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw HTML and returns its title and cleaned text.
func (e *Extractor) Extract(raw []byte, contentType string) *pagesum.ExtractedContent {
	doc, err := goquery.NewDocumentFromReader(DecodeReader(raw, contentType))
	if err != nil {
		return pagesum.NewExtractedContent("", "")
	}

	title := FindTitle(doc, e.rules.TitleSelectors)

	for _, sel := range e.rules.NoiseSelectors {
		doc.Find(sel).Remove()
	}

	var text string
	if len(doc.Nodes) > 0 {
		text = Linearize(doc.Nodes[0])
	}

	return pagesum.NewExtractedContent(title, e.rules.Text.Apply(text))
}

// FindTitle returns the trimmed text of the first match of the first selector
// that yields non-empty text, or pagesum.UntitledTitle.
func FindTitle(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if title := strings.TrimSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}
	return pagesum.UntitledTitle
}

// Linearize returns the text nodes under n in document order, one per line.
// Comments and doctype nodes are skipped.
func Linearize(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, "\n")
}

// LinearizeHTML parses an HTML fragment or document and linearizes it.
func LinearizeHTML(s string) string {
	n, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}
	return Linearize(n)
}

// DecodeReader returns a reader that converts raw to UTF-8. The encoding is
// taken from the byte order mark, then the charset of contentType, then a
// <meta> declaration.
func DecodeReader(raw []byte, contentType string) io.Reader {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return bytes.NewReader(raw)
	}
	return r
}
