// Package readability provides a pagesum.Extractor backed by go-readability.
package readability

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagesum.Extractor at compile time.
var _ pagesum.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to find the main article of a page.
// Its text goes through the same cleaning and truncation rules as the
// heuristic extractor.
type Extractor struct {
	// Rules cleans and bounds the article text.
	Rules pagesum.TextRules

	// Fallback is used when readability fails or finds no text.
	// If nil, an empty Untitled result is returned instead.
	Fallback pagesum.Extractor
}

// NewExtractor creates a new Extractor with default text rules.
func NewExtractor(fallback pagesum.Extractor) *Extractor {
	return &Extractor{
		Rules:    pagesum.DefaultTextRules(),
		Fallback: fallback,
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(raw []byte, contentType string) *pagesum.ExtractedContent {
	if len(bytes.TrimSpace(raw)) == 0 {
		return e.fallback(raw, contentType)
	}

	article, err := readability.FromReader(goquery.DecodeReader(raw, contentType), nil)
	if err != nil {
		return e.fallback(raw, contentType)
	}

	text := e.Rules.Apply(goquery.LinearizeHTML(article.Content))
	if text == "" {
		return e.fallback(raw, contentType)
	}

	return pagesum.NewExtractedContent(strings.TrimSpace(article.Title), text)
}

func (e *Extractor) fallback(raw []byte, contentType string) *pagesum.ExtractedContent {
	if e.Fallback == nil {
		return pagesum.NewExtractedContent("", "")
	}
	return e.Fallback.Extract(raw, contentType)
}
