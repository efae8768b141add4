// Package trafilatura provides a pagesum.Extractor backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements pagesum.Extractor at compile time.
var _ pagesum.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// Rules cleans and bounds the extracted text.
	Rules pagesum.TextRules

	// Fallback is used when trafilatura fails or finds no text.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(goquery.DecodeReader(raw, contentType), opts)
	if err != nil || result.ContentNode == nil {
		return e.fallback(raw, contentType)
	}

	text := e.Rules.Apply(goquery.Linearize(result.ContentNode))
	if text == "" {
		return e.fallback(raw, contentType)
	}

	return pagesum.NewExtractedContent(strings.TrimSpace(result.Metadata.Title), text)
}

func (e *Extractor) fallback(raw []byte, contentType string) *pagesum.ExtractedContent {
	if e.Fallback == nil {
		return pagesum.NewExtractedContent("", "")
	}
	return e.Fallback.Extract(raw, contentType)
}
