package goquery

import "github.com/fwojciec/pagesum"

// DefaultTitleSelectors lists title selectors in priority order.
// The first selector whose first match has non-empty text wins.
var DefaultTitleSelectors = []string{
	"h1",
	"title",
	".article-title",
	".post-title",
	".entry-title",
	`[class*="headline"]`,
	`[class*="title"]`,
}

// DefaultNoiseSelectors lists elements removed before text extraction.
var DefaultNoiseSelectors = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	"aside",
	"advertisement",
	"title",
}

// Rules holds the ordered heuristics used by Extractor.
type Rules struct {
	TitleSelectors []string
	NoiseSelectors []string
	Text           pagesum.TextRules
}

// DefaultRules returns the default extraction heuristics.
func DefaultRules() Rules {
	return Rules{
		TitleSelectors: DefaultTitleSelectors,
		NoiseSelectors: DefaultNoiseSelectors,
		Text:           pagesum.DefaultTextRules(),
	}
}
