package mock

import "github.com/fwojciec/pagesum"

var _ pagesum.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagesum.Extractor.
type Extractor struct {
	ExtractFn func(html []byte, contentType string) *pagesum.ExtractedContent
}

func (e *Extractor) Extract(html []byte, contentType string) *pagesum.ExtractedContent {
	return e.ExtractFn(html, contentType)
}
