package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagesum"
)

// Ensure LoggingExtractor implements pagesum.Extractor.
var _ pagesum.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   pagesum.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagesum.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the content size.
func (e *LoggingExtractor) Extract(html []byte, contentType string) (content *pagesum.ExtractedContent) {
	defer func(begin time.Time) {
		if content == nil {
			return
		}
		e.logger.Debug("extract",
			"title", content.Title,
			"words", content.WordCount,
			"chars", content.CharCount,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(html, contentType)
}
