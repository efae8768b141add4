package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesum"
)

// Ensure LoggingSummarizer implements pagesum.Summarizer.
var _ pagesum.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging. Credentials are never
// logged.
type LoggingSummarizer struct {
	next   pagesum.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next pagesum.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Name delegates to the wrapped summarizer.
func (s *LoggingSummarizer) Name() string {
	return s.next.Name()
}

// Summarize delegates to the wrapped summarizer and logs the outcome.
func (s *LoggingSummarizer) Summarize(ctx context.Context, req *pagesum.SummaryRequest, credential string) (result *pagesum.SummaryResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"provider", s.next.Name(),
			"type", req.Type,
			"input_words", pagesum.CountWords(req.Text),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs, "summary_words", result.SummaryWordCount)
		}
		if err != nil {
			s.logger.Warn("summarize", append(attrs, "code", pagesum.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Info("summarize", attrs...)
	}(time.Now())
	return s.next.Summarize(ctx, req, credential)
}
