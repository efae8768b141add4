package mock

import (
	"context"

	"github.com/fwojciec/pagesum"
)

var _ pagesum.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of pagesum.Summarizer.
type Summarizer struct {
	NameFn      func() string
	SummarizeFn func(ctx context.Context, req *pagesum.SummaryRequest, credential string) (*pagesum.SummaryResult, error)
}

func (s *Summarizer) Name() string {
	return s.NameFn()
}

func (s *Summarizer) Summarize(ctx context.Context, req *pagesum.SummaryRequest, credential string) (*pagesum.SummaryResult, error) {
	return s.SummarizeFn(ctx, req, credential)
}
