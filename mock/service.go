package mock

import (
	"context"

	"github.com/fwojciec/pagesum"
)

var _ pagesum.Service = (*Service)(nil)

// Service is a mock implementation of pagesum.Service.
type Service struct {
	ScrapeFn    func(ctx context.Context, url string) (*pagesum.ScrapeResult, error)
	SummarizeFn func(ctx context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error)
}

func (s *Service) Scrape(ctx context.Context, url string) (*pagesum.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url)
}

func (s *Service) Summarize(ctx context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
	return s.SummarizeFn(ctx, req)
}
