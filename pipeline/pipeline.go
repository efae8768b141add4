// Package pipeline orchestrates fetching, extraction and summarization of a
// single page per request.
package pipeline

import (
	"context"

	"github.com/fwojciec/pagesum"
)

var _ pagesum.Service = (*Pipeline)(nil)

// Pipeline runs Fetcher, Extractor and Summarizer in sequence.
// It holds no per-request state and is safe for concurrent use when its
// collaborators are.
type Pipeline struct {
	Fetcher    pagesum.Fetcher
	Extractor  pagesum.Extractor
	Summarizer pagesum.Summarizer
}

// Scrape fetches the URL and extracts its readable content.
func (p *Pipeline) Scrape(ctx context.Context, url string) (*pagesum.ScrapeResult, error) {
	if url == "" {
		return nil, pagesum.Errorf(pagesum.EINVALID, "Missing URL")
	}

	page, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return &pagesum.ScrapeResult{
		URL:     url,
		Content: p.Extractor.Extract(page.Body, page.ContentType),
	}, nil
}

// Summarize validates the request, scrapes the URL and summarizes its text.
func (p *Pipeline) Summarize(ctx context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
	if err := req.Validate(p.Summarizer.Name()); err != nil {
		return nil, err
	}

	scraped, err := p.Scrape(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	summaryType := pagesum.ParseSummaryType(string(req.Type))
	summary, err := p.Summarizer.Summarize(ctx, &pagesum.SummaryRequest{
		Text:        scraped.Content.Text,
		Type:        summaryType,
		MaxWords:    req.MaxWords,
		BulletCount: req.BulletCount,
	}, req.Credential)
	if err != nil {
		return nil, err
	}

	result := &pagesum.SummarizeResult{
		URL:     req.URL,
		Content: scraped.Content,
		Type:    summaryType,
		Summary: summary,
	}
	if summaryType == pagesum.SummaryBullets {
		result.BulletCount = req.BulletCount
	}
	return result, nil
}
