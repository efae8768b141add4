package pagesum

import "context"

// ScrapeResult is the outcome of fetching and extracting a single page.
type ScrapeResult struct {
	URL     string
	Content *ExtractedContent
}

// SummarizeRequest describes a scrape-then-summarize call.
type SummarizeRequest struct {
	URL         string
	Credential  string
	Type        SummaryType
	MaxWords    int
	BulletCount int
}

// Validate returns EINVALID if a required field is missing.
// provider names the summarization provider in the credential message.
func (r *SummarizeRequest) Validate(provider string) error {
	if r.URL == "" {
		return Errorf(EINVALID, "Missing URL")
	}
	if r.Credential == "" {
		return Errorf(EINVALID, "Missing %s API key", provider)
	}
	return nil
}

// SummarizeResult merges the extracted page with its summary.
type SummarizeResult struct {
	URL     string
	Content *ExtractedContent
	Type    SummaryType

	// BulletCount echoes the requested bullet count for SummaryBullets, else zero.
	BulletCount int

	Summary *SummaryResult
}

// Service runs the fetch, extract and summarize pipeline for a request.
type Service interface {
	// Scrape fetches the URL and extracts its readable content.
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)

	// Summarize scrapes the URL and summarizes its content.
	// Scrape failures are returned unchanged.
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResult, error)
}
