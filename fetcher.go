package pagesum

import "context"

// FetchResult holds the raw response of a single page fetch.
type FetchResult struct {
	Body        []byte
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch issues a single GET request for the URL.
	// Returns EBADURL before any network call if the URL has no scheme or host,
	// ETIMEOUT, ECONNECTION or EHTTP for the respective transport failures.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
