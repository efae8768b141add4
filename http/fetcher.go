// Package http provides the net/http implementation of pagesum.Fetcher and
// the JSON HTTP server exposing the scrape and summarize pipeline.
package http

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagesum"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// DefaultUserAgent is sent when no user agents are configured.
const DefaultUserAgent = "Mozilla/5.0 (iPad; CPU OS 12_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"

// DefaultHeaders returns the browser-like headers sent with every request.
// Accept-Encoding is left to the transport so compression is handled transparently.
func DefaultHeaders() http.Header {
	return http.Header{
		"Accept":                    {"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
		"Accept-Language":           {"en-US,en;q=0.5"},
		"Upgrade-Insecure-Requests": {"1"},
	}
}

// Ensure Fetcher implements pagesum.Fetcher at compile time.
var _ pagesum.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// A single Fetcher is safe for concurrent use; all calls share one pooled
// transport.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	headers      http.Header
	userAgents   []string
	pick         func(n int) int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes caps the number of body bytes read per response.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// WithHeaders replaces the default request headers.
func WithHeaders(h http.Header) Option {
	return func(f *Fetcher) {
		f.headers = h.Clone()
	}
}

// WithUserAgents sets the User-Agent values to choose from.
// With more than one value, each request picks one at random.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// WithPicker replaces the random index function used to rotate user agents.
func WithPicker(pick func(n int) int) Option {
	return func(f *Fetcher) {
		f.pick = pick
	}
}

// WithTransport sets the round tripper used by the shared client.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:       &http.Client{Transport: newTransport()},
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
		headers:      DefaultHeaders(),
		userAgents:   []string{DefaultUserAgent},
		pick:         rand.IntN,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client.Timeout = f.timeout

	return f
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 90 * time.Second
	return t
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*pagesum.FetchResult, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, pagesum.Errorf(pagesum.ESCRAPE, "Scraping failed: unsupported protocol scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, pagesum.Errorf(pagesum.ESCRAPE, "Scraping failed: %v", err)
	}
	for k, v := range f.headers {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", SelectUserAgent(f.userAgents, f.pick))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, pagesum.HTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}

	return &pagesum.FetchResult{
		Body:        body,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// ParseURL parses an absolute URL, returning EBADURL if it has no scheme or host.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, pagesum.Errorf(pagesum.EBADURL, "Invalid URL format")
	}
	return u, nil
}

// SelectUserAgent returns one of agents using pick to choose the index.
// It returns DefaultUserAgent when agents is empty.
func SelectUserAgent(agents []string, pick func(n int) int) string {
	switch len(agents) {
	case 0:
		return DefaultUserAgent
	case 1:
		return agents[0]
	}
	return agents[pick(len(agents))]
}

// classify maps transport errors onto the fetch failure codes.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pagesum.Errorf(pagesum.ETIMEOUT, "Request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return pagesum.Errorf(pagesum.ETIMEOUT, "Request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return pagesum.Errorf(pagesum.ESCRAPE, "Scraping failed: %v", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return pagesum.Errorf(pagesum.ECONNECTION, "Connection error - check your internet or URL")
	}
	return pagesum.Errorf(pagesum.ESCRAPE, "Scraping failed: %v", err)
}
