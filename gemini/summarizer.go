// Package gemini provides a pagesum.Summarizer backed by Google Gemini.
package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/pagesum"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements pagesum.Summarizer at compile time.
var _ pagesum.Summarizer = (*Summarizer)(nil)

// Summarizer implements pagesum.Summarizer using Google Gemini.
// A client is created per call because every request carries its own API key.
type Summarizer struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		s.model = model
	}
}

// WithBaseURL overrides the Gemini API endpoint.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) {
		s.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Summarizer) {
		s.httpClient = c
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider name.
func (s *Summarizer) Name() string {
	return "Gemini"
}

// Summarize builds the prompt for req and asks Gemini for a summary.
func (s *Summarizer) Summarize(ctx context.Context, req *pagesum.SummaryRequest, credential string) (*pagesum.SummaryResult, error) {
	if credential == "" {
		return nil, pagesum.Errorf(pagesum.EINVALID, "Missing %s API key", s.Name())
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  s.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return nil, pagesum.Errorf(pagesum.ESUMMARIZE, "Summarization failed: %v", err)
	}

	result, err := client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: pagesum.BuildPrompt(req)}},
		}},
		nil,
	)
	if err != nil {
		return nil, pagesum.Errorf(pagesum.ESUMMARIZE, "Summarization failed: %v", err)
	}
	if result == nil {
		return nil, pagesum.Errorf(pagesum.ENOSUMMARY, "No summary generated")
	}

	summary := result.Text()
	if strings.TrimSpace(summary) == "" {
		return nil, pagesum.Errorf(pagesum.ENOSUMMARY, "No summary generated")
	}

	return pagesum.NewSummaryResult(req.Text, summary), nil
}
