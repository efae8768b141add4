// Package openai provides a pagesum.Summarizer backed by the OpenAI
// Responses API.
package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/pagesum"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// DefaultModel is the OpenAI model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// Ensure Summarizer implements pagesum.Summarizer at compile time.
var _ pagesum.Summarizer = (*Summarizer)(nil)

// Summarizer calls OpenAI's Responses API to produce summaries.
type Summarizer struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the OpenAI model name.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		s.model = model
	}
}

// WithBaseURL overrides the OpenAI API endpoint.
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
	return "OpenAI"
}

// Summarize builds the prompt for req and asks OpenAI for a summary.
func (s *Summarizer) Summarize(ctx context.Context, req *pagesum.SummaryRequest, credential string) (*pagesum.SummaryResult, error) {
	if credential == "" {
		return nil, pagesum.Errorf(pagesum.EINVALID, "Missing %s API key", s.Name())
	}

	opts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		opts = append(opts, option.WithBaseURL(s.baseURL))
	}
	if s.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(s.httpClient))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Responses.New(ctx, responses.ResponseNewParams{
		Model: s.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(pagesum.BuildPrompt(req)),
		},
	})
	if err != nil {
		return nil, pagesum.Errorf(pagesum.ESUMMARIZE, "Summarization failed: %v", err)
	}

	summary := resp.OutputText()
	if strings.TrimSpace(summary) == "" {
		return nil, pagesum.Errorf(pagesum.ENOSUMMARY, "No summary generated")
	}

	return pagesum.NewSummaryResult(req.Text, summary), nil
}
