package pagesum

import (
	"context"
	"fmt"
	"strings"
)

// SummaryType selects the style and length of a generated summary.
type SummaryType string

// SummaryType constants.
const (
	SummaryBrief    SummaryType = "brief"
	SummaryMedium   SummaryType = "medium"
	SummaryDetailed SummaryType = "detailed"
	SummaryBullets  SummaryType = "bullets"
)

// DefaultSummaryType is used when the caller does not choose one.
const DefaultSummaryType = SummaryMedium

// ParseSummaryType returns the summary type named by s.
// Empty and unknown names map to DefaultSummaryType.
func ParseSummaryType(s string) SummaryType {
	switch t := SummaryType(strings.ToLower(strings.TrimSpace(s))); t {
	case SummaryBrief, SummaryMedium, SummaryDetailed, SummaryBullets:
		return t
	default:
		return DefaultSummaryType
	}
}

var instructions = map[SummaryType]string{
	SummaryBrief:    "Summarize the following text in exactly 2-3 clear sentences:",
	SummaryMedium:   "Summarize the following text in one concise paragraph:",
	SummaryDetailed: "Provide a detailed summary of the following text in 2-3 paragraphs:",
	SummaryBullets:  "Summarize the following text as bullet points with key takeaways:",
}

// SummaryRequest describes a single summarization call.
type SummaryRequest struct {
	Text string
	Type SummaryType

	// MaxWords limits the summary length. Zero means no limit.
	// Ignored for SummaryBullets.
	MaxWords int

	// BulletCount requests an exact number of bullets. Zero means unspecified.
	// Only meaningful for SummaryBullets.
	BulletCount int
}

// SummaryResult holds a generated summary and the word counts on both sides.
type SummaryResult struct {
	Summary           string
	OriginalWordCount int
	SummaryWordCount  int
}

// NewSummaryResult builds a result for the given original text and summary.
func NewSummaryResult(original, summary string) *SummaryResult {
	return &SummaryResult{
		Summary:           summary,
		OriginalWordCount: CountWords(original),
		SummaryWordCount:  CountWords(summary),
	}
}

// Summarizer generates summaries with an external language model.
type Summarizer interface {
	// Name identifies the provider in user-facing messages (e.g. "Gemini").
	Name() string

	// Summarize makes a single blocking call authenticated by credential.
	// Returns ENOSUMMARY when the model produced no text and ESUMMARIZE for
	// any transport or credential failure.
	Summarize(ctx context.Context, req *SummaryRequest, credential string) (*SummaryResult, error)
}

// BuildPrompt composes the model prompt for a request: the instruction for
// its summary type, a blank line, then the text.
func BuildPrompt(req *SummaryRequest) string {
	t := ParseSummaryType(string(req.Type))
	instruction := instructions[t]

	if t == SummaryBullets && req.BulletCount > 0 {
		instruction = fmt.Sprintf("Summarize the following text as %d bullet points with key takeaways, separated by one blank line between each point:", req.BulletCount)
	}

	if req.MaxWords > 0 && t != SummaryBullets {
		instruction += fmt.Sprintf(" Keep it under %d words.", req.MaxWords)
	}

	return instruction + "\n\n" + req.Text
}
