package main

import (
	"fmt"

	"github.com/fwojciec/pagesum"
)

// credentialEnv maps providers to the environment variable holding their key.
var credentialEnv = map[string]string{
	"gemini": "GEMINI_API_KEY",
	"openai": "OPENAI_API_KEY",
}

type summarizeOutput struct {
	URL          string           `json:"url"`
	Title        string           `json:"title"`
	OriginalText string           `json:"original_text"`
	Summary      string           `json:"summary"`
	SummaryType  string           `json:"summary_type"`
	BulletCount  *int             `json:"bullet_count"`
	WordCounts   wordCountsOutput `json:"word_counts"`
}

type wordCountsOutput struct {
	Original int `json:"original"`
	Summary  int `json:"summary"`
}

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	apiKey := c.APIKey
	if apiKey == "" && deps.Getenv != nil {
		apiKey = deps.Getenv(credentialEnv[deps.Provider])
	}

	result, err := deps.Service.Summarize(deps.Ctx, &pagesum.SummarizeRequest{
		URL:         c.URL,
		Credential:  apiKey,
		Type:        pagesum.SummaryType(c.Type),
		MaxWords:    c.MaxWords,
		BulletCount: c.BulletCount,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesum.ErrorMessage(err))
		if pagesum.ErrorCode(err) == pagesum.EINVALID && apiKey == "" {
			fmt.Fprintf(deps.Stderr, "Hint: pass --api-key or set %s\n", credentialEnv[deps.Provider])
		}
		return err
	}

	if c.JSON {
		out := summarizeOutput{
			URL:          result.URL,
			Title:        result.Content.Title,
			OriginalText: result.Content.Text,
			Summary:      result.Summary.Summary,
			SummaryType:  string(result.Type),
			WordCounts: wordCountsOutput{
				Original: result.Summary.OriginalWordCount,
				Summary:  result.Summary.SummaryWordCount,
			},
		}
		if result.BulletCount > 0 {
			n := result.BulletCount
			out.BulletCount = &n
		}
		return writeJSON(deps, out)
	}

	fmt.Fprintln(deps.Stdout, result.Summary.Summary)
	return nil
}
