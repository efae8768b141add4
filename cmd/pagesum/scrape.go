package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagesum"
)

type scrapeOutput struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Service.Scrape(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesum.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps, scrapeOutput{
			URL:       result.URL,
			Title:     result.Content.Title,
			Text:      result.Content.Text,
			WordCount: result.Content.WordCount,
			CharCount: result.Content.CharCount,
		})
	}

	fmt.Fprintf(deps.Stdout, "%s\n\n%s\n", result.Content.Title, result.Content.Text)
	return nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
