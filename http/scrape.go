package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/pagesum"
)

type scrapeRequest struct {
	URL optionalString `json:"url"`
}

type scrapeResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

type summarizeRequest struct {
	URL         optionalString `json:"url"`
	APIKey      optionalString `json:"api_key"`
	SummaryType optionalString `json:"summary_type"`
	MaxWords    optionalInt    `json:"max_words"`
	BulletCount optionalInt    `json:"bullet_count"`
}

type wordCounts struct {
	Original int `json:"original"`
	Summary  int `json:"summary"`
}

type summarizeResponse struct {
	Success      bool       `json:"success"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	OriginalText string     `json:"original_text"`
	Summary      string     `json:"summary"`
	SummaryType  string     `json:"summary_type"`
	BulletCount  *int       `json:"bullet_count"`
	WordCounts   wordCounts `json:"word_counts"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if !decodeJSON(w, r, &req) || req.URL == "" {
		s.writeError(w, r, pagesum.Errorf(pagesum.EINVALID, "Missing URL in request body"))
		return
	}

	result, err := s.Service.Scrape(r.Context(), string(req.URL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, scrapeResponse{
		Success:   true,
		URL:       result.URL,
		Title:     result.Content.Title,
		Text:      result.Content.Text,
		WordCount: result.Content.WordCount,
		CharCount: result.Content.CharCount,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if !decodeJSON(w, r, &req) {
		s.writeError(w, r, pagesum.Errorf(pagesum.EINVALID, "Missing request body"))
		return
	}

	result, err := s.Service.Summarize(r.Context(), &pagesum.SummarizeRequest{
		URL:         string(req.URL),
		Credential:  string(req.APIKey),
		Type:        pagesum.SummaryType(req.SummaryType),
		MaxWords:    int(req.MaxWords),
		BulletCount: int(req.BulletCount),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := summarizeResponse{
		Success:      true,
		URL:          result.URL,
		Title:        result.Content.Title,
		OriginalText: result.Content.Text,
		Summary:      result.Summary.Summary,
		SummaryType:  string(result.Type),
		WordCounts: wordCounts{
			Original: result.Summary.OriginalWordCount,
			Summary:  result.Summary.SummaryWordCount,
		},
	}
	if result.BulletCount > 0 {
		n := result.BulletCount
		resp.BulletCount = &n
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// optionalInt accepts a JSON number or numeric string. Any other value
// decodes as zero rather than failing the request.
type optionalInt int

func (n *optionalInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch v := v.(type) {
	case float64:
		*n = optionalInt(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*n = optionalInt(i)
		}
	}
	return nil
}

// optionalString accepts any JSON value. Strings decode as-is, null as empty,
// and any other value as its compact JSON text, so a mistyped field reaches
// validation instead of failing the whole request.
type optionalString string

func (v *optionalString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = optionalString(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		*v = optionalString(b)
		return nil
	}
	*v = optionalString(buf.String())
	return nil
}
