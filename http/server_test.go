package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/gemini"
	"github.com/fwojciec/pagesum/goquery"
	pagehttp "github.com/fwojciec/pagesum/http"
	"github.com/fwojciec/pagesum/mock"
	"github.com/fwojciec/pagesum/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(svc pagesum.Service) *pagehttp.Server {
	s := pagehttp.NewServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Now = func() time.Time { return time.Unix(1700000000, 500000000) }
	return s
}

// newPipelineServer wires the real fetcher, extractor and summarizer.
func newPipelineServer(summarizer pagesum.Summarizer) *pagehttp.Server {
	return newTestServer(&pipeline.Pipeline{
		Fetcher:    pagehttp.NewFetcher(pagehttp.WithTimeout(2 * time.Second)),
		Extractor:  goquery.NewExtractor(),
		Summarizer: summarizer,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func closedAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServer_Docs(t *testing.T) {
	t.Parallel()

	rec, _ := do(t, newTestServer(nil).Handler(), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/summarize")
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	rec, payload := do(t, newTestServer(nil).Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "Web scraper backend is running", payload["message"])
	assert.InDelta(t, 1700000000.5, payload["timestamp"], 0.001)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_NotFound(t *testing.T) {
	t.Parallel()

	rec, payload := do(t, newTestServer(nil).Handler(), http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Endpoint not found", payload["error"])
}

func TestServer_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("returns extracted content", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			ScrapeFn: func(_ context.Context, url string) (*pagesum.ScrapeResult, error) {
				return &pagesum.ScrapeResult{
					URL:     url,
					Content: pagesum.NewExtractedContent("Title", "Some body text"),
				}, nil
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/scrape", `{"url":"https://example.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"success":    true,
			"url":        "https://example.com",
			"title":      "Title",
			"text":       "Some body text",
			"word_count": float64(3),
			"char_count": float64(14),
		}, payload)
	})

	t.Run("returns 400 when url is missing", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{`{}`, `{"url":""}`, ``, `null`, `not json`} {
			rec, payload := do(t, newTestServer(nil).Handler(), http.MethodPost, "/scrape", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, false, payload["success"], body)
			assert.Equal(t, "Missing URL in request body", payload["error"], body)
		}
	})

	t.Run("returns 200 with error for scrape failures", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			ScrapeFn: func(context.Context, string) (*pagesum.ScrapeResult, error) {
				return nil, pagesum.HTTPError(http.StatusForbidden)
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/scrape", `{"url":"https://example.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"success": false, "error": "HTTP error: 403"}, payload)
	})

	t.Run("returns 500 without leaking unexpected errors", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			ScrapeFn: func(context.Context, string) (*pagesum.ScrapeResult, error) {
				return nil, io.ErrUnexpectedEOF
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/scrape", `{"url":"https://example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", payload["error"])
	})

	t.Run("recovers from panics", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			ScrapeFn: func(context.Context, string) (*pagesum.ScrapeResult, error) {
				panic("boom")
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/scrape", `{"url":"https://example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"success": false, "error": "Internal server error"}, payload)
	})

	t.Run("reports unreachable host as connection error", func(t *testing.T) {
		t.Parallel()

		body := `{"url":"http://` + closedAddr(t) + `/article"}`
		rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/scrape", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"success": false,
			"error":   "Connection error - check your internet or URL",
		}, payload)
	})

	t.Run("passes mistyped url on to validation", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			body string
			want string
		}{
			{`{"url":5}`, "Invalid URL format"},
			{`{"url":true}`, "Invalid URL format"},
			{`{"url":{"href":"https://example.com"}}`, "Invalid URL format"},
		}

		for _, tt := range tests {
			rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/scrape", tt.body)

			assert.Equal(t, http.StatusOK, rec.Code, tt.body)
			assert.Equal(t, map[string]any{"success": false, "error": tt.want}, payload, tt.body)
		}
	})

	t.Run("reports malformed url as invalid", func(t *testing.T) {
		t.Parallel()

		rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/scrape", `{"url":"example.com/no-scheme"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Invalid URL format", payload["error"])
	})
}

func TestServer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("returns summary with word counts", func(t *testing.T) {
		t.Parallel()

		var got *pagesum.SummarizeRequest
		svc := &mock.Service{
			SummarizeFn: func(_ context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
				got = req
				return &pagesum.SummarizeResult{
					URL:         req.URL,
					Content:     pagesum.NewExtractedContent("Title", "original article text"),
					Type:        pagesum.SummaryBullets,
					BulletCount: 3,
					Summary:     pagesum.NewSummaryResult("original article text", "- one\n\n- two\n\n- three"),
				}, nil
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/summarize",
			`{"url":"https://example.com","api_key":"k","summary_type":"bullets","max_words":"120","bullet_count":3}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, &pagesum.SummarizeRequest{
			URL: "https://example.com", Credential: "k", Type: pagesum.SummaryBullets, MaxWords: 120, BulletCount: 3,
		}, got)
		assert.Equal(t, map[string]any{
			"success":       true,
			"url":           "https://example.com",
			"title":         "Title",
			"original_text": "original article text",
			"summary":       "- one\n\n- two\n\n- three",
			"summary_type":  "bullets",
			"bullet_count":  float64(3),
			"word_counts":   map[string]any{"original": float64(3), "summary": float64(6)},
		}, payload)
	})

	t.Run("returns null bullet count for other types", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			SummarizeFn: func(_ context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
				return &pagesum.SummarizeResult{
					URL:     req.URL,
					Content: pagesum.NewExtractedContent("T", "text"),
					Type:    pagesum.SummaryMedium,
					Summary: pagesum.NewSummaryResult("text", "sum"),
				}, nil
			},
		}

		_, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/summarize", `{"url":"https://example.com","api_key":"k"}`)

		assert.Contains(t, payload, "bullet_count")
		assert.Nil(t, payload["bullet_count"])
		assert.Equal(t, "medium", payload["summary_type"])
	})

	t.Run("ignores non-numeric optional parameters", func(t *testing.T) {
		t.Parallel()

		var got *pagesum.SummarizeRequest
		svc := &mock.Service{
			SummarizeFn: func(_ context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
				got = req
				return nil, pagesum.Errorf(pagesum.ENOSUMMARY, "No summary generated")
			},
		}

		rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/summarize",
			`{"url":"https://example.com","api_key":"k","max_words":"lots","bullet_count":[1]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "No summary generated", payload["error"])
		require.NotNil(t, got)
		assert.Zero(t, got.MaxWords)
		assert.Zero(t, got.BulletCount)
	})

	t.Run("tolerates mistyped fields", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			body     string
			wantType pagesum.SummaryType
			wantKey  string
		}{
			{"numeric summary type", `{"url":"https://example.com","api_key":"k","summary_type":5}`, pagesum.SummaryMedium, "k"},
			{"object summary type", `{"url":"https://example.com","api_key":"k","summary_type":{"a":1}}`, pagesum.SummaryMedium, "k"},
			{"null summary type", `{"url":"https://example.com","api_key":"k","summary_type":null}`, pagesum.SummaryMedium, "k"},
			{"numeric api key", `{"url":"https://example.com","api_key":12345,"summary_type":"brief"}`, pagesum.SummaryBrief, "12345"},
			{"huge max words", `{"url":"https://example.com","api_key":"k","summary_type":"brief","max_words":1e30}`, pagesum.SummaryBrief, "k"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				var got *pagesum.SummarizeRequest
				svc := &mock.Service{
					SummarizeFn: func(_ context.Context, req *pagesum.SummarizeRequest) (*pagesum.SummarizeResult, error) {
						got = req
						return nil, pagesum.Errorf(pagesum.ENOSUMMARY, "No summary generated")
					},
				}

				rec, payload := do(t, newTestServer(svc).Handler(), http.MethodPost, "/summarize", tt.body)

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "No summary generated", payload["error"])
				require.NotNil(t, got)
				assert.Equal(t, tt.wantType, pagesum.ParseSummaryType(string(got.Type)))
				assert.Equal(t, tt.wantKey, got.Credential)
			})
		}
	})

	t.Run("reports mistyped url as invalid", func(t *testing.T) {
		t.Parallel()

		rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/summarize", `{"url":42,"api_key":"k"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"success": false, "error": "Invalid URL format"}, payload)
	})

	t.Run("returns 400 for missing body", func(t *testing.T) {
		t.Parallel()

		rec, payload := do(t, newTestServer(nil).Handler(), http.MethodPost, "/summarize", ``)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing request body", payload["error"])
	})

	t.Run("returns 400 for missing url", func(t *testing.T) {
		t.Parallel()

		rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/summarize", `{"api_key":"k"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing URL", payload["error"])
	})

	t.Run("returns 400 for missing api key regardless of url", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"https://example.com", "not a url", "http://" + closedAddr(t)} {
			body, err := json.Marshal(map[string]string{"url": u})
			require.NoError(t, err)

			rec, payload := do(t, newPipelineServer(gemini.NewSummarizer()).Handler(), http.MethodPost, "/summarize", string(body))

			assert.Equal(t, http.StatusBadRequest, rec.Code, u)
			assert.Equal(t, map[string]any{"success": false, "error": "Missing Gemini API key"}, payload, u)
		}
	})

	t.Run("scrapes and summarizes end to end", func(t *testing.T) {
		t.Parallel()

		page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, `<html><head><title>X</title></head><body><nav>Home</nav><p>This is a sufficiently long paragraph of real article content exceeding twenty characters.</p></body></html>`)
		}))
		defer page.Close()

		prompts := make(chan string, 1)
		llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			prompts <- string(b)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"A paragraph about content."}]}}]}`)
		}))
		defer llm.Close()

		h := newPipelineServer(gemini.NewSummarizer(gemini.WithBaseURL(llm.URL))).Handler()
		body := `{"url":"` + page.URL + `","api_key":"k","summary_type":"bullets","bullet_count":"5","max_words":30}`
		rec, payload := do(t, h, http.MethodPost, "/summarize", body)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, true, payload["success"])
		assert.Equal(t, "X", payload["title"])
		assert.Equal(t, "This is a sufficiently long paragraph of real article content exceeding twenty characters.", payload["original_text"])
		assert.Equal(t, "A paragraph about content.", payload["summary"])
		assert.Equal(t, float64(5), payload["bullet_count"])
		assert.Equal(t, map[string]any{"original": float64(13), "summary": float64(4)}, payload["word_counts"])

		prompt := <-prompts
		assert.Contains(t, prompt, "5 bullet points")
		assert.NotContains(t, prompt, "Keep it under")
	})
}

func TestServer_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodPost, "/health", http.MethodGet},
		{http.MethodDelete, "/", http.MethodGet},
		{http.MethodGet, "/scrape", http.MethodPost},
		{http.MethodPut, "/summarize", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			rec, payload := do(t, newTestServer(nil).Handler(), tt.method, tt.path, "")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
			assert.Equal(t, map[string]any{"success": false, "error": "Method not allowed"}, payload)
		})
	}
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newTestServer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
