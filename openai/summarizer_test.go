package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completedResponse = `{
  "id": "resp_1",
  "object": "response",
  "created_at": 1700000000,
  "status": "completed",
  "model": "gpt-4o-mini",
  "output": [{
    "type": "message",
    "id": "msg_1",
    "status": "completed",
    "role": "assistant",
    "content": [{"type": "output_text", "text": "Two words", "annotations": []}]
  }]
}`

type capturedRequest struct {
	Authorization string
	Model         string
	Input         string
}

func fakeOpenAI(t *testing.T, status int, body string) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()

	requests := make(chan capturedRequest, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/responses") {
			http.NotFound(w, r)
			return
		}
		var payload struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &payload)
		requests <- capturedRequest{
			Authorization: r.Header.Get("Authorization"),
			Model:         payload.Model,
			Input:         payload.Input,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, requests
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("returns summary and word counts", func(t *testing.T) {
		t.Parallel()

		server, requests := fakeOpenAI(t, http.StatusOK, completedResponse)

		s := openai.NewSummarizer(openai.WithBaseURL(server.URL+"/v1/"), openai.WithModel("gpt-test"))
		req := &pagesum.SummaryRequest{Text: "alpha beta gamma", Type: pagesum.SummaryDetailed, MaxWords: 50}
		result, err := s.Summarize(context.Background(), req, "sk-test")

		require.NoError(t, err)
		assert.Equal(t, "Two words", result.Summary)
		assert.Equal(t, 3, result.OriginalWordCount)
		assert.Equal(t, 2, result.SummaryWordCount)

		got := <-requests
		assert.Equal(t, "Bearer sk-test", got.Authorization)
		assert.Equal(t, "gpt-test", got.Model)
		assert.Equal(t, pagesum.BuildPrompt(req), got.Input)
	})

	t.Run("returns no summary error for empty output", func(t *testing.T) {
		t.Parallel()

		server, _ := fakeOpenAI(t, http.StatusOK,
			`{"id":"resp_2","object":"response","created_at":1700000000,"status":"completed","model":"gpt-4o-mini","output":[]}`)

		s := openai.NewSummarizer(openai.WithBaseURL(server.URL + "/v1/"))
		_, err := s.Summarize(context.Background(), &pagesum.SummaryRequest{Text: "text"}, "sk-test")

		require.Error(t, err)
		assert.Equal(t, pagesum.ENOSUMMARY, pagesum.ErrorCode(err))
	})

	t.Run("does not retry failures", func(t *testing.T) {
		t.Parallel()

		server, requests := fakeOpenAI(t, http.StatusInternalServerError,
			`{"error":{"message":"boom","type":"server_error"}}`)

		s := openai.NewSummarizer(openai.WithBaseURL(server.URL + "/v1/"))
		_, err := s.Summarize(context.Background(), &pagesum.SummaryRequest{Text: "text"}, "sk-test")

		require.Error(t, err)
		assert.Equal(t, pagesum.ESUMMARIZE, pagesum.ErrorCode(err))
		assert.Len(t, requests, 1)
	})

	t.Run("requires credential", func(t *testing.T) {
		t.Parallel()

		_, err := openai.NewSummarizer().Summarize(context.Background(), &pagesum.SummaryRequest{Text: "text"}, "")

		require.Error(t, err)
		assert.Equal(t, "Missing OpenAI API key", pagesum.ErrorMessage(err))
	})
}
