package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagesum"
	"github.com/fwojciec/pagesum/mock"
	pageslog "github.com/fwojciec/pagesum/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.Extractor{
		ExtractFn: func(html []byte, contentType string) *pagesum.ExtractedContent {
			return pagesum.NewExtractedContent("Headline", "three words here")
		},
	}

	content := pageslog.NewLoggingExtractor(inner, logger).Extract([]byte("<html></html>"), "")

	assert.Equal(t, "Headline", content.Title)
	output := buf.String()
	assert.Contains(t, output, "msg=extract")
	assert.Contains(t, output, "title=Headline")
	assert.Contains(t, output, "words=3")
	assert.Contains(t, output, "chars=16")
}
