package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestAnalyzePrimary(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"EVENT DETAILS: Forest Rally"}}]}`))
	}))
	defer srv.Close()

	svc := NewAnalysisService(AnalysisConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}, discardLogger())

	result := svc.Analyze(context.Background(), "Supplementary regulations for Forest Rally")

	assert.Equal(t, AnalysisSourcePrimary, result.Source)
	assert.Equal(t, "EVENT DETAILS: Forest Rally", result.Analysis)
	assert.Empty(t, result.Error)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[1].Content, "Supplementary regulations")
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota"}}`))
	}))
	defer srv.Close()

	svc := NewAnalysisService(AnalysisConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}, discardLogger())

	result := svc.Analyze(context.Background(), "some document")

	assert.Equal(t, AnalysisSourceFallback, result.Source)
	assert.NotEmpty(t, result.Analysis, "fallback always produces an analysis")
	assert.Contains(t, result.Error, "quota")
}

func TestAnalyzeFallsBackWithoutKey(t *testing.T) {
	svc := NewAnalysisService(AnalysisConfig{}, discardLogger())

	result := svc.Analyze(context.Background(), "some document")

	assert.Equal(t, AnalysisSourceFallback, result.Source)
	assert.NotEmpty(t, result.Analysis)
	assert.NotEmpty(t, result.Error)
}

func TestAnalyzeTruncatesLongDocuments(t *testing.T) {
	svc := NewAnalysisService(AnalysisConfig{}, discardLogger())

	result := svc.Analyze(context.Background(), strings.Repeat("x", 12000))

	assert.Equal(t, AnalysisSourceFallback, result.Source)
	assert.Contains(t, result.Analysis, "10000 characters")
}

func TestFallbackDeterministic(t *testing.T) {
	assert.Equal(t, fallbackAnalysis(42), fallbackAnalysis(42))
}

func TestTruncateDocument(t *testing.T) {
	t.Run("short input untouched", func(t *testing.T) {
		assert.Equal(t, "abc", truncateDocument("abc", 10))
	})

	t.Run("cuts on the limit for ascii", func(t *testing.T) {
		got := truncateDocument(strings.Repeat("x", 20), 10)
		assert.Len(t, got, 10)
	})

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		// "ä" is two bytes; the odd prefix puts every rune boundary off the
		// limit, so a byte-indexed cut would land mid-rune.
		doc := "a" + strings.Repeat("ä", 10)
		got := truncateDocument(doc, 10)

		assert.True(t, utf8.ValidString(got))
		assert.Len(t, got, 9)
	})
}
