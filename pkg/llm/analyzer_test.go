package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/changewatch/pkg/config"
	"github.com/umputun/changewatch/pkg/domain"
)

const validAnalysis = `{
  "version": "2.0.74",
  "tldr": "Faster startup and a fix for bar.",
  "categories": {
    "criticalBreakingChanges": [],
    "removals": [{"feature": "legacy mode", "severity": "high", "why": "superseded"}],
    "majorFeatures": ["plugin marketplace"],
    "importantFixes": ["bar no longer crashes"],
    "newSlashCommands": ["/context"],
    "terminalImprovements": [],
    "apiChanges": []
  },
  "actionItems": ["remove legacy mode flag"],
  "sentiment": "positive"
}`

func chatServer(t *testing.T, replies ...string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := atomic.AddInt32(&calls, 1)
		reply := replies[len(replies)-1]
		if int(n) <= len(replies) {
			reply = replies[n-1]
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: reply}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   1000,
		Timeout:     5 * time.Second,
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		srv, calls := chatServer(t, validAnalysis)
		res, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 2.0.74\nFix: bar")
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))

		assert.Equal(t, "2.0.74", res.Version)
		assert.Equal(t, "Faster startup and a fix for bar.", res.TLDR)
		assert.Equal(t, []string{"plugin marketplace"}, res.Categories.MajorFeatures)
		require.Len(t, res.Categories.Removals, 1)
		assert.Equal(t, "legacy mode", res.Categories.Removals[0].Feature)
		assert.Equal(t, domain.SentimentPositive, res.Sentiment)
		assert.NotNil(t, res.Categories.TerminalImprovements)
	})

	t.Run("json wrapped in prose", func(t *testing.T) {
		srv, _ := chatServer(t, "Here is the analysis:\n```json\n"+validAnalysis+"\n```\nLet me know if you need more.")
		res, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 2.0.74\nFix: bar")
		require.NoError(t, err)
		assert.Equal(t, "2.0.74", res.Version)
	})

	t.Run("missing fields normalized", func(t *testing.T) {
		srv, _ := chatServer(t, `{"version":"1.0.0","tldr":"small release","sentiment":"excited"}`)
		res, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 1.0.0\n- x")
		require.NoError(t, err)
		assert.Equal(t, domain.SentimentNeutral, res.Sentiment)
		assert.Equal(t, []string{}, res.ActionItems)
		assert.Equal(t, []domain.Removal{}, res.Categories.Removals)
	})

	t.Run("retries malformed then succeeds", func(t *testing.T) {
		srv, calls := chatServer(t, "no json here", validAnalysis)
		res, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 2.0.74\nFix: bar")
		require.NoError(t, err)
		assert.Equal(t, "2.0.74", res.Version)
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})

	t.Run("gives up after repeated garbage", func(t *testing.T) {
		srv, calls := chatServer(t, "{not json}")
		_, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 2.0.74\nFix: bar")
		require.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
		assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	})

	t.Run("no api key", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:1")
		cfg.APIKey = ""
		_, err := NewAnalyzer(cfg).Analyze(context.Background(), "## 1.0.0")
		require.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
	})

	t.Run("provider failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
		}))
		defer srv.Close()
		_, err := NewAnalyzer(testConfig(srv.URL)).Analyze(context.Background(), "## 1.0.0")
		require.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
	})
}

func TestAnalyzer_SystemPromptAndJSONMode(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: validAnalysis}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.SystemPrompt = "custom prompt"
	cfg.UseJSONMode = true
	_, err := NewAnalyzer(cfg).Analyze(context.Background(), "## 2.0.74\nFix: bar")
	require.NoError(t, err)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "custom prompt", got.Messages[0].Content)
	assert.Contains(t, got.Messages[1].Content, "## 2.0.74\nFix: bar")
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "plain", content: validAnalysis},
		{name: "prefixed", content: "Sure! " + validAnalysis},
		{name: "no braces", content: "nothing", wantErr: true},
		{name: "broken", content: `{"tldr": }`, wantErr: true},
		{name: "empty tldr", content: `{"version":"1.0.0"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseResponse(tt.content)
			if tt.wantErr {
				require.ErrorIs(t, err, errMalformed)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.TLDR)
		})
	}
}

func TestAnalyzer_buildPromptKeepsValidUTF8(t *testing.T) {
	a := NewAnalyzer(config.LLMConfig{APIKey: "k"})
	content := strings.Repeat("a", maxContentLen-1) + "é and more"
	prompt := a.buildPrompt(content)
	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("a", maxContentLen-1)+"\n...")
	assert.NotContains(t, prompt, "é")

	assert.Equal(t, "日本", truncate("日本語", 7))
	assert.Equal(t, "日本語", truncate("日本語", 9))
	assert.Empty(t, truncate("語", 2))
}
