// Package llm turns changelog entries into structured release analyses using an OpenAI-compatible API
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/changewatch/pkg/config"
	"github.com/umputun/changewatch/pkg/domain"
)

// maxContentLen limits changelog text sent to the model
const maxContentLen = 30000

// errMalformed marks responses which can't be turned into an analysis, such responses are retried
var errMalformed = errors.New("malformed analysis response")

// Analyzer uses LLM to summarize changelog entries
type Analyzer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	attempts  int
}

// NewAnalyzer creates a new LLM analyzer
func NewAnalyzer(cfg config.LLMConfig) *Analyzer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Analyzer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		attempts:  3,
	}
}

// default system prompt for release analysis
const defaultSystemPrompt = `You are an assistant that analyzes software release notes for a developer audience.
Given a changelog entry, produce a JSON object with exactly these fields:
- version: the version string from the entry header
- tldr: one or two sentences summarizing the release, suitable to be read aloud
- categories: object with arrays
  - criticalBreakingChanges: changes that break existing usage
  - removals: array of objects {feature, severity, why}, severity is one of "low", "medium", "high"
  - majorFeatures: notable new capabilities
  - importantFixes: bug fixes users will care about
  - newSlashCommands: new slash commands, if any
  - terminalImprovements: terminal and UI improvements
  - apiChanges: changes to APIs, SDKs or configuration
- actionItems: concrete things a user should do after upgrading
- sentiment: one of "positive", "neutral", "critical"

Use empty arrays for categories with nothing to report. Do not invent changes not present in the entry.
Respond with JSON only.`

// Analyze produces a structured analysis of the changelog content. Returns domain.ErrAnalysisUnavailable
// if no API key is configured, the provider fails or the response can't be parsed.
func (a *Analyzer) Analyze(ctx context.Context, content string) (*domain.Analysis, error) {
	if a.config.APIKey == "" {
		return nil, fmt.Errorf("no api key configured: %w", domain.ErrAnalysisUnavailable)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty content: %w", domain.ErrAnalysisUnavailable)
	}

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	prompt := a.buildPrompt(content)

	// retry if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < a.attempts; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       a.config.Model,
			Temperature: float32(a.config.Temperature),
			MaxTokens:   a.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: a.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		// add JSON response format if enabled
		if a.config.UseJSONMode {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		start := time.Now()
		resp, err := a.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %v: %w", err, domain.ErrAnalysisUnavailable)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from llm: %w", domain.ErrAnalysisUnavailable)
		}
		log.Printf("[DEBUG] llm analysis response in %v, tokens %d", time.Since(start).Round(time.Millisecond), resp.Usage.TotalTokens)

		analysis, err := parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return analysis, nil
		}
		lastErr = err
		log.Printf("[WARN] llm analysis attempt %d: %v", attempt+1, err)
		if !errors.Is(err, errMalformed) {
			break
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %v: %w", a.attempts, lastErr, domain.ErrAnalysisUnavailable)
}

// buildPrompt creates the user message for the LLM
func (a *Analyzer) buildPrompt(content string) string {
	if len(content) > maxContentLen {
		content = truncate(content, maxContentLen) + "\n..."
	}
	var sb strings.Builder
	sb.WriteString("Analyze this changelog entry:\n\n")
	sb.WriteString(content)
	sb.WriteString("\n\n")
	if a.config.UseJSONMode {
		sb.WriteString("Respond with a JSON object.")
	} else {
		sb.WriteString("Respond with a single JSON object and nothing else.")
	}
	return sb.String()
}

// parseResponse decodes the analysis, first as is and then from the outermost brace-delimited
// object in case the model wrapped the payload in prose or code fences
func parseResponse(content string) (*domain.Analysis, error) {
	var res domain.Analysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &res); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end == -1 || start >= end {
			return nil, fmt.Errorf("no json object found in response: %w", errMalformed)
		}
		res = domain.Analysis{}
		if err := json.Unmarshal([]byte(content[start:end+1]), &res); err != nil {
			return nil, fmt.Errorf("failed to parse json object: %v: %w", err, errMalformed)
		}
	}
	if strings.TrimSpace(res.TLDR) == "" {
		return nil, fmt.Errorf("missing tldr: %w", errMalformed)
	}
	res.Normalize()
	return &res, nil
}

// truncate cuts s to at most n bytes without splitting a multi-byte character
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
