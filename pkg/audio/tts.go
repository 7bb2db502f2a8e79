package audio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	log "github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/changewatch/pkg/config"
	"github.com/umputun/changewatch/pkg/domain"
)

// maxInputLen is the speech API input limit
const maxInputLen = 4096

// TTS synthesizes speech with an OpenAI-compatible speech endpoint
type TTS struct {
	client *openai.Client
	config config.TTSConfig
}

// NewTTS makes a speech client
func NewTTS(cfg config.TTSConfig) *TTS {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &TTS{client: openai.NewClientWithConfig(clientConfig), config: cfg}
}

// Synthesize returns WAV audio of the text spoken with the given voice, the configured default
// voice is used if voice is empty. Returns domain.ErrSynthesisUnavailable on any failure.
func (t *TTS) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if t.config.APIKey == "" {
		return nil, fmt.Errorf("no api key configured: %w", domain.ErrSynthesisUnavailable)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty text: %w", domain.ErrSynthesisUnavailable)
	}
	text = truncate(text, maxInputLen)
	if voice == "" {
		voice = t.config.DefaultVoice
	}

	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	resp, err := t.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(t.config.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %v: %w", err, domain.ErrSynthesisUnavailable)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %v: %w", err, domain.ErrSynthesisUnavailable)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("empty speech response: %w", domain.ErrSynthesisUnavailable)
	}
	log.Printf("[DEBUG] synthesized %d bytes of pcm, voice %s", len(pcm), voice)
	return EncodeWAV(pcm, SampleRate), nil
}

// truncate cuts s to at most n bytes, backing off to a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
