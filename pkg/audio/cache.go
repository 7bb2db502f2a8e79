package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/changewatch/pkg/domain"
)

//go:generate moq -out mocks/synthesizer.go -pkg mocks -skip-ensure -fmt goimports . Synthesizer Store

// Synthesizer produces audio for a text and voice
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Store persists synthesized audio keyed by text fingerprint and voice
type Store interface {
	GetAudio(ctx context.Context, textHash, voice string) ([]byte, error)
	SaveAudio(ctx context.Context, textHash, voice string, data []byte) error
}

// CachedSynthesizer serves repeated (text, voice) requests from the store
type CachedSynthesizer struct {
	synth        Synthesizer
	store        Store
	defaultVoice string
}

// NewCachedSynthesizer wraps synth with a store-backed cache
func NewCachedSynthesizer(synth Synthesizer, store Store, defaultVoice string) *CachedSynthesizer {
	return &CachedSynthesizer{synth: synth, store: store, defaultVoice: defaultVoice}
}

// Synthesize returns cached audio if present, otherwise synthesizes and stores it.
// Cache failures are logged and never fail the call.
func (c *CachedSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = c.defaultVoice
	}
	key := TextHash(text)

	data, err := c.store.GetAudio(ctx, key, voice)
	switch {
	case err == nil:
		log.Printf("[DEBUG] audio cache hit for %s/%s", key[:12], voice)
		return data, nil
	case !errors.Is(err, domain.ErrNotFound):
		log.Printf("[WARN] audio cache lookup failed: %v", err)
	}

	data, err = c.synth.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveAudio(ctx, key, voice, data); err != nil {
		log.Printf("[WARN] failed to cache audio: %v", err)
	}
	return data, nil
}

// TextHash returns hex sha256 fingerprint of the text
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
