package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/changewatch/pkg/audio/mocks"
	"github.com/umputun/changewatch/pkg/domain"
)

func TestCachedSynthesizer(t *testing.T) {
	stored := map[string][]byte{}
	store := &mocks.StoreMock{
		GetAudioFunc: func(_ context.Context, textHash, voice string) ([]byte, error) {
			if d, ok := stored[textHash+"/"+voice]; ok {
				return d, nil
			}
			return nil, domain.ErrNotFound
		},
		SaveAudioFunc: func(_ context.Context, textHash, voice string, data []byte) error {
			stored[textHash+"/"+voice] = data
			return nil
		},
	}
	synth := &mocks.SynthesizerMock{
		SynthesizeFunc: func(_ context.Context, text, voice string) ([]byte, error) {
			return []byte(text + ":" + voice), nil
		},
	}
	c := NewCachedSynthesizer(synth, store, "alloy")

	data, err := c.Synthesize(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello:alloy"), data)

	data, err = c.Synthesize(context.Background(), "hello", "alloy")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello:alloy"), data)
	assert.Len(t, synth.SynthesizeCalls(), 1, "second call served from cache")

	_, err = c.Synthesize(context.Background(), "hello", "nova")
	require.NoError(t, err)
	assert.Len(t, synth.SynthesizeCalls(), 2, "voice is part of the key")

	require.Len(t, store.SaveAudioCalls(), 2)
	assert.Equal(t, TextHash("hello"), store.SaveAudioCalls()[0].TextHash)
}

func TestCachedSynthesizer_Errors(t *testing.T) {
	t.Run("synthesis failure not cached", func(t *testing.T) {
		store := &mocks.StoreMock{
			GetAudioFunc:  func(context.Context, string, string) ([]byte, error) { return nil, domain.ErrNotFound },
			SaveAudioFunc: func(context.Context, string, string, []byte) error { return nil },
		}
		synth := &mocks.SynthesizerMock{
			SynthesizeFunc: func(context.Context, string, string) ([]byte, error) {
				return nil, domain.ErrSynthesisUnavailable
			},
		}
		_, err := NewCachedSynthesizer(synth, store, "alloy").Synthesize(context.Background(), "x", "")
		require.ErrorIs(t, err, domain.ErrSynthesisUnavailable)
		assert.Empty(t, store.SaveAudioCalls())
	})

	t.Run("store failures ignored", func(t *testing.T) {
		store := &mocks.StoreMock{
			GetAudioFunc:  func(context.Context, string, string) ([]byte, error) { return nil, errors.New("db down") },
			SaveAudioFunc: func(context.Context, string, string, []byte) error { return errors.New("db down") },
		}
		synth := &mocks.SynthesizerMock{
			SynthesizeFunc: func(context.Context, string, string) ([]byte, error) { return []byte("wav"), nil },
		}
		data, err := NewCachedSynthesizer(synth, store, "alloy").Synthesize(context.Background(), "x", "")
		require.NoError(t, err)
		assert.Equal(t, []byte("wav"), data)
	})
}

func TestTextHash(t *testing.T) {
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", TextHash("hello"))
	assert.Len(t, TextHash(""), 64)
}
