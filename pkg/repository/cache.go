package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/changewatch/pkg/domain"
)

// AnalysisRepository caches AI analyses per (source, version)
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis cache repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// GetAnalysis returns the cached analysis, domain.ErrNotFound if missing
func (r *AnalysisRepository) GetAnalysis(ctx context.Context, sourceID int64, version string) (*domain.Analysis, error) {
	var row struct {
		Data      string    `db:"data"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &row, "SELECT data, created_at FROM analyses WHERE source_id = ? AND version = ?",
		sourceID, version)
	if err != nil {
		return nil, fmt.Errorf("get analysis %s for source %d: %w", version, sourceID, notFound(err))
	}
	var a domain.Analysis
	if err := json.Unmarshal([]byte(row.Data), &a); err != nil {
		return nil, fmt.Errorf("decode analysis %s for source %d: %w", version, sourceID, err)
	}
	a.CreatedAt = row.CreatedAt
	return &a, nil
}

// SaveAnalysis stores the analysis, overwriting a previous one for the same key
func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, sourceID int64, a *domain.Analysis) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	err = withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `INSERT INTO analyses (source_id, version, data, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(source_id, version) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
			sourceID, a.Version, string(data), time.Now().UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("save analysis %s for source %d: %w", a.Version, sourceID, err)
	}
	return nil
}

// AudioRepository caches synthesized WAV payloads by (text hash, voice)
type AudioRepository struct {
	db *sqlx.DB
}

// NewAudioRepository creates a new audio cache repository
func NewAudioRepository(db *sqlx.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

// GetAudio returns the cached payload, domain.ErrNotFound if missing
func (r *AudioRepository) GetAudio(ctx context.Context, textHash, voice string) ([]byte, error) {
	var data []byte
	err := r.db.GetContext(ctx, &data, "SELECT data FROM audio_cache WHERE text_hash = ? AND voice = ?", textHash, voice)
	if err != nil {
		return nil, fmt.Errorf("get audio %s/%s: %w", textHash, voice, notFound(err))
	}
	return data, nil
}

// SaveAudio stores the payload, last write wins
func (r *AudioRepository) SaveAudio(ctx context.Context, textHash, voice string, data []byte) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `INSERT INTO audio_cache (text_hash, voice, data, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(text_hash, voice) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
			textHash, voice, data, time.Now().UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("save audio %s/%s: %w", textHash, voice, err)
	}
	return nil
}
