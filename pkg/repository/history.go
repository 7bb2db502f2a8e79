package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/changewatch/pkg/domain"
)

// claimTTL is how long a notification claim is honoured; older claims are considered abandoned
const claimTTL = 30 * time.Minute

// HistoryRepository handles detected version records
type HistoryRepository struct {
	db *sqlx.DB
}

// versionRecordSQL represents a version record for SQL operations
type versionRecordSQL struct {
	ID             int64      `db:"id"`
	SourceID       int64      `db:"source_id"`
	SourceName     string     `db:"source_name"`
	Version        string     `db:"version"`
	DetectedAt     time.Time  `db:"detected_at"`
	Notified       bool       `db:"notified"`
	ClaimedAt      *time.Time `db:"claimed_at"`
	NotifyAttempts int        `db:"notify_attempts"`
}

const recordColumns = `r.id, r.source_id, s.name AS source_name, r.version, r.detected_at, r.notified,
	r.claimed_at, r.notify_attempts`

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// RecordVersion inserts a (source, version) record if absent. Returns true if a new row was created.
func (r *HistoryRepository) RecordVersion(ctx context.Context, sourceID int64, version string, detectedAt time.Time) (bool, error) {
	var inserted bool
	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, `INSERT INTO version_records (source_id, version, detected_at)
			VALUES (?, ?, ?) ON CONFLICT(source_id, version) DO NOTHING`, sourceID, version, detectedAt.UTC())
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		inserted = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("record version %s for source %d: %w", version, sourceID, err)
	}
	return inserted, nil
}

// GetLatestVersion returns the most recently detected version of a source, empty if none
func (r *HistoryRepository) GetLatestVersion(ctx context.Context, sourceID int64) (string, error) {
	var version string
	err := r.db.GetContext(ctx, &version, `SELECT version FROM version_records WHERE source_id = ?
		ORDER BY detected_at DESC, id DESC LIMIT 1`, sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get latest version for source %d: %w", sourceID, err)
	}
	return version, nil
}

// GetVersionRecord retrieves the record of a (source, version) pair
func (r *HistoryRepository) GetVersionRecord(ctx context.Context, sourceID int64, version string) (*domain.VersionRecord, error) {
	var rec versionRecordSQL
	err := r.db.GetContext(ctx, &rec, `SELECT `+recordColumns+` FROM version_records r
		JOIN sources s ON s.id = r.source_id WHERE r.source_id = ? AND r.version = ?`, sourceID, version)
	if err != nil {
		return nil, fmt.Errorf("get version record %s for source %d: %w", version, sourceID, notFound(err))
	}
	return rec.toDomain(), nil
}

// ListHistory returns recent version records, newest first
func (r *HistoryRepository) ListHistory(ctx context.Context, limit int) ([]domain.VersionRecord, error) {
	var rows []versionRecordSQL
	err := r.db.SelectContext(ctx, &rows, `SELECT `+recordColumns+` FROM version_records r
		JOIN sources s ON s.id = r.source_id ORDER BY r.detected_at DESC, r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	res := make([]domain.VersionRecord, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// ListPendingNotifications returns un-notified records which are still the latest version of an
// active source, had at least one failed notification attempt and fewer than maxAttempts in total.
// Records skipped by the email gate have no attempts and are never listed.
func (r *HistoryRepository) ListPendingNotifications(ctx context.Context, maxAttempts int) ([]domain.VersionRecord, error) {
	var rows []versionRecordSQL
	err := r.db.SelectContext(ctx, &rows, `SELECT `+recordColumns+` FROM version_records r
		JOIN sources s ON s.id = r.source_id
		WHERE r.notified = 0 AND r.notify_attempts > 0 AND r.notify_attempts < ? AND s.is_active = 1 AND s.last_version = r.version
		AND (r.claimed_at IS NULL OR r.claimed_at < ?)
		ORDER BY r.detected_at, r.id`, maxAttempts, time.Now().UTC().Add(-claimTTL))
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}
	res := make([]domain.VersionRecord, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// ClaimNotification atomically takes ownership of notifying (source, version). Returns false if the
// record is already notified or claimed by another run. A successful claim counts as an attempt.
func (r *HistoryRepository) ClaimNotification(ctx context.Context, sourceID int64, version string) (bool, error) {
	var claimed bool
	now := time.Now().UTC()
	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, `UPDATE version_records
			SET claimed_at = ?, notify_attempts = notify_attempts + 1
			WHERE source_id = ? AND version = ? AND notified = 0 AND (claimed_at IS NULL OR claimed_at < ?)`,
			now, sourceID, version, now.Add(-claimTTL))
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		claimed = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("claim notification %s for source %d: %w", version, sourceID, err)
	}
	return claimed, nil
}

// ReleaseNotification drops a claim without marking the record notified
func (r *HistoryRepository) ReleaseNotification(ctx context.Context, sourceID int64, version string) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `UPDATE version_records SET claimed_at = NULL
			WHERE source_id = ? AND version = ? AND notified = 0`, sourceID, version)
		return err
	})
	if err != nil {
		return fmt.Errorf("release notification %s for source %d: %w", version, sourceID, err)
	}
	return nil
}

// MarkNotified flips notified to true, once
func (r *HistoryRepository) MarkNotified(ctx context.Context, sourceID int64, version string) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `UPDATE version_records SET notified = 1, claimed_at = NULL
			WHERE source_id = ? AND version = ? AND notified = 0`, sourceID, version)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark notified %s for source %d: %w", version, sourceID, err)
	}
	return nil
}

func (v *versionRecordSQL) toDomain() *domain.VersionRecord {
	return &domain.VersionRecord{
		ID:             v.ID,
		SourceID:       v.SourceID,
		SourceName:     v.SourceName,
		Version:        v.Version,
		DetectedAt:     v.DetectedAt,
		Notified:       v.Notified,
		NotifyAttempts: v.NotifyAttempts,
	}
}
