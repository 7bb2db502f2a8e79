package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/changewatch/pkg/domain"
)

// SourceRepository handles source registry operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	URL           string     `db:"url"`
	IsActive      bool       `db:"is_active"`
	LastVersion   string     `db:"last_version"`
	LastCheckedAt *time.Time `db:"last_checked_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource registers a new active source. Fails with ValidationError on bad input and
// with domain.ErrConflict if the url is already registered.
func (r *SourceRepository) CreateSource(ctx context.Context, name, url string) (*domain.Source, error) {
	if err := domain.ValidateSourceName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateSourceURL(url); err != nil {
		return nil, err
	}

	src := &sourceSQL{Name: strings.TrimSpace(name), URL: url, IsActive: true, CreatedAt: time.Now().UTC()}
	query := `INSERT INTO sources (name, url, is_active, created_at) VALUES (:name, :url, :is_active, :created_at)`
	err := withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, src)
		if err != nil {
			return err
		}
		src.ID, err = result.LastInsertId()
		return err
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("source with url %s: %w", url, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	return src.toDomain(), nil
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var src sourceSQL
	if err := r.db.GetContext(ctx, &src, "SELECT * FROM sources WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get source %d: %w", id, notFound(err))
	}
	return src.toDomain(), nil
}

// ListSources returns all sources ordered by creation time
func (r *SourceRepository) ListSources(ctx context.Context) ([]*domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources ORDER BY created_at, id")
}

// ListActiveSources returns active sources ordered by creation time
func (r *SourceRepository) ListActiveSources(ctx context.Context) ([]*domain.Source, error) {
	return r.list(ctx, "SELECT * FROM sources WHERE is_active = 1 ORDER BY created_at, id")
}

func (r *SourceRepository) list(ctx context.Context, query string) ([]*domain.Source, error) {
	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	res := make([]*domain.Source, len(rows))
	for i := range rows {
		res[i] = rows[i].toDomain()
	}
	return res, nil
}

// UpdateSource applies a partial update to user-editable fields. URL uniqueness is re-checked.
func (r *SourceRepository) UpdateSource(ctx context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error) {
	if upd.Name != nil {
		if err := domain.ValidateSourceName(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.URL != nil {
		if err := domain.ValidateSourceURL(*upd.URL); err != nil {
			return nil, err
		}
	}
	if upd.Empty() {
		return r.GetSource(ctx, id)
	}

	var sets []string
	var args []any
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *upd.URL)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *upd.IsActive)
	}
	args = append(args, id)
	query := "UPDATE sources SET " + strings.Join(sets, ", ") + " WHERE id = ?" //nolint:gosec // column names are fixed

	var affected int64
	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("source with url %s: %w", *upd.URL, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("update source %d: %w", id, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update source %d: %w", id, domain.ErrNotFound)
	}
	return r.GetSource(ctx, id)
}

// UpdateSourceChecked records the last detected version and check time
func (r *SourceRepository) UpdateSourceChecked(ctx context.Context, id int64, version string, checkedAt time.Time) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE sources SET last_version = ?, last_checked_at = ? WHERE id = ?",
			version, checkedAt.UTC(), id)
		return err
	})
	if err != nil {
		return fmt.Errorf("update source %d checked: %w", id, err)
	}
	return nil
}

// DeleteSource removes a source together with its history and cached analyses
func (r *SourceRepository) DeleteSource(ctx context.Context, id int64) error {
	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		result, err := tx.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		// explicit cascade, foreign_keys pragma is per-connection
		if _, err := tx.ExecContext(ctx, "DELETE FROM version_records WHERE source_id = ?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM analyses WHERE source_id = ?", id); err != nil {
			return err
		}
		return tx.Commit()
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete source %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete source %d: %w", id, err)
	}
	return nil
}

func (s *sourceSQL) toDomain() *domain.Source {
	return &domain.Source{
		ID:            s.ID,
		Name:          s.Name,
		URL:           s.URL,
		IsActive:      s.IsActive,
		LastVersion:   s.LastVersion,
		LastCheckedAt: s.LastCheckedAt,
		CreatedAt:     s.CreatedAt,
	}
}
