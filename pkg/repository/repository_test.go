package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/changewatch/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repos.Ping(ctx))

	src, err := repos.Source.CreateSource(ctx, "Claude Code", "https://example.com/CHANGELOG.md")
	require.NoError(t, err)
	assert.NotZero(t, src.ID)
	assert.True(t, src.IsActive)
	assert.Empty(t, src.LastVersion)
	assert.Nil(t, src.LastCheckedAt)

	inserted, err := repos.History.RecordVersion(ctx, src.ID, "1.0.0", time.Now())
	require.NoError(t, err)
	assert.True(t, inserted)
	require.NoError(t, repos.Analysis.SaveAnalysis(ctx, src.ID, &domain.Analysis{Version: "1.0.0", TLDR: "first"}))

	// delete cascades to history and analyses
	require.NoError(t, repos.Source.DeleteSource(ctx, src.ID))
	_, err = repos.Source.GetSource(ctx, src.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	hist, err := repos.History.ListHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, hist)
	_, err = repos.Analysis.GetAnalysis(ctx, src.ID, "1.0.0")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "/nonexistent/dir/that/does/not/exist/db.sqlite"})
	assert.Error(t, err)
}

func TestSourceRepository_CRUD(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	first, err := repos.Source.CreateSource(ctx, "first", "https://example.com/a.md")
	require.NoError(t, err)
	second, err := repos.Source.CreateSource(ctx, "second", "https://example.com/b.md")
	require.NoError(t, err)

	t.Run("list ordered by creation", func(t *testing.T) {
		all, err := repos.Source.ListSources(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})

	t.Run("duplicate url conflicts", func(t *testing.T) {
		_, err := repos.Source.CreateSource(ctx, "dup", "https://example.com/a.md")
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("url match is case sensitive", func(t *testing.T) {
		src, err := repos.Source.CreateSource(ctx, "upper", "https://example.com/A.md")
		require.NoError(t, err)
		require.NoError(t, repos.Source.DeleteSource(ctx, src.ID))
	})

	t.Run("invalid url rejected before mutation", func(t *testing.T) {
		for _, u := range []string{"", "not a url", "/relative/path", "ftp://example.com/x"} {
			_, err := repos.Source.CreateSource(ctx, "bad", u)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve, "url %q", u)
		}
		all, err := repos.Source.ListSources(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		_, err := repos.Source.CreateSource(ctx, "  ", "https://example.com/c.md")
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	})

	t.Run("partial update", func(t *testing.T) {
		inactive := false
		name := "renamed"
		upd, err := repos.Source.UpdateSource(ctx, second.ID, domain.SourceUpdate{Name: &name, IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "renamed", upd.Name)
		assert.False(t, upd.IsActive)
		assert.Equal(t, "https://example.com/b.md", upd.URL)

		active, err := repos.Source.ListActiveSources(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, first.ID, active[0].ID)
	})

	t.Run("update url conflict", func(t *testing.T) {
		u := "https://example.com/a.md"
		_, err := repos.Source.UpdateSource(ctx, second.ID, domain.SourceUpdate{URL: &u})
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("update invalid url", func(t *testing.T) {
		u := "::bad"
		_, err := repos.Source.UpdateSource(ctx, second.ID, domain.SourceUpdate{URL: &u})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("update and delete missing", func(t *testing.T) {
		name := "x"
		_, err := repos.Source.UpdateSource(ctx, 9999, domain.SourceUpdate{Name: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.ErrorIs(t, repos.Source.DeleteSource(ctx, 9999), domain.ErrNotFound)
	})

	t.Run("checked bookkeeping", func(t *testing.T) {
		checked := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, repos.Source.UpdateSourceChecked(ctx, first.ID, "2.0.74", checked))
		src, err := repos.Source.GetSource(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "2.0.74", src.LastVersion)
		require.NotNil(t, src.LastCheckedAt)
		assert.True(t, checked.Equal(*src.LastCheckedAt))
	})
}

func TestSourceRepository_ConcurrentCreate(t *testing.T) {
	cfg := Config{DSN: "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)", MaxOpenConns: 4}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	defer repos.Close()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repos.Source.CreateSource(context.Background(), "same", "https://example.com/same.md")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, e := range errs {
		switch {
		case e == nil:
			ok++
		case errors.Is(e, domain.ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", e)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}

func TestHistoryRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src, err := repos.Source.CreateSource(ctx, "product", "https://example.com/changes.md")
	require.NoError(t, err)

	latest, err := repos.History.GetLatestVersion(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, latest)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inserted, err := repos.History.RecordVersion(ctx, src.ID, "1.0.0", base)
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = repos.History.RecordVersion(ctx, src.ID, "1.1.0", base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, inserted)

	t.Run("insert is idempotent", func(t *testing.T) {
		inserted, err := repos.History.RecordVersion(ctx, src.ID, "1.1.0", base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.False(t, inserted)
		hist, err := repos.History.ListHistory(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, hist, 2)
	})

	t.Run("latest and newest first listing", func(t *testing.T) {
		latest, err := repos.History.GetLatestVersion(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", latest)

		hist, err := repos.History.ListHistory(ctx, 1)
		require.NoError(t, err)
		require.Len(t, hist, 1)
		assert.Equal(t, "1.1.0", hist[0].Version)
		assert.Equal(t, "product", hist[0].SourceName)
		assert.False(t, hist[0].Notified)
	})

	t.Run("claim, release and mark notified", func(t *testing.T) {
		ok, err := repos.History.ClaimNotification(ctx, src.ID, "1.1.0")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repos.History.ClaimNotification(ctx, src.ID, "1.1.0")
		require.NoError(t, err)
		assert.False(t, ok, "second claim must fail while first is held")

		require.NoError(t, repos.History.ReleaseNotification(ctx, src.ID, "1.1.0"))
		ok, err = repos.History.ClaimNotification(ctx, src.ID, "1.1.0")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, repos.History.MarkNotified(ctx, src.ID, "1.1.0"))
		rec, err := repos.History.GetVersionRecord(ctx, src.ID, "1.1.0")
		require.NoError(t, err)
		assert.True(t, rec.Notified)
		assert.Equal(t, 2, rec.NotifyAttempts)

		ok, err = repos.History.ClaimNotification(ctx, src.ID, "1.1.0")
		require.NoError(t, err)
		assert.False(t, ok, "notified record can't be claimed")
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := repos.History.GetVersionRecord(ctx, src.ID, "9.9.9")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestHistoryRepository_ConcurrentClaim(t *testing.T) {
	cfg := Config{DSN: "file:" + filepath.Join(t.TempDir(), "claim.db") + "?_pragma=busy_timeout(5000)", MaxOpenConns: 4}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	src, err := repos.Source.CreateSource(ctx, "p", "https://example.com/p.md")
	require.NoError(t, err)
	_, err = repos.History.RecordVersion(ctx, src.ID, "1.0.0", time.Now())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	claims := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repos.History.ClaimNotification(ctx, src.ID, "1.0.0")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				claims++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, claims)
}

func TestHistoryRepository_ListPendingNotifications(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	a, err := repos.Source.CreateSource(ctx, "a", "https://example.com/a.md")
	require.NoError(t, err)
	b, err := repos.Source.CreateSource(ctx, "b", "https://example.com/b.md")
	require.NoError(t, err)

	now := time.Now()
	// a: 1.0.0 superseded by 1.1.0, both un-notified
	_, err = repos.History.RecordVersion(ctx, a.ID, "1.0.0", now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = repos.History.RecordVersion(ctx, a.ID, "1.1.0", now)
	require.NoError(t, err)
	require.NoError(t, repos.Source.UpdateSourceChecked(ctx, a.ID, "1.1.0", now))
	// b: latest already notified
	_, err = repos.History.RecordVersion(ctx, b.ID, "3.0.0", now)
	require.NoError(t, err)
	require.NoError(t, repos.Source.UpdateSourceChecked(ctx, b.ID, "3.0.0", now))
	require.NoError(t, repos.History.MarkNotified(ctx, b.ID, "3.0.0"))

	// records never attempted, i.e. skipped by the email gate, are not pending
	pending, err := repos.History.ListPendingNotifications(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// a failed attempt makes the latest record pending
	ok, err := repos.History.ClaimNotification(ctx, a.ID, "1.1.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repos.History.ReleaseNotification(ctx, a.ID, "1.1.0"))
	pending, err = repos.History.ListPendingNotifications(ctx, 3)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].SourceID)
	assert.Equal(t, "1.1.0", pending[0].Version)

	// attempts cap
	for i := 0; i < 3; i++ {
		ok, err := repos.History.ClaimNotification(ctx, a.ID, "1.1.0")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, repos.History.ReleaseNotification(ctx, a.ID, "1.1.0"))
	}
	pending, err = repos.History.ListPendingNotifications(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// inactive sources are skipped
	pending, err = repos.History.ListPendingNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	inactive := false
	_, err = repos.Source.UpdateSource(ctx, a.ID, domain.SourceUpdate{IsActive: &inactive})
	require.NoError(t, err)
	pending, err = repos.History.ListPendingNotifications(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCacheRepositories(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	src, err := repos.Source.CreateSource(ctx, "p", "https://example.com/p.md")
	require.NoError(t, err)

	t.Run("analysis", func(t *testing.T) {
		_, err := repos.Analysis.GetAnalysis(ctx, src.ID, "1.0.0")
		require.ErrorIs(t, err, domain.ErrNotFound)

		a := &domain.Analysis{
			Version: "1.0.0",
			TLDR:    "faster startup",
			Categories: domain.Categories{
				MajorFeatures: []string{"plugins"},
				Removals:      []domain.Removal{{Feature: "old flag", Severity: "high", Why: "unused"}},
			},
			ActionItems: []string{"update config"},
			Sentiment:   domain.SentimentPositive,
		}
		require.NoError(t, repos.Analysis.SaveAnalysis(ctx, src.ID, a))
		got, err := repos.Analysis.GetAnalysis(ctx, src.ID, "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "faster startup", got.TLDR)
		assert.Equal(t, []string{"plugins"}, got.Categories.MajorFeatures)
		assert.Equal(t, "old flag", got.Categories.Removals[0].Feature)
		assert.Equal(t, domain.SentimentPositive, got.Sentiment)
		assert.False(t, got.CreatedAt.IsZero())

		a.TLDR = "overwritten"
		require.NoError(t, repos.Analysis.SaveAnalysis(ctx, src.ID, a))
		got, err = repos.Analysis.GetAnalysis(ctx, src.ID, "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "overwritten", got.TLDR)
	})

	t.Run("audio", func(t *testing.T) {
		_, err := repos.Audio.GetAudio(ctx, "hash", "alloy")
		require.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, repos.Audio.SaveAudio(ctx, "hash", "alloy", []byte{1, 2, 3}))
		data, err := repos.Audio.GetAudio(ctx, "hash", "alloy")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)

		_, err = repos.Audio.GetAudio(ctx, "hash", "nova")
		require.ErrorIs(t, err, domain.ErrNotFound, "voice is part of the key")
	})
}

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	val, err := repos.Setting.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, repos.Setting.SetSetting(ctx, domain.SettingEmailEnabled, "true"))
	require.NoError(t, repos.Setting.SetSettings(ctx, map[string]string{
		domain.SettingCheckInterval: "3600000",
		domain.SettingEmailEnabled:  "false",
	}))

	all, err := repos.Setting.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		domain.SettingEmailEnabled:  "false",
		domain.SettingCheckInterval: "3600000",
	}, all)
}
