package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/changewatch/pkg/domain"
)

func TestServer_Sources(t *testing.T) {
	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	src := &domain.Source{ID: 1, Name: "Claude Code", URL: "https://example.com/CHANGELOG.md", IsActive: true, CreatedAt: created}

	t.Run("list", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.ListSourcesFunc = func(context.Context) ([]*domain.Source, error) {
			return []*domain.Source{src, {ID: 2, Name: "other", URL: "https://example.com/b", LastVersion: "1.0"}}, nil
		}
		w := do(t, deps.server(), "GET", "/api/v1/sources", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res []sourceInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 2)
		assert.Equal(t, "Claude Code", res[0].Name)
		assert.True(t, res[0].IsActive)
		assert.Equal(t, "1.0", res[1].LastVersion)
	})

	t.Run("create", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.CreateSourceFunc = func(_ context.Context, name, url string) (*domain.Source, error) {
			return &domain.Source{ID: 5, Name: name, URL: url, IsActive: true}, nil
		}
		w := do(t, deps.server(), "POST", "/api/v1/sources", `{"name":"tool","url":"https://example.com/c.md"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var res sourceInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, int64(5), res.ID)
		assert.Equal(t, "https://example.com/c.md", res.URL)
		assert.Empty(t, deps.sources.UpdateSourceCalls())
	})

	t.Run("create inactive", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.CreateSourceFunc = func(_ context.Context, name, url string) (*domain.Source, error) {
			return &domain.Source{ID: 5, Name: name, URL: url, IsActive: true}, nil
		}
		deps.sources.UpdateSourceFunc = func(_ context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error) {
			require.NotNil(t, upd.IsActive)
			return &domain.Source{ID: id, Name: "tool", IsActive: *upd.IsActive}, nil
		}
		w := do(t, deps.server(), "POST", "/api/v1/sources", `{"name":"tool","url":"https://example.com/c.md","isActive":false}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"isActive":false`)
	})

	t.Run("create errors", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.CreateSourceFunc = func(_ context.Context, _, url string) (*domain.Source, error) {
			if url == "dup" {
				return nil, fmt.Errorf("create source: %w", domain.ErrConflict)
			}
			return nil, &domain.ValidationError{Field: "url", Reason: "must be an absolute URL"}
		}
		srv := deps.server()

		assert.Equal(t, http.StatusConflict, do(t, srv, "POST", "/api/v1/sources", `{"name":"a","url":"dup"}`).Code)
		w := do(t, srv, "POST", "/api/v1/sources", `{"name":"a","url":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be an absolute URL")
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/v1/sources", `{"name":"a"}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/v1/sources", `{bad json`).Code)
		assert.Len(t, deps.sources.CreateSourceCalls(), 2)
	})

	t.Run("get", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.GetSourceFunc = func(_ context.Context, id int64) (*domain.Source, error) {
			if id == 1 {
				return src, nil
			}
			return nil, domain.ErrNotFound
		}
		srv := deps.server()

		w := do(t, srv, "GET", "/api/v1/sources/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Claude Code"`)
		assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/v1/sources/2", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/v1/sources/abc", "").Code)
	})

	t.Run("update", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.UpdateSourceFunc = func(_ context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error) {
			assert.Nil(t, upd.URL)
			require.NotNil(t, upd.Name)
			return &domain.Source{ID: id, Name: *upd.Name, URL: src.URL}, nil
		}
		w := do(t, deps.server(), "PATCH", "/api/v1/sources/1", `{"name":"renamed"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"renamed"`)
	})

	t.Run("delete", func(t *testing.T) {
		deps := newTestDeps()
		deps.sources.DeleteSourceFunc = func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return domain.ErrNotFound
		}
		srv := deps.server()
		assert.Equal(t, http.StatusNoContent, do(t, srv, "DELETE", "/api/v1/sources/1", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, srv, "DELETE", "/api/v1/sources/9", "").Code)
	})
}

func TestServer_CheckSource(t *testing.T) {
	deps := newTestDeps()
	deps.monitor.CheckSourceFunc = func(_ context.Context, id int64) (*domain.CheckResult, error) {
		switch id {
		case 1:
			return &domain.CheckResult{SourceID: 1, Version: "2.0.74", NewVersion: true, Notified: true}, nil
		case 2:
			return nil, domain.ErrCheckInProgress
		default:
			return nil, errors.New("fetch failed")
		}
	}
	srv := deps.server()

	w := do(t, srv, "POST", "/api/v1/sources/1/check", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.CheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, domain.CheckResult{SourceID: 1, Version: "2.0.74", NewVersion: true, Notified: true}, res)

	assert.Equal(t, http.StatusConflict, do(t, srv, "POST", "/api/v1/sources/2/check", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(t, srv, "POST", "/api/v1/sources/3/check", "").Code)
}

func TestServer_AnalysisAndAudio(t *testing.T) {
	deps := newTestDeps()
	deps.sources.GetSourceFunc = func(_ context.Context, id int64) (*domain.Source, error) {
		switch id {
		case 1:
			return &domain.Source{ID: 1, Name: "Claude Code", LastVersion: "2.0.74"}, nil
		case 2:
			return &domain.Source{ID: 2, Name: "fresh"}, nil
		default:
			return &domain.Source{ID: id, LastVersion: "0.1"}, nil
		}
	}
	deps.analyses.GetAnalysisFunc = func(_ context.Context, sourceID int64, version string) (*domain.Analysis, error) {
		if sourceID == 1 && version == "2.0.74" {
			return &domain.Analysis{Version: version, TLDR: "faster startup", Sentiment: domain.SentimentPositive}, nil
		}
		return nil, domain.ErrNotFound
	}
	deps.monitor.SettingsFunc = func(context.Context) (map[string]string, error) {
		return map[string]string{domain.SettingVoice: "nova"}, nil
	}
	deps.synth.SynthesizeFunc = func(_ context.Context, text, _ string) ([]byte, error) {
		if text == "" {
			return nil, domain.ErrSynthesisUnavailable
		}
		return []byte("RIFFdata"), nil
	}
	srv := deps.server()

	t.Run("analysis", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/sources/1/analysis", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tldr":"faster startup"`)
		assert.Contains(t, w.Body.String(), `"version":"2.0.74"`)

		assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/v1/sources/2/analysis", "").Code, "no version yet")
		assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/v1/sources/3/analysis", "").Code, "no cached analysis")
	})

	t.Run("audio with voice setting", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/sources/1/audio", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
		assert.Equal(t, "RIFFdata", w.Body.String())
		calls := deps.synth.SynthesizeCalls()
		require.NotEmpty(t, calls)
		assert.Equal(t, "faster startup", calls[len(calls)-1].Text)
		assert.Equal(t, "nova", calls[len(calls)-1].Voice)
	})

	t.Run("audio with voice override", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/sources/1/audio?voice=echo", "")
		require.Equal(t, http.StatusOK, w.Code)
		calls := deps.synth.SynthesizeCalls()
		assert.Equal(t, "echo", calls[len(calls)-1].Voice)
	})

	t.Run("audio unavailable", func(t *testing.T) {
		deps.analyses.GetAnalysisFunc = func(context.Context, int64, string) (*domain.Analysis, error) {
			return &domain.Analysis{Version: "2.0.74"}, nil
		}
		assert.Equal(t, http.StatusServiceUnavailable, do(t, srv, "GET", "/api/v1/sources/1/audio", "").Code)
	})
}

func TestServer_Monitor(t *testing.T) {
	deps := newTestDeps()
	settings := map[string]string{domain.SettingEmailEnabled: "false"}
	deps.monitor.TriggerCheckFunc = func() {}
	deps.monitor.StatusFunc = func(context.Context) (domain.MonitorStatus, error) {
		return domain.MonitorStatus{Enabled: true, IntervalMs: 3600000, LastKnownVersion: "2.0.74", IsRunning: true,
			ScheduleExpression: "0 * * * *"}, nil
	}
	deps.monitor.HistoryFunc = func(_ context.Context, limit int) ([]domain.VersionRecord, error) {
		return []domain.VersionRecord{{SourceID: 1, SourceName: "Claude Code", Version: "2.0.74", Notified: true}}, nil
	}
	deps.monitor.SettingsFunc = func(context.Context) (map[string]string, error) { return settings, nil }
	deps.monitor.UpdateSettingsFunc = func(_ context.Context, values map[string]string) error {
		if values[domain.SettingEmailEnabled] == "maybe" {
			return &domain.ValidationError{Field: domain.SettingEmailEnabled, Reason: "must be \"true\" or \"false\""}
		}
		for k, v := range values {
			settings[k] = v
		}
		return nil
	}
	srv := deps.server()

	t.Run("trigger", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/check", "")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Len(t, deps.monitor.TriggerCheckCalls(), 1)
	})

	t.Run("status", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/monitor/status", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"enabled":true,"intervalMs":3600000,"lastKnownVersion":"2.0.74","isRunning":true,
			"scheduleExpression":"0 * * * *"}`, w.Body.String())
	})

	t.Run("history limits", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/history", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sourceName":"Claude Code"`)
		assert.Equal(t, defaultHistoryLimit, deps.monitor.HistoryCalls()[0].Limit)

		require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/v1/history?limit=10000", "").Code)
		assert.Equal(t, maxHistoryLimit, deps.monitor.HistoryCalls()[1].Limit)

		assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/v1/history?limit=-1", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/v1/history?limit=x", "").Code)
		assert.Len(t, deps.monitor.HistoryCalls(), 2)
	})

	t.Run("settings", func(t *testing.T) {
		w := do(t, srv, "PUT", "/api/v1/settings", `{"emailNotificationsEnabled":"true","notificationCheckInterval":"60000"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"emailNotificationsEnabled":"true","notificationCheckInterval":"60000"}`, w.Body.String())

		w = do(t, srv, "GET", "/api/v1/settings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"emailNotificationsEnabled":"true"`)

		assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/v1/settings", `{"emailNotificationsEnabled":"maybe"}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/v1/settings", `["not","a","map"]`).Code)
	})
}
