package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	lgr.Setup(lgr.Out(io.Discard), lgr.Err(io.Discard))
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: filepath.Join(wd, "testdata", "test_config.yml")}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, "server did not start")

	// interval seeded from monitor.default_interval, monitoring off until enabled
	resp, err := http.Get("http://127.0.0.1:18765/api/v1/monitor/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, false, status["enabled"])
	assert.Equal(t, false, status["isRunning"])
	assert.InDelta(t, 3600000, status["intervalMs"], 0.1)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults with overrides", func(t *testing.T) {
		cfg, err := loadConfig(Opts{Listen: ":9999", DB: "file::memory:"})
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Server.Listen)
		assert.Equal(t, "file::memory:", cfg.Database.DSN)
		assert.Equal(t, time.Hour, cfg.Monitor.DefaultInterval)
	})

	t.Run("file", func(t *testing.T) {
		t.Setenv("DB_PATH", "/tmp/cw")
		cfg, err := loadConfig(Opts{Config: "testdata/test_config.yml"})
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:18765", cfg.Server.Listen)
		assert.Contains(t, cfg.Database.DSN, "/tmp/cw/changewatch.db")
		assert.False(t, cfg.Monitor.ReconcileEnabled())
	})
}

func TestSetupLog(t *testing.T) {
	defer lgr.Setup(lgr.Out(io.Discard), lgr.Err(io.Discard))

	SetupLog(true, false)
	SetupLog(false, true)
	SetupLog(true, true, "secret1", "", "secret2")
}
