// Package monitor runs the changelog check pipeline on a schedule and keeps scheduler state in sync with settings
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/changewatch/pkg/changelog"
	"github.com/umputun/changewatch/pkg/domain"
	"github.com/umputun/changewatch/pkg/notify"
)

//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . HistoryStore
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingStore
//go:generate moq -out mocks/analyses.go -pkg mocks -skip-ensure -fmt goimports . AnalysisStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/synthesizer.go -pkg mocks -skip-ensure -fmt goimports . Synthesizer
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// SourceStore provides monitored sources and their bookkeeping
type SourceStore interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ListActiveSources(ctx context.Context) ([]*domain.Source, error)
	UpdateSourceChecked(ctx context.Context, id int64, version string, checkedAt time.Time) error
}

// HistoryStore records detected versions and their notification state
type HistoryStore interface {
	RecordVersion(ctx context.Context, sourceID int64, version string, detectedAt time.Time) (bool, error)
	GetLatestVersion(ctx context.Context, sourceID int64) (string, error)
	ListHistory(ctx context.Context, limit int) ([]domain.VersionRecord, error)
	ListPendingNotifications(ctx context.Context, maxAttempts int) ([]domain.VersionRecord, error)
	ClaimNotification(ctx context.Context, sourceID int64, version string) (bool, error)
	ReleaseNotification(ctx context.Context, sourceID int64, version string) error
	MarkNotified(ctx context.Context, sourceID int64, version string) error
}

// SettingStore is the flat settings map
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	GetSettings(ctx context.Context) (map[string]string, error)
	SetSettings(ctx context.Context, values map[string]string) error
}

// AnalysisStore caches analyses per (source, version)
type AnalysisStore interface {
	GetAnalysis(ctx context.Context, sourceID int64, version string) (*domain.Analysis, error)
	SaveAnalysis(ctx context.Context, sourceID int64, a *domain.Analysis) error
}

// Fetcher retrieves changelog documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Analyzer summarizes changelog content
type Analyzer interface {
	Analyze(ctx context.Context, content string) (*domain.Analysis, error)
}

// Synthesizer produces WAV audio for a text
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Notifier delivers release notifications
type Notifier interface {
	NotifyRelease(ctx context.Context, rel notify.Release) error
}

// PipelineDeps are the collaborators of the pipeline. Synthesizer is optional.
type PipelineDeps struct {
	Sources     SourceStore
	History     HistoryStore
	Settings    SettingStore
	Analyses    AnalysisStore
	Fetcher     Fetcher
	Analyzer    Analyzer
	Synthesizer Synthesizer
	Notifier    Notifier
}

// PipelineConfig holds retry and reconciliation parameters
type PipelineConfig struct {
	FetchRetries      int
	FetchRetryDelay   time.Duration
	Reconcile         bool
	MaxNotifyAttempts int
}

// Pipeline runs fetch, parse, compare, record, analyze, synthesize, email and mark-notified for sources
type Pipeline struct {
	PipelineDeps
	cfg      PipelineConfig
	inFlight sync.Map // source id -> struct{}
	now      func() time.Time
}

// NewPipeline creates a notification pipeline
func NewPipeline(deps PipelineDeps, cfg PipelineConfig) *Pipeline {
	if cfg.FetchRetries <= 0 {
		cfg.FetchRetries = 1
	}
	if cfg.FetchRetryDelay <= 0 {
		cfg.FetchRetryDelay = time.Second
	}
	if cfg.MaxNotifyAttempts <= 0 {
		cfg.MaxNotifyAttempts = 3
	}
	return &Pipeline{PipelineDeps: deps, cfg: cfg, now: time.Now}
}

// RunForAllActiveSources checks every active source sequentially, then retries pending notifications.
// Failures of a single source are logged and never abort the batch.
func (p *Pipeline) RunForAllActiveSources(ctx context.Context) domain.RunSummary {
	var summary domain.RunSummary
	sources, err := p.Sources.ListActiveSources(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list active sources: %v", err)
		return summary
	}
	lgr.Printf("[DEBUG] checking %d active sources", len(sources))

	for _, src := range sources {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] check run interrupted: %v", ctx.Err())
			return summary
		}
		summary.Checked++
		res, err := p.safeCheck(ctx, src)
		if err != nil {
			summary.Failed++
			lgr.Printf("[WARN] check of %s failed: %v", src.Identifier(), err)
			continue
		}
		if res.NewVersion {
			summary.NewVersions++
		}
		if res.Notified {
			summary.Notified++
		}
	}

	summary.Reconciled = p.Reconcile(ctx)
	lgr.Printf("[INFO] check run completed: %d checked, %d new, %d notified, %d failed, %d reconciled",
		summary.Checked, summary.NewVersions, summary.Notified, summary.Failed, summary.Reconciled)
	return summary
}

// CheckSourceByID runs one pipeline cycle for the source with the given id
func (p *Pipeline) CheckSourceByID(ctx context.Context, id int64) (*domain.CheckResult, error) {
	src, err := p.Sources.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.safeCheck(ctx, src)
}

// safeCheck runs CheckSource with a panic boundary
func (p *Pipeline) safeCheck(ctx context.Context, src *domain.Source) (res *domain.CheckResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during check of %s: %v", src.Identifier(), r)
		}
	}()
	return p.CheckSource(ctx, src)
}

// CheckSource runs one pipeline cycle for the source. A version equal to the last known one ends
// the cycle without any analysis, synthesis or email.
func (p *Pipeline) CheckSource(ctx context.Context, src *domain.Source) (*domain.CheckResult, error) {
	release, ok := p.acquire(src.ID)
	if !ok {
		return nil, fmt.Errorf("source %s: %w", src.Identifier(), domain.ErrCheckInProgress)
	}
	defer release()

	res := &domain.CheckResult{SourceID: src.ID}

	// fetch
	doc, err := p.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Identifier(), err)
	}

	// parse
	entry := changelog.Parse(doc)
	if entry == nil {
		return nil, fmt.Errorf("parse %s: %w", src.Identifier(), domain.ErrNoVersion)
	}
	res.Version = entry.Version

	// compare
	lastKnown, err := p.History.GetLatestVersion(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("get last known version of %s: %w", src.Identifier(), err)
	}
	if lastKnown == "" {
		lastKnown = src.LastVersion
	}
	now := p.now()
	if lastKnown == entry.Version {
		lgr.Printf("[DEBUG] %s: version %s already known", src.Identifier(), entry.Version)
		if err := p.Sources.UpdateSourceChecked(ctx, src.ID, entry.Version, now); err != nil {
			lgr.Printf("[WARN] failed to update check time of %s: %v", src.Identifier(), err)
		}
		return res, nil
	}

	// record, detection is kept even if notification is skipped or fails later
	res.NewVersion = true
	inserted, err := p.History.RecordVersion(ctx, src.ID, entry.Version, now)
	if err != nil {
		return nil, fmt.Errorf("record version %s of %s: %w", entry.Version, src.Identifier(), err)
	}
	if err := p.Sources.UpdateSourceChecked(ctx, src.ID, entry.Version, now); err != nil {
		return nil, fmt.Errorf("update source %s: %w", src.Identifier(), err)
	}
	if !inserted {
		// changelog fell back to an already recorded version, e.g. a yanked release. Its notification,
		// if any failed, belongs to the reconciliation pass with its attempts limit.
		lgr.Printf("[INFO] %s: version %s reverted to already recorded %s", src.Identifier(), lastKnown, entry.Version)
		return res, nil
	}
	lgr.Printf("[INFO] %s: detected version %s (previous %q)", src.Identifier(), entry.Version, lastKnown)

	// gate
	enabled, err := p.emailEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		lgr.Printf("[DEBUG] email notifications disabled, %s %s recorded only", src.Identifier(), entry.Version)
		return res, nil
	}

	notified, err := p.notifyVersion(ctx, src, entry.Version, entry.Content)
	if err != nil {
		return res, err
	}
	res.Notified = notified
	return res, nil
}

// Reconcile retries notifications for versions which are still the latest of their source but were
// never notified, e.g. because analysis or send failed. Returns the number of notifications sent.
func (p *Pipeline) Reconcile(ctx context.Context) int {
	if !p.cfg.Reconcile {
		return 0
	}
	enabled, err := p.emailEnabled(ctx)
	if err != nil || !enabled {
		return 0
	}
	pending, err := p.History.ListPendingNotifications(ctx, p.cfg.MaxNotifyAttempts)
	if err != nil {
		lgr.Printf("[WARN] failed to list pending notifications: %v", err)
		return 0
	}

	sent := 0
	for _, rec := range pending {
		if ctx.Err() != nil {
			break
		}
		ok, err := p.reconcileRecord(ctx, rec)
		if err != nil {
			lgr.Printf("[WARN] reconcile %s %s (attempt %d): %v", rec.SourceName, rec.Version, rec.NotifyAttempts+1, err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent
}

func (p *Pipeline) reconcileRecord(ctx context.Context, rec domain.VersionRecord) (bool, error) {
	src, err := p.Sources.GetSource(ctx, rec.SourceID)
	if err != nil {
		return false, err
	}
	release, ok := p.acquire(src.ID)
	if !ok {
		return false, nil // regular check in progress will handle it
	}
	defer release()

	// content is needed only if the analysis isn't cached yet
	content := ""
	if _, err := p.Analyses.GetAnalysis(ctx, src.ID, rec.Version); err != nil {
		doc, err := p.fetch(ctx, src.URL)
		if err != nil {
			return false, fmt.Errorf("fetch %s: %w", src.Identifier(), err)
		}
		entry := changelog.Parse(doc)
		if entry == nil {
			return false, fmt.Errorf("parse %s: %w", src.Identifier(), domain.ErrNoVersion)
		}
		if entry.Version != rec.Version {
			lgr.Printf("[DEBUG] %s moved to %s, skip reconcile of %s", src.Identifier(), entry.Version, rec.Version)
			return false, nil
		}
		content = entry.Content
	}
	lgr.Printf("[INFO] retrying notification for %s %s", src.Identifier(), rec.Version)
	return p.notifyVersion(ctx, src, rec.Version, content)
}

// notifyVersion claims the (source, version) record and runs analyze, synthesize, email and mark-notified.
// Returns false without error if another run holds the claim or the version was already notified.
func (p *Pipeline) notifyVersion(ctx context.Context, src *domain.Source, version, content string) (bool, error) {
	claimed, err := p.History.ClaimNotification(ctx, src.ID, version)
	if err != nil {
		return false, fmt.Errorf("claim notification: %w", err)
	}
	if !claimed {
		lgr.Printf("[DEBUG] notification for %s %s already sent or claimed", src.Identifier(), version)
		return false, nil
	}

	sent := false
	defer func() {
		if sent {
			return
		}
		if err := p.History.ReleaseNotification(context.WithoutCancel(ctx), src.ID, version); err != nil {
			lgr.Printf("[WARN] failed to release notification claim for %s %s: %v", src.Identifier(), version, err)
		}
	}()

	// analyze
	analysis, err := p.analysis(ctx, src, version, content)
	if err != nil {
		return false, err
	}

	// synthesize, failure only drops the attachment
	var audio []byte
	if p.Synthesizer != nil {
		voice, verr := p.Settings.GetSetting(ctx, domain.SettingVoice)
		if verr != nil {
			lgr.Printf("[WARN] failed to read voice setting: %v", verr)
		}
		if audio, err = p.Synthesizer.Synthesize(ctx, analysis.TLDR, voice); err != nil {
			lgr.Printf("[WARN] audio for %s %s unavailable, sending without attachment: %v", src.Identifier(), version, err)
			audio = nil
		}
	}

	// email
	recipient, err := p.Settings.GetSetting(ctx, domain.SettingEmail)
	if err != nil {
		lgr.Printf("[WARN] failed to read recipient setting: %v", err)
	}
	rel := notify.Release{
		SourceName: src.Name,
		SourceURL:  src.URL,
		Version:    version,
		Analysis:   analysis,
		Audio:      audio,
		Recipient:  recipient,
	}
	if err := p.Notifier.NotifyRelease(ctx, rel); err != nil {
		return false, fmt.Errorf("notify %s %s: %w", src.Identifier(), version, err)
	}
	sent = true

	// mark notified
	if err := p.History.MarkNotified(context.WithoutCancel(ctx), src.ID, version); err != nil {
		return true, fmt.Errorf("mark %s %s notified: %w", src.Identifier(), version, err)
	}
	lgr.Printf("[INFO] notification for %s %s sent", src.Identifier(), version)
	return true, nil
}

// analysis returns the cached analysis or asks the analyzer and caches the result
func (p *Pipeline) analysis(ctx context.Context, src *domain.Source, version, content string) (*domain.Analysis, error) {
	cached, err := p.Analyses.GetAnalysis(ctx, src.ID, version)
	if err == nil {
		lgr.Printf("[DEBUG] using cached analysis of %s %s", src.Identifier(), version)
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		lgr.Printf("[WARN] analysis cache lookup for %s %s failed: %v", src.Identifier(), version, err)
	}
	if content == "" {
		return nil, fmt.Errorf("no content for %s %s: %w", src.Identifier(), version, domain.ErrAnalysisUnavailable)
	}

	analysis, err := p.Analyzer.Analyze(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("analyze %s %s: %w", src.Identifier(), version, err)
	}
	analysis.Version = version // cache key, the model may echo it differently
	analysis.Normalize()
	if err := p.Analyses.SaveAnalysis(ctx, src.ID, analysis); err != nil {
		lgr.Printf("[WARN] failed to cache analysis of %s %s: %v", src.Identifier(), version, err)
	}
	return analysis, nil
}

// fetch retrieves the document, retrying network errors and retryable status codes
func (p *Pipeline) fetch(ctx context.Context, url string) (string, error) {
	var doc string
	var permanent error
	err := repeater.NewBackoff(p.cfg.FetchRetries, p.cfg.FetchRetryDelay, repeater.WithMaxDelay(30*time.Second)).Do(ctx, func() error {
		body, err := p.Fetcher.Fetch(ctx, url)
		if err == nil {
			doc = body
			return nil
		}
		var fe *changelog.FetchError
		if errors.As(err, &fe) && !fe.Retryable() {
			permanent = err
			return nil
		}
		lgr.Printf("[DEBUG] fetch %s failed, will retry: %v", url, err)
		return err
	})
	if permanent != nil {
		return "", permanent
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}

func (p *Pipeline) emailEnabled(ctx context.Context) (bool, error) {
	v, err := p.Settings.GetSetting(ctx, domain.SettingEmailEnabled)
	if err != nil {
		return false, fmt.Errorf("read %s setting: %w", domain.SettingEmailEnabled, err)
	}
	return v == "true", nil
}

// acquire marks the source as being checked, false if another check holds it
func (p *Pipeline) acquire(id int64) (release func(), ok bool) {
	if _, loaded := p.inFlight.LoadOrStore(id, struct{}{}); loaded {
		return nil, false
	}
	return func() { p.inFlight.Delete(id) }, true
}
