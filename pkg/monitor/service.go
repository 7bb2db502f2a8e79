package monitor

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/changewatch/pkg/domain"
)

//go:generate moq -out mocks/checker.go -pkg mocks -skip-ensure -fmt goimports . Checker

// Checker runs pipeline cycles
type Checker interface {
	RunForAllActiveSources(ctx context.Context) domain.RunSummary
	CheckSourceByID(ctx context.Context, id int64) (*domain.CheckResult, error)
}

// Service is the monitoring facade used by the API: settings writes, status, on-demand checks.
// Every write of a monitoring setting re-derives the scheduler state from both settings combined.
type Service struct {
	settings        SettingStore
	history         HistoryStore
	checker         Checker
	scheduler       *Scheduler
	defaultInterval time.Duration

	mu              sync.Mutex // serializes settings writes with scheduler updates
	currentInterval int64
}

// NewService makes a monitor service with its own scheduler running checker passes
func NewService(ctx context.Context, settings SettingStore, history HistoryStore, checker Checker, defaultInterval time.Duration) *Service {
	res := &Service{settings: settings, history: history, checker: checker, defaultInterval: defaultInterval}
	res.scheduler = NewScheduler(ctx, func(ctx context.Context) { checker.RunForAllActiveSources(ctx) })
	return res
}

// Init seeds the interval setting if missing and applies the stored monitoring state
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if strings.TrimSpace(values[domain.SettingCheckInterval]) == "" && s.defaultInterval > 0 {
		seed := map[string]string{domain.SettingCheckInterval: strconv.FormatInt(s.defaultInterval.Milliseconds(), 10)}
		if err := s.settings.SetSettings(ctx, seed); err != nil {
			return fmt.Errorf("seed check interval: %w", err)
		}
		values[domain.SettingCheckInterval] = seed[domain.SettingCheckInterval]
	}
	return s.apply(values)
}

// Settings returns all stored settings
func (s *Service) Settings(ctx context.Context) (map[string]string, error) {
	return s.settings.GetSettings(ctx)
}

// UpdateSettings validates and stores settings. If a monitoring key is among them, the scheduler is
// started or stopped according to the combination of the enabled flag and interval.
func (s *Service) UpdateSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return &domain.ValidationError{Field: "settings", Reason: "nothing to update"}
	}
	for k, v := range values {
		if err := validateSetting(k, v); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.settings.SetSettings(ctx, values); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	monitoring := false
	for k := range values {
		if domain.IsMonitoringSetting(k) {
			monitoring = true
			break
		}
	}
	if !monitoring {
		return nil
	}

	all, err := s.settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	return s.apply(all)
}

// apply starts or stops the scheduler per derived state, caller holds mu
func (s *Service) apply(values map[string]string) error {
	state := DeriveMonitoringState(values, s.defaultInterval.Milliseconds())
	if !state.ShouldRun {
		s.scheduler.Stop()
		lgr.Printf("[INFO] monitoring disabled (enabled=%q, interval=%dms)", values[domain.SettingEmailEnabled], state.IntervalMs)
		return nil
	}
	if running, _ := s.scheduler.Status(); running && s.currentInterval == state.IntervalMs {
		return nil
	}
	if err := s.scheduler.Start(state.IntervalMs); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	s.currentInterval = state.IntervalMs
	return nil
}

// Status reports scheduler state and the latest detected version
func (s *Service) Status(ctx context.Context) (domain.MonitorStatus, error) {
	values, err := s.settings.GetSettings(ctx)
	if err != nil {
		return domain.MonitorStatus{}, fmt.Errorf("load settings: %w", err)
	}
	state := DeriveMonitoringState(values, s.defaultInterval.Milliseconds())
	running, expr := s.scheduler.Status()
	res := domain.MonitorStatus{
		Enabled:            values[domain.SettingEmailEnabled] == "true",
		IntervalMs:         state.IntervalMs,
		IsRunning:          running,
		ScheduleExpression: expr,
	}
	latest, err := s.history.ListHistory(ctx, 1)
	if err != nil {
		return domain.MonitorStatus{}, fmt.Errorf("load history: %w", err)
	}
	if len(latest) > 0 {
		res.LastKnownVersion = latest[0].Version
	}
	return res, nil
}

// History returns recent version records, newest first
func (s *Service) History(ctx context.Context, limit int) ([]domain.VersionRecord, error) {
	return s.history.ListHistory(ctx, limit)
}

// TriggerCheck starts a pass over all active sources in background and returns immediately
func (s *Service) TriggerCheck() {
	lgr.Printf("[INFO] on-demand check requested")
	s.scheduler.TriggerNow()
}

// CheckSource runs a pipeline cycle for one source synchronously
func (s *Service) CheckSource(ctx context.Context, id int64) (*domain.CheckResult, error) {
	return s.checker.CheckSourceByID(ctx, id)
}

// Shutdown stops the scheduler and waits for in-flight runs
func (s *Service) Shutdown() {
	s.scheduler.Shutdown()
}

// validateSetting checks values of known keys, unknown keys are stored as is
func validateSetting(key, value string) error {
	switch key {
	case domain.SettingEmailEnabled:
		if value != "true" && value != "false" {
			return &domain.ValidationError{Field: key, Reason: "must be \"true\" or \"false\""}
		}
	case domain.SettingCheckInterval:
		if _, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err != nil {
			return &domain.ValidationError{Field: key, Reason: "must be an integer number of milliseconds"}
		}
	case domain.SettingEmail:
		for _, addr := range strings.Split(value, ",") {
			if addr = strings.TrimSpace(addr); addr == "" {
				continue
			}
			if _, err := mail.ParseAddress(addr); err != nil {
				return &domain.ValidationError{Field: key, Reason: fmt.Sprintf("bad address %q", addr)}
			}
		}
	case "":
		return &domain.ValidationError{Field: "key", Reason: "is required"}
	}
	return nil
}
