package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/changewatch/pkg/audio"
	"github.com/umputun/changewatch/pkg/changelog"
	"github.com/umputun/changewatch/pkg/config"
	"github.com/umputun/changewatch/pkg/llm"
	"github.com/umputun/changewatch/pkg/monitor"
	"github.com/umputun/changewatch/pkg/notify"
	"github.com/umputun/changewatch/pkg/repository"
	"github.com/umputun/changewatch/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if empty"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB_DSN" description:"database DSN, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env is optional, values already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting changewatch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// mask credentials in all further log output
	SetupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey, cfg.TTS.APIKey, cfg.Mail.APIKey)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	notifier, err := notify.NewNotifier(notify.NewMailer(cfg.Mail), cfg.Mail.To)
	if err != nil {
		return fmt.Errorf("failed to make notifier: %w", err)
	}
	synth := audio.NewCachedSynthesizer(audio.NewTTS(cfg.TTS), repos.Audio, cfg.TTS.DefaultVoice)

	pipeline := monitor.NewPipeline(monitor.PipelineDeps{
		Sources:  repos.Source,
		History:  repos.History,
		Settings: repos.Setting,
		Analyses: repos.Analysis,
		Fetcher: changelog.NewHTTPFetcher(changelog.FetcherConfig{
			Timeout:     cfg.Fetch.Timeout,
			UserAgent:   cfg.Fetch.UserAgent,
			ConvertHTML: cfg.Fetch.ConvertHTMLEnabled(),
		}),
		Analyzer:    llm.NewAnalyzer(cfg.LLM),
		Synthesizer: synth,
		Notifier:    notifier,
	}, monitor.PipelineConfig{
		FetchRetries:      cfg.Monitor.FetchRetries,
		FetchRetryDelay:   cfg.Monitor.FetchRetryDelay,
		Reconcile:         cfg.Monitor.ReconcileEnabled(),
		MaxNotifyAttempts: cfg.Monitor.MaxNotifyAttempts,
	})

	svc := monitor.NewService(ctx, repos.Setting, repos.History, pipeline, cfg.Monitor.DefaultInterval)
	if err := svc.Init(ctx); err != nil {
		return fmt.Errorf("failed to init monitor: %w", err)
	}

	srv := server.New(server.Deps{
		Config:   cfg,
		Sources:  repos.Source,
		Analyses: repos.Analysis,
		Monitor:  svc,
		Synth:    synth,
	}, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		svc.Shutdown() // waits for in-flight checks before the database is closed
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file or falls back to defaults, then applies cli overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

// SetupLog configures lgr and redirects the standard logger, secrets are masked in the output
func SetupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
