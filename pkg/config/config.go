package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=Public base URL used for links in the RSS feed"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:changewatch.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Monitor MonitorConfig `yaml:"monitor" json:"monitor" jsonschema:"description=Changelog monitoring configuration"`
	Fetch   FetchConfig   `yaml:"fetch" json:"fetch" jsonschema:"description=Changelog fetching configuration"`
	LLM     LLMConfig     `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for release analysis"`
	TTS     TTSConfig     `yaml:"tts" json:"tts" jsonschema:"description=Text-to-speech configuration"`
	Mail    MailConfig    `yaml:"mail" json:"mail" jsonschema:"description=Email delivery configuration"`
}

// MonitorConfig holds scheduling and notification pipeline settings
type MonitorConfig struct {
	DefaultInterval   time.Duration `yaml:"default_interval" json:"default_interval" jsonschema:"default=1h,description=Check interval used until notificationCheckInterval is set"`
	Reconcile         *bool         `yaml:"reconcile" json:"reconcile" jsonschema:"default=true,description=Retry notifications left pending by a failed run"`
	MaxNotifyAttempts int           `yaml:"max_notify_attempts" json:"max_notify_attempts" jsonschema:"default=3,minimum=1,description=Maximum notification attempts per version"`
	FetchRetries      int           `yaml:"fetch_retries" json:"fetch_retries" jsonschema:"default=3,minimum=1,description=Attempts per changelog fetch"`
	FetchRetryDelay   time.Duration `yaml:"fetch_retry_delay" json:"fetch_retry_delay" jsonschema:"default=1s,description=Initial delay between fetch attempts"`
}

// ReconcileEnabled reports whether the reconciliation pass is on, true unless explicitly disabled
func (m MonitorConfig) ReconcileEnabled() bool {
	return m.Reconcile == nil || *m.Reconcile
}

// FetchConfig holds changelog fetcher settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Fetch timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Changewatch/1.0,description=User agent for HTTP requests"`
	ConvertHTML *bool         `yaml:"convert_html" json:"convert_html" jsonschema:"default=true,description=Convert HTML responses to markdown before parsing"`
}

// ConvertHTMLEnabled reports whether html responses are converted, true unless explicitly disabled
func (f FetchConfig) ConvertHTMLEnabled() bool {
	return f.ConvertHTML == nil || *f.ConvertHTML
}

// LLMConfig holds LLM configuration for release analysis
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONMode  bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
}

// TTSConfig holds speech synthesis settings
type TTSConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini-tts,description=Speech model name"`
	DefaultVoice string        `yaml:"default_voice" json:"default_voice" jsonschema:"default=alloy,description=Voice used when notificationVoice is not set"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
}

// MailConfig holds email API settings
type MailConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.smtp2go.com/v3/email/send,description=Email send API endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=Email API key (can use environment variable)"`
	Sender   string        `yaml:"sender" json:"sender" jsonschema:"description=Sender address"`
	To       string        `yaml:"to" json:"to" jsonschema:"description=Default recipient, notificationEmail setting overrides it"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Send timeout"`
	Retries  int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Send attempts"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file is given
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:changewatch.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// monitor
	if c.Monitor.DefaultInterval == 0 {
		c.Monitor.DefaultInterval = time.Hour
	}
	if c.Monitor.MaxNotifyAttempts == 0 {
		c.Monitor.MaxNotifyAttempts = 3
	}
	if c.Monitor.FetchRetries == 0 {
		c.Monitor.FetchRetries = 3
	}
	if c.Monitor.FetchRetryDelay == 0 {
		c.Monitor.FetchRetryDelay = time.Second
	}

	// fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Changewatch/1.0"
	}

	// llm
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	// tts, shares llm endpoint and key unless set
	if c.TTS.Endpoint == "" {
		c.TTS.Endpoint = c.LLM.Endpoint
	}
	if c.TTS.APIKey == "" {
		c.TTS.APIKey = c.LLM.APIKey
	}
	if c.TTS.Model == "" {
		c.TTS.Model = "gpt-4o-mini-tts"
	}
	if c.TTS.DefaultVoice == "" {
		c.TTS.DefaultVoice = "alloy"
	}
	if c.TTS.Timeout == 0 {
		c.TTS.Timeout = 60 * time.Second
	}

	// mail
	if c.Mail.Endpoint == "" {
		c.Mail.Endpoint = "https://api.smtp2go.com/v3/email/send"
	}
	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = 30 * time.Second
	}
	if c.Mail.Retries == 0 {
		c.Mail.Retries = 3
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.BaseURL != "" && !strings.HasPrefix(cfg.Server.BaseURL, "http") {
		return fmt.Errorf("server.base_url must be an http(s) URL")
	}

	// validate monitor config
	if cfg.Monitor.DefaultInterval < 0 {
		return fmt.Errorf("monitor.default_interval must be non-negative")
	}
	if cfg.Monitor.MaxNotifyAttempts < 1 {
		return fmt.Errorf("monitor.max_notify_attempts must be at least 1")
	}
	if cfg.Monitor.FetchRetries < 1 {
		return fmt.Errorf("monitor.fetch_retries must be at least 1")
	}

	// validate fetch config
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	// validate LLM config
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}

	// validate mail config
	if cfg.Mail.Retries < 1 {
		return fmt.Errorf("mail.retries must be at least 1")
	}
	if cfg.Mail.APIKey != "" && cfg.Mail.Sender == "" {
		return fmt.Errorf("mail.sender is required when mail.api_key is set")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public base URL used in generated links
func (c *Config) GetBaseURL() string {
	if c.Server.BaseURL != "" {
		return c.Server.BaseURL
	}
	if strings.HasPrefix(c.Server.Listen, ":") {
		return "http://localhost" + c.Server.Listen
	}
	return "http://" + c.Server.Listen
}
