// Package config provides configuration management for moodline.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override. Unprefixed names are
	// accepted as a fallback.
	EnvPrefix = "MOODLINE"

	// SettingsEnv points at an alternative settings file.
	SettingsEnv = "MOODLINE_SETTINGS"

	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8090
	DefaultPublicURL      = "https://mood-intel-backend.fly.dev"
	DefaultTimezone       = "UTC"
	DefaultProvider       = ProviderAnthropic
	DefaultAnthropicURL   = "https://api.anthropic.com"
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIURL      = "https://api.openai.com/v1"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxTokens      = 1024
	DefaultTimeout        = 30 * time.Second
	DefaultTwilioURL      = "https://api.twilio.com"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// Extraction providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds moodline configuration. It is built once at startup and
// passed explicitly to every component.
type Config struct {
	// HTTP worker
	Host      string `yaml:"host" envconfig:"HOST"`
	Port      int    `yaml:"port" envconfig:"PORT"`
	PublicURL string `yaml:"public_url" envconfig:"PUBLIC_URL"`
	Timezone  string `yaml:"timezone" envconfig:"TIMEZONE"`

	// Logging
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`

	// Storage
	DBDriver    string `yaml:"db_driver" envconfig:"DB_DRIVER"`
	DBPath      string `yaml:"db_path" envconfig:"DB_PATH"`
	DatabaseURL string `yaml:"database_url" envconfig:"DATABASE_URL"`
	MaxConns    int    `yaml:"max_conns" envconfig:"MAX_CONNS"`

	// Extraction
	Provider         string        `yaml:"provider" envconfig:"LLM_PROVIDER"`
	AnthropicAPIKey  string        `yaml:"anthropic_api_key" envconfig:"CLAUDE_API_KEY"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url" envconfig:"ANTHROPIC_BASE_URL"`
	AnthropicModel   string        `yaml:"anthropic_model" envconfig:"ANTHROPIC_MODEL"`
	OpenAIAPIKey     string        `yaml:"openai_api_key" envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `yaml:"openai_base_url" envconfig:"OPENAI_BASE_URL"`
	OpenAIModel      string        `yaml:"openai_model" envconfig:"OPENAI_MODEL"`
	MaxTokens        int           `yaml:"max_tokens" envconfig:"MAX_TOKENS"`
	ExtractTimeout   time.Duration `yaml:"extract_timeout" envconfig:"EXTRACT_TIMEOUT"`

	// Outbound transport
	TwilioAccountSID  string        `yaml:"twilio_account_sid" envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string        `yaml:"twilio_auth_token" envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string        `yaml:"twilio_phone_number" envconfig:"TWILIO_PHONE_NUMBER"`
	TwilioBaseURL     string        `yaml:"twilio_base_url" envconfig:"TWILIO_BASE_URL"`
	SendTimeout       time.Duration `yaml:"send_timeout" envconfig:"SEND_TIMEOUT"`
	DefaultRecipient  string        `yaml:"default_recipient" envconfig:"YOUR_PHONE_NUMBER"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		PublicURL:        DefaultPublicURL,
		Timezone:         DefaultTimezone,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		DBDriver:         DriverSQLite,
		DBPath:           DBPath(),
		MaxConns:         4,
		Provider:         DefaultProvider,
		AnthropicBaseURL: DefaultAnthropicURL,
		AnthropicModel:   DefaultAnthropicModel,
		OpenAIBaseURL:    DefaultOpenAIURL,
		OpenAIModel:      DefaultOpenAIModel,
		MaxTokens:        DefaultMaxTokens,
		ExtractTimeout:   DefaultTimeout,
		TwilioBaseURL:    DefaultTwilioURL,
		SendTimeout:      DefaultTimeout,
	}
}

// DataDir returns the data directory path.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".moodline")
}

// DBPath returns the default SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), "moodline.db")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	if p := strings.TrimSpace(os.Getenv(SettingsEnv)); p != "" {
		return p
	}
	return filepath.Join(DataDir(), "settings.yaml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings writes a default settings file if none exists.
// Secrets are left empty.
func EnsureSettings() error {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// EnsureAll creates the data directory and the default settings file.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	return EnsureSettings()
}

// Load builds the configuration: defaults, then .env, then the settings file,
// then environment variables. The result is validated.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg := Default()
	cfg.loadSettings(SettingsPath())

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment variables: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSettings overlays the YAML settings file. A missing or malformed file
// leaves the current values in place.
func (c *Config) loadSettings(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read settings file")
		}
		return
	}
	overlay := *c
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Invalid settings file, using defaults")
		return
	}
	*c = overlay
}

func (c *Config) normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.PublicURL = strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.PublicURL == "" {
		c.PublicURL = DefaultPublicURL
	}
	if c.ExtractTimeout <= 0 {
		c.ExtractTimeout = DefaultTimeout
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = DefaultTimeout
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.Provider)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if u, err := url.Parse(c.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid public url %q", c.PublicURL)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Location returns the timezone used for daily and weekly views.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StatusCallbackURL is where the transport reports delivery status.
func (c *Config) StatusCallbackURL() string {
	return c.PublicURL + "/api/sms/status-callback"
}

// ExtractionAPIKey returns the key of the selected provider.
func (c *Config) ExtractionAPIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}
