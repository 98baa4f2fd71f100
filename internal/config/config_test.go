package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigSuite is a test suite for config operations.
type ConfigSuite struct {
	suite.Suite
	tempDir string
}

func (s *ConfigSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.T().Setenv("HOME", s.tempDir)
	s.T().Setenv(SettingsEnv, "")
	for _, key := range []string{"PORT", "PUBLIC_URL", "TWILIO_ACCOUNT_SID", "CLAUDE_API_KEY", "LLM_PROVIDER", "EXTRACT_TIMEOUT", "TIMEZONE", "DB_DRIVER"} {
		s.T().Setenv(key, "")
		os.Unsetenv(key)
		s.T().Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) writeSettings(content string) {
	dir := filepath.Join(s.tempDir, ".moodline")
	s.Require().NoError(os.MkdirAll(dir, 0750))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0600))
}

// TestDefault tests default configuration values.
func (s *ConfigSuite) TestDefault() {
	cfg := Default()

	s.Equal(DefaultPort, cfg.Port)
	s.Equal(DefaultPublicURL, cfg.PublicURL)
	s.Equal(DriverSQLite, cfg.DBDriver)
	s.Equal(ProviderAnthropic, cfg.Provider)
	s.Equal(DefaultAnthropicModel, cfg.AnthropicModel)
	s.Equal(1024, cfg.MaxTokens)
	s.Equal(30*time.Second, cfg.ExtractTimeout)
	s.Equal(30*time.Second, cfg.SendTimeout)
	s.Equal(4, cfg.MaxConns)
	s.NoError(cfg.Validate())
}

// TestPaths tests data, database, and settings paths.
func (s *ConfigSuite) TestPaths() {
	s.Equal(filepath.Join(s.tempDir, ".moodline"), DataDir())
	s.Equal(filepath.Join(s.tempDir, ".moodline", "moodline.db"), DBPath())
	s.Equal(filepath.Join(s.tempDir, ".moodline", "settings.yaml"), SettingsPath())

	s.T().Setenv(SettingsEnv, "/etc/moodline.yaml")
	s.Equal("/etc/moodline.yaml", SettingsPath())
}

// TestEnsureAll tests data directory and settings file creation.
func (s *ConfigSuite) TestEnsureAll() {
	s.Require().NoError(EnsureAll())

	info, err := os.Stat(DataDir())
	s.Require().NoError(err)
	s.True(info.IsDir())

	_, err = os.Stat(SettingsPath())
	s.NoError(err)

	// Second call should not error (file exists)
	s.NoError(EnsureSettings())

	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(DefaultPort, cfg.Port)
	s.Equal(30*time.Second, cfg.ExtractTimeout)
}

// TestLoad_TableDriven tests configuration loading with various scenarios.
func (s *ConfigSuite) TestLoad_TableDriven() {
	tests := []struct {
		name          string
		settings      string
		env           map[string]string
		expectedPort  int
		expectedURL   string
		expectedSID   string
		expectedModel string
	}{
		{
			name:          "no settings file",
			expectedPort:  DefaultPort,
			expectedURL:   DefaultPublicURL,
			expectedModel: DefaultAnthropicModel,
		},
		{
			name:          "settings file",
			settings:      "port: 9100\npublic_url: https://mood.example.com/\nanthropic_model: claude-test\n",
			expectedPort:  9100,
			expectedURL:   "https://mood.example.com",
			expectedModel: "claude-test",
		},
		{
			name:          "invalid YAML returns defaults",
			settings:      "port: [unclosed",
			expectedPort:  DefaultPort,
			expectedURL:   DefaultPublicURL,
			expectedModel: DefaultAnthropicModel,
		},
		{
			name:          "unprefixed env overrides settings",
			settings:      "port: 9100\n",
			env:           map[string]string{"PORT": "9200", "TWILIO_ACCOUNT_SID": "AC1"},
			expectedPort:  9200,
			expectedURL:   DefaultPublicURL,
			expectedSID:   "AC1",
			expectedModel: DefaultAnthropicModel,
		},
		{
			name:          "prefixed env wins over unprefixed",
			env:           map[string]string{"PORT": "9200", "MOODLINE_PORT": "9300", "PUBLIC_URL": "https://x.example"},
			expectedPort:  9300,
			expectedURL:   "https://x.example",
			expectedModel: DefaultAnthropicModel,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			home := s.T().TempDir()
			s.T().Setenv("HOME", home)
			s.tempDir = home
			if tt.settings != "" {
				s.writeSettings(tt.settings)
			}
			for k, v := range tt.env {
				s.T().Setenv(k, v)
			}

			cfg, err := Load()
			s.Require().NoError(err)
			s.Equal(tt.expectedPort, cfg.Port)
			s.Equal(tt.expectedURL, cfg.PublicURL)
			s.Equal(tt.expectedSID, cfg.TwilioAccountSID)
			s.Equal(tt.expectedModel, cfg.AnthropicModel)

			for k := range tt.env {
				os.Unsetenv(k)
			}
		})
	}
}

// TestLoad_Durations tests duration parsing from both sources.
func (s *ConfigSuite) TestLoad_Durations() {
	s.writeSettings("extract_timeout: 10s\nsend_timeout: 5s\n")
	s.T().Setenv("EXTRACT_TIMEOUT", "12s")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(12*time.Second, cfg.ExtractTimeout)
	s.Equal(5*time.Second, cfg.SendTimeout)
}

// TestLoad_InvalidEnv tests that malformed environment values are errors.
func (s *ConfigSuite) TestLoad_InvalidEnv() {
	s.T().Setenv("PORT", "not-a-port")
	_, err := Load()
	s.Error(err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"postgres without url", func(c *Config) { c.DBDriver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) { c.DBDriver = DriverPostgres; c.DatabaseURL = "postgres://u@h/db" }, false},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "gemini" }, true},
		{"openai provider", func(c *Config) { c.Provider = ProviderOpenAI }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"named timezone", func(c *Config) { c.Timezone = "Europe/Berlin" }, false},
		{"relative public url", func(c *Config) { c.PublicURL = "/relative" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DBPath = "/tmp/moodline.db"
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := Default()
	cfg.PublicURL = "https://mood.example.com"
	cfg.Port = 9000

	assert.Equal(t, "https://mood.example.com/api/sms/status-callback", cfg.StatusCallbackURL())
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.AnthropicAPIKey = "a"
	cfg.OpenAIAPIKey = "o"
	assert.Equal(t, "a", cfg.ExtractionAPIKey())
	cfg.Provider = ProviderOpenAI
	assert.Equal(t, "o", cfg.ExtractionAPIKey())

	cfg.Timezone = "America/New_York"
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())
}
