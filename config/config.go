// Package config loads the settings shared by the generator and the demo server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when a remote provider is selected but no key is available.
var ErrMissingAPIKey = errors.New("llm api key missing")

// Config holds every knob of the generator and the server.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Content   ContentConfig   `yaml:"content"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	DemosDir  string          `yaml:"demos_dir"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	APIKey     string        `yaml:"-"`
	APIKeyEnv  string        `yaml:"api_key_env"`
	BaseURL    string        `yaml:"base_url,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// DiscoveryConfig tunes topic discovery.
type DiscoveryConfig struct {
	MaxAttempts  int     `yaml:"max_attempts"`
	RecentWindow int     `yaml:"recent_window"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int64   `yaml:"max_tokens"`
}

// ContentConfig tunes demo document generation.
type ContentConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// LedgerConfig picks where covered topics are persisted.
type LedgerConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ServerConfig configures the demo server.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Intro string `yaml:"intro"`
}

// LogConfig is "text"|"json" and "debug|info|warn|error".
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const DefaultIntro = "**✨ What makes these demos special:** each demo features a game-based interface, " +
	"cartoon characters, a story-driven example and interactive animations that make " +
	"system design concepts fun to learn."

// Default returns the configuration used when no file or environment override is present.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   "openai",
			Model:      "gpt-4o-mini",
			Timeout:    120 * time.Second,
			MaxRetries: 2,
		},
		Discovery: DiscoveryConfig{
			MaxAttempts:  5,
			RecentWindow: 10,
			Temperature:  0.7,
			MaxTokens:    100,
		},
		Content: ContentConfig{
			Temperature: 0.7,
			MaxTokens:   12000,
		},
		Ledger: LedgerConfig{
			Backend: "json",
			Path:    "topics.json",
		},
		DemosDir: "demos",
		Server: ServerConfig{
			Addr:  ":8080",
			Intro: DefaultIntro,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path (if any), applies SDD_* environment
// overrides and resolves the API key. An empty path looks for config.yaml in
// the working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SDD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_key_env", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", cfg.LLM.Timeout)
	v.SetDefault("llm.max_retries", cfg.LLM.MaxRetries)
	v.SetDefault("discovery.max_attempts", cfg.Discovery.MaxAttempts)
	v.SetDefault("discovery.recent_window", cfg.Discovery.RecentWindow)
	v.SetDefault("discovery.temperature", cfg.Discovery.Temperature)
	v.SetDefault("discovery.max_tokens", cfg.Discovery.MaxTokens)
	v.SetDefault("content.temperature", cfg.Content.Temperature)
	v.SetDefault("content.max_tokens", cfg.Content.MaxTokens)
	v.SetDefault("ledger.backend", cfg.Ledger.Backend)
	v.SetDefault("ledger.path", cfg.Ledger.Path)
	v.SetDefault("demos_dir", cfg.DemosDir)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.intro", cfg.Server.Intro)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	cfg.LLM.Model = strings.TrimSpace(v.GetString("llm.model"))
	cfg.LLM.APIKey = strings.TrimSpace(v.GetString("llm.api_key"))
	cfg.LLM.APIKeyEnv = strings.TrimSpace(v.GetString("llm.api_key_env"))
	cfg.LLM.BaseURL = strings.TrimSpace(v.GetString("llm.base_url"))
	cfg.LLM.Timeout = v.GetDuration("llm.timeout")
	cfg.LLM.MaxRetries = v.GetInt("llm.max_retries")
	cfg.Discovery.MaxAttempts = v.GetInt("discovery.max_attempts")
	cfg.Discovery.RecentWindow = v.GetInt("discovery.recent_window")
	cfg.Discovery.Temperature = v.GetFloat64("discovery.temperature")
	cfg.Discovery.MaxTokens = v.GetInt64("discovery.max_tokens")
	cfg.Content.Temperature = v.GetFloat64("content.temperature")
	cfg.Content.MaxTokens = v.GetInt64("content.max_tokens")
	cfg.Ledger.Backend = strings.ToLower(strings.TrimSpace(v.GetString("ledger.backend")))
	cfg.Ledger.Path = strings.TrimSpace(v.GetString("ledger.path"))
	cfg.DemosDir = strings.TrimSpace(v.GetString("demos_dir"))
	cfg.Server.Addr = strings.TrimSpace(v.GetString("server.addr"))
	cfg.Server.Intro = v.GetString("server.intro")
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(v.GetString("log.level")))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(v.GetString("log.format")))

	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = defaultKeyEnv(cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey == "" && cfg.LLM.APIKeyEnv != "" {
		cfg.LLM.APIKey = strings.TrimSpace(os.Getenv(cfg.LLM.APIKeyEnv))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "mock":
		return ""
	default:
		return "OPENAI_API_KEY"
	}
}

// Validate checks value ranges. It does not require an API key: the server
// never talks to the provider, so the key is checked by RequireAPIKey instead.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	switch c.LLM.Provider {
	case "openai", "deepseek", "openai_compatible", "anthropic", "mock":
	default:
		return fmt.Errorf("llm provider %q not supported", c.LLM.Provider)
	}
	if (c.LLM.Provider == "deepseek" || c.LLM.Provider == "openai_compatible") && c.LLM.BaseURL == "" {
		return fmt.Errorf("llm provider %s requires base_url (OpenAI-compatible endpoint)", c.LLM.Provider)
	}
	if c.LLM.Provider != "mock" && c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries must not be negative")
	}
	if c.Discovery.MaxAttempts <= 0 {
		return errors.New("discovery.max_attempts must be positive")
	}
	if c.Discovery.RecentWindow < 0 {
		return errors.New("discovery.recent_window must not be negative")
	}
	if c.Discovery.MaxTokens <= 0 || c.Content.MaxTokens <= 0 {
		return errors.New("max_tokens must be positive")
	}
	if !validTemperature(c.Discovery.Temperature) || !validTemperature(c.Content.Temperature) {
		return errors.New("temperature must be within [0, 2]")
	}
	switch c.Ledger.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("ledger backend %q not supported", c.Ledger.Backend)
	}
	if c.Ledger.Path == "" {
		return errors.New("ledger.path is required")
	}
	if c.DemosDir == "" {
		return errors.New("demos_dir is required")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q not supported", c.Log.Format)
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when the selected provider needs a key and none was resolved.
func (c *Config) RequireAPIKey() error {
	if c.LLM.Provider == "mock" || c.LLM.APIKey != "" {
		return nil
	}
	if c.LLM.APIKeyEnv != "" {
		return fmt.Errorf("%w: set %s or llm.api_key", ErrMissingAPIKey, c.LLM.APIKeyEnv)
	}
	return fmt.Errorf("%w: set llm.api_key", ErrMissingAPIKey)
}

// YAML renders the effective configuration. The API key is never included.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func validTemperature(t float64) bool {
	return t >= 0 && t <= 2
}
