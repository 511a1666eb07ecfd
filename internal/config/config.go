// Package config loads application configuration from environment
// variables (OPSDASH_ prefix) and an optional config.yaml, with env
// taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Sheets  SheetsConfig  `yaml:"sheets" envconfig:"SHEETS"`
	Fetch   FetchConfig   `yaml:"fetch" envconfig:"FETCH"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SheetsConfig identifies the published spreadsheet and its six tabs.
type SheetsConfig struct {
	BaseURL string    `yaml:"base_url" envconfig:"BASE_URL"`
	GIDs    SheetGIDs `yaml:"gids" envconfig:"GIDS"`
}

// SheetGIDs holds the tab identifier for each source domain.
type SheetGIDs struct {
	QA           string `yaml:"qa" envconfig:"QA" default:"0"`
	Productivity string `yaml:"productivity" envconfig:"PRODUCTIVITY"`
	Csat         string `yaml:"csat" envconfig:"CSAT"`
	Refunds      string `yaml:"refunds" envconfig:"REFUNDS"`
	Chargebacks  string `yaml:"chargebacks" envconfig:"CHARGEBACKS"`
	Business     string `yaml:"business" envconfig:"BUSINESS"`
}

// FetchConfig paces requests against the sheets endpoint.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
	RPS     float64       `yaml:"rps" envconfig:"RPS" default:"4"`
	Burst   int           `yaml:"burst" envconfig:"BURST" default:"6"`
}

// Load loads configuration from environment variables and an optional
// config file, env taking precedence, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("OPSDASH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := findConfigFile(); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills zero-valued env fields from the file config.
func merge(fileCfg, envCfg Config) Config {
	if envCfg.Sheets.BaseURL == "" {
		envCfg.Sheets.BaseURL = fileCfg.Sheets.BaseURL
	}
	if envCfg.Sheets.GIDs.Productivity == "" {
		envCfg.Sheets.GIDs.Productivity = fileCfg.Sheets.GIDs.Productivity
	}
	if envCfg.Sheets.GIDs.Csat == "" {
		envCfg.Sheets.GIDs.Csat = fileCfg.Sheets.GIDs.Csat
	}
	if envCfg.Sheets.GIDs.Refunds == "" {
		envCfg.Sheets.GIDs.Refunds = fileCfg.Sheets.GIDs.Refunds
	}
	if envCfg.Sheets.GIDs.Chargebacks == "" {
		envCfg.Sheets.GIDs.Chargebacks = fileCfg.Sheets.GIDs.Chargebacks
	}
	if envCfg.Sheets.GIDs.Business == "" {
		envCfg.Sheets.GIDs.Business = fileCfg.Sheets.GIDs.Business
	}
	return envCfg
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Sheets.BaseURL == "" {
		return fmt.Errorf("sheets base URL must be set")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	return nil
}

// findConfigFile returns the first config file found in common locations.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Default returns a configuration suitable for tests and the export CLI.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Sheets: SheetsConfig{
			GIDs: SheetGIDs{QA: "0"},
		},
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
			RPS:     4,
			Burst:   6,
		},
	}
}
