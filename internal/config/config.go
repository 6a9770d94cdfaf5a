// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads studyplan configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombee/studyplan/internal/log"
	spErrors "github.com/tombee/studyplan/pkg/errors"
	"github.com/tombee/studyplan/pkg/studyplan"
)

var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config represents the complete studyplan configuration.
type Config struct {
	// SandboxRoot is the directory outside of which no document may be read or written.
	// Environment: STUDYPLAN_SANDBOX_ROOT
	// Default: current working directory
	SandboxRoot string `yaml:"sandbox_root"`

	// KnowledgePath is the knowledge base document, relative to SandboxRoot.
	// Environment: STUDYPLAN_KNOWLEDGE_PATH
	KnowledgePath string `yaml:"knowledge_path"`

	// PlanPath is where the generated plan is persisted, relative to SandboxRoot.
	// Environment: STUDYPLAN_PLAN_PATH
	PlanPath string `yaml:"plan_path"`

	// KnowledgeMarker is the regular expression matching the leading tag of topic lines.
	// Environment: STUDYPLAN_KNOWLEDGE_MARKER
	// Default: KA
	KnowledgeMarker string `yaml:"knowledge_marker"`

	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// StorageConfig selects the plan repository.
type StorageConfig struct {
	// Backend is one of file, memory, sqlite.
	// Environment: STUDYPLAN_STORAGE_BACKEND
	Backend string `yaml:"backend"`

	// SQLitePath is the database file used by the sqlite backend, relative to SandboxRoot.
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// Name is the server name advertised during MCP initialization.
	Name string `yaml:"name"`

	// RateLimitPerMinute caps tool calls per minute. Zero disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`

	// WatchKnowledge sends resource update notifications when the knowledge base changes.
	WatchKnowledge bool `yaml:"watch_knowledge"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `yaml:"watch_debounce,omitempty"`

	// ShutdownTimeout is the maximum time to wait for in-flight calls on shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	// Environment: STUDYPLAN_METRICS_ADDR
	Addr string `yaml:"addr,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled exports spans to stderr.
	// Environment: STUDYPLAN_TRACING
	Enabled bool `yaml:"enabled"`

	// ServiceName is the resource service.name attribute.
	ServiceName string `yaml:"service_name,omitempty"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		SandboxRoot:     ".",
		KnowledgePath:   "src/concepts.md",
		PlanPath:        "src/study-plan.md",
		KnowledgeMarker: studyplan.DefaultMarker,
		Storage: StorageConfig{
			Backend:    BackendFile,
			SQLitePath: "studyplan.db",
		},
		Server: ServerConfig{
			Name:               "studyplan",
			RateLimitPerMinute: 60,
			WatchDebounce:      200 * time.Millisecond,
			ShutdownTimeout:    5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			ServiceName: "studyplan",
		},
	}
}

// Load loads configuration from an optional YAML file and the environment.
// Environment variables take precedence over file-based configuration.
// If configPath is empty, only environment variables are used.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFromFile(configPath); err != nil {
			return nil, &spErrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", configPath),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, &spErrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}

	return cfg, nil
}

// LoadDefault loads the config file at the XDG location if it exists.
func LoadDefault() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Load("")
	}
	if _, err := os.Stat(path); err != nil {
		return Load("")
	}
	return Load(path)
}

// applyDefaults fills in zero values left by a partial config file.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.SandboxRoot == "" {
		c.SandboxRoot = defaults.SandboxRoot
	}
	if c.KnowledgePath == "" {
		c.KnowledgePath = defaults.KnowledgePath
	}
	if c.PlanPath == "" {
		c.PlanPath = defaults.PlanPath
	}
	if c.KnowledgeMarker == "" {
		c.KnowledgeMarker = defaults.KnowledgeMarker
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = defaults.Storage.SQLitePath
	}
	if c.Server.Name == "" {
		c.Server.Name = defaults.Server.Name
	}
	if c.Server.WatchDebounce == 0 {
		c.Server.WatchDebounce = defaults.Server.WatchDebounce
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaults.Tracing.ServiceName
	}
}

// loadFromFile loads configuration from a YAML file.
func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	if val := os.Getenv("STUDYPLAN_SANDBOX_ROOT"); val != "" {
		c.SandboxRoot = val
	}
	if val := os.Getenv("STUDYPLAN_KNOWLEDGE_PATH"); val != "" {
		c.KnowledgePath = val
	}
	if val := os.Getenv("STUDYPLAN_PLAN_PATH"); val != "" {
		c.PlanPath = val
	}
	if val := os.Getenv("STUDYPLAN_KNOWLEDGE_MARKER"); val != "" {
		c.KnowledgeMarker = val
	}
	if val := os.Getenv("STUDYPLAN_STORAGE_BACKEND"); val != "" {
		c.Storage.Backend = strings.ToLower(val)
	}
	if val := os.Getenv("STUDYPLAN_METRICS_ADDR"); val != "" {
		c.Metrics.Addr = val
	}
	if val := os.Getenv("STUDYPLAN_TRACING"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Tracing.Enabled = enabled
		}
	}
	if val := os.Getenv("STUDYPLAN_RATE_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Server.RateLimitPerMinute = n
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.SandboxRoot) == "" {
		errs = append(errs, "sandbox_root must not be empty")
	}
	if strings.TrimSpace(c.KnowledgePath) == "" {
		errs = append(errs, "knowledge_path must not be empty")
	}
	if strings.TrimSpace(c.PlanPath) == "" {
		errs = append(errs, "plan_path must not be empty")
	}
	if _, err := studyplan.NewParser(c.KnowledgeMarker); err != nil {
		errs = append(errs, fmt.Sprintf("knowledge_marker %q is not a valid pattern: %v", c.KnowledgeMarker, err))
	}

	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("storage.backend must be one of [file, memory, sqlite], got %q", c.Storage.Backend))
	}

	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Sprintf("server.rate_limit_per_minute must not be negative, got %d", c.Server.RateLimitPerMinute))
	}
	if c.Server.WatchDebounce < 0 {
		errs = append(errs, fmt.Sprintf("server.watch_debounce must not be negative, got %v", c.Server.WatchDebounce))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout))
	}

	if !log.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Sprintf("log.level must be one of [trace, debug, info, warn, warning, error], got %q", c.Log.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// LoggerConfig returns the logger configuration derived from this config.
func (c *Config) LoggerConfig() *log.Config {
	cfg := log.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = log.Format(c.Log.Format)
	cfg.AddSource = c.Log.AddSource
	return cfg
}
