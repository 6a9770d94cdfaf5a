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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	spErrors "github.com/tombee/studyplan/pkg/errors"
)

// clearEnv blanks every variable loadFromEnv reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STUDYPLAN_SANDBOX_ROOT", "STUDYPLAN_KNOWLEDGE_PATH", "STUDYPLAN_PLAN_PATH",
		"STUDYPLAN_KNOWLEDGE_MARKER", "STUDYPLAN_STORAGE_BACKEND", "STUDYPLAN_METRICS_ADDR",
		"STUDYPLAN_TRACING", "STUDYPLAN_RATE_LIMIT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.SandboxRoot != "." {
		t.Errorf("expected sandbox root '.', got %q", cfg.SandboxRoot)
	}
	if cfg.KnowledgePath != "src/concepts.md" {
		t.Errorf("expected knowledge path 'src/concepts.md', got %q", cfg.KnowledgePath)
	}
	if cfg.PlanPath != "src/study-plan.md" {
		t.Errorf("expected plan path 'src/study-plan.md', got %q", cfg.PlanPath)
	}
	if cfg.KnowledgeMarker != "KA" {
		t.Errorf("expected marker 'KA', got %q", cfg.KnowledgeMarker)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Server.RateLimitPerMinute != 60 {
		t.Errorf("expected rate limit 60, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected shutdown timeout 5s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Tracing.Enabled {
		t.Error("expected tracing disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errText string
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:   "custom marker pattern",
			modify: func(c *Config) { c.KnowledgeMarker = "KA|TOPIC" },
		},
		{
			name:   "grouped marker pattern",
			modify: func(c *Config) { c.KnowledgeMarker = "(KA|TOPIC)" },
		},
		{
			name:    "marker with reserved group name",
			modify:  func(c *Config) { c.KnowledgeMarker = "(?P<code>KA)" },
			wantErr: true,
			errText: "knowledge_marker",
		},
		{
			name:    "empty sandbox root",
			modify:  func(c *Config) { c.SandboxRoot = " " },
			wantErr: true,
			errText: "sandbox_root must not be empty",
		},
		{
			name:    "empty plan path",
			modify:  func(c *Config) { c.PlanPath = "" },
			wantErr: true,
			errText: "plan_path must not be empty",
		},
		{
			name:    "invalid marker",
			modify:  func(c *Config) { c.KnowledgeMarker = "KA(" },
			wantErr: true,
			errText: "knowledge_marker",
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Storage.Backend = "postgres" },
			wantErr: true,
			errText: "storage.backend must be one of",
		},
		{
			name:    "negative rate limit",
			modify:  func(c *Config) { c.Server.RateLimitPerMinute = -1 },
			wantErr: true,
			errText: "rate_limit_per_minute must not be negative",
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
			errText: "log.level must be one of",
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errText: "log.format must be one of [json, text]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("expected error containing %q, got %q", tt.errText, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `sandbox_root: /srv/study
knowledge_path: kb/concepts.md
storage:
  backend: sqlite
server:
  rate_limit_per_minute: 0
  watch_knowledge: true
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SandboxRoot != "/srv/study" {
		t.Errorf("SandboxRoot = %q", cfg.SandboxRoot)
	}
	if cfg.KnowledgePath != "kb/concepts.md" {
		t.Errorf("KnowledgePath = %q", cfg.KnowledgePath)
	}
	if cfg.PlanPath != "src/study-plan.md" {
		t.Errorf("PlanPath should keep default, got %q", cfg.PlanPath)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLitePath != "studyplan.db" {
		t.Errorf("SQLitePath should keep default, got %q", cfg.Storage.SQLitePath)
	}
	if cfg.Server.RateLimitPerMinute != 0 {
		t.Errorf("RateLimitPerMinute = %d, want 0", cfg.Server.RateLimitPerMinute)
	}
	if !cfg.Server.WatchKnowledge {
		t.Error("WatchKnowledge should be true")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("plan_path: a.md\nstorage:\n  backend: file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STUDYPLAN_PLAN_PATH", "b.md")
	t.Setenv("STUDYPLAN_STORAGE_BACKEND", "MEMORY")
	t.Setenv("STUDYPLAN_TRACING", "true")
	t.Setenv("STUDYPLAN_METRICS_ADDR", "127.0.0.1:9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PlanPath != "b.md" {
		t.Errorf("PlanPath = %q, want b.md", cfg.PlanPath)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Storage.Backend)
	}
	if !cfg.Tracing.Enabled {
		t.Error("Tracing should be enabled")
	}
	if cfg.Metrics.Addr != "127.0.0.1:9090" {
		t.Errorf("Metrics.Addr = %q", cfg.Metrics.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var cfgErr *spErrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Key != "config_file" {
			t.Errorf("Key = %q, want config_file", cfgErr.Key)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("sandbox_root: [unterminated"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Setenv("STUDYPLAN_STORAGE_BACKEND", "redis")
		_, err := Load("")
		var cfgErr *spErrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Key != "validation" {
			t.Errorf("Key = %q, want validation", cfgErr.Key)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Error("expected ErrInvalidConfig in chain")
		}
	})
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"

	lc := cfg.LoggerConfig()
	if lc.Level != "warn" || string(lc.Format) != "text" {
		t.Errorf("unexpected logger config: %+v", lc)
	}
}

func TestConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "studyplan", "config.yaml")
	if path != want {
		t.Errorf("ConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadDefault_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected defaults, got backend %q", cfg.Storage.Backend)
	}
}
