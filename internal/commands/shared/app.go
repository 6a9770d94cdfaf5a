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

package shared

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tombee/studyplan/internal/config"
	"github.com/tombee/studyplan/internal/log"
	"github.com/tombee/studyplan/internal/planstore"
	"github.com/tombee/studyplan/pkg/studyplan"
)

// App holds the components every command builds from configuration.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *planstore.Store
	Knowledge *planstore.Store
	Generator *studyplan.Generator

	closers []func() error
}

// LoadConfig loads the file named by --config, or the XDG default if present.
func LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := GetConfigPath(); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// NewLogger builds the stderr logger for cfg. --verbose forces debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	lc := cfg.LoggerConfig()
	if GetVerbose() {
		lc.Level = "debug"
	}
	return log.New(lc)
}

// OpenApp wires the sandbox, repository, store and generator described by cfg.
func OpenApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sandbox, err := planstore.NewSandbox(cfg.SandboxRoot)
	if err != nil {
		return nil, NewConfigError("invalid sandbox_root", err)
	}

	app := &App{Config: cfg, Logger: logger}

	repo, closer, err := newRepository(ctx, cfg, sandbox)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	app.Store, err = planstore.New(planstore.Config{
		Sandbox:    sandbox,
		Repository: repo,
		Logger:     log.WithComponent(logger, "planstore"),
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	// The knowledge base is authored on disk whatever backend holds plans.
	app.Knowledge = app.Store
	if cfg.Storage.Backend != config.BackendFile {
		app.Knowledge, err = planstore.New(planstore.Config{
			Sandbox:    sandbox,
			Repository: planstore.NewFileRepository(),
			Logger:     log.WithComponent(logger, "planstore"),
		})
		if err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	parser, err := studyplan.NewParser(cfg.KnowledgeMarker)
	if err != nil {
		_ = app.Close()
		return nil, NewConfigError("invalid knowledge_marker", err)
	}

	app.Generator, err = studyplan.NewGenerator(studyplan.GeneratorConfig{
		Store:          app.Store,
		KnowledgeStore: app.Knowledge,
		Parser:         parser,
		KnowledgePath:  cfg.KnowledgePath,
		PlanPath:       cfg.PlanPath,
		Logger:         log.WithComponent(logger, "generator"),
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

// newRepository selects the backend named by storage.backend.
func newRepository(ctx context.Context, cfg *config.Config, sandbox *planstore.Sandbox) (planstore.Repository, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return planstore.NewMemoryRepository(), nil, nil
	case config.BackendSQLite:
		path, err := sandbox.Resolve(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, NewConfigError("invalid storage.sqlite_path", err)
		}
		repo, err := planstore.NewSQLiteRepository(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		return planstore.NewFileRepository(), nil, nil
	}
}

// Close releases backend resources.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
