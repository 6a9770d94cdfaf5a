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

// Package serve implements the command that runs the studyplan MCP server over stdio.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/internal/config"
	"github.com/tombee/studyplan/internal/log"
	"github.com/tombee/studyplan/internal/mcp/server"
	"github.com/tombee/studyplan/internal/tracing"
)

// options holds flag overrides applied on top of the loaded config.
type options struct {
	logLevel    string
	metricsAddr string
	watch       bool
}

// NewCommand creates the serve command
func NewCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the studyplan MCP server",
		Long: `Start the studyplan MCP (Model Context Protocol) server on stdio.

The server exposes:
  - generateStudyPlan: build a week-by-week plan from the knowledge base and save it
  - add: add two numbers
  - concepts://src: the knowledge base document
  - study-plan://src: the most recently generated plan
  - greeting://{name}: a greeting

Configuration example for an MCP client:
  {
    "mcpServers": {
      "studyplan": {
        "command": "studyplan",
        "args": ["serve"]
      }
    }
  }

Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Logging verbosity (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. 127.0.0.1:9090)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Notify clients when the knowledge base changes on disk")

	return cmd
}

// applyFlags overrides config values with flags that were set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) error {
	if cmd.Flags().Changed("log-level") {
		if !log.ValidLevel(opts.logLevel) {
			return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, or error)", opts.logLevel)
		}
		cfg.Log.Level = opts.logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.WatchKnowledge = opts.watch
	}
	return nil
}

func runServe(cmd *cobra.Command, opts options) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	logger := shared.NewLogger(cfg)
	versionStr, _, _ := shared.GetVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.Setup(tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: versionStr,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdown(logger, "tracing", cfg, provider.Shutdown)

	if cfg.Metrics.Addr != "" {
		metrics := tracing.NewMetricsServer(cfg.Metrics.Addr, logger)
		metrics.Start()
		defer shutdown(logger, "metrics", cfg, metrics.Shutdown)
	}

	app, err := shared.OpenApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv, err := server.NewServer(server.ServerConfig{
		Name:               cfg.Server.Name,
		Version:            versionStr,
		Generator:          app.Generator,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		Logger:             log.WithComponent(logger, "mcp"),
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if cfg.Server.WatchKnowledge {
		watcher, err := startWatcher(app, srv, cfg, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	if err := srv.Run(ctx); err != nil {
		return err
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nReceived shutdown signal, shutting down gracefully...")
	}
	return srv.Shutdown(ctx)
}

// startWatcher watches the resolved knowledge-base file.
func startWatcher(app *shared.App, srv *server.Server, cfg *config.Config, logger *slog.Logger) (*server.Watcher, error) {
	path, err := app.Knowledge.Sandbox().Resolve(cfg.KnowledgePath)
	if err != nil {
		return nil, fmt.Errorf("cannot watch knowledge base: %w", err)
	}

	watcher, err := server.NewWatcher(server.WatcherConfig{
		Notify:        srv.NotifyResourceUpdated,
		Logger:        log.WithComponent(logger, "watcher"),
		DebounceDelay: cfg.Server.WatchDebounce,
	})
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path, server.KnowledgeURI); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// shutdown runs fn with the configured shutdown timeout and logs failures.
func shutdown(logger *slog.Logger, what string, cfg *config.Config, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Warn("shutdown failed", slog.String("component", what), log.Error(err))
	}
}
