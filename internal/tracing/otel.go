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

package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config configures tracing.
type Config struct {
	// Enabled installs an SDK tracer provider. When false spans are no-ops.
	Enabled bool

	// ServiceName is the service.name resource attribute
	ServiceName string

	// ServiceVersion is the service.version resource attribute
	ServiceVersion string

	// Output receives exported spans as JSON (default: os.Stderr)
	Output io.Writer
}

// Provider owns the SDK tracer provider, if one was installed.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup installs a global tracer provider exporting to cfg.Output.
// A disabled config returns a Provider whose methods do nothing.
func Setup(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "studyplan"
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Empty schema URL avoids conflicts when merging with the default resource.
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp}, nil
}

// Enabled reports whether an SDK provider is installed.
func (p *Provider) Enabled() bool {
	return p != nil && p.tp != nil
}

// ForceFlush exports all pending spans synchronously.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.tp.ForceFlush(ctx)
}

// Shutdown flushes any pending spans and releases resources.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.tp.Shutdown(ctx)
}
