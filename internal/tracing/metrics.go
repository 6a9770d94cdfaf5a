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
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves the default Prometheus registry at /metrics.
type MetricsServer struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewMetricsServer creates a metrics server listening on addr.
func NewMetricsServer(addr string, logger *slog.Logger) *MetricsServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// MetricsHandler returns the /metrics mux.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start listens in the background. Listen errors are logged.
func (m *MetricsServer) Start() {
	go func() {
		m.logger.Info("metrics endpoint listening", slog.String("addr", m.srv.Addr))
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("metrics endpoint failed", slog.Any("error", err))
		}
	}()
}

// Shutdown stops the server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
