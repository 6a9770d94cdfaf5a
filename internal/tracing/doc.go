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

/*
Package tracing wires OpenTelemetry tracing and the Prometheus metrics endpoint.

Pipeline stages create spans through otel.Tracer. Until Setup installs an SDK
provider those spans are no-ops, so tracing costs nothing when disabled.

	provider, err := tracing.Setup(tracing.Config{
	    Enabled:     true,
	    ServiceName: "studyplan",
	})
	defer provider.Shutdown(ctx)

Metrics registered with promauto are served by MetricsServer:

	srv := tracing.NewMetricsServer("127.0.0.1:9090", logger)
	srv.Start()
	defer srv.Shutdown(ctx)
*/
package tracing
