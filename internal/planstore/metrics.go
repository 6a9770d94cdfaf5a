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

package planstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studyplan_store_operation_duration_seconds",
			Help:    "Duration of store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "result"},
	)

	bytesTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplan_store_bytes_total",
			Help: "Total bytes read from and written to the store",
		},
		[]string{"operation"},
	)

	errorsByType = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplan_store_errors_total",
			Help: "Store errors by type, including reads recovered with a placeholder",
		},
		[]string{"operation", "error_type"},
	)
)

// recordMetrics records metrics for one store operation.
func recordMetrics(entry AuditEntry, errType string) {
	operationDuration.WithLabelValues(entry.Operation, entry.Result).Observe(entry.Duration.Seconds())

	if entry.Bytes > 0 {
		bytesTransferred.WithLabelValues(entry.Operation).Add(float64(entry.Bytes))
	}
	if errType != "" {
		errorsByType.WithLabelValues(entry.Operation, errType).Inc()
	}
}
