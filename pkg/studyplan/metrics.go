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

package studyplan

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studyplan_generations_total",
			Help: "Study plan generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studyplan_generation_duration_seconds",
		Help:    "Duration of the full generation pipeline",
		Buckets: prometheus.DefBuckets,
	})

	matchedTopics = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studyplan_matched_topics",
		Help:    "Number of topics matched per generation",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
)

func recordGeneration(outcome string, d time.Duration) {
	generationsTotal.WithLabelValues(outcome).Inc()
	generationDuration.Observe(d.Seconds())
}
