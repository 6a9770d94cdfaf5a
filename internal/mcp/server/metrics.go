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

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_mcp_tool_calls_total",
		Help: "MCP tool calls by tool and outcome.",
	}, []string{"tool", "outcome"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyplan_mcp_tool_duration_seconds",
		Help:    "MCP tool call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	resourceReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyplan_mcp_resource_reads_total",
		Help: "MCP resource reads by resource and outcome.",
	}, []string{"resource", "outcome"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
