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
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/studyplan/internal/log"
)

// instrument wraps a tool handler with rate limiting, request IDs, logging and
// metrics. The request ID travels on the context passed to next.
func (s *Server) instrument(tool string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		call := &log.ToolCall{
			Tool:      tool,
			RequestID: uuid.NewString(),
			Arguments: request.GetArguments(),
		}
		ctx = log.ContextWithRequestID(ctx, call.RequestID)
		log.LogToolCall(s.logger, call)

		var (
			result *mcp.CallToolResult
			err    error
		)
		if !s.rateLimiter.AllowCall() {
			result = errorResponse("rate limit exceeded, try again shortly")
			s.logger.WarnContext(ctx, "tool call rate limited", log.ToolKey, tool)
		} else {
			result, err = next(ctx, request)
		}

		res := &log.ToolResult{Duration: time.Since(start)}
		switch {
		case err != nil:
			res.IsError = true
			res.Error = err.Error()
		case result != nil && result.IsError:
			res.IsError = true
			res.Error = resultText(result)
		}
		log.LogToolResult(s.logger, call, res)

		label := "success"
		if res.IsError {
			label = "error"
		}
		toolCalls.WithLabelValues(tool, label).Inc()
		toolDuration.WithLabelValues(tool).Observe(res.Duration.Seconds())

		return result, err
	}
}

// resultText returns the first text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
