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

package log

import (
	"context"
	"log/slog"
	"time"
)

// ToolCall describes an incoming MCP tool invocation for logging purposes.
type ToolCall struct {
	// Tool is the invoked tool name.
	Tool string

	// RequestID is the unique ID assigned to this call.
	RequestID string

	// Arguments are the raw call arguments.
	Arguments map[string]any
}

// ToolResult describes the outcome of a tool invocation.
type ToolResult struct {
	// IsError is set when the tool returned an error result to the caller.
	IsError bool

	// Error is the error text, if any.
	Error string

	// Duration is how long the call took.
	Duration time.Duration
}

// LogToolCall logs an incoming tool call. Arguments are logged at debug level only.
func LogToolCall(logger *slog.Logger, call *ToolCall) {
	attrs := []slog.Attr{
		slog.String("event", "tool_call"),
		slog.String(ToolKey, call.Tool),
	}
	if call.RequestID != "" {
		attrs = append(attrs, slog.String(RequestIDKey, call.RequestID))
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) && len(call.Arguments) > 0 {
		attrs = append(attrs, slog.Any("arguments", call.Arguments))
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "tool call received", attrs...)
}

// LogToolResult logs the outcome of a tool call.
func LogToolResult(logger *slog.Logger, call *ToolCall, result *ToolResult) {
	attrs := []slog.Attr{
		slog.String("event", "tool_result"),
		slog.String(ToolKey, call.Tool),
		slog.Bool("is_error", result.IsError),
		slog.Int64(DurationKey, result.Duration.Milliseconds()),
	}
	if call.RequestID != "" {
		attrs = append(attrs, slog.String(RequestIDKey, call.RequestID))
	}
	if result.Error != "" {
		attrs = append(attrs, slog.String("error", result.Error))
	}

	level := slog.LevelInfo
	message := "tool call completed"
	if result.IsError {
		level = slog.LevelWarn
		message = "tool call returned error"
	}
	logger.LogAttrs(context.Background(), level, message, attrs...)
}
