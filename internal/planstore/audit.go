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
	"context"
	"log/slog"
	"time"
)

// AuditEntry records one store operation.
type AuditEntry struct {
	Timestamp time.Time
	Operation string
	Path      string
	Result    string // "success", "fallback", "denied" or "error"
	Duration  time.Duration
	Bytes     int64
	Error     string
}

// AuditLogger records store operations.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry)
}

// SlogAuditLogger implements AuditLogger using structured logging with slog.
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger creates an audit logger that uses slog.
func NewSlogAuditLogger(logger *slog.Logger) *SlogAuditLogger {
	return &SlogAuditLogger{logger: logger}
}

// Log writes an audit entry. Failures log at warn, denials at error, the rest at debug.
func (l *SlogAuditLogger) Log(ctx context.Context, entry AuditEntry) {
	if l.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", entry.Operation),
		slog.String("path", entry.Path),
		slog.String("result", entry.Result),
		slog.Duration("duration", entry.Duration),
	}
	if entry.Bytes > 0 {
		attrs = append(attrs, slog.Int64("bytes", entry.Bytes))
	}
	if entry.Error != "" {
		attrs = append(attrs, slog.String("error", entry.Error))
	}

	level := slog.LevelDebug
	switch entry.Result {
	case "denied":
		level = slog.LevelError
	case "error", "fallback":
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "store operation", attrs...)
}

// NoopAuditLogger discards entries.
type NoopAuditLogger struct{}

// Log does nothing.
func (NoopAuditLogger) Log(context.Context, AuditEntry) {}
