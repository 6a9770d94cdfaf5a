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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/studyplan/internal/log"
	spErrors "github.com/tombee/studyplan/pkg/errors"
)

// documentHandler serves a store document, re-reading it on every request.
func (s *Server) documentHandler(read func(context.Context) (string, error)) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		start := time.Now()
		uri := request.Params.URI

		text, err := read(ctx)
		resourceReads.WithLabelValues(uri, outcome(err)).Inc()
		if err != nil {
			s.logger.Warn("resource read failed",
				slog.String(log.ResourceKey, uri),
				slog.String("error_type", spErrors.Type(err)),
				log.Error(err),
			)
			return nil, errors.New(spErrors.UserText(err))
		}

		s.logger.Debug("resource read",
			slog.String(log.ResourceKey, uri),
			slog.Int("bytes", len(text)),
			slog.Int64(log.DurationKey, time.Since(start).Milliseconds()),
		)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     text,
			},
		}, nil
	}
}

func (s *Server) handleGreeting(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name := greetingName(request)
	resourceReads.WithLabelValues(GreetingURITemplate, "success").Inc()
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Hello, %s!", name),
		},
	}, nil
}

// greetingName prefers the matched template variable and falls back to the URI suffix.
func greetingName(request mcp.ReadResourceRequest) string {
	switch v := request.Params.Arguments["name"].(type) {
	case string:
		if v != "" {
			return v
		}
	case []string:
		if len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, "greeting://")
}
