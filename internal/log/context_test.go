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
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}
	ctx := ContextWithRequestID(context.Background(), "req-9")
	if got := RequestIDFromContext(ctx); got != "req-9" {
		t.Errorf("RequestIDFromContext() = %q, want req-9", got)
	}
}

func TestContextHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New(&Config{Output: &buf, Format: "json"}), "generator")

	logger.InfoContext(ContextWithRequestID(context.Background(), "req-9"), "with id")
	logger.InfoContext(context.Background(), "without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if first[RequestIDKey] != "req-9" {
		t.Errorf("request_id = %v, want req-9", first[RequestIDKey])
	}
	if first[ComponentKey] != "generator" {
		t.Errorf("component = %v, want generator", first[ComponentKey])
	}
	if _, ok := second[RequestIDKey]; ok {
		t.Errorf("unexpected request_id on record without one: %v", second[RequestIDKey])
	}
}

func TestContextHandler_InGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Format: "json"}).WithGroup("store")

	logger.InfoContext(ContextWithRequestID(context.Background(), "req-3"), "grouped", "op", "write")

	if !strings.Contains(buf.String(), `"request_id":"req-3"`) {
		t.Errorf("grouped record missing request_id: %s", buf.String())
	}
}
