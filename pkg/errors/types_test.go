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

package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	spErrors "github.com/tombee/studyplan/pkg/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *spErrors.ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &spErrors.ValidationError{Field: "weeksDuration", Message: "must be between 1 and 52"},
			wantMsg: "validation failed on weeksDuration: must be between 1 and 52",
		},
		{
			name:    "without field",
			err:     &spErrors.ValidationError{Message: "invalid format"},
			wantMsg: "validation failed: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestNoMatchingTopicsError_ListsAvailableTopics(t *testing.T) {
	err := &spErrors.NoMatchingTopicsError{
		FocusAreas: []string{"nonexistent-keyword"},
		Available:  []string{"Testing", "Scaling"},
	}

	msg := err.Error()
	for _, want := range []string{"nonexistent-keyword", "Testing", "Scaling"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestNoMatchingTopicsError_EmptyKnowledgeBase(t *testing.T) {
	err := &spErrors.NoMatchingTopicsError{FocusAreas: []string{"go"}}

	if !strings.Contains(err.Error(), "available topics: none") {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if err.Suggestion() != "Add topic lines to the knowledge base" {
		t.Errorf("unexpected suggestion: %q", err.Suggestion())
	}
}

func TestAccessDeniedError_UserMessageHidesRoot(t *testing.T) {
	err := &spErrors.AccessDeniedError{Path: "../secret.txt", Root: "/srv/studyplan"}

	if !strings.Contains(err.Error(), "/srv/studyplan") {
		t.Errorf("Error() should name the root, got %q", err.Error())
	}
	if strings.Contains(err.UserMessage(), "/srv/studyplan") {
		t.Errorf("UserMessage() should not leak the root, got %q", err.UserMessage())
	}
}

func TestIOError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &spErrors.IOError{Op: "write", Path: "/tmp/plan.md", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("IOError should unwrap to its cause")
	}
	if got := err.Error(); got != "write /tmp/plan.md: disk full" {
		t.Errorf("IOError.Error() = %q", got)
	}
	if !err.IsRetryable() {
		t.Error("IOError should be retryable")
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &spErrors.ConfigError{Key: "storage.backend", Reason: "unknown backend", Cause: fmt.Errorf("got %q", "redis")}

	want := `config error at storage.backend: unknown backend: got "redis"`
	if got := err.Error(); got != want {
		t.Errorf("ConfigError.Error() = %q, want %q", got, want)
	}
}

func TestConfigError_Classification(t *testing.T) {
	err := spErrors.Wrap(&spErrors.ConfigError{Key: "log.level", Reason: "unknown level"}, "failed to load configuration")

	if got := spErrors.Type(err); got != "config" {
		t.Errorf("Type() = %q, want %q", got, "config")
	}
	text := spErrors.UserText(err)
	if !strings.Contains(text, "config error at log.level: unknown level") || !strings.Contains(text, "Fix log.level") {
		t.Errorf("UserText() = %q", text)
	}

	var classified spErrors.ErrorClassifier
	if !errors.As(err, &classified) || classified.IsRetryable() {
		t.Error("ConfigError should be classified and not retryable")
	}
}

func TestErrorTypes_ImplementInterfaces(t *testing.T) {
	errs := []error{
		&spErrors.ValidationError{},
		&spErrors.AccessDeniedError{},
		&spErrors.NoMatchingTopicsError{},
		&spErrors.IOError{},
		&spErrors.ConfigError{},
	}

	for _, err := range errs {
		if _, ok := err.(spErrors.ErrorClassifier); !ok {
			t.Errorf("%T does not implement ErrorClassifier", err)
		}
		if _, ok := err.(spErrors.UserVisibleError); !ok {
			t.Errorf("%T does not implement UserVisibleError", err)
		}
	}
}
