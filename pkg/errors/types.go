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

package errors

import (
	"fmt"
	"strings"
)

// ValidationError represents user input validation failures.
// Use this for request arguments outside their declared enum, range, or cardinality.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Hint provides actionable guidance for fixing the error
	Hint string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) ErrorType() string   { return "validation" }
func (e *ValidationError) IsRetryable() bool   { return false }
func (e *ValidationError) IsUserVisible() bool { return true }
func (e *ValidationError) UserMessage() string { return e.Error() }
func (e *ValidationError) Suggestion() string  { return e.Hint }

// AccessDeniedError is returned when a resolved path lies outside the sandbox root.
// It is raised before any read or write is attempted.
type AccessDeniedError struct {
	// Path is the path as requested by the caller
	Path string

	// Root is the sandbox root the path was checked against
	Root string
}

// Error implements the error interface.
func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s is outside %s", e.Path, e.Root)
}

func (e *AccessDeniedError) ErrorType() string   { return "access_denied" }
func (e *AccessDeniedError) IsRetryable() bool   { return false }
func (e *AccessDeniedError) IsUserVisible() bool { return true }

// UserMessage hides the absolute sandbox root from callers.
func (e *AccessDeniedError) UserMessage() string {
	return fmt.Sprintf("access denied: %s is outside the allowed directory", e.Path)
}

func (e *AccessDeniedError) Suggestion() string {
	return "Use a path relative to the configured sandbox root"
}

// NoMatchingTopicsError is returned when no knowledge-base topic matches any
// requested focus area. Available lists every parsed topic title so callers
// can retry with valid keywords.
type NoMatchingTopicsError struct {
	FocusAreas []string
	Available  []string
}

// Error implements the error interface.
func (e *NoMatchingTopicsError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("no topics match focus areas [%s]; available topics: %s",
		strings.Join(e.FocusAreas, ", "), available)
}

func (e *NoMatchingTopicsError) ErrorType() string   { return "no_matching_topics" }
func (e *NoMatchingTopicsError) IsRetryable() bool   { return false }
func (e *NoMatchingTopicsError) IsUserVisible() bool { return true }
func (e *NoMatchingTopicsError) UserMessage() string { return e.Error() }

func (e *NoMatchingTopicsError) Suggestion() string {
	if len(e.Available) == 0 {
		return "Add topic lines to the knowledge base"
	}
	return "Use a focus area that appears in one of the available topics"
}

// IOError represents an underlying read or write failure not otherwise classified.
type IOError struct {
	// Op is the failed operation ("read" or "write")
	Op string

	// Path is the resolved path the operation targeted
	Path string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *IOError) Unwrap() error {
	return e.Cause
}

func (e *IOError) ErrorType() string   { return "io" }
func (e *IOError) IsRetryable() bool   { return true }
func (e *IOError) IsUserVisible() bool { return true }
func (e *IOError) UserMessage() string { return fmt.Sprintf("failed to %s %s", e.Op, e.Path) }
func (e *IOError) Suggestion() string  { return "" }

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "sandbox_root", "storage.backend")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := "config error"
	if e.Key != "" {
		msg = fmt.Sprintf("config error at %s", e.Key)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func (e *ConfigError) ErrorType() string   { return "config" }
func (e *ConfigError) IsRetryable() bool   { return false }
func (e *ConfigError) IsUserVisible() bool { return true }
func (e *ConfigError) UserMessage() string { return e.Error() }

func (e *ConfigError) Suggestion() string {
	if e.Key == "" {
		return ""
	}
	return fmt.Sprintf("Fix %s in the config file or its STUDYPLAN_* environment override", e.Key)
}
