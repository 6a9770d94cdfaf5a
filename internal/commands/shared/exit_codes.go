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

package shared

import (
	"errors"
	"fmt"
	"io"
	"os"

	spErrors "github.com/tombee/studyplan/pkg/errors"
)

// Exit codes for studyplan commands
const (
	ExitSuccess          = 0
	ExitFailed           = 1
	ExitInvalidRequest   = 2
	ExitNoMatchingTopics = 3
	ExitAccessDenied     = 4
	ExitIO               = 5
	ExitConfig           = 78 // EX_CONFIG from sysexits.h
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates an error for configuration failures
func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfig,
		Message: msg,
		Cause:   cause,
	}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch spErrors.Type(err) {
	case "validation":
		return ExitInvalidRequest
	case "no_matching_topics":
		return ExitNoMatchingTopics
	case "access_denied":
		return ExitAccessDenied
	case "io":
		return ExitIO
	case "config":
		return ExitConfig
	}

	var cfgErr *spErrors.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}
	return ExitFailed
}

// HandleExitError prints err and exits with the code ExitCode assigns it.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	printError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, RenderError(err.Error()))
	printUserVisibleSuggestion(w, err)
}

// printUserVisibleSuggestion checks if an error implements UserVisibleError
// and prints the suggestion if available.
func printUserVisibleSuggestion(w io.Writer, err error) {
	// Walk the error chain to find a UserVisibleError
	for err != nil {
		if userErr, ok := err.(spErrors.UserVisibleError); ok {
			if userErr.IsUserVisible() {
				if suggestion := userErr.Suggestion(); suggestion != "" {
					fmt.Fprintf(w, "\nSuggestion: %s\n", suggestion)
				}
			}
			return
		}
		err = errors.Unwrap(err)
	}
}
