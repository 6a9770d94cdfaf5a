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

// UserVisibleError is implemented by errors whose text may be returned to an
// agent or printed by the CLI. The MCP server and the CLI are the only places
// that turn these into text.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	IsUserVisible() bool

	// UserMessage returns a message without internal details such as absolute paths.
	UserMessage() string

	// Suggestion returns actionable guidance, or an empty string.
	Suggestion() string
}

// ErrorClassifier lets callers branch on the error kind without type switches.
type ErrorClassifier interface {
	error

	// ErrorType returns a string identifying the error category.
	// One of "validation", "access_denied", "no_matching_topics", "io", "config".
	ErrorType() string

	// IsRetryable returns true if repeating the same request may succeed.
	IsRetryable() bool
}
