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
	"errors"
	"fmt"
)

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
//
// Usage:
//
//	if err := store.Write(ctx, path, text); err != nil {
//	    return errors.Wrap(err, "saving study plan")
//	}
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target type.
//
// Usage:
//
//	var denied *AccessDeniedError
//	if errors.As(err, &denied) {
//	    log.Printf("blocked path: %s", denied.Path)
//	}
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Type returns the ErrorType of the first classified error in err's chain,
// or "internal" when none is found.
func Type(err error) string {
	var classified ErrorClassifier
	if errors.As(err, &classified) {
		return classified.ErrorType()
	}
	return "internal"
}

// UserText renders err for display to an agent or terminal user. Visible errors
// contribute their user message and suggestion; anything else falls back to Error().
func UserText(err error) string {
	if err == nil {
		return ""
	}
	var visible UserVisibleError
	if errors.As(err, &visible) && visible.IsUserVisible() {
		msg := visible.UserMessage()
		if s := visible.Suggestion(); s != "" {
			msg = fmt.Sprintf("%s (%s)", msg, s)
		}
		return msg
	}
	return err.Error()
}
