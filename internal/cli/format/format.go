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

// Package format prepares markdown documents for terminal output.
package format

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/glamour"
)

// MaxDocumentSize bounds the documents Markdown will render.
const MaxDocumentSize = 5 * 1024 * 1024

// WordWrap is the column styled output wraps at.
const WordWrap = 100

// ansiEscapeRegex matches ANSI escape sequences.
var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// Markdown prepares a markdown document for the terminal. Escape sequences
// already present in content are removed, so text copied from a knowledge
// base cannot drive the terminal. With styled set the document is rendered
// by glamour; if glamour fails the plain text is returned.
func Markdown(content string, styled bool) (string, error) {
	if len(content) > MaxDocumentSize {
		return "", fmt.Errorf("document size (%d bytes) exceeds maximum (%d bytes)", len(content), MaxDocumentSize)
	}

	content = StripANSI(content)
	if !styled {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(WordWrap),
	)
	if err != nil {
		return content, nil
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content, nil
	}
	return rendered, nil
}
