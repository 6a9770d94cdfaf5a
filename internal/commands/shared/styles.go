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
	"github.com/charmbracelet/lipgloss"
)

// Terminal styles. lipgloss drops colour automatically when stdout is not a terminal.
var (
	StatusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	StatusWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	StatusError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	Muted       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	Header      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

const (
	SymbolOK    = "✓"
	SymbolWarn  = "⚠"
	SymbolError = "✗"
)

// RenderOK prefixes msg with a green check mark.
func RenderOK(msg string) string {
	return StatusOK.Render(SymbolOK) + " " + msg
}

// RenderWarn prefixes msg with an orange warning sign.
func RenderWarn(msg string) string {
	return StatusWarn.Render(SymbolWarn) + " " + msg
}

// RenderError prefixes msg with a red cross.
func RenderError(msg string) string {
	return StatusError.Render(SymbolError) + " " + msg
}

// RenderLabel dims secondary text such as counts and paths.
func RenderLabel(label string) string {
	return Muted.Render(label)
}

// RenderHeader styles a section heading.
func RenderHeader(title string) string {
	return Header.Render(title)
}
