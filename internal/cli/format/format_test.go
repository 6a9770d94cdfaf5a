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

package format

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		styled   bool
		wantErr  bool
		want     string // exact output, checked when non-empty
		contains string
	}{
		{
			name:    "plain output is unchanged",
			content: "# Backend Study Plan\n\n- Item 1\n",
			want:    "# Backend Study Plan\n\n- Item 1\n",
		},
		{
			name:    "plain output strips escapes",
			content: "### Week 1: \x1b[31mCaching\x1b[0m\n",
			want:    "### Week 1: Caching\n",
		},
		{
			name:     "styled output keeps text",
			content:  "# Heading\n\n### Week 1: Caching\n",
			styled:   true,
			contains: "Caching",
		},
		{
			name:    "empty document",
			content: "",
			styled:  true,
		},
		{
			name:    "oversized document",
			content: strings.Repeat("a", MaxDocumentSize+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.content, tt.styled)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Markdown() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Markdown() output should contain %q, got %q", tt.contains, got)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[1;32mok\x1b[0m done"); got != "ok done" {
		t.Errorf("StripANSI() = %q", got)
	}
}

func TestIsTTY_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if IsTTY() {
		t.Error("NO_COLOR must disable terminal formatting")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if IsTTY() {
		t.Error("TERM=dumb must disable terminal formatting")
	}
}
