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

package studyplan

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/tombee/studyplan/pkg/errors"
)

// Role is the engineering role a plan is generated for.
type Role string

const (
	RoleFrontend   Role = "frontend"
	RoleBackend    Role = "backend"
	RoleFullstack  Role = "fullstack"
	RoleDevOps     Role = "devops"
	RoleMLEngineer Role = "ml-engineer"
)

// Request limits.
const (
	MinWeeks      = 1
	MaxWeeks      = 52
	MinFocusAreas = 1
	MaxFocusAreas = 5
)

// Roles returns every supported role in declaration order.
func Roles() []Role {
	return []Role{RoleFrontend, RoleBackend, RoleFullstack, RoleDevOps, RoleMLEngineer}
}

// RoleNames returns Roles as plain strings, for schemas and help text.
func RoleNames() []string {
	roles := Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Request describes the plan a caller wants.
type Request struct {
	Role          Role     `json:"role"`
	WeeksDuration int      `json:"weeksDuration"`
	FocusAreas    []string `json:"focusAreas"`
}

// Normalize returns a copy of r with the role lower-cased and focus areas trimmed.
func (r Request) Normalize() Request {
	out := Request{
		Role:          Role(strings.ToLower(strings.TrimSpace(string(r.Role)))),
		WeeksDuration: r.WeeksDuration,
		FocusAreas:    make([]string, len(r.FocusAreas)),
	}
	for i, f := range r.FocusAreas {
		out.FocusAreas[i] = strings.TrimSpace(f)
	}
	return out
}

// Validate checks r against the enum, range and cardinality limits.
func (r Request) Validate() error {
	if !r.Role.Valid() {
		return &errors.ValidationError{
			Field:   "role",
			Message: fmt.Sprintf("unknown role %q", r.Role),
			Hint:    "use one of: " + strings.Join(RoleNames(), ", "),
		}
	}
	if r.WeeksDuration < MinWeeks || r.WeeksDuration > MaxWeeks {
		return &errors.ValidationError{
			Field:   "weeksDuration",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinWeeks, MaxWeeks, r.WeeksDuration),
		}
	}
	if len(r.FocusAreas) < MinFocusAreas || len(r.FocusAreas) > MaxFocusAreas {
		return &errors.ValidationError{
			Field:   "focusAreas",
			Message: fmt.Sprintf("must contain %d to %d entries, got %d", MinFocusAreas, MaxFocusAreas, len(r.FocusAreas)),
		}
	}
	for i, f := range r.FocusAreas {
		if strings.TrimSpace(f) == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("focusAreas[%d]", i),
				Message: "must not be blank",
			}
		}
		if strings.IndexFunc(f, unicode.IsControl) >= 0 {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("focusAreas[%d]", i),
				Message: "must be a single line without control characters",
				Hint:    "pass separate keywords as separate focus areas",
			}
		}
	}
	return nil
}

// Topic is one recognised entry of the knowledge base.
// Codes are not unique and are never used for deduplication.
type Topic struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	RawLine string `json:"rawLine"`
}

// ScheduleEntry assigns a topic title to a 1-based week.
type ScheduleEntry struct {
	Week  int    `json:"week"`
	Title string `json:"topicTitle"`
}

// Plan is a generated study plan. Text is the rendered document; once
// persisted, the stored text is the only copy that matters.
type Plan struct {
	Role          Role            `json:"role"`
	GeneratedDate time.Time       `json:"generatedDate"`
	WeeksDuration int             `json:"weeksDuration"`
	FocusAreas    []string        `json:"focusAreas"`
	Schedule      []ScheduleEntry `json:"schedule"`
	Text          string          `json:"-"`
}

// Titles returns the titles of topics in order.
func Titles(topics []Topic) []string {
	titles := make([]string, len(topics))
	for i, t := range topics {
		titles[i] = t.Title
	}
	return titles
}
