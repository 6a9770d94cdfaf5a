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
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// DateLayout is the calendar-date format used in rendered plans.
const DateLayout = "2006-01-02"

const (
	weeklyHeading    = "## Weekly Breakdown"
	weekHeadingRegex = `^### Week (\d+): (.+)$`
)

//go:embed plan.md.tmpl
var planTemplateText string

var planTemplate = template.Must(template.New("plan").Funcs(template.FuncMap{
	"upper": strings.ToUpper,
}).Parse(planTemplateText))

var weekHeadingPattern = regexp.MustCompile(weekHeadingRegex)

// PlanInput is everything Render needs. Date is supplied by the caller.
type PlanInput struct {
	Role          Role
	Date          time.Time
	WeeksDuration int
	FocusAreas    []string
	Schedule      []ScheduleEntry
}

type planTemplateData struct {
	Role          string
	Date          string
	WeeksDuration int
	FocusAreas    []string
	Schedule      []ScheduleEntry
}

// Render produces the markdown plan document for in.
func Render(in PlanInput) (string, error) {
	data := planTemplateData{
		Role:          string(in.Role),
		Date:          in.Date.Format(DateLayout),
		WeeksDuration: in.WeeksDuration,
		FocusAreas:    in.FocusAreas,
		Schedule:      in.Schedule,
	}

	var buf bytes.Buffer
	if err := planTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering study plan: %w", err)
	}
	return buf.String(), nil
}

// ParseWeeks scans the weekly breakdown of a rendered plan and returns its
// week blocks in document order. Text without a weekly section yields nil.
func ParseWeeks(text string) []ScheduleEntry {
	var (
		entries   []ScheduleEntry
		inSection bool
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "## ") {
			inSection = line == weeklyHeading
			continue
		}
		if !inSection {
			continue
		}
		m := weekHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		week, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entries = append(entries, ScheduleEntry{Week: week, Title: m[2]})
	}
	return entries
}
