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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedDate = time.Date(2024, time.June, 1, 15, 4, 5, 0, time.UTC)

func TestRender_Structure(t *testing.T) {
	text, err := Render(PlanInput{
		Role:          RoleBackend,
		Date:          fixedDate,
		WeeksDuration: 2,
		FocusAreas:    []string{"test", "scal"},
		Schedule:      []ScheduleEntry{{Week: 1, Title: "Testing"}, {Week: 2, Title: "Scaling"}},
	})
	require.NoError(t, err)

	want := `# BACKEND Study Plan

Generated: 2024-06-01
Duration: 2 weeks

## Focus Areas

- test
- scal

## Weekly Breakdown

### Week 1: Testing

- Study the concept in depth
- Complete practice exercises
- Build a project applying Testing (role: backend)
- Review and document key takeaways

### Week 2: Scaling

- Study the concept in depth
- Complete practice exercises
- Build a project applying Scaling (role: backend)
- Review and document key takeaways

## Resources

- Knowledge base: concepts://src
- Official documentation and industry best practices for each topic
- Code reviews and write-ups from experienced backend engineers
`
	assert.Equal(t, want, text)
}

func TestRender_SingularWeek(t *testing.T) {
	text, err := Render(PlanInput{
		Role:          RoleMLEngineer,
		Date:          fixedDate,
		WeeksDuration: 1,
		FocusAreas:    []string{"ml"},
		Schedule:      []ScheduleEntry{{Week: 1, Title: "Feature Stores"}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "# ML-ENGINEER Study Plan\n"))
	assert.Contains(t, text, "Duration: 1 week\n")
	assert.NotContains(t, text, "15:04")
}

func TestRender_ActionLineForEveryRole(t *testing.T) {
	for _, role := range Roles() {
		t.Run(string(role), func(t *testing.T) {
			text, err := Render(PlanInput{
				Role:          role,
				Date:          fixedDate,
				WeeksDuration: 1,
				FocusAreas:    []string{"ml"},
				Schedule:      []ScheduleEntry{{Week: 1, Title: "Feature Stores"}},
			})
			require.NoError(t, err)

			assert.Contains(t, text, "- Build a project applying Feature Stores (role: "+string(role)+")\n")
			assert.NotContains(t, text, "a "+string(role)+" project")
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := PlanInput{
		Role:          RoleDevOps,
		Date:          fixedDate,
		WeeksDuration: 3,
		FocusAreas:    []string{"ci"},
		Schedule:      Schedule([]Topic{{Title: "CI Pipelines"}}, 3),
	}
	first, err := Render(in)
	require.NoError(t, err)
	second, err := Render(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_RoundTrip(t *testing.T) {
	topics := ParseKnowledgeBase(sampleKnowledgeBase)

	for _, weeks := range []int{1, 4, 13, 52} {
		schedule := Schedule(topics, weeks)
		text, err := Render(PlanInput{
			Role:          RoleFullstack,
			Date:          fixedDate,
			WeeksDuration: weeks,
			FocusAreas:    []string{"anything"},
			Schedule:      schedule,
		})
		require.NoError(t, err)

		assert.Equal(t, schedule, ParseWeeks(text), "weeks=%d", weeks)
	}
}

func TestParseWeeks_IgnoresHeadingsOutsideSection(t *testing.T) {
	text := "## Notes\n### Week 9: Not Counted\n## Weekly Breakdown\n### Week 1: Counted\n## Resources\n### Week 2: Also Not Counted\n"
	assert.Equal(t, []ScheduleEntry{{Week: 1, Title: "Counted"}}, ParseWeeks(text))
}

func TestParseWeeks_Placeholder(t *testing.T) {
	assert.Nil(t, ParseWeeks("# No study plan yet"))
}
