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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleTitles(entries []ScheduleEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}

func TestSchedule_SingleTopicRepeats(t *testing.T) {
	matched, err := MatchFocus(exampleTopics(), []string{"test"})
	require.NoError(t, err)

	entries := Schedule(matched, 3)
	assert.Equal(t, []string{"Testing", "Testing", "Testing"}, scheduleTitles(entries))
}

func TestSchedule_CyclesInOrder(t *testing.T) {
	matched, err := MatchFocus(exampleTopics(), []string{"test", "scal"})
	require.NoError(t, err)

	entries := Schedule(matched, 5)
	assert.Equal(t, []string{"Testing", "Scaling", "Testing", "Scaling", "Testing"}, scheduleTitles(entries))
}

func TestSchedule_LengthAndIndexProperty(t *testing.T) {
	var topics []Topic
	for i := 1; i <= 7; i++ {
		topics = append(topics, Topic{Code: i, Title: fmt.Sprintf("Topic %d", i)})
	}

	for n := 1; n <= len(topics); n++ {
		matched := topics[:n]
		for weeks := MinWeeks; weeks <= MaxWeeks; weeks++ {
			entries := Schedule(matched, weeks)
			require.Len(t, entries, weeks)
			for i, e := range entries {
				assert.Equal(t, i+1, e.Week)
				assert.Equal(t, matched[i%n].Title, e.Title)
			}
		}
	}
}

func TestSchedule_FewerWeeksThanTopics(t *testing.T) {
	topics := []Topic{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	assert.Equal(t, []string{"A", "B"}, scheduleTitles(Schedule(topics, 2)))
}

func TestSchedule_EmptyInput(t *testing.T) {
	assert.Nil(t, Schedule(nil, 4))
	assert.Nil(t, Schedule([]Topic{{Title: "A"}}, 0))
}
