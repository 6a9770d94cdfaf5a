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

	"golang.org/x/text/cases"

	"github.com/tombee/studyplan/pkg/errors"
)

// MatchFocus keeps the topics whose raw line contains at least one focus area,
// compared case-insensitively. Order is preserved. An empty result is an error
// naming every available topic, never an empty slice.
func MatchFocus(topics []Topic, focusAreas []string) ([]Topic, error) {
	fold := cases.Fold()

	needles := make([]string, 0, len(focusAreas))
	for _, f := range focusAreas {
		needles = append(needles, fold.String(f))
	}

	var matched []Topic
	for _, topic := range topics {
		haystack := fold.String(topic.RawLine)
		for _, needle := range needles {
			if strings.Contains(haystack, needle) {
				matched = append(matched, topic)
				break
			}
		}
	}

	if len(matched) == 0 {
		return nil, &errors.NoMatchingTopicsError{
			FocusAreas: append([]string(nil), focusAreas...),
			Available:  Titles(topics),
		}
	}
	return matched, nil
}
