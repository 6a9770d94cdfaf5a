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

// Schedule assigns matched[(w-1) % len(matched)] to each week w in 1..weeks.
// Topics repeat in their original order once the list is exhausted.
// The caller guarantees matched is non-empty; nil is returned otherwise.
func Schedule(matched []Topic, weeks int) []ScheduleEntry {
	if len(matched) == 0 || weeks < 1 {
		return nil
	}
	entries := make([]ScheduleEntry, weeks)
	for i := range entries {
		entries[i] = ScheduleEntry{
			Week:  i + 1,
			Title: matched[i%len(matched)].Title,
		}
	}
	return entries
}
