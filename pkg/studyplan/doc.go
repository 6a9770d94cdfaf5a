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

// Package studyplan turns a knowledge-base document into a week-by-week study plan.
//
// The pipeline has four pure stages and one stateful one:
//
//	text --Parse--> []Topic --MatchFocus--> []Topic --Schedule--> []ScheduleEntry --Render--> markdown
//
// Generator wires the stages to a DocumentStore, which reads the knowledge base
// and persists the rendered plan. Every stage except the store is deterministic:
// the generation date is supplied by the caller through the generator's clock.
package studyplan
