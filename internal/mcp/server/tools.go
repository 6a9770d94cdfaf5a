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

package server

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	spErrors "github.com/tombee/studyplan/pkg/errors"
	"github.com/tombee/studyplan/pkg/studyplan"
)

// PreviewLength is the number of runes of the rendered plan returned by generateStudyPlan.
const PreviewLength = 500

// handleGenerateStudyPlan runs the full pipeline. Every failure becomes an
// error tool result; the handler never returns a protocol error.
func (s *Server) handleGenerateStudyPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := parseGenerateRequest(request.GetArguments())
	if err != nil {
		return errorResponse(spErrors.UserText(err)), nil
	}

	plan, err := s.generator.Generate(ctx, req)
	if err != nil {
		return errorResponse(spErrors.UserText(err)), nil
	}

	s.NotifyResourceUpdated(PlanURI)

	return textResponse(fmt.Sprintf("Study plan generated and saved to %s.\n\nPreview:\n%s", PlanURI, preview(plan.Text, PreviewLength))), nil
}

// parseGenerateRequest checks argument types. Range and membership checks
// are left to studyplan.Request.Validate.
func parseGenerateRequest(args map[string]any) (studyplan.Request, error) {
	var req studyplan.Request

	role, ok := args["role"].(string)
	if !ok || strings.TrimSpace(role) == "" {
		return req, &spErrors.ValidationError{
			Field:   "role",
			Message: "role is required and must be a string",
			Hint:    "One of: " + strings.Join(studyplan.RoleNames(), ", "),
		}
	}
	req.Role = studyplan.Role(role)

	weeks, err := wholeNumber(args["weeksDuration"])
	if err != nil {
		return req, &spErrors.ValidationError{
			Field:   "weeksDuration",
			Message: err.Error(),
			Hint:    fmt.Sprintf("Use a whole number between %d and %d", studyplan.MinWeeks, studyplan.MaxWeeks),
		}
	}
	req.WeeksDuration = weeks

	raw, ok := args["focusAreas"].([]any)
	if !ok {
		if typed, isStrings := args["focusAreas"].([]string); isStrings {
			req.FocusAreas = typed
			return req, nil
		}
		return req, &spErrors.ValidationError{
			Field:   "focusAreas",
			Message: "focusAreas is required and must be an array of strings",
		}
	}
	req.FocusAreas = make([]string, 0, len(raw))
	for i, item := range raw {
		area, ok := item.(string)
		if !ok {
			return req, &spErrors.ValidationError{
				Field:   fmt.Sprintf("focusAreas[%d]", i),
				Message: "must be a string",
			}
		}
		req.FocusAreas = append(req.FocusAreas, area)
	}

	return req, nil
}

// wholeNumber accepts JSON numbers with no fractional part.
func wholeNumber(v any) (int, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("weeksDuration is required")
	case float64:
		f = n
	case int:
		return n, nil
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("weeksDuration must be an integer, got %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("weeksDuration must be a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("weeksDuration must be an integer, got %v", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("weeksDuration is out of range: %v", f)
	}
	return int(f), nil
}

// preview returns the first n runes of text, marking truncation with "...".
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func (s *Server) handleAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireFloat("a")
	if err != nil {
		return errorResponse(err.Error()), nil
	}
	b, err := request.RequireFloat("b")
	if err != nil {
		return errorResponse(err.Error()), nil
	}
	return textResponse(strconv.FormatFloat(a+b, 'f', -1, 64)), nil
}
