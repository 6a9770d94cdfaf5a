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

package plan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/cli/format"
	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/pkg/studyplan"
)

type showResponse struct {
	shared.JSONResponse
	Path  string                    `json:"path"`
	Weeks []studyplan.ScheduleEntry `json:"weeks"`
	Plan  string                    `json:"plan"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved study plan",
		Long: `Print the most recently saved study plan.

Unlike the study-plan://src resource, a missing plan is reported as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pretty") {
				pretty = format.IsTTY()
			}
			return runShow(cmd, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render the plan as styled markdown (default: when stdout is a terminal)")

	return cmd
}

func runShow(cmd *cobra.Command, pretty bool) error {
	ctx := cmd.Context()

	app, err := openApp(ctx)
	if err != nil {
		return failJSON(cmd, "show", err)
	}
	defer app.Close()

	path := app.Generator.PlanPath()
	text, err := app.Store.ReadStrict(ctx, path)
	if err != nil {
		return failJSON(cmd, "show", err)
	}
	weeks := studyplan.ParseWeeks(text)

	if shared.GetJSON() {
		if weeks == nil {
			weeks = []studyplan.ScheduleEntry{}
		}
		return shared.EmitJSON(cmd.OutOrStdout(), showResponse{
			JSONResponse: shared.NewJSONResponse("show"),
			Path:         path,
			Weeks:        weeks,
			Plan:         text,
		})
	}

	if err := writeDocument(cmd.OutOrStdout(), text, pretty); err != nil {
		return err
	}
	if !shared.GetQuiet() {
		fmt.Fprintln(cmd.ErrOrStderr(), shared.RenderLabel(fmt.Sprintf("%d week(s) scheduled in %s", len(weeks), path)))
	}
	return nil
}
