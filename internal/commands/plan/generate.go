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
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/cli/format"
	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/pkg/studyplan"
)

type generateOptions struct {
	role   string
	weeks  int
	focus  []string
	pretty bool
	dryRun bool
}

// generateResponse is the --json output of generate.
type generateResponse struct {
	shared.JSONResponse
	Role          studyplan.Role            `json:"role"`
	WeeksDuration int                       `json:"weeksDuration"`
	FocusAreas    []string                  `json:"focusAreas"`
	Schedule      []studyplan.ScheduleEntry `json:"schedule"`
	Path          string                    `json:"path,omitempty"`
	Saved         bool                      `json:"saved"`
	Plan          string                    `json:"plan"`
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study plan from the knowledge base",
		Long: fmt.Sprintf(`Generate a week-by-week study plan without an MCP client.

Topics whose knowledge-base line contains any focus keyword (case-insensitive)
are scheduled round-robin across the requested weeks. The plan is saved to the
configured plan path unless --dry-run is given.

Roles: %s`, strings.Join(studyplan.RoleNames(), ", ")),
		Example: `  studyplan generate --role backend --weeks 6 --focus testing --focus caching
  studyplan generate --role devops --weeks 2 --focus observability --dry-run --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pretty") {
				opts.pretty = format.IsTTY()
			}
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.role, "role", "", "Target role")
	cmd.Flags().IntVar(&opts.weeks, "weeks", 4, "Plan length in weeks")
	cmd.Flags().StringSliceVar(&opts.focus, "focus", nil, "Focus keyword (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Render the plan as styled markdown (default: when stdout is a terminal)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the plan without saving it")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("focus")
	_ = cmd.RegisterFlagCompletionFunc("role", completeRoles)

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()

	app, err := openApp(ctx)
	if err != nil {
		return failJSON(cmd, "generate", err)
	}
	defer app.Close()

	req := studyplan.Request{
		Role:          studyplan.Role(opts.role),
		WeeksDuration: opts.weeks,
		FocusAreas:    opts.focus,
	}

	var plan *studyplan.Plan
	if opts.dryRun {
		plan, err = app.Generator.Build(ctx, req)
	} else {
		plan, err = app.Generator.Generate(ctx, req)
	}
	if err != nil {
		return failJSON(cmd, "generate", err)
	}

	if shared.GetJSON() {
		resp := generateResponse{
			JSONResponse:  shared.NewJSONResponse("generate"),
			Role:          plan.Role,
			WeeksDuration: plan.WeeksDuration,
			FocusAreas:    plan.FocusAreas,
			Schedule:      plan.Schedule,
			Saved:         !opts.dryRun,
			Plan:          plan.Text,
		}
		if !opts.dryRun {
			resp.Path = app.Generator.PlanPath()
		}
		return shared.EmitJSON(cmd.OutOrStdout(), resp)
	}

	if err := writeDocument(cmd.OutOrStdout(), plan.Text, opts.pretty); err != nil {
		return err
	}

	if !shared.GetQuiet() {
		if opts.dryRun {
			fmt.Fprintln(cmd.ErrOrStderr(), shared.RenderWarn("Dry run: plan not saved"))
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), shared.RenderOK("Study plan saved to "+app.Generator.PlanPath()))
		}
	}
	return nil
}
