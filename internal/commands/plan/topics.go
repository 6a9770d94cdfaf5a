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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/pkg/studyplan"
)

type topicsResponse struct {
	shared.JSONResponse
	Topics []studyplan.Topic `json:"topics"`
}

// NewTopicsCommand creates the topics command
func NewTopicsCommand() *cobra.Command {
	var focus []string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List knowledge-base topics",
		Long: `List the topics parsed from the knowledge base, in document order.

With --focus, only topics the plan generator would select are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopics(cmd, focus)
		},
	}

	cmd.Flags().StringSliceVar(&focus, "focus", nil, "Only list topics matching these keywords")

	return cmd
}

func runTopics(cmd *cobra.Command, focus []string) error {
	ctx := cmd.Context()

	app, err := openApp(ctx)
	if err != nil {
		return failJSON(cmd, "topics", err)
	}
	defer app.Close()

	topics, err := app.Generator.Topics(ctx)
	if err != nil {
		return failJSON(cmd, "topics", err)
	}
	if len(focus) > 0 {
		topics, err = studyplan.MatchFocus(topics, focus)
		if err != nil {
			return failJSON(cmd, "topics", err)
		}
	}

	if shared.GetJSON() {
		if topics == nil {
			topics = []studyplan.Topic{}
		}
		return shared.EmitJSON(cmd.OutOrStdout(), topicsResponse{
			JSONResponse: shared.NewJSONResponse("topics"),
			Topics:       topics,
		})
	}

	if len(topics) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), shared.RenderWarn("No topics found in "+app.Generator.KnowledgePath()))
		return nil
	}

	if !shared.GetQuiet() {
		fmt.Fprintln(cmd.OutOrStdout(), shared.RenderHeader(fmt.Sprintf("%d topic(s) in %s", len(topics), app.Generator.KnowledgePath())))
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, t := range topics {
		fmt.Fprintf(w, "%d\t%s\n", t.Code, t.Title)
	}
	return w.Flush()
}
