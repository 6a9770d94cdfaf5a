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

// Package plan implements the offline generate, topics and show commands.
package plan

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/cli/format"
	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/pkg/studyplan"
)

// openApp loads configuration and wires the pipeline for one command run.
func openApp(ctx context.Context) (*shared.App, error) {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return nil, err
	}
	return shared.OpenApp(ctx, cfg, shared.NewLogger(cfg))
}

// failJSON reports err as a JSON envelope when --json is set, then returns it
// so the exit code still reflects the failure.
func failJSON(cmd *cobra.Command, command string, err error) error {
	if shared.GetJSON() {
		_ = shared.EmitJSONError(cmd.OutOrStdout(), command, err)
	}
	return err
}

// writeDocument prints a markdown document, styled by glamour when pretty is set.
func writeDocument(w io.Writer, text string, pretty bool) error {
	out, err := format.Markdown(text, pretty)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// completeRoles offers the supported roles for --role.
func completeRoles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range studyplan.RoleNames() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
