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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/commands/shared"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for studyplan
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studyplan",
		Short: "studyplan - study plans from a markdown knowledge base",
		Long: `studyplan turns a markdown knowledge base of topic lines into week-by-week
study plans for a role and a set of focus keywords.

Run 'studyplan serve' to expose the generateStudyPlan tool and the concepts
and study-plan resources to an MCP client over stdio.
Run 'studyplan generate' to build a plan directly from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return shared.CheckGlobalFlags()
		},
	}

	shared.BindGlobalFlags(cmd.PersistentFlags())

	return cmd
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError prints err and exits with the code it maps to.
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
