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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/studyplan/internal/commands/shared"
	"github.com/tombee/studyplan/pkg/studyplan"
)

const testKnowledge = `# Concepts

KA 1 - Caching: cache invalidation and layers
KA 2 - Queues: message brokers and backpressure
KA 3 - Testing: table tests and fixtures
`

// setupSandbox writes a knowledge base and a config file pointing at it.
func setupSandbox(t *testing.T, jsonOut bool) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "concepts.md"), []byte(testKnowledge), 0o644))

	cfgPath := filepath.Join(root, "config.yaml")
	cfg := "sandbox_root: " + root + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	shared.SetFlagsForTest(t, jsonOut, cfgPath)
	return root
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestGenerate_SavesPlan(t *testing.T) {
	root := setupSandbox(t, false)

	out, errOut, err := execute(t, NewGenerateCommand(),
		"--role", "backend", "--weeks", "4", "--focus", "cache,testing", "--pretty=false")
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(root, "src", "study-plan.md"))
	require.NoError(t, err)
	assert.Equal(t, string(saved), out)
	assert.Contains(t, errOut, "Study plan saved to src/study-plan.md")

	weeks := studyplan.ParseWeeks(out)
	require.Len(t, weeks, 4)
	assert.Equal(t, []string{"Caching", "Testing", "Caching", "Testing"},
		[]string{weeks[0].Title, weeks[1].Title, weeks[2].Title, weeks[3].Title})
}

func TestGenerate_DryRunDoesNotWrite(t *testing.T) {
	root := setupSandbox(t, false)

	out, errOut, err := execute(t, NewGenerateCommand(),
		"--role", "devops", "--weeks", "2", "--focus", "broker", "--dry-run", "--pretty=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Queues")
	assert.Contains(t, errOut, "Dry run")

	_, statErr := os.Stat(filepath.Join(root, "src", "study-plan.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_JSON(t *testing.T) {
	setupSandbox(t, true)

	out, _, err := execute(t, NewGenerateCommand(),
		"--role", "frontend", "--weeks", "3", "--focus", "queues")
	require.NoError(t, err)

	var resp generateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "generate", resp.Command)
	assert.Equal(t, studyplan.RoleFrontend, resp.Role)
	assert.Equal(t, 3, resp.WeeksDuration)
	assert.True(t, resp.Saved)
	assert.Equal(t, "src/study-plan.md", resp.Path)
	require.Len(t, resp.Schedule, 3)
	for i, entry := range resp.Schedule {
		assert.Equal(t, i+1, entry.Week)
		assert.Equal(t, "Queues", entry.Title)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{
			name:     "unknown role",
			args:     []string{"--role", "chef", "--weeks", "2", "--focus", "cache"},
			wantCode: shared.ExitInvalidRequest,
		},
		{
			name:     "weeks out of range",
			args:     []string{"--role", "backend", "--weeks", "0", "--focus", "cache"},
			wantCode: shared.ExitInvalidRequest,
		},
		{
			name:     "no matching topics",
			args:     []string{"--role", "backend", "--weeks", "2", "--focus", "kubernetes"},
			wantCode: shared.ExitNoMatchingTopics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupSandbox(t, false)

			_, _, err := execute(t, NewGenerateCommand(), append(tt.args, "--pretty=false")...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, shared.ExitCode(err))

			_, statErr := os.Stat(filepath.Join(root, "src", "study-plan.md"))
			assert.True(t, os.IsNotExist(statErr), "failed generation must not write a plan")
		})
	}
}

func TestGenerate_JSONError(t *testing.T) {
	setupSandbox(t, true)

	out, _, err := execute(t, NewGenerateCommand(),
		"--role", "backend", "--weeks", "2", "--focus", "kubernetes")
	require.Error(t, err)

	var resp struct {
		shared.JSONResponse
		Errors []shared.JSONError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "no_matching_topics", resp.Errors[0].Code)
}

func TestGenerate_RoleCompletion(t *testing.T) {
	got, directive := completeRoles(nil, nil, "f")
	assert.Equal(t, []string{"frontend", "fullstack"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	all, _ := completeRoles(nil, nil, "")
	assert.ElementsMatch(t, studyplan.RoleNames(), all)
}

func TestTopics_List(t *testing.T) {
	setupSandbox(t, false)

	out, _, err := execute(t, NewTopicsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "3 topic(s) in src/concepts.md")
	assert.Contains(t, out, "1  Caching")
	assert.Contains(t, out, "2  Queues")
	assert.Contains(t, out, "3  Testing")
}

func TestTopics_FocusJSON(t *testing.T) {
	setupSandbox(t, true)

	out, _, err := execute(t, NewTopicsCommand(), "--focus", "TABLE")
	require.NoError(t, err)

	var resp topicsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Topics, 1)
	assert.Equal(t, "Testing", resp.Topics[0].Title)
	assert.Equal(t, 3, resp.Topics[0].Code)
}

func TestShow_MissingPlan(t *testing.T) {
	setupSandbox(t, false)

	_, _, err := execute(t, NewShowCommand(), "--pretty=false")
	require.Error(t, err)
	assert.Equal(t, shared.ExitIO, shared.ExitCode(err))
}

func TestShow_AfterGenerate(t *testing.T) {
	setupSandbox(t, false)

	generated, _, err := execute(t, NewGenerateCommand(),
		"--role", "backend", "--weeks", "2", "--focus", "cache", "--pretty=false")
	require.NoError(t, err)

	out, errOut, err := execute(t, NewShowCommand(), "--pretty=false")
	require.NoError(t, err)
	assert.Equal(t, generated, out)
	assert.Contains(t, errOut, "2 week(s) scheduled")
}

func TestShow_JSON(t *testing.T) {
	setupSandbox(t, false)
	_, _, err := execute(t, NewGenerateCommand(),
		"--role", "backend", "--weeks", "3", "--focus", "broker", "--pretty=false")
	require.NoError(t, err)

	shared.SetFlagsForTest(t, true, shared.GetConfigPath())
	out, _, err := execute(t, NewShowCommand())
	require.NoError(t, err)

	var resp showResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "src/study-plan.md", resp.Path)
	assert.Len(t, resp.Weeks, 3)
	assert.Contains(t, resp.Plan, "Queues")
}
