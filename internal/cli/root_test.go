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
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tombee/studyplan/internal/commands/shared"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "studyplan" {
		t.Errorf("expected use 'studyplan', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected short and long descriptions to be set")
	}
	if !cmd.SilenceErrors || !cmd.SilenceUsage {
		t.Error("root command must leave error reporting to HandleExitError")
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"verbose", "quiet", "json", "config"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("%s flag not registered", name)
		}
	}

	if usage := cmd.PersistentFlags().Lookup("config").Usage; !strings.Contains(usage, "studyplan/config.yaml") {
		t.Errorf("config usage should name the default path, got %q", usage)
	}
}

func TestSetVersion(t *testing.T) {
	prevV, prevC, prevB := GetVersion()
	t.Cleanup(func() { SetVersion(prevV, prevC, prevB) })

	SetVersion("1.2.3", "abc123", "2026-01-15")

	v, c, b := GetVersion()
	if v != "1.2.3" || c != "abc123" || b != "2026-01-15" {
		t.Errorf("unexpected version info: %q %q %q", v, c, b)
	}
}

func TestQuietAndVerboseConflict(t *testing.T) {
	shared.SetFlagsForTest(t, false, "")

	ran := false
	cmd := NewRootCommand()
	cmd.AddCommand(&cobra.Command{
		Use: "noop",
		RunE: func(*cobra.Command, []string) error {
			ran = true
			return nil
		},
	})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"noop", "-q", "-v"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for --quiet with --verbose")
	}
	if code := shared.ExitCode(err); code != shared.ExitInvalidRequest {
		t.Errorf("expected exit code %d, got %d", shared.ExitInvalidRequest, code)
	}
	if ran {
		t.Error("command must not run when global flags conflict")
	}
}
