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

package shared

import (
	"github.com/spf13/pflag"
)

// GlobalFlags holds the persistent flags every command inherits.
type GlobalFlags struct {
	Verbose    bool
	Quiet      bool
	JSON       bool
	ConfigPath string
}

// BuildInfo is injected from main at startup.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var (
	globals GlobalFlags
	build   = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}
)

// BindGlobalFlags registers the persistent flags on fs.
func BindGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&globals.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&globals.JSON, "json", false, "Output in JSON format")
	fs.StringVar(&globals.ConfigPath, "config", "", "Path to config file (default: ~/.config/studyplan/config.yaml)")
}

// CheckGlobalFlags rejects contradictory global flags.
func CheckGlobalFlags() error {
	if globals.Quiet && globals.Verbose {
		return &ExitError{Code: ExitInvalidRequest, Message: "--quiet and --verbose cannot be used together"}
	}
	return nil
}

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	build = BuildInfo{Version: v, Commit: c, BuildDate: b}
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return build.Version, build.Commit, build.BuildDate
}

func GetVerbose() bool { return globals.Verbose }

func GetQuiet() bool { return globals.Quiet }

func GetJSON() bool { return globals.JSON }

func GetConfigPath() string { return globals.ConfigPath }

// SetFlagsForTest overrides the global flags and restores them when the test ends.
func SetFlagsForTest(t interface{ Cleanup(func()) }, json bool, configPath string) {
	prev := globals
	globals = GlobalFlags{JSON: json, ConfigPath: configPath}
	t.Cleanup(func() { globals = prev })
}
