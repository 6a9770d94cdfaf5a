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

/*
Package cli provides the root command for the studyplan CLI.

It owns the persistent flags, the version information injected at build time
and the JSON-capable help command. Individual commands live in the
internal/commands subpackages and are registered by main.

# Command Tree

	studyplan
	├── serve      Run the MCP server over stdio
	├── generate   Generate and save a study plan
	├── topics     List knowledge-base topics
	├── show       Print the saved study plan
	├── version    Show version
	├── completion Shell completion scripts
	└── help       Show help (--json for machine-readable output)

# Global Flags

	--verbose, -v    Enable debug logging
	--quiet, -q      Suppress non-error output
	--json           Output in JSON format
	--config         Path to config file

# Exit Codes

HandleExitError maps errors to exit codes:

  - 0: success
  - 1: unexpected failure
  - 2: invalid request (role, weeks or focus areas)
  - 3: no topic matched the focus areas
  - 4: path escapes the sandbox root
  - 5: storage I/O failure
  - 78: invalid configuration
*/
package cli
