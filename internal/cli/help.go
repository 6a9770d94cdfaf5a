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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tombee/studyplan/internal/commands/shared"
)

// CommandMetadata describes a command for JSON help output
type CommandMetadata struct {
	Name        string         `json:"name"`
	Short       string         `json:"short"`
	Long        string         `json:"long,omitempty"`
	Usage       string         `json:"usage"`
	Flags       []FlagMetadata `json:"flags,omitempty"`
	Examples    string         `json:"examples,omitempty"`
	Subcommands []string       `json:"subcommands,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
}

// FlagMetadata describes a flag
type FlagMetadata struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Usage     string `json:"usage"`
	Default   string `json:"default,omitempty"`
	Required  bool   `json:"required"`
}

// HelpResponse is the JSON response for help command
type HelpResponse struct {
	shared.JSONResponse
	Commands    []CommandMetadata `json:"commands,omitempty"`
	Command     *CommandMetadata  `json:"command,omitempty"`
	GlobalFlags []FlagMetadata    `json:"global_flags,omitempty"`
}

// NewHelpCommand creates a help command that also answers in JSON.
func NewHelpCommand(rootCmd *cobra.Command) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Long: `Help provides detailed information about commands and their usage.

Use --json for machine-readable output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			useJSON := shared.GetJSON() || jsonOutput

			if len(args) == 0 {
				if useJSON {
					return emitHelp(cmd, rootCmd, nil)
				}
				return rootCmd.Help()
			}

			targetCmd, _, err := rootCmd.Find(args)
			if err != nil || targetCmd == rootCmd {
				return fmt.Errorf("command %q not found", args[0])
			}
			if useJSON {
				return emitHelp(cmd, rootCmd, targetCmd)
			}
			return targetCmd.Help()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// emitHelp writes every visible command, or only target when it is set.
func emitHelp(cmd, rootCmd, target *cobra.Command) error {
	resp := HelpResponse{
		JSONResponse: shared.NewJSONResponse("help"),
		GlobalFlags:  flagMetadata(rootCmd.PersistentFlags()),
	}

	if target != nil {
		resp.Command = commandMetadataPtr(target)
		resp.JSONResponse.Command = "help " + target.Name()
	} else {
		resp.Commands = []CommandMetadata{}
		for _, c := range rootCmd.Commands() {
			if c.Hidden {
				continue
			}
			resp.Commands = append(resp.Commands, commandMetadata(c))
		}
	}

	return shared.EmitJSON(cmd.OutOrStdout(), resp)
}

func commandMetadataPtr(cmd *cobra.Command) *CommandMetadata {
	m := commandMetadata(cmd)
	return &m
}

func commandMetadata(cmd *cobra.Command) CommandMetadata {
	m := CommandMetadata{
		Name:     cmd.Name(),
		Short:    cmd.Short,
		Long:     cmd.Long,
		Usage:    cmd.UseLine(),
		Examples: cmd.Example,
		Aliases:  cmd.Aliases,
		Flags:    flagMetadata(cmd.LocalFlags()),
	}
	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			m.Subcommands = append(m.Subcommands, sub.Name())
		}
	}
	return m
}

func flagMetadata(fs *pflag.FlagSet) []FlagMetadata {
	var flags []FlagMetadata
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flags = append(flags, FlagMetadata{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Usage:     f.Usage,
			Default:   f.DefValue,
			Required:  isRequired(f),
		})
	})
	return flags
}

// isRequired reports whether MarkFlagRequired was called for f.
func isRequired(f *pflag.Flag) bool {
	vals, ok := f.Annotations[cobra.BashCompOneRequiredFlag]
	return ok && len(vals) > 0 && vals[0] == "true"
}
