// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package cliflags describes the command-line flags of the searchprof tool.
package cliflags

import "strings"

// FlagInfo contains the static information for a CLI flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable through which the flag
	// value can be controlled (optional).
	EnvVar string

	// Description of the flag.
	Description string
}

// Usage returns a formatted usage string for the flag.
func (f FlagInfo) Usage() string {
	s := strings.TrimSpace(f.Description)
	if f.EnvVar != "" {
		s += "\nEnvironment variable: " + f.EnvVar
	}
	return s
}

// Flags of the searchprof tool.
var (
	Config = FlagInfo{
		Name:        "config",
		EnvVar:      "SEARCHPROF_CONFIG",
		Description: `Path to a YAML configuration file. Flags given explicitly override it.`,
	}

	MaxDepth = FlagInfo{
		Name:        "max-depth",
		EnvVar:      "SEARCHPROF_MAX_DEPTH",
		Description: `Maximum number of levels in a decoded profile tree.`,
	}

	MaxNodes = FlagInfo{
		Name:        "max-nodes",
		EnvVar:      "SEARCHPROF_MAX_NODES",
		Description: `Maximum number of nodes in a decoded profile tree.`,
	}

	MaxPayload = FlagInfo{
		Name:   "max-payload",
		EnvVar: "SEARCHPROF_MAX_PAYLOAD",
		Description: `
Largest profile file that will be read, e.g. 64KiB or 16MiB.`,
	}

	Format = FlagInfo{
		Name: "format",
		Description: `
Output format, one of json or table. Defaults to table when the
output is a terminal and to json otherwise.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		EnvVar:      "SEARCHPROF_VERBOSITY",
		Description: `Log verbosity level. Logs are written to stderr.`,
	}

	Out = FlagInfo{
		Name:        "out",
		Shorthand:   "o",
		Description: `File the encoded profile is written to.`,
	}
)
