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

package cli

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/cockroachdb/searchprof/pkg/cli/cliflags"
	"github.com/cockroachdb/searchprof/pkg/search/profile"
	"github.com/cockroachdb/searchprof/pkg/util/humanizeutil"
)

// defaultMaxPayload bounds the size of a profile file read by inspect.
const defaultMaxPayload = 16 << 20

// cliContext holds the settings shared by all commands. Flags write
// directly into it; resolve then fills in whatever the flags did not set
// from the configuration file and the defaults.
type cliContext struct {
	configPath string
	limits     profile.DecodeLimits
	maxPayload int64
	format     string
	verbosity  int32
}

func newCLIContext() *cliContext {
	return &cliContext{
		limits:     profile.DefaultDecodeLimits,
		maxPayload: defaultMaxPayload,
	}
}

func (c *cliContext) registerPersistentFlags(f *pflag.FlagSet) {
	StringFlag(f, &c.configPath, cliflags.Config, "")
	IntFlag(f, &c.limits.MaxDepth, cliflags.MaxDepth, c.limits.MaxDepth)
	IntFlag(f, &c.limits.MaxNodes, cliflags.MaxNodes, c.limits.MaxNodes)
	VarFlag(f, humanizeutil.NewBytesValue(&c.maxPayload), cliflags.MaxPayload)
	StringFlag(f, &c.format, cliflags.Format, "")
	Int32Flag(f, &c.verbosity, cliflags.Verbosity, 0)
}

func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		if value, set := os.LookupEnv(flagInfo.EnvVar); set {
			if err := f.Set(flagInfo.Name, value); err != nil {
				panic(err)
			}
		}
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// Int32Flag creates an int32 flag and registers it with the FlagSet.
func Int32Flag(f *pflag.FlagSet, valPtr *int32, flagInfo cliflags.FlagInfo, defaultVal int32) {
	f.Int32VarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// VarFlag creates a custom-variable flag and registers it with the FlagSet.
func VarFlag(f *pflag.FlagSet, value pflag.Value, flagInfo cliflags.FlagInfo) {
	f.VarP(value, flagInfo.Name, flagInfo.Shorthand, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}
