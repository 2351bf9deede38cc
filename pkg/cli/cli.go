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

// Package cli implements the searchprof command-line tool, which reads
// encoded search profiles captured from shards and reports them.
package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cockroachdb/searchprof/pkg/cli/clierror"
	"github.com/cockroachdb/searchprof/pkg/cli/exit"
	"github.com/cockroachdb/searchprof/pkg/util/log"
)

// Proxy to allow overrides in tests.
var osStderr = os.Stderr

// isInteractive indicates whether stdout refers to a terminal.
var isInteractive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Main is the entry point for the searchprof binary.
func Main() {
	err := Run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(osStderr, "ERROR: %v\n", err)
	}
	exit.WithCode(clierror.ExitCode(err))
}

// Run executes the tool with the given arguments.
func Run(args []string) error {
	cmd := newSearchprofCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func newSearchprofCmd() *cobra.Command {
	cliCtx := newCLIContext()
	root := &cobra.Command{
		Use:   "searchprof [command] (flags)",
		Short: "inspect search profiles",
		Long: `
Decode and report the per-stage timings that shards attach to profiled
search responses.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cliCtx.resolve(cmd.Flags()); err != nil {
				return clierror.NewError(err, exit.CommandLineFlagError())
			}
			return log.SetVerbosity(cliCtx.verbosity)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})
	cliCtx.registerPersistentFlags(root.PersistentFlags())

	cobra.EnableCommandSorting = false
	root.AddCommand(
		newInspectCmd(cliCtx),
		newExampleCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "output version information",
		Long: `
Output build version information.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				return errors.New("no build information embedded in binary")
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
			fmt.Fprintf(tw, "Build Tag:   %s\n", info.Main.Version)
			fmt.Fprintf(tw, "Module:      %s\n", info.Main.Path)
			fmt.Fprintf(tw, "Platform:    %s %s/%s\n", runtime.Compiler, runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(tw, "Go Version:  %s\n", info.GoVersion)
			return tw.Flush()
		},
	}
}
