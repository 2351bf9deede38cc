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
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cockroachdb/searchprof/pkg/cli/clierror"
	"github.com/cockroachdb/searchprof/pkg/cli/exit"
	"github.com/cockroachdb/searchprof/pkg/search/profile"
	"github.com/cockroachdb/searchprof/pkg/search/profile/profileagg"
	"github.com/cockroachdb/searchprof/pkg/util/humanizeutil"
	"github.com/cockroachdb/searchprof/pkg/util/log"
)

func newInspectCmd(cliCtx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [FILE...]",
		Short: "decode and print shard profiles",
		Long: `
Decode the profile trees stored in the given files, one encoded tree per
file as received from a shard. When more than one file is given, the files
are treated as the shards of a single search and every node is annotated
with the time its position took across all of them.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, cliCtx, args)
		},
	}
}

func runInspect(cmd *cobra.Command, cliCtx *cliContext, paths []string) error {
	ctx := cmd.Context()
	payloads := make([][]byte, len(paths))
	for i, path := range paths {
		b, err := readPayload(path, cliCtx.maxPayload)
		if err != nil {
			return err
		}
		payloads[i] = b
	}

	agg := profileagg.NewAggregator(cliCtx.limits, nil)
	var trees []*profile.Node
	var err error
	if len(payloads) == 1 {
		trees, err = agg.DecodeShards(ctx, payloads)
	} else {
		trees, err = agg.DecodeAndMerge(ctx, payloads)
	}
	if err != nil {
		if errors.Is(err, profile.ErrCorruptProfile) {
			err = clierror.NewError(err, exit.CorruptProfile())
		}
		return err
	}
	log.VEventf(ctx, 1, "decoded %d profiles", len(trees))

	shards := make([]string, len(paths))
	for i, path := range paths {
		shards[i] = filepath.Base(path)
	}
	w := cmd.OutOrStdout()
	switch cliCtx.format {
	case formatTable:
		return printProfileTable(w, shards, trees, len(trees) > 1)
	default:
		return printProfileJSON(w, trees)
	}
}

func readPayload(path string, maxPayload int64) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > maxPayload {
		return nil, errors.Newf("%s is %s, larger than the maximum payload of %s",
			path, humanizeutil.IBytes(fi.Size()), humanizeutil.IBytes(maxPayload))
	}
	return os.ReadFile(path)
}
