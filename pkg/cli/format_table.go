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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/cockroachdb/searchprof/pkg/search/profile"
	"github.com/cockroachdb/searchprof/pkg/util/humanizeutil"
)

var profileTableColumns = []string{"shard", "collector", "reason", "time", "cross-shard time"}

// profileRows flattens the trees into one row per node, in encoding order.
// Names are indented by two spaces per level.
func profileRows(shards []string, trees []*profile.Node, withCrossShard bool) [][]string {
	var rows [][]string
	for i, tree := range trees {
		_ = profile.Walk(tree, func(n *profile.Node, depth int) error {
			crossShard := ""
			if withCrossShard {
				crossShard = humanizeutil.Duration(n.CrossShardTime())
			}
			rows = append(rows, []string{
				shards[i],
				strings.Repeat("  ", depth) + n.Name(),
				string(n.Reason()),
				humanizeutil.Duration(n.Time()),
				crossShard,
			})
			return nil
		})
	}
	return rows
}

// printProfileTable writes the trees as a table to w, followed by the
// number of rows.
func printProfileTable(
	w io.Writer, shards []string, trees []*profile.Node, withCrossShard bool,
) error {
	rows := profileRows(shards, trees, withCrossShard)

	// Initialize tablewriter and set column names as the header row.
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(profileTableColumns)
	table.AppendBulk(rows)
	table.Render()
	_, err := fmt.Fprintf(w, "(%d row%s)\n", len(rows), pluralize(len(rows)))
	return err
}

// printProfileJSON writes the trees to w as an indented JSON array with one
// fragment per tree.
func printProfileJSON(w io.Writer, trees []*profile.Node) error {
	fragments := make([]profile.Fragment, len(trees))
	for i, tree := range trees {
		fragments[i] = tree.Fragment()
	}
	b, err := json.MarshalIndent(fragments, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
