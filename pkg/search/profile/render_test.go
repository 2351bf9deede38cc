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

package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

func TestFormatMillis(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0.000000000ms"},
		{1500 * time.Microsecond, "1.500000000ms"},
		{time.Millisecond, "1.000000000ms"},
		{1234, "0.001234000000ms"},
		{2 * time.Second, "2000.000000ms"},
		{123456789, "123.4567890ms"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, FormatMillis(tc.d))
		})
	}
}

func TestFragmentChildren(t *testing.T) {
	leaf := newDetachedNode("SumAggregator: [total]", ReasonAggregation, time.Millisecond, 0, nil)
	b, err := json.Marshal(leaf)
	require.NoError(t, err)
	require.NotContains(t, string(b), "children")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Equal(t, map[string]interface{}{
		"name":   "SumAggregator: [total]",
		"reason": "aggregation",
		"time":   "1.000000000ms",
	}, doc)

	root := newDetachedNode("FilterCollector", ReasonSearchPostFilter, 0, 0, []*Node{leaf})
	b, err = json.Marshal(root)
	require.NoError(t, err)
	doc = nil
	require.NoError(t, json.Unmarshal(b, &doc))
	children, ok := doc["children"].([]interface{})
	require.True(t, ok, "%s", b)
	require.Len(t, children, 1)
}

// TestFragmentLiveAndDetached checks that rendering a live tree and the tree
// decoded from it give the same document.
func TestFragmentLiveAndDetached(t *testing.T) {
	ts := timeutil.NewTestTimeSourceWithIncrement(time.Millisecond)
	child := newTestNode(ts, &SumAggregator{name: "total", timeSource: ts}, ReasonAggregation)
	root := newTestNode(ts, &FilterCollector{timeSource: ts, input: child}, ReasonSearchPostFilter, child)
	_, err := root.GetLeafCollector(search.SegmentContext{})
	require.NoError(t, err)

	decoded, err := Unmarshal(Marshal(root), DecodeLimits{})
	require.NoError(t, err)
	require.Equal(t, root.Fragment(), decoded.Fragment())
	require.Equal(t, Fragment{
		Name:   "FilterCollector",
		Reason: ReasonSearchPostFilter,
		Time:   "2.000000000ms",
		Children: []Fragment{{
			Name:   "SumAggregator: [total]",
			Reason: ReasonAggregation,
			Time:   "1.000000000ms",
		}},
	}, decoded.Fragment())
}

// TestRender runs the render testdata. The input of each command is a tree
// with one node per line, indented by two spaces per level:
//
//	name | reason | time in nanoseconds
func TestRender(t *testing.T) {
	datadriven.RunTest(t, "testdata/render", func(t *testing.T, d *datadriven.TestData) string {
		root, err := parseTree(d.Input)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		switch d.Cmd {
		case "render":
		case "roundtrip":
			if root, err = Unmarshal(Marshal(root), DecodeLimits{}); err != nil {
				return fmt.Sprintf("error: %v", err)
			}
		default:
			d.Fatalf(t, "unknown command: %s", d.Cmd)
		}
		b, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return string(b)
	})
}

func parseTree(input string) (*Node, error) {
	type frame struct {
		depth    int
		name     string
		reason   Reason
		t        time.Duration
		children []*Node
	}
	var stack []*frame
	var root *Node
	pop := func() {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := newDetachedNode(f.name, f.reason, f.t, 0, f.children)
		if len(stack) == 0 {
			root = n
			return
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, n)
	}
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		depth := (len(line) - len(trimmed)) / 2
		fields := strings.Split(trimmed, "|")
		if len(fields) != 3 {
			return nil, errors.Newf("expected name | reason | nanos: %q", line)
		}
		nanos, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
		if err != nil {
			return nil, err
		}
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			pop()
		}
		if root != nil || (len(stack) == 0 && depth != 0) || (len(stack) > 0 && depth != stack[len(stack)-1].depth+1) {
			return nil, errors.Newf("bad indentation: %q", line)
		}
		stack = append(stack, &frame{
			depth:  depth,
			name:   strings.TrimSpace(fields[0]),
			reason: Reason(strings.TrimSpace(fields[1])),
			t:      time.Duration(nanos),
		})
	}
	for len(stack) > 0 {
		pop()
	}
	if root == nil {
		return nil, errors.New("empty tree")
	}
	return root, nil
}
