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
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

// FilterCollector is a test collector that advances its time source once
// whenever it prepares a segment, then forwards to its input.
type FilterCollector struct {
	timeSource *timeutil.TestTimeSource
	input      search.Collector
	err        error
	segments   int
}

var _ search.Collector = &FilterCollector{}

func (c *FilterCollector) GetLeafCollector(seg search.SegmentContext) (search.LeafCollector, error) {
	c.segments++
	c.timeSource.Advance()
	if c.err != nil {
		return nil, c.err
	}
	if c.input != nil {
		return c.input.GetLeafCollector(seg)
	}
	return noopLeafCollector{}, nil
}

func (c *FilterCollector) NeedsScores() bool {
	return c.input != nil && c.input.NeedsScores()
}

// SumAggregator is a test aggregation collector. Its String form is the
// aggregation name, as for real aggregators.
type SumAggregator struct {
	name       string
	timeSource *timeutil.TestTimeSource
}

var _ search.Collector = &SumAggregator{}

func (a *SumAggregator) GetLeafCollector(search.SegmentContext) (search.LeafCollector, error) {
	a.timeSource.Advance()
	return noopLeafCollector{}, nil
}

func (a *SumAggregator) NeedsScores() bool { return true }

func (a *SumAggregator) String() string { return a.name }

type noopLeafCollector struct{}

func (noopLeafCollector) SetScorer(search.Scorer) error { return nil }
func (noopLeafCollector) Collect(int) error            { return nil }

// newTestNode builds a live node whose wrapper reads the given time source.
func newTestNode(
	ts *timeutil.TestTimeSource, c search.Collector, reason Reason, children ...*Node,
) *Node {
	return NewTimedNode(NewTimedCollector(c, timeutil.NewTestStopWatch(ts.Now)), reason, children)
}

// nodeSummary is the comparable content of a node.
type nodeSummary struct {
	Name           string
	Reason         Reason
	Time           time.Duration
	CrossShardTime time.Duration
	Children       []nodeSummary
}

func summarize(n *Node) nodeSummary {
	s := nodeSummary{
		Name:           n.Name(),
		Reason:         n.Reason(),
		Time:           n.Time(),
		CrossShardTime: n.CrossShardTime(),
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, summarize(c))
	}
	return s
}

func requireTreesEqual(t *testing.T, expected, actual *Node) {
	t.Helper()
	if diff := pretty.Diff(summarize(expected), summarize(actual)); len(diff) > 0 {
		t.Fatalf("trees differ:\n%s", strings.Join(diff, "\n"))
	}
}
