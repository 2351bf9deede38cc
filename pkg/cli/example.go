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
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cockroachdb/searchprof/pkg/cli/cliflags"
	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/search/profile"
	"github.com/cockroachdb/searchprof/pkg/util/humanizeutil"
	"github.com/cockroachdb/searchprof/pkg/util/log"
)

func newExampleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example --out FILE",
		Short: "write the profile of a sample search",
		Long: `
Run a small search over an in-memory index with profiling enabled and write
the encoded profile tree to a file, as a shard would send it. The file can
be read back with the inspect command.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			root, err := newExampleSearch(exampleIndex()).run(ctx)
			if err != nil {
				return err
			}
			b := profile.Marshal(root)
			if err := os.WriteFile(out, b, 0644); err != nil {
				return errors.Wrap(err, "writing profile")
			}
			log.Infof(ctx, "wrote %s profile to %s", humanizeutil.IBytes(int64(len(b))), out)
			return nil
		},
	}
	StringFlag(cmd.Flags(), &out, cliflags.Out, "")
	_ = cmd.MarkFlagRequired(cliflags.Out.Name)
	return cmd
}

// memSegment is an index segment held in memory. It stores a single
// numeric field, indexed by segment-relative document ID.
type memSegment struct {
	prices []float64
}

// exampleIndex returns a deterministic three-segment index.
func exampleIndex() []memSegment {
	segments := make([]memSegment, 3)
	for i := range segments {
		prices := make([]float64, 1000*(i+1))
		for doc := range prices {
			prices[doc] = float64((doc*31 + i) % 97)
		}
		segments[i] = memSegment{prices: prices}
	}
	return segments
}

// exampleSearch is a profiled search that keeps documents priced at least
// 50, collecting the first ten hits and the sum of the matching prices.
type exampleSearch struct {
	segments []memSegment
	top      *topDocsCollector
	sum      *sumAggregator
	root     *profile.Node
}

func newExampleSearch(segments []memSegment) *exampleSearch {
	s := &exampleSearch{
		segments: segments,
		top:      &topDocsCollector{k: 10},
		sum:      &sumAggregator{name: "total_price", segments: segments},
	}
	topNode := profile.NewLiveNode(s.top, profile.ReasonSearchTopHits, nil)
	sumNode := profile.NewLiveNode(struct{ *sumAggregator }{s.sum}, profile.ReasonAggregation, nil)
	multiNode := profile.NewLiveNode(
		search.NewMultiCollector(topNode, sumNode), profile.ReasonSearchMulti,
		[]*profile.Node{topNode, sumNode})
	s.root = profile.NewLiveNode(
		&rangeFilterCollector{segments: segments, min: 50, input: multiNode},
		profile.ReasonSearchPostFilter, []*profile.Node{multiNode})
	return s
}

// run drives the search over every segment and returns the profile tree.
func (s *exampleSearch) run(ctx context.Context) (*profile.Node, error) {
	docBase := 0
	for ord, seg := range s.segments {
		leaf, err := s.root.GetLeafCollector(search.SegmentContext{
			Ord: ord, DocBase: docBase, MaxDoc: len(seg.prices),
		})
		if err != nil {
			return nil, err
		}
		for doc := range seg.prices {
			if err := leaf.Collect(doc); err != nil {
				return nil, err
			}
		}
		docBase += len(seg.prices)
	}
	log.VEventf(ctx, 1, "example search: %d hits collected, %s = %.0f", len(s.top.hits), s.sum, s.sum.sum)
	return s.root, nil
}

// rangeFilterCollector forwards documents whose price is at least min.
type rangeFilterCollector struct {
	segments []memSegment
	min      float64
	input    search.Collector
}

func (c *rangeFilterCollector) GetLeafCollector(
	seg search.SegmentContext,
) (search.LeafCollector, error) {
	next, err := c.input.GetLeafCollector(seg)
	if err != nil {
		return nil, err
	}
	return &rangeFilterLeaf{prices: c.segments[seg.Ord].prices, min: c.min, next: next}, nil
}

func (c *rangeFilterCollector) NeedsScores() bool { return c.input.NeedsScores() }

type rangeFilterLeaf struct {
	prices []float64
	min    float64
	next   search.LeafCollector
}

func (l *rangeFilterLeaf) SetScorer(s search.Scorer) error { return l.next.SetScorer(s) }

func (l *rangeFilterLeaf) Collect(doc int) error {
	if l.prices[doc] < l.min {
		return nil
	}
	return l.next.Collect(doc)
}

// topDocsCollector keeps the first k shard-relative document IDs.
type topDocsCollector struct {
	k    int
	hits []int
}

func (c *topDocsCollector) GetLeafCollector(
	seg search.SegmentContext,
) (search.LeafCollector, error) {
	return &topDocsLeaf{c: c, docBase: seg.DocBase}, nil
}

func (c *topDocsCollector) NeedsScores() bool { return false }

type topDocsLeaf struct {
	c       *topDocsCollector
	docBase int
}

func (l *topDocsLeaf) SetScorer(search.Scorer) error { return nil }

func (l *topDocsLeaf) Collect(doc int) error {
	if len(l.c.hits) < l.c.k {
		l.c.hits = append(l.c.hits, l.docBase+doc)
	}
	return nil
}

// sumAggregator sums the price of every collected document.
type sumAggregator struct {
	name     string
	segments []memSegment
	sum      float64
}

func (a *sumAggregator) GetLeafCollector(
	seg search.SegmentContext,
) (search.LeafCollector, error) {
	if seg.Ord >= len(a.segments) {
		return nil, errors.Newf("%s: no segment %d", a.name, seg.Ord)
	}
	return &sumLeaf{a: a, prices: a.segments[seg.Ord].prices}, nil
}

func (a *sumAggregator) NeedsScores() bool { return false }

// String returns the aggregation name.
func (a *sumAggregator) String() string { return a.name }

type sumLeaf struct {
	a      *sumAggregator
	prices []float64
}

func (l *sumLeaf) SetScorer(search.Scorer) error { return nil }

func (l *sumLeaf) Collect(doc int) error {
	l.a.sum += l.prices[doc]
	return nil
}

var _ fmt.Stringer = &sumAggregator{}
