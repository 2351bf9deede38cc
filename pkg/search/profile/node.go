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

// Package profile instruments a tree of search collectors and carries the
// resulting timings between processes.
//
// A Node is either live or detached. A live node wraps a collector in a
// TimedCollector and forwards every call to it while the wrapper accumulates
// time. A detached node is what comes out of DecodeNode: it holds the time
// that was measured remotely and nothing else. Nodes form a tree that
// mirrors how the engine nests its collectors, and the tree is encoded in
// pre-order for transfer.
package profile

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"

	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

// timing is the mode-specific half of a Node. Its two implementations,
// liveTiming and detachedTiming, are the only ones.
type timing interface {
	elapsed() time.Duration
}

// liveTiming reads the time from the wrapper on every call.
type liveTiming struct {
	tc *TimedCollector
}

func (l liveTiming) elapsed() time.Duration { return l.tc.Time() }

// detachedTiming is the time carried over the wire.
type detachedTiming time.Duration

func (d detachedTiming) elapsed() time.Duration { return time.Duration(d) }

// Node is one stage of a profiled collector tree.
//
// The time reported for a node is whatever its wrapper measured (or what was
// transmitted for it). It includes the children only to the extent that the
// wrapped calls themselves call into the children; it is never computed by
// summing them.
type Node struct {
	name     string
	reason   Reason
	children []*Node
	timing   timing
	// crossShardTime is set by aggregation after all shard trees have been
	// decoded; see SetCrossShardTime.
	crossShardTime time.Duration
}

var _ search.Collector = &Node{}

// NewLiveNode wraps c for profiling. The children must already have been
// built: they are the nodes for the collectors c forwards to, in the order c
// calls them. The node's name is derived from c and reason here, once.
func NewLiveNode(c search.Collector, reason Reason, children []*Node) *Node {
	return NewTimedNode(NewTimedCollector(c, timeutil.NewStopWatch()), reason, children)
}

// NewTimedNode is like NewLiveNode but takes an already constructed wrapper.
func NewTimedNode(tc *TimedCollector, reason Reason, children []*Node) *Node {
	return &Node{
		name:     deriveName(tc.Wrapped(), reason),
		reason:   reason,
		children: children,
		timing:   liveTiming{tc: tc},
	}
}

// newDetachedNode is the only way to construct a node without a wrapper.
func newDetachedNode(
	name string, reason Reason, t, crossShardTime time.Duration, children []*Node,
) *Node {
	return &Node{
		name:           name,
		reason:         reason,
		children:       children,
		timing:         detachedTiming(t),
		crossShardTime: crossShardTime,
	}
}

// Name returns the human-friendly name of the profiled collector.
func (n *Node) Name() string {
	return n.name
}

// Reason returns the reason hint the node was created with.
func (n *Node) Reason() Reason {
	return n.reason
}

// Time returns the elapsed time for this node's collector.
func (n *Node) Time() time.Duration {
	if n.timing == nil {
		panic(errors.AssertionFailedf("profile node %q is neither live nor detached", n.name))
	}
	return n.timing.elapsed()
}

// IsLive returns true if the node wraps a collector, false if it was decoded.
func (n *Node) IsLive() bool {
	_, ok := n.timing.(liveTiming)
	return ok
}

// CrossShardTime returns the total time spent in this position of the tree
// across all shards, or zero if it has not been aggregated.
func (n *Node) CrossShardTime() time.Duration {
	return n.crossShardTime
}

// SetCrossShardTime records the aggregated time for this position. Only
// decoded nodes take part in aggregation.
func (n *Node) SetCrossShardTime(d time.Duration) {
	if n.IsLive() {
		panic(errors.AssertionFailedf("cannot aggregate live profile node %q", n.name))
	}
	n.crossShardTime = d
}

// Children returns the child nodes in execution order. The returned slice
// is a copy.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// NumChildren returns the number of child nodes.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i-th child node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// live returns the wrapper of a live node, or an assertion failure for a
// detached one. Decoded nodes never regain a collector.
func (n *Node) live() (*TimedCollector, error) {
	l, ok := n.timing.(liveTiming)
	if !ok {
		return nil, errors.AssertionFailedf("profile node %q is detached and cannot collect", n.name)
	}
	return l.tc, nil
}

// GetLeafCollector is part of the search.Collector interface. It lets the
// collector of a parent node forward to this node, so that the child's time
// is measured too.
func (n *Node) GetLeafCollector(seg search.SegmentContext) (search.LeafCollector, error) {
	tc, err := n.live()
	if err != nil {
		return nil, err
	}
	return tc.GetLeafCollector(seg)
}

// NeedsScores is part of the search.Collector interface. It panics on a
// detached node.
func (n *Node) NeedsScores() bool {
	tc, err := n.live()
	if err != nil {
		panic(err)
	}
	return tc.NeedsScores()
}

// SafeFormat implements redact.SafeFormatter. Names embed user-chosen
// aggregation names and are not safe for reporting; reasons are.
func (n *Node) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s (%s)", n.name, n.reason)
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return redact.StringWithoutMarkers(n)
}

// Walk calls fn for n and all of its descendants in pre-order, that is, in
// the order in which they are encoded. depth is zero for n. The traversal
// stops at the first error, which is returned.
func Walk(n *Node, fn func(n *Node, depth int) error) error {
	return walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
