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

// Package profileagg combines the profile trees returned by the shards of a
// single search. Trees are decoded independently and then merged so that
// every node knows how much time its position took across all shards.
package profileagg

import (
	"context"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"golang.org/x/sync/errgroup"

	"github.com/cockroachdb/searchprof/pkg/search/profile"
	"github.com/cockroachdb/searchprof/pkg/util/log"
)

// Aggregator decodes and merges shard profiles. It holds no per-search
// state and may be shared.
type Aggregator struct {
	limits  profile.DecodeLimits
	metrics *Metrics
	// concurrency bounds the number of payloads decoded at once.
	concurrency int
	// warnEvery limits how often decode failures are logged as warnings.
	warnEvery log.EveryN
}

// NewAggregator returns an Aggregator that decodes with the given limits. If
// metrics is nil, unregistered metrics are used.
func NewAggregator(limits profile.DecodeLimits, metrics *Metrics) *Aggregator {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Aggregator{
		limits:      limits,
		metrics:     metrics,
		concurrency: runtime.GOMAXPROCS(0),
		warnEvery:   log.Every(10 * time.Second),
	}
}

// Metrics returns the metrics the Aggregator updates.
func (a *Aggregator) Metrics() *Metrics {
	return a.metrics
}

// DecodeShards decodes one tree per payload, concurrently. The i-th tree
// returned comes from the i-th payload. If any payload fails to decode, the
// first error is returned and no trees are.
func (a *Aggregator) DecodeShards(ctx context.Context, payloads [][]byte) ([]*profile.Node, error) {
	trees := make([]*profile.Node, len(payloads))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, payload := range payloads {
		i, payload := i, payload
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ctx := logtags.AddTag(gCtx, "shard", i)
			n, err := profile.Unmarshal(payload, a.limits)
			if err != nil {
				a.metrics.DecodeErrors.Inc()
				if a.warnEvery.ShouldLog() {
					log.Warningf(ctx, "unable to decode %d byte profile: %v", len(payload), err)
				}
				return errors.Wrapf(err, "shard %d", i)
			}
			a.metrics.ShardsDecoded.Inc()
			log.VEventf(ctx, 2, "decoded profile %s from %d bytes", n, len(payload))
			trees[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

// Merge sets the cross-shard time of every node in trees. Nodes are matched
// by position: the roots form the first position, the i-th children of the
// nodes at a position form the next one. Within a position, nodes that
// agree on name and reason are merged with each other, and each of them is
// given the sum of their times. A shard whose tree has a different shape is
// thereby kept apart from the others instead of being summed with unrelated
// stages.
//
// The trees must have been decoded; Merge returns an error for a live tree
// and then leaves every tree unchanged.
func (a *Aggregator) Merge(ctx context.Context, trees []*profile.Node) error {
	for i, t := range trees {
		if t == nil {
			return errors.AssertionFailedf("shard %d has no profile", i)
		}
		if err := profile.Walk(t, func(n *profile.Node, _ int) error {
			if n.IsLive() {
				return errors.AssertionFailedf("shard %d: profile node %s is still live", i, n)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	merged := mergePosition(trees)
	a.metrics.NodesMerged.Add(float64(merged))
	log.VEventf(ctx, 1, "merged %d nodes from %d shard profiles", merged, len(trees))
	return nil
}

// DecodeAndMerge decodes the payloads and merges the resulting trees.
func (a *Aggregator) DecodeAndMerge(ctx context.Context, payloads [][]byte) ([]*profile.Node, error) {
	trees, err := a.DecodeShards(ctx, payloads)
	if err != nil {
		return nil, err
	}
	if err := a.Merge(ctx, trees); err != nil {
		return nil, err
	}
	return trees, nil
}

type groupKey struct {
	name   string
	reason profile.Reason
}

// mergePosition merges the nodes found at one position and recurses into
// their children. It returns the number of nodes it updated.
func mergePosition(nodes []*profile.Node) int {
	var order []groupKey
	groups := make(map[groupKey][]*profile.Node)
	for _, n := range nodes {
		k := groupKey{name: n.Name(), reason: n.Reason()}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], n)
	}

	merged := 0
	for _, k := range order {
		group := groups[k]
		var sum time.Duration
		maxChildren := 0
		for _, n := range group {
			sum += n.Time()
			maxChildren = max(maxChildren, n.NumChildren())
		}
		for _, n := range group {
			n.SetCrossShardTime(sum)
		}
		merged += len(group)

		for i := 0; i < maxChildren; i++ {
			var children []*profile.Node
			for _, n := range group {
				if i < n.NumChildren() {
					children = append(children, n.Child(i))
				}
			}
			merged += mergePosition(children)
		}
	}
	return merged
}
