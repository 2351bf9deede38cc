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

// Package search names the pieces of the shard-local search execution
// engine that the profiler instruments. The engine itself (index
// traversal, scoring) lives elsewhere; anything that satisfies Collector
// can be profiled.
package search

// SegmentContext identifies one index segment being searched.
type SegmentContext struct {
	// Ord is the segment's position among the shard's segments.
	Ord int
	// DocBase is added to segment-relative document IDs to make them
	// shard-relative.
	DocBase int
	// MaxDoc is one greater than the largest segment-relative document ID.
	MaxDoc int
}

// Scorer exposes the score of the document currently being collected.
type Scorer interface {
	DocID() int
	Score() (float32, error)
}

// LeafCollector collects the matching documents of a single segment.
type LeafCollector interface {
	SetScorer(Scorer) error
	// Collect is called once per matching, segment-relative document ID.
	Collect(doc int) error
}

// Collector is one stage of the execution pipeline that processes matched
// documents. Collectors nest: a filtering stage typically forwards to an
// aggregation stage it wraps.
type Collector interface {
	// GetLeafCollector prepares the collector for the given segment and
	// returns the handle that receives that segment's documents.
	GetLeafCollector(seg SegmentContext) (LeafCollector, error)
	// NeedsScores reports whether the collector reads document scores.
	NeedsScores() bool
}
