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
	"time"

	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

// TimedCollector wraps a search.Collector and measures the wall time spent
// preparing it for each segment. Per-document calls go straight to the
// wrapped collector's leaf: timing them would cost more than the work they
// do, so resolution stops at the segment.
//
// A TimedCollector is driven by a single goroutine and is not safe for
// concurrent use.
type TimedCollector struct {
	wrapped search.Collector
	watch   *timeutil.StopWatch
}

var _ search.Collector = &TimedCollector{}

// NewTimedCollector returns a TimedCollector around c that accumulates time
// on the given stop watch.
func NewTimedCollector(c search.Collector, watch *timeutil.StopWatch) *TimedCollector {
	return &TimedCollector{wrapped: c, watch: watch}
}

// GetLeafCollector is part of the search.Collector interface. Errors from
// the wrapped collector are returned as is, and the time spent before they
// occurred is kept.
func (tc *TimedCollector) GetLeafCollector(seg search.SegmentContext) (search.LeafCollector, error) {
	tc.watch.Start()
	defer tc.watch.Stop()
	return tc.wrapped.GetLeafCollector(seg)
}

// NeedsScores is part of the search.Collector interface. It is not timed.
func (tc *TimedCollector) NeedsScores() bool {
	return tc.wrapped.NeedsScores()
}

// Time returns the total time accumulated so far. It is zero before the
// first call and never decreases.
func (tc *TimedCollector) Time() time.Duration {
	return tc.watch.Elapsed()
}

// Wrapped returns the collector being timed.
func (tc *TimedCollector) Wrapped() search.Collector {
	return tc.wrapped
}
