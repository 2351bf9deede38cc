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
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/searchprof/pkg/search"
	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

// TestTimedCollectorTime checks that the accumulated time starts at zero and
// grows by exactly the time spent inside the wrapped collector.
func TestTimedCollectorTime(t *testing.T) {
	timeSource := timeutil.NewTestTimeSourceWithIncrement(time.Millisecond)
	fc := &FilterCollector{timeSource: timeSource}
	tc := NewTimedCollector(fc, timeutil.NewTestStopWatch(timeSource.Now))
	require.Zero(t, tc.Time())

	prev := tc.Time()
	for i := 0; i < 5; i++ {
		leaf, err := tc.GetLeafCollector(search.SegmentContext{Ord: i})
		require.NoError(t, err)
		require.Equal(t, noopLeafCollector{}, leaf)
		require.GreaterOrEqual(t, tc.Time(), prev)
		prev = tc.Time()
		// Time spent outside of the wrapped collector is not counted.
		timeSource.Advance()
	}
	require.Equal(t, 5*time.Millisecond, tc.Time())
	require.Equal(t, 5, fc.segments)
	require.Same(t, fc, tc.Wrapped())
}

func TestTimedCollectorNeedsScoresIsNotTimed(t *testing.T) {
	timeSource := timeutil.NewTestTimeSource()
	agg := &SumAggregator{name: "agg", timeSource: timeSource}
	tc := NewTimedCollector(&FilterCollector{timeSource: timeSource, input: agg},
		timeutil.NewTestStopWatch(timeSource.Now))
	require.True(t, tc.NeedsScores())
	require.Zero(t, tc.Time())
}

// TestTimedCollectorError checks that errors are passed through untouched
// and that time measured before and during the failing call is kept.
func TestTimedCollectorError(t *testing.T) {
	timeSource := timeutil.NewTestTimeSourceWithIncrement(time.Millisecond)
	fc := &FilterCollector{timeSource: timeSource}
	tc := NewTimedCollector(fc, timeutil.NewTestStopWatch(timeSource.Now))

	_, err := tc.GetLeafCollector(search.SegmentContext{})
	require.NoError(t, err)
	before := tc.Time()
	require.Equal(t, time.Millisecond, before)

	boom := errors.New("segment unavailable")
	fc.err = boom
	leaf, err := tc.GetLeafCollector(search.SegmentContext{Ord: 1})
	require.Nil(t, leaf)
	require.Equal(t, boom, err)
	require.GreaterOrEqual(t, tc.Time(), before)
	require.Equal(t, 2*time.Millisecond, tc.Time())
}
