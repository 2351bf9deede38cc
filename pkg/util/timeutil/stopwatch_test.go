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

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStopWatchStart(t *testing.T) {
	timeSource := NewTestTimeSource()
	w := NewTestStopWatch(timeSource.Now)

	w.Start()
	timeSource.Advance()
	// Starting an already started watch is a noop.
	w.Start()
	timeSource.Advance()
	w.Stop()

	require.Equal(t, timeSource.Elapsed(), w.Elapsed())
}

func TestStopWatchStop(t *testing.T) {
	timeSource := NewTestTimeSource()
	w := NewTestStopWatch(timeSource.Now)

	w.Start()
	timeSource.Advance()
	w.Stop()

	expected := time.Duration(1)
	require.Equal(t, expected, w.Elapsed())

	// Stopping a stopped watch is a noop.
	timeSource.Advance()
	w.Stop()
	require.Equal(t, expected, w.Elapsed())
}

func TestStopWatchAccumulates(t *testing.T) {
	timeSource := NewTestTimeSourceWithIncrement(time.Millisecond)
	w := NewTestStopWatch(timeSource.Now)
	require.Zero(t, w.Elapsed())

	const iterations = 5
	for i := 0; i < iterations; i++ {
		w.Start()
		timeSource.Advance()
		w.Stop()
		// Time outside of Start/Stop is not measured.
		timeSource.Advance()
	}
	require.Equal(t, iterations*time.Millisecond, w.Elapsed())
}

func TestNilStopWatch(t *testing.T) {
	var w *StopWatch
	w.Start()
	w.Stop()
	require.Zero(t, w.Elapsed())
}
