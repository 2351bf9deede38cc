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

import "time"

// StopWatch is a utility stop watch for measuring the wall time spent by a
// component. It can be safely started and stopped multiple times, but is
// not safe to use concurrently. If StopWatch is nil, all operations are
// no-ops.
type StopWatch struct {
	// started is true if the stop watch has been started and hasn't been
	// stopped after that.
	started bool
	// startedAt is the time when the stop watch was started.
	startedAt time.Time
	// elapsed is the total time measured by the stop watch (i.e. between
	// all Starts and Stops).
	elapsed time.Duration
	// timeSource is the source of time used by the stop watch. It is always
	// timeutil.Now except for tests.
	timeSource func() time.Time
}

// NewStopWatch creates a new StopWatch.
func NewStopWatch() *StopWatch {
	return newStopWatch(Now)
}

// NewTestStopWatch create a new StopWatch with the given time source. It is
// used for testing only.
func NewTestStopWatch(timeSource func() time.Time) *StopWatch {
	return newStopWatch(timeSource)
}

func newStopWatch(timeSource func() time.Time) *StopWatch {
	return &StopWatch{timeSource: timeSource}
}

// Start starts the stop watch if it hasn't already been started.
func (w *StopWatch) Start() {
	if w != nil && !w.started {
		w.started = true
		w.startedAt = w.timeSource()
	}
}

// Stop stops the stop watch if it hasn't already been stopped and accumulates
// the duration that elapsed since it was started. If the stop watch has
// already been stopped, it is a noop.
func (w *StopWatch) Stop() {
	if w != nil && w.started {
		w.started = false
		if d := w.timeSource().Sub(w.startedAt); d > 0 {
			w.elapsed += d
		}
	}
}

// Elapsed returns the total time measured by the stop watch so far. Time
// spent in a Start that has not been matched by a Stop is not included.
func (w *StopWatch) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// TestTimeSource is a source of time that remembers when it was created (in
// terms of the real time) and returns the time based on its creation time and
// the number of "advances" it has had. It is used for testing only.
type TestTimeSource struct {
	initTime  time.Time
	counter   int64
	increment time.Duration
}

// NewTestTimeSource create a new TestTimeSource that moves one nanosecond
// forward on every Advance.
func NewTestTimeSource() *TestTimeSource {
	return &TestTimeSource{initTime: Now(), increment: time.Nanosecond}
}

// NewTestTimeSourceWithIncrement is like NewTestTimeSource but moves the
// given amount on every Advance.
func NewTestTimeSourceWithIncrement(increment time.Duration) *TestTimeSource {
	return &TestTimeSource{initTime: Now(), increment: increment}
}

// Now returns the "current" time.
func (ts *TestTimeSource) Now() time.Time {
	return ts.initTime.Add(time.Duration(ts.counter) * ts.increment)
}

// Advance advances the current time according to ts by one increment.
func (ts *TestTimeSource) Advance() {
	ts.counter++
}

// Elapsed returns how much time as passed since ts has been created.
func (ts *TestTimeSource) Elapsed() time.Duration {
	return time.Duration(ts.counter) * ts.increment
}
