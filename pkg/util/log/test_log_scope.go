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

package log

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
)

// tShim is the subset of testing.TB used by TestLogScope. Using an
// interface keeps the testing package out of non-test binaries.
type tShim interface {
	Helper()
	Log(args ...interface{})
}

// TestLogScope represents the lifetime of a logging output redirection
// for a test. Entries logged while the scope is active are buffered and
// replayed to the test's log on Close.
type TestLogScope struct {
	mu struct {
		sync.Mutex
		buf bytes.Buffer
	}
	restore       func()
	prevVerbosity int32
}

// Scope creates a TestLogScope which captures all log output until Close
// is called. Use it at the start of a test:
//
//	defer log.Scope(t).Close(t)
func Scope(t tShim) *TestLogScope {
	t.Helper()
	s := &TestLogScope{prevVerbosity: atomic.LoadInt32(&logging.verbosity)}
	s.restore = SetOutput(scopeWriter{s})
	return s
}

type scopeWriter struct{ s *TestLogScope }

func (w scopeWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.mu.buf.Write(p)
}

// String returns everything logged inside the scope so far.
func (s *TestLogScope) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.buf.String()
}

// Close restores the previous log destination and verbosity, and copies
// the captured entries to the test log.
func (s *TestLogScope) Close(t tShim) {
	t.Helper()
	s.restore()
	atomic.StoreInt32(&logging.verbosity, s.prevVerbosity)
	if out := strings.TrimRight(s.String(), "\n"); out != "" {
		t.Log(out)
	}
}
