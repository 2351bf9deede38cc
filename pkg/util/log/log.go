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

// Package log implements leveled, context-tagged logging in the style of
// glog. Every entry point takes a context.Context whose logtags are
// prepended to the message, and messages are built as redactable strings
// so that values which are not marked safe can be stripped from reports.
package log

import (
	"context"
	"sync/atomic"
)

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return atomic.LoadInt32(&logging.verbosity) >= level
}

// Infof logs to the INFO log.
// It extracts log tags from the context and logs them along with the given
// message. Arguments are handled in the manner of fmt.Printf; a newline is
// appended if missing.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, 1, format, args)
}

// InfofDepth logs to the INFO log, offsetting the caller's stack frame by
// 'depth'.
func InfofDepth(ctx context.Context, depth int, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, depth+1, format, args)
}

// Warningf logs to the WARNING and INFO logs.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_WARNING, 1, format, args)
}

// Errorf logs to the ERROR, WARNING, and INFO logs.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_ERROR, 1, format, args)
}

// VEventf logs to the INFO log if the verbosity is at or above the given
// level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, Severity_INFO, 1, format, args)
	}
}
