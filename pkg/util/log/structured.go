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
	"context"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"

	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

// makeMessage creates a structured log entry: the context tags in brackets
// followed by the formatted message.
func makeMessage(ctx context.Context, format string, args []interface{}) redact.RedactableString {
	var b redact.StringBuilder
	if tags := logtags.FromContext(ctx); tags != nil {
		if ts := tags.Get(); len(ts) > 0 {
			b.SafeRune('[')
			for i, t := range ts {
				if i > 0 {
					b.SafeRune(',')
				}
				b.SafeString(redact.SafeString(t.Key()))
				if value := t.Value(); value != nil {
					b.SafeRune('=')
					b.Print(value)
				}
			}
			b.SafeString("] ")
		}
	}
	if len(format) == 0 {
		b.Print(args...)
	} else {
		b.Printf(format, args...)
	}
	return b.RedactableString()
}

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	return makeMessage(ctx, format, args).StripMarkers()
}

// addStructured creates a structured log entry to be written to the
// configured output.
func addStructured(
	ctx context.Context, s Severity, depth int, format string, args []interface{},
) {
	if ctx == nil {
		panic("nil context")
	}
	file, line := "???", 1
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = filepath.Base(f), l
	}
	msg := makeMessage(ctx, format, args)
	var out string
	if logging.redactable.Load() {
		out = string(msg)
	} else {
		out = msg.StripMarkers()
	}
	logging.outputLogEntry(s, timeutil.Now(), file, line, out)
}
