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
	"regexp"
	"testing"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestLogContextTags(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	ctx := logtags.AddTag(context.Background(), "shard", 3)
	ctx = logtags.AddTag(ctx, "merge", nil)
	Infof(ctx, "decoded %d nodes", 7)

	re := regexp.MustCompile(`^I\d{6} \d\d:\d\d:\d\d\.\d{6} log_test\.go:\d+  \[shard=3,merge\] decoded 7 nodes\n$`)
	require.Regexp(t, re, s.String())
}

func TestLogSeverities(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	ctx := context.Background()
	Warningf(ctx, "careful")
	Errorf(ctx, "broken")
	out := s.String()
	require.Regexp(t, `(?m)^W\d{6} .* careful$`, out)
	require.Regexp(t, `(?m)^E\d{6} .* broken$`, out)
}

func TestVEventf(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	ctx := context.Background()
	require.NoError(t, SetVerbosity(0))
	VEventf(ctx, 2, "hidden")
	require.Empty(t, s.String())

	require.NoError(t, SetVerbosity(2))
	require.True(t, V(2))
	VEventf(ctx, 2, "shown")
	require.Contains(t, s.String(), "shown")

	require.Error(t, SetVerbosity(-1))
}

func TestRedactionMarkers(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	ctx := context.Background()
	Infof(ctx, "safe=%s unsafe=%s", redact.Safe("visible"), "secret")
	require.Contains(t, s.String(), "safe=visible unsafe=secret")

	SetRedactable(true)
	defer SetRedactable(false)
	Infof(ctx, "unsafe=%s", "secret")
	require.Contains(t, s.String(), "unsafe=‹secret›")
}

func TestSeverityByName(t *testing.T) {
	sev, ok := SeverityByName("warning")
	require.True(t, ok)
	require.Equal(t, Severity_WARNING, sev)
	_, ok = SeverityByName("UNKNOWN")
	require.False(t, ok)
	require.Equal(t, "ERROR", Severity_ERROR.String())
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	require.Equal(t, "[n=1] hello world", FormatWithContextTags(ctx, "hello %s", "world"))
}
