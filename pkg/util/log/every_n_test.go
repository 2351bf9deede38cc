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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/searchprof/pkg/util/timeutil"
)

func TestEveryN(t *testing.T) {
	testCases := []struct {
		t        time.Duration // time since start
		expected bool
	}{
		{0, true}, // the first attempt to log should always succeed
		{0, false},
		{time.Second, false},
		{time.Minute - 1, false},
		{time.Minute, true},
		{time.Minute, false},
		{time.Minute + 30*time.Second, false},
		{10 * time.Minute, true},
		{10 * time.Minute, false},
		{10*time.Minute + 59*time.Second, false},
		{11 * time.Minute, true},
	}
	start := timeutil.Now()
	en := Every(time.Minute)
	for _, tc := range testCases {
		require.Equal(t, tc.expected, en.ShouldProcess(start.Add(tc.t)), "%s", tc.t)
	}
}

func TestEveryNVerbose(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	en := Every(time.Hour)
	require.True(t, en.ShouldLog())
	require.False(t, en.ShouldLog())
	require.NoError(t, SetVerbosity(2))
	require.True(t, en.ShouldLog())
}
