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

package humanizeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	testCases := []struct {
		val      time.Duration
		expected string
	}{
		{0, "0s"},
		{850, "850ns"},
		{123456, "123µs"},
		{12345678, "12ms"},
		{12345678912, "12.3s"},
		{90 * time.Second, "1m30s"},
		{-2 * time.Millisecond, "-2ms"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, Duration(tc.val), "%d", int64(tc.val))
	}
}

func TestBytes(t *testing.T) {
	require.Equal(t, "1.0 KiB", IBytes(1024))
	require.Equal(t, "-1.0 KiB", IBytes(-1024))

	v, err := ParseBytes("64 MiB")
	require.NoError(t, err)
	require.Equal(t, int64(64<<20), v)

	_, err = ParseBytes("")
	require.Error(t, err)

	var size int64
	bv := NewBytesValue(&size)
	require.False(t, bv.IsSet())
	require.NoError(t, bv.Set("2KiB"))
	require.True(t, bv.IsSet())
	require.Equal(t, int64(2048), size)
	require.Equal(t, "2.0 KiB", bv.String())
}
