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

package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUvarint(t *testing.T) {
	testCases := []struct {
		value  uint64
		length int
	}{
		{0, 1},
		{1, 1},
		{intSmall, 1},
		{intSmall + 1, 2},
		{0xff, 2},
		{0x100, 3},
		{0xffff, 3},
		{0x10000, 4},
		{0xffffffff, 5},
		{0xffffffffff, 6},
		{0xffffffffffff, 7},
		{0xffffffffffffff, 8},
		{math.MaxUint64, MaxUvarintLen},
	}
	for _, c := range testCases {
		buf := EncodeUvarintAscending(nil, c.value)
		require.Len(t, buf, c.length, "value %d", c.value)
		rem, v, err := DecodeUvarintAscending(append(buf, 'x'))
		require.NoError(t, err)
		require.Equal(t, c.value, v)
		require.Equal(t, []byte{'x'}, rem)
	}
}

func TestDecodeUvarintErrors(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"tag below zero", []byte{IntMin}},
		{"truncated", []byte{IntMax - 6, 0x01}},
	}
	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := DecodeUvarintAscending(c.buf)
			require.Error(t, err)
		})
	}
}

func TestEncodeDecodeInt64(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1 << 40, math.MinInt64, math.MaxInt64} {
		buf := EncodeInt64(nil, v)
		require.Len(t, buf, Uint64Len)
		rem, d, err := DecodeInt64(buf)
		require.NoError(t, err)
		require.Equal(t, v, d)
		require.Empty(t, rem)
	}
	_, _, err := DecodeInt64([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestEncodeDecodePrefixedString(t *testing.T) {
	for _, s := range []string{
		"",
		"foo",
		"Hello, 世界",
		"日a本b語ç日ð本Ê語þ日¥本¼語i日©",
		string(make([]byte, 300)),
	} {
		buf := EncodePrefixedString(nil, s)
		rem, d, err := DecodePrefixedString(buf)
		require.NoError(t, err)
		require.Equal(t, s, d)
		require.Empty(t, rem)
	}
	require.Len(t, EncodePrefixedString(nil, ""), MinPrefixedStringLen)
}

func TestDecodePrefixedStringTruncated(t *testing.T) {
	buf := EncodePrefixedString(nil, "truncated")
	_, _, err := DecodePrefixedString(buf[:len(buf)-1])
	require.Error(t, err)
}
