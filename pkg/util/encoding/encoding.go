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

// Package encoding holds the primitive wire encodings shared by everything
// that ships profiles between processes. All functions append to or consume
// from a byte slice and, on decode, return the remainder of the input first.
package encoding

import "github.com/cockroachdb/errors"

const (
	// IntMin is chosen such that the range of int tags does not overlap the
	// ascii character set that is frequently used in testing.
	IntMin      = 0x80
	intMaxWidth = 8
	intZero     = IntMin + intMaxWidth
	intSmall    = IntMax - intZero - intMaxWidth // 109
	// IntMax is the maximum int tag value.
	IntMax = 0xfd
)

const (
	// MinUvarintLen is the fewest bytes an encoded uvarint occupies.
	MinUvarintLen = 1
	// MaxUvarintLen is the most bytes an encoded uvarint occupies.
	MaxUvarintLen = 1 + intMaxWidth
	// Uint64Len is the width of a fixed-width 64-bit value.
	Uint64Len = 8
	// MinPrefixedStringLen is the encoded size of the empty string.
	MinPrefixedStringLen = MinUvarintLen
)

// EncodeUint64Ascending encodes the uint64 value using a big-endian 8 byte
// representation. The bytes are appended to the supplied buffer and
// the final buffer is returned.
func EncodeUint64Ascending(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// DecodeUint64Ascending decodes a uint64 from the input buffer, treating
// the input as a big-endian 8 byte uint64 representation. The remainder
// of the input buffer and the decoded uint64 are returned.
func DecodeUint64Ascending(b []byte) ([]byte, uint64, error) {
	if len(b) < Uint64Len {
		return nil, 0, errors.Errorf("insufficient bytes to decode uint64 int value")
	}
	v := (uint64(b[0]) << 56) | (uint64(b[1]) << 48) |
		(uint64(b[2]) << 40) | (uint64(b[3]) << 32) |
		(uint64(b[4]) << 24) | (uint64(b[5]) << 16) |
		(uint64(b[6]) << 8) | uint64(b[7])
	return b[Uint64Len:], v, nil
}

// EncodeInt64 encodes the two's complement form of v with
// EncodeUint64Ascending.
func EncodeInt64(b []byte, v int64) []byte {
	return EncodeUint64Ascending(b, uint64(v))
}

// DecodeInt64 decodes a value written by EncodeInt64.
func DecodeInt64(b []byte) ([]byte, int64, error) {
	b, v, err := DecodeUint64Ascending(b)
	return b, int64(v), err
}

// EncodeUvarintAscending encodes the uint64 value using a variable length
// (length-prefixed) representation. The length is encoded as a single
// byte indicating the number of encoded bytes (-8) to follow. Values up to
// 109 fit in the tag byte itself. The encoded bytes are appended to the
// supplied buffer and the final buffer is returned.
func EncodeUvarintAscending(b []byte, v uint64) []byte {
	switch {
	case v <= intSmall:
		return append(b, intZero+byte(v))
	case v <= 0xff:
		return append(b, IntMax-7, byte(v))
	case v <= 0xffff:
		return append(b, IntMax-6, byte(v>>8), byte(v))
	case v <= 0xffffff:
		return append(b, IntMax-5, byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffff:
		return append(b, IntMax-4, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffffff:
		return append(b, IntMax-3, byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8),
			byte(v))
	case v <= 0xffffffffffff:
		return append(b, IntMax-2, byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16),
			byte(v>>8), byte(v))
	case v <= 0xffffffffffffff:
		return append(b, IntMax-1, byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24),
			byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(b, IntMax, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// DecodeUvarintAscending decodes a varint encoded uint64 from the input
// buffer. The remainder of the input buffer and the decoded uint64
// are returned.
func DecodeUvarintAscending(b []byte) ([]byte, uint64, error) {
	if len(b) == 0 {
		return nil, 0, errors.Errorf("insufficient bytes to decode uvarint value")
	}
	tag := b[0]
	length := int(tag) - intZero
	b = b[1:] // skip length byte
	if length < 0 {
		return nil, 0, errors.Errorf("invalid uvarint tag %#x", tag)
	}
	if length <= intSmall {
		return b, uint64(length), nil
	}
	length -= intSmall
	if length > intMaxWidth {
		return nil, 0, errors.Errorf("invalid uvarint length of %d", length)
	} else if len(b) < length {
		return nil, 0, errors.Errorf("insufficient bytes to decode uvarint value: %d < %d", len(b), length)
	}
	var v uint64
	// It is faster to range over the elements in a slice than to index
	// into the slice on each loop iteration.
	for _, t := range b[:length] {
		v = (v << 8) | uint64(t)
	}
	return b[length:], v, nil
}

// EncodePrefixedString appends s preceded by its byte length as a uvarint.
// Unlike the ordered string encodings used for keys, the bytes are copied
// verbatim and need no escaping.
func EncodePrefixedString(b []byte, s string) []byte {
	b = EncodeUvarintAscending(b, uint64(len(s)))
	return append(b, s...)
}

// DecodePrefixedString decodes a string written by EncodePrefixedString.
// The returned string does not alias the input buffer.
func DecodePrefixedString(b []byte) ([]byte, string, error) {
	b, n, err := DecodeUvarintAscending(b)
	if err != nil {
		return nil, "", err
	}
	if n > uint64(len(b)) {
		return nil, "", errors.Errorf("insufficient bytes to decode string of length %d: %d remaining", n, len(b))
	}
	return b[n:], string(b[:n]), nil
}
