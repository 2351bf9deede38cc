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

package profile

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/cockroachdb/searchprof/pkg/util/encoding"
)

// A node is encoded as
//
//	name            prefixed string
//	reason          prefixed string
//	time            int64, nanoseconds
//	cross-shard     int64, nanoseconds
//	child count     uvarint
//
// followed by the encodings of its children in order. Nothing else frames a
// subtree, so a decoder consumes exactly child-count children before
// returning to the parent.

// minEncodedNodeLen is the size of a leaf with an empty name and reason.
const minEncodedNodeLen = 2*encoding.MinPrefixedStringLen + 2*encoding.Uint64Len + encoding.MinUvarintLen

// ErrCorruptProfile marks every error returned while decoding a tree.
var ErrCorruptProfile = errors.New("corrupt profile encoding")

// DecodeLimits bound the resources spent decoding a single tree. The wire
// format does not bound the size of a tree, so untrusted or damaged input
// could otherwise recurse without end.
type DecodeLimits struct {
	// MaxDepth is the number of levels a tree may have. A lone root has one.
	MaxDepth int
	// MaxNodes is the number of nodes a tree may have.
	MaxNodes int
}

// DefaultDecodeLimits are used for any zero field of a DecodeLimits.
var DefaultDecodeLimits = DecodeLimits{
	MaxDepth: 64,
	MaxNodes: 10000,
}

func (l DecodeLimits) withDefaults() DecodeLimits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultDecodeLimits.MaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultDecodeLimits.MaxNodes
	}
	return l
}

// EncodeNode appends the encoding of n and its descendants to b and returns
// the result. The time of a live node is read from its wrapper now; the
// collectors must no longer be running.
func EncodeNode(b []byte, n *Node) []byte {
	b = encoding.EncodePrefixedString(b, n.name)
	b = encoding.EncodePrefixedString(b, string(n.reason))
	b = encoding.EncodeInt64(b, int64(n.Time()))
	b = encoding.EncodeInt64(b, int64(n.crossShardTime))
	b = encoding.EncodeUvarintAscending(b, uint64(len(n.children)))
	for _, c := range n.children {
		b = EncodeNode(b, c)
	}
	return b
}

// Marshal returns the encoding of the tree rooted at n.
func Marshal(n *Node) []byte {
	return EncodeNode(nil, n)
}

// DecodeNode decodes one tree from the front of b and returns the remainder
// of b along with the detached root. On error no part of the tree is
// returned and the error is marked with ErrCorruptProfile.
func DecodeNode(b []byte, limits DecodeLimits) ([]byte, *Node, error) {
	d := decoder{limits: limits.withDefaults()}
	b, n, err := d.decode(b, 0 /* depth */)
	if err != nil {
		return nil, nil, errors.Mark(err, ErrCorruptProfile)
	}
	return b, n, nil
}

// Unmarshal decodes a buffer that holds exactly one tree.
func Unmarshal(b []byte, limits DecodeLimits) (*Node, error) {
	rem, n, err := DecodeNode(b, limits)
	if err != nil {
		return nil, err
	}
	if len(rem) != 0 {
		return nil, errors.Mark(
			errors.Newf("%d trailing bytes after profile tree", len(rem)), ErrCorruptProfile)
	}
	return n, nil
}

type decoder struct {
	limits DecodeLimits
	nodes  int
}

func (d *decoder) decode(b []byte, depth int) ([]byte, *Node, error) {
	if depth >= d.limits.MaxDepth {
		return nil, nil, errors.Newf("profile tree deeper than %d levels", d.limits.MaxDepth)
	}
	if d.nodes++; d.nodes > d.limits.MaxNodes {
		return nil, nil, errors.Newf("profile tree has more than %d nodes", d.limits.MaxNodes)
	}

	b, name, err := encoding.DecodePrefixedString(b)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding name")
	}
	b, reason, err := encoding.DecodePrefixedString(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding reason of %q", name)
	}
	b, t, err := encoding.DecodeInt64(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding time of %q", name)
	}
	b, crossShardTime, err := encoding.DecodeInt64(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding cross-shard time of %q", name)
	}
	b, count, err := encoding.DecodeUvarintAscending(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding child count of %q", name)
	}
	// Every child needs at least minEncodedNodeLen bytes, which rejects
	// impossible counts before anything is allocated for them.
	if count > uint64(len(b)/minEncodedNodeLen) {
		return nil, nil, errors.Newf(
			"%q claims %d children but only %d bytes remain", name, count, len(b))
	}

	var children []*Node
	if count > 0 {
		children = make([]*Node, 0, count)
	}
	for i := uint64(0); i < count; i++ {
		var c *Node
		b, c, err = d.decode(b, depth+1)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "decoding child %d of %q", i, name)
		}
		children = append(children, c)
	}
	return b, newDetachedNode(
		name, Reason(reason), time.Duration(t), time.Duration(crossShardTime), children,
	), nil
}
