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
	"encoding/json"
	"fmt"
	"time"
)

// Fragment is the document form of a node, embedded by the report builder
// into the search response. Children is omitted entirely for a leaf.
type Fragment struct {
	Name     string     `json:"name"`
	Reason   Reason     `json:"reason"`
	Time     string     `json:"time"`
	Children []Fragment `json:"children,omitempty"`
}

// Fragment renders the node and its descendants. It reads the node only and
// gives the same result for live and detached nodes.
func (n *Node) Fragment() Fragment {
	f := Fragment{
		Name:   n.name,
		Reason: n.reason,
		Time:   FormatMillis(n.Time()),
	}
	if len(n.children) > 0 {
		f.Children = make([]Fragment, len(n.children))
		for i, c := range n.children {
			f.Children[i] = c.Fragment()
		}
	}
	return f
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Fragment())
}

// FormatMillis renders d in milliseconds with ten significant digits,
// keeping trailing zeros, e.g. "1.500000000ms". fmt never consults the host
// locale, so the decimal separator is always '.'.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%#.10gms", float64(d)/float64(time.Millisecond))
}
