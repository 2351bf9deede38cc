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

package search

import "strconv"

// MultiCollector is the named half of the collector returned by
// NewMultiCollector. It exists so that the composed collector has a
// readable name even though its concrete type is an unnamed struct.
type MultiCollector struct {
	collectors []Collector
}

// NewMultiCollector returns a collector that forwards every segment and
// document to each of the given collectors in order. A single collector is
// returned unchanged.
//
// The result is an unnamed struct built around *MultiCollector; profilers
// that derive names from types report it as "MultiCollector".
func NewMultiCollector(cs ...Collector) Collector {
	if len(cs) == 1 {
		return cs[0]
	}
	return struct{ *MultiCollector }{&MultiCollector{collectors: cs}}
}

// GetLeafCollector is part of the Collector interface.
func (m *MultiCollector) GetLeafCollector(seg SegmentContext) (LeafCollector, error) {
	leaves := make(multiLeafCollector, 0, len(m.collectors))
	for _, c := range m.collectors {
		leaf, err := c.GetLeafCollector(seg)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
	}
	return leaves, nil
}

// NeedsScores is part of the Collector interface.
func (m *MultiCollector) NeedsScores() bool {
	for _, c := range m.collectors {
		if c.NeedsScores() {
			return true
		}
	}
	return false
}

// String reports how many collectors are wrapped.
func (m *MultiCollector) String() string {
	return "multi(" + strconv.Itoa(len(m.collectors)) + ")"
}

type multiLeafCollector []LeafCollector

func (l multiLeafCollector) SetScorer(s Scorer) error {
	for _, leaf := range l {
		if err := leaf.SetScorer(s); err != nil {
			return err
		}
	}
	return nil
}

func (l multiLeafCollector) Collect(doc int) error {
	for _, leaf := range l {
		if err := leaf.Collect(doc); err != nil {
			return err
		}
	}
	return nil
}
