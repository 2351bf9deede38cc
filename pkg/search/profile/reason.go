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

import "github.com/cockroachdb/redact"

// Reason is a hint explaining why a collector is part of the tree. It is
// reported verbatim and selects how the node is named. Any string is a valid
// Reason; the constants below are the ones the engine produces.
type Reason string

const (
	ReasonSearchCount               Reason = "search_count"
	ReasonSearchTopHits             Reason = "search_top_hits"
	ReasonSearchTerminateAfterCount Reason = "search_terminate_after_count"
	ReasonSearchPostFilter          Reason = "search_post_filter"
	ReasonSearchMinScore            Reason = "search_min_score"
	ReasonSearchMulti               Reason = "search_multi"
	ReasonSearchTimeout             Reason = "search_timeout"
	// ReasonAggregation marks a collector that computes an aggregation.
	ReasonAggregation Reason = "aggregation"
	// ReasonAggregationGlobal marks an aggregation that ignores the query
	// and runs over every document.
	ReasonAggregationGlobal Reason = "aggregation_global"
)

// SafeValue implements redact.SafeValue. Reasons are chosen by code, never
// by users.
func (Reason) SafeValue() {}

var _ redact.SafeValue = Reason("")

// IsAggregation returns true for the reasons whose collectors are named after
// the user-assigned aggregation name. Every other reason, including ones not
// listed above, yields the bare type name.
func (r Reason) IsAggregation() bool {
	switch r {
	case ReasonAggregation, ReasonAggregationGlobal:
		return true
	default:
		return false
	}
}
