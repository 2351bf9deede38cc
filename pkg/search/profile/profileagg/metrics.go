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

package profileagg

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by an Aggregator.
type Metrics struct {
	ShardsDecoded prometheus.Counter
	DecodeErrors  prometheus.Counter
	NodesMerged   prometheus.Counter
}

// NewMetrics returns unregistered metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ShardsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "searchprof",
			Name:      "shards_decoded_total",
			Help:      "Number of shard profile trees decoded successfully.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "searchprof",
			Name:      "decode_errors_total",
			Help:      "Number of shard profile payloads that failed to decode.",
		}),
		NodesMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "searchprof",
			Name:      "nodes_merged_total",
			Help:      "Number of decoded nodes that were assigned a cross-shard time.",
		}),
	}
}

// Register registers all metrics with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.ShardsDecoded, m.DecodeErrors, m.NodesMerged} {
		if err := r.Register(c); err != nil {
			return errors.Wrap(err, "registering profile aggregation metrics")
		}
	}
	return nil
}
