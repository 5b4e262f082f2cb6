// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// stream aggregation metrics.
var (
	StreamAggRowsCounter   *prometheus.CounterVec
	StreamAggGroupsGauge   prometheus.Gauge
	StreamAggApplyDuration *prometheus.HistogramVec
	StreamAggErrorCounter  *prometheus.CounterVec
)

// InitStreamAggMetrics initializes stream aggregation metrics.
func InitStreamAggMetrics() {
	StreamAggRowsCounter = NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsql",
			Subsystem: "stream_agg",
			Name:      "rows_total",
			Help:      "Counter of changelog rows applied to aggregate states.",
		}, []string{LblAggKind, LblOp})

	StreamAggGroupsGauge = NewGauge(
		prometheus.GaugeOpts{
			Namespace: "flowsql",
			Subsystem: "stream_agg",
			Name:      "groups",
			Help:      "Number of live aggregation groups.",
		})

	StreamAggApplyDuration = NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "flowsql",
			Subsystem: "stream_agg",
			Name:      "apply_duration_seconds",
			Help:      "Bucketed histogram of applying one changelog batch (s).",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 20), // 50us ~ 26s
		}, []string{LblResult})

	StreamAggErrorCounter = NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flowsql",
			Subsystem: "stream_agg",
			Name:      "error_total",
			Help:      "Counter of rejected changelog batches.",
		}, []string{LblType})
}
