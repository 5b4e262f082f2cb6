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
	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// label constants.
const (
	LblType    = "type"
	LblAggKind = "agg_kind"
	LblOp      = "op"
	LblResult  = "result"

	opSucc   = "ok"
	opFailed = "err"
)

// constLabels are attached to every metric created by this package.
var constLabels prometheus.Labels

// SetConstLabels sets constant labels for metrics created afterwards.
func SetConstLabels(kv ...string) {
	if len(kv)%2 == 1 {
		panic("SetConstLabels requires an even number of arguments")
	}
	if constLabels == nil {
		constLabels = make(prometheus.Labels, len(kv)/2)
	}
	for i := 0; i < len(kv); i += 2 {
		constLabels[kv[i]] = kv[i+1]
	}
}

// NewCounterVec creates a new CounterVec with const labels attached.
func NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	opts.ConstLabels = constLabels
	return prometheus.NewCounterVec(opts, labelNames)
}

// NewGauge creates a new Gauge with const labels attached.
func NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	opts.ConstLabels = constLabels
	return prometheus.NewGauge(opts)
}

// NewHistogramVec creates a new HistogramVec with const labels attached.
func NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	opts.ConstLabels = constLabels
	return prometheus.NewHistogramVec(opts, labelNames)
}

// InitMetrics is used to initialize metrics.
func InitMetrics() {
	InitStreamAggMetrics()
}

// RegisterMetrics registers the metrics which are ONLY used in flowsql.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		StreamAggRowsCounter,
		StreamAggGroupsGauge,
		StreamAggApplyDuration,
		StreamAggErrorCounter,
	} {
		if err := r.Register(c); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// RetLabel returns "ok" when err == nil and "err" when err != nil.
func RetLabel(err error) string {
	if err == nil {
		return opSucc
	}
	return opFailed
}

// ErrorToLabel converts an error to label.
func ErrorToLabel(err error) string {
	err = errors.Cause(err)
	switch x := err.(type) {
	case *errors.Error:
		return string(x.RFCCode())
	default:
		return "unknown"
	}
}

func init() {
	InitMetrics()
}
