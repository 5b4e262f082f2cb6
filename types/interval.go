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

package types

import (
	"fmt"
	"strings"
)

const (
	daysPerMonth = 30
	msPerDay     = 24 * 60 * 60 * 1000
)

// Interval is a span of time kept as separate month, day and millisecond
// parts, since a month has no fixed number of days.
type Interval struct {
	Months int32
	Days   int32
	Ms     int64
}

// NewInterval creates an Interval.
func NewInterval(months, days int32, ms int64) Interval {
	return Interval{Months: months, Days: days, Ms: ms}
}

// IsZero reports whether every part is zero.
func (iv Interval) IsZero() bool {
	return iv.Months == 0 && iv.Days == 0 && iv.Ms == 0
}

// Add returns the part-wise sum of iv and o.
func (iv Interval) Add(o Interval) Interval {
	return Interval{Months: iv.Months + o.Months, Days: iv.Days + o.Days, Ms: iv.Ms + o.Ms}
}

// Negate returns -iv.
func (iv Interval) Negate() Interval {
	return Interval{Months: -iv.Months, Days: -iv.Days, Ms: -iv.Ms}
}

// normalize folds the interval into whole days and a millisecond remainder
// in [0, msPerDay), taking a month as 30 days.
func (iv Interval) normalize() (days int64, rem int64) {
	days = int64(iv.Months)*daysPerMonth + int64(iv.Days)
	q, r := iv.Ms/msPerDay, iv.Ms%msPerDay
	if r < 0 {
		q--
		r += msPerDay
	}
	return days + q, r
}

// Compare returns -1, 0 or 1. Intervals are ordered by their length with a
// month taken as 30 days, so "1 mon" equals "30 days".
func (iv Interval) Compare(o Interval) int {
	ad, ar := iv.normalize()
	bd, br := o.normalize()
	switch {
	case ad < bd:
		return -1
	case ad > bd:
		return 1
	case ar < br:
		return -1
	case ar > br:
		return 1
	}
	return 0
}

// String implements fmt.Stringer interface.
func (iv Interval) String() string {
	if iv.IsZero() {
		return "00:00:00"
	}
	var parts []string
	if y, m := iv.Months/12, iv.Months%12; y != 0 || m != 0 {
		if y != 0 {
			parts = append(parts, fmt.Sprintf("%d years", y))
		}
		if m != 0 {
			parts = append(parts, fmt.Sprintf("%d mons", m))
		}
	}
	if iv.Days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", iv.Days))
	}
	if iv.Ms != 0 {
		ms := iv.Ms
		sign := ""
		if ms < 0 {
			sign = "-"
			ms = -ms
		}
		h, m, s, frac := ms/3600000, ms/60000%60, ms/1000%60, ms%1000
		if frac != 0 {
			parts = append(parts, fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, frac))
		} else {
			parts = append(parts, fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s))
		}
	}
	return strings.Join(parts, " ")
}
