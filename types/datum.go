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
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Datum is a nullable scalar. The zero value is NULL.
type Datum struct {
	k Kind   // datum kind, KindNull for NULL.
	i int64  // integers, dates, booleans and float bits.
	s string // varchar.
	x any    // decimal.Decimal, Interval or []Datum.
}

// NewNullDatum returns a NULL datum.
func NewNullDatum() Datum {
	return Datum{}
}

// NewBoolDatum creates a Boolean datum.
func NewBoolDatum(b bool) Datum {
	d := Datum{k: KindBoolean}
	if b {
		d.i = 1
	}
	return d
}

// NewInt16Datum creates an Int16 datum.
func NewInt16Datum(v int16) Datum { return NewNativeDatum(KindInt16, v) }

// NewInt32Datum creates an Int32 datum.
func NewInt32Datum(v int32) Datum { return NewNativeDatum(KindInt32, v) }

// NewInt64Datum creates an Int64 datum.
func NewInt64Datum(v int64) Datum { return NewNativeDatum(KindInt64, v) }

// NewFloat32Datum creates a Float32 datum.
func NewFloat32Datum(v float32) Datum { return NewNativeDatum(KindFloat32, v) }

// NewFloat64Datum creates a Float64 datum.
func NewFloat64Datum(v float64) Datum { return NewNativeDatum(KindFloat64, v) }

// NewDateDatum creates a Date datum from days since 1970-01-01.
func NewDateDatum(days int32) Datum { return NewNativeDatum(KindDate, days) }

// NewDecimalDatum creates a Decimal datum.
func NewDecimalDatum(v decimal.Decimal) Datum {
	return Datum{k: KindDecimal, x: v}
}

// NewVarcharDatum creates a Varchar datum.
func NewVarcharDatum(s string) Datum {
	return Datum{k: KindVarchar, s: s}
}

// NewIntervalDatum creates an Interval datum.
func NewIntervalDatum(iv Interval) Datum {
	return Datum{k: KindInterval, x: iv}
}

// NewStructDatum creates a Struct datum holding fields in order.
func NewStructDatum(fields ...Datum) Datum {
	if fields == nil {
		fields = []Datum{}
	}
	return Datum{k: KindStruct, x: fields}
}

// NewNativeDatum creates a datum of kind k from its native representation.
func NewNativeDatum[N Native](k Kind, v N) Datum {
	d := Datum{k: k}
	switch x := any(v).(type) {
	case int16:
		d.i = int64(x)
	case int32:
		d.i = int64(x)
	case int64:
		d.i = x
	case float32:
		d.i = int64(math.Float64bits(float64(x)))
	case float64:
		d.i = int64(math.Float64bits(x))
	}
	return d
}

// GetNative returns the native representation of a numeric datum.
func GetNative[N Native](d Datum) N {
	var n N
	switch any(n).(type) {
	case float32, float64:
		return N(math.Float64frombits(uint64(d.i)))
	}
	return N(d.i)
}

// Kind returns the datum kind.
func (d Datum) Kind() Kind { return d.k }

// IsNull reports whether the datum is NULL.
func (d Datum) IsNull() bool { return d.k == KindNull }

// GetBool gets bool value.
func (d Datum) GetBool() bool { return d.i != 0 }

// GetInt16 gets int16 value.
func (d Datum) GetInt16() int16 { return int16(d.i) }

// GetInt32 gets int32 value.
func (d Datum) GetInt32() int32 { return int32(d.i) }

// GetInt64 gets int64 value.
func (d Datum) GetInt64() int64 { return d.i }

// GetFloat32 gets float32 value.
func (d Datum) GetFloat32() float32 { return float32(math.Float64frombits(uint64(d.i))) }

// GetFloat64 gets float64 value.
func (d Datum) GetFloat64() float64 { return math.Float64frombits(uint64(d.i)) }

// GetDate gets the days since 1970-01-01.
func (d Datum) GetDate() int32 { return int32(d.i) }

// GetString gets string value.
func (d Datum) GetString() string { return d.s }

// GetDecimal gets decimal value.
func (d Datum) GetDecimal() decimal.Decimal {
	v, _ := d.x.(decimal.Decimal)
	return v
}

// GetInterval gets interval value.
func (d Datum) GetInterval() Interval {
	v, _ := d.x.(Interval)
	return v
}

// GetStruct gets the fields of a struct datum.
func (d Datum) GetStruct() []Datum {
	v, _ := d.x.([]Datum)
	return v
}

// Compare returns -1, 0 or 1. NULL sorts before every value and NaN before
// every float. Datums of different kinds are ordered by kind.
func (d Datum) Compare(o Datum) int {
	if d.k != o.k {
		return cmp.Compare(d.k, o.k)
	}
	switch d.k {
	case KindNull:
		return 0
	case KindBoolean, KindInt16, KindInt32, KindInt64, KindDate:
		return cmp.Compare(d.i, o.i)
	case KindFloat32, KindFloat64:
		return cmp.Compare(d.GetFloat64(), o.GetFloat64())
	case KindDecimal:
		return d.GetDecimal().Cmp(o.GetDecimal())
	case KindVarchar:
		return strings.Compare(d.s, o.s)
	case KindInterval:
		return d.GetInterval().Compare(o.GetInterval())
	case KindStruct:
		a, b := d.GetStruct(), o.GetStruct()
		for i := 0; i < len(a) && i < len(b); i++ {
			if c := a[i].Compare(b[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a), len(b))
	}
	panic(fmt.Sprintf("unexpected datum kind %s", d.k))
}

// Equal reports whether two datums compare equal.
func (d Datum) Equal(o Datum) bool {
	return d.Compare(o) == 0
}

// String implements fmt.Stringer interface.
func (d Datum) String() string {
	switch d.k {
	case KindNull:
		return "NULL"
	case KindBoolean:
		return strconv.FormatBool(d.GetBool())
	case KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(d.i, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(d.GetFloat32()), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(d.GetFloat64(), 'g', -1, 64)
	case KindDecimal:
		return d.GetDecimal().String()
	case KindDate:
		return DateToTime(d.GetDate()).Format(time.DateOnly)
	case KindVarchar:
		return d.s
	case KindInterval:
		return d.GetInterval().String()
	case KindStruct:
		fields := d.GetStruct()
		strs := make([]string, 0, len(fields))
		for _, f := range fields {
			strs = append(strs, f.String())
		}
		return "(" + strings.Join(strs, ",") + ")"
	}
	return fmt.Sprintf("Datum(%s)", d.k)
}

// DateToTime converts days since 1970-01-01 to a UTC time.
func DateToTime(days int32) time.Time {
	return time.Unix(int64(days)*86400, 0).UTC()
}

// DateFromTime converts a time to days since 1970-01-01 in UTC.
func DateFromTime(t time.Time) int32 {
	y, m, dd := t.UTC().Date()
	midnight := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return int32(midnight.Unix() / 86400)
}

// LiteralTypeMatch reports whether d may be the value of a column or
// literal of type tp. NULL matches every type and struct datums match
// field by field.
func LiteralTypeMatch(tp DataType, d Datum) bool {
	if d.IsNull() {
		return true
	}
	if tp == nil || tp.Kind() != d.k {
		return false
	}
	st, ok := tp.(*StructType)
	if !ok {
		return true
	}
	fields := d.GetStruct()
	if len(fields) != len(st.fields) {
		return false
	}
	for i, f := range fields {
		if !LiteralTypeMatch(st.fields[i], f) {
			return false
		}
	}
	return true
}
