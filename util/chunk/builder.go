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

package chunk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/flowsql/flowsql/types"
	"github.com/shopspring/decimal"
)

// Builder is the only mutable path to a Column. A builder is owned by one
// goroutine; Finish hands the accumulated values to a new Column and
// leaves the builder empty.
type Builder interface {
	// DataType returns the declared type of the column being built.
	DataType() types.DataType
	// AppendDatum appends one value. NULL consumes a null slot. A datum
	// whose kind differs from the builder type panics.
	AppendDatum(d types.Datum)
	// AppendNull appends a NULL.
	AppendNull()
	// Len returns the number of appended values.
	Len() int
	// Finish returns the built column.
	Finish() Column
}

type baseBuilder struct {
	tp       types.DataType
	validity *bitset.BitSet
	length   int
}

func newBaseBuilder(tp types.DataType, capacity int) baseBuilder {
	return baseBuilder{tp: tp, validity: bitset.New(uint(capacity))}
}

// DataType implements Builder.
func (b *baseBuilder) DataType() types.DataType { return b.tp }

// Len implements Builder.
func (b *baseBuilder) Len() int { return b.length }

func (b *baseBuilder) appendValidity(valid bool) {
	if valid {
		b.validity.Set(uint(b.length))
	}
	b.length++
}

// checkDatum reports whether d is NULL and panics when its kind does not
// match the builder type.
func (b *baseBuilder) checkDatum(d types.Datum) (isNull bool) {
	if d.IsNull() {
		return true
	}
	if d.Kind() != b.tp.Kind() {
		panic(fmt.Sprintf("type mismatch: cannot append %s datum to %s builder", d.Kind(), b.tp))
	}
	return false
}

// finishBase returns the column header and resets the builder.
func (b *baseBuilder) finishBase() baseColumn {
	col := baseColumn{tp: b.tp, length: b.length, validity: &Bitmap{bits: b.validity, length: b.length}}
	b.validity = bitset.New(0)
	b.length = 0
	return col
}

// PrimitiveBuilder builds a PrimitiveColumn.
type PrimitiveBuilder[N types.Native] struct {
	baseBuilder
	data []N
}

// NewPrimitiveBuilder creates a PrimitiveBuilder of numeric type tp.
func NewPrimitiveBuilder[N types.Native](tp *types.NumericType[N], capacity int) *PrimitiveBuilder[N] {
	return &PrimitiveBuilder[N]{baseBuilder: newBaseBuilder(tp, capacity), data: make([]N, 0, capacity)}
}

// Append appends a non-null value.
func (b *PrimitiveBuilder[N]) Append(v N) {
	b.data = append(b.data, v)
	b.appendValidity(true)
}

// AppendNull implements Builder.
func (b *PrimitiveBuilder[N]) AppendNull() {
	var zero N
	b.data = append(b.data, zero)
	b.appendValidity(false)
}

// AppendDatum implements Builder.
func (b *PrimitiveBuilder[N]) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	b.Append(types.GetNative[N](d))
}

// Finish implements Builder.
func (b *PrimitiveBuilder[N]) Finish() Column {
	col := &PrimitiveColumn[N]{baseColumn: b.finishBase(), data: b.data}
	b.data = nil
	return col
}

// BoolBuilder builds a BoolColumn.
type BoolBuilder struct {
	baseBuilder
	data *bitset.BitSet
}

// NewBoolBuilder creates a BoolBuilder.
func NewBoolBuilder(tp *types.BooleanType, capacity int) *BoolBuilder {
	return &BoolBuilder{baseBuilder: newBaseBuilder(tp, capacity), data: bitset.New(uint(capacity))}
}

// Append appends a non-null value.
func (b *BoolBuilder) Append(v bool) {
	if v {
		b.data.Set(uint(b.length))
	}
	b.appendValidity(true)
}

// AppendNull implements Builder.
func (b *BoolBuilder) AppendNull() { b.appendValidity(false) }

// AppendDatum implements Builder.
func (b *BoolBuilder) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	b.Append(d.GetBool())
}

// Finish implements Builder.
func (b *BoolBuilder) Finish() Column {
	length := b.length
	col := &BoolColumn{baseColumn: b.finishBase(), data: &Bitmap{bits: b.data, length: length}}
	b.data = bitset.New(0)
	return col
}

// StringBuilder builds a StringColumn.
type StringBuilder struct {
	baseBuilder
	offsets []int64
	data    []byte
}

// NewStringBuilder creates a StringBuilder.
func NewStringBuilder(tp *types.VarcharType, capacity int) *StringBuilder {
	offsets := make([]int64, 1, capacity+1)
	return &StringBuilder{baseBuilder: newBaseBuilder(tp, capacity), offsets: offsets}
}

// Append appends a non-null value.
func (b *StringBuilder) Append(v string) {
	b.data = append(b.data, v...)
	b.offsets = append(b.offsets, int64(len(b.data)))
	b.appendValidity(true)
}

// AppendNull implements Builder.
func (b *StringBuilder) AppendNull() {
	b.offsets = append(b.offsets, int64(len(b.data)))
	b.appendValidity(false)
}

// AppendDatum implements Builder.
func (b *StringBuilder) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	b.Append(d.GetString())
}

// Finish implements Builder.
func (b *StringBuilder) Finish() Column {
	col := &StringColumn{baseColumn: b.finishBase(), offsets: b.offsets, data: b.data}
	b.offsets, b.data = []int64{0}, nil
	return col
}

// DecimalBuilder builds a DecimalColumn.
type DecimalBuilder struct {
	baseBuilder
	data []decimal.Decimal
}

// NewDecimalBuilder creates a DecimalBuilder.
func NewDecimalBuilder(tp *types.DecimalType, capacity int) *DecimalBuilder {
	return &DecimalBuilder{baseBuilder: newBaseBuilder(tp, capacity), data: make([]decimal.Decimal, 0, capacity)}
}

// Append appends a non-null value.
func (b *DecimalBuilder) Append(v decimal.Decimal) {
	b.data = append(b.data, v)
	b.appendValidity(true)
}

// AppendNull implements Builder.
func (b *DecimalBuilder) AppendNull() {
	b.data = append(b.data, decimal.Decimal{})
	b.appendValidity(false)
}

// AppendDatum implements Builder.
func (b *DecimalBuilder) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	b.Append(d.GetDecimal())
}

// Finish implements Builder.
func (b *DecimalBuilder) Finish() Column {
	col := &DecimalColumn{baseColumn: b.finishBase(), data: b.data}
	b.data = nil
	return col
}

// IntervalBuilder builds an IntervalColumn.
type IntervalBuilder struct {
	baseBuilder
	data []types.Interval
}

// NewIntervalBuilder creates an IntervalBuilder.
func NewIntervalBuilder(tp *types.IntervalType, capacity int) *IntervalBuilder {
	return &IntervalBuilder{baseBuilder: newBaseBuilder(tp, capacity), data: make([]types.Interval, 0, capacity)}
}

// Append appends a non-null value.
func (b *IntervalBuilder) Append(v types.Interval) {
	b.data = append(b.data, v)
	b.appendValidity(true)
}

// AppendNull implements Builder.
func (b *IntervalBuilder) AppendNull() {
	b.data = append(b.data, types.Interval{})
	b.appendValidity(false)
}

// AppendDatum implements Builder.
func (b *IntervalBuilder) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	b.Append(d.GetInterval())
}

// Finish implements Builder.
func (b *IntervalBuilder) Finish() Column {
	col := &IntervalColumn{baseColumn: b.finishBase(), data: b.data}
	b.data = nil
	return col
}

// StructBuilder builds a StructColumn with one child builder per field.
type StructBuilder struct {
	baseBuilder
	fields []Builder
}

// NewStructBuilder creates a StructBuilder.
func NewStructBuilder(tp *types.StructType, capacity int) *StructBuilder {
	fieldTypes := tp.Fields()
	fields := make([]Builder, len(fieldTypes))
	for i, ft := range fieldTypes {
		fields[i] = NewBuilder(ft, capacity)
	}
	return &StructBuilder{baseBuilder: newBaseBuilder(tp, capacity), fields: fields}
}

// FieldBuilder returns the child builder of field j.
func (b *StructBuilder) FieldBuilder(j int) Builder { return b.fields[j] }

// AppendNull implements Builder. Every child gets a NULL to stay aligned.
func (b *StructBuilder) AppendNull() {
	for _, f := range b.fields {
		f.AppendNull()
	}
	b.appendValidity(false)
}

// AppendDatum implements Builder.
func (b *StructBuilder) AppendDatum(d types.Datum) {
	if b.checkDatum(d) {
		b.AppendNull()
		return
	}
	values := d.GetStruct()
	if len(values) != len(b.fields) {
		panic(fmt.Sprintf("type mismatch: cannot append %d-field struct to %s builder", len(values), b.tp))
	}
	for i, f := range b.fields {
		f.AppendDatum(values[i])
	}
	b.appendValidity(true)
}

// Finish implements Builder.
func (b *StructBuilder) Finish() Column {
	fields := make([]Column, len(b.fields))
	for i, f := range b.fields {
		fields[i] = f.Finish()
	}
	return &StructColumn{baseColumn: b.finishBase(), fields: fields}
}

// NewBuilder creates the builder variant matching tp.
func NewBuilder(tp types.DataType, capacity int) Builder {
	switch x := tp.(type) {
	case *types.NumericType[int16]:
		return NewPrimitiveBuilder(x, capacity)
	case *types.NumericType[int32]:
		return NewPrimitiveBuilder(x, capacity)
	case *types.NumericType[int64]:
		return NewPrimitiveBuilder(x, capacity)
	case *types.NumericType[float32]:
		return NewPrimitiveBuilder(x, capacity)
	case *types.NumericType[float64]:
		return NewPrimitiveBuilder(x, capacity)
	case *types.BooleanType:
		return NewBoolBuilder(x, capacity)
	case *types.VarcharType:
		return NewStringBuilder(x, capacity)
	case *types.DecimalType:
		return NewDecimalBuilder(x, capacity)
	case *types.IntervalType:
		return NewIntervalBuilder(x, capacity)
	case *types.StructType:
		return NewStructBuilder(x, capacity)
	}
	panic(fmt.Sprintf("no builder for data type %s", tp))
}

// BuildColumn builds a column of type tp holding datums.
func BuildColumn(tp types.DataType, datums ...types.Datum) Column {
	b := NewBuilder(tp, len(datums))
	for _, d := range datums {
		b.AppendDatum(d)
	}
	return b.Finish()
}
