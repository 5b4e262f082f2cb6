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
	"github.com/flowsql/flowsql/types"
	"github.com/shopspring/decimal"
)

// Column is an immutable sequence of values of one data type. Columns are
// only produced by Builder.Finish and may be shared by concurrent readers.
type Column interface {
	// DataType returns the declared type of the column.
	DataType() types.DataType
	// Len returns the number of values.
	Len() int
	// IsNull reports whether value i is NULL.
	IsNull(i int) bool
	// GetDatum returns value i as a datum.
	GetDatum(i int) types.Datum
}

type baseColumn struct {
	tp       types.DataType
	length   int
	validity *Bitmap
}

// DataType implements Column.
func (c *baseColumn) DataType() types.DataType { return c.tp }

// Len implements Column.
func (c *baseColumn) Len() int { return c.length }

// IsNull implements Column.
func (c *baseColumn) IsNull(i int) bool { return !c.validity.IsSet(i) }

// NullCount returns the number of NULL values.
func (c *baseColumn) NullCount() int { return c.length - c.validity.CountOnes() }

// PrimitiveColumn holds numeric values in their native representation.
type PrimitiveColumn[N types.Native] struct {
	baseColumn
	data []N
}

// Value returns value i. The result is undefined for NULL values.
func (c *PrimitiveColumn[N]) Value(i int) N { return c.data[i] }

// Values returns all values, NULL slots included.
func (c *PrimitiveColumn[N]) Values() []N { return c.data }

// GetDatum implements Column.
func (c *PrimitiveColumn[N]) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	return types.NewNativeDatum(c.tp.Kind(), c.data[i])
}

// BoolColumn holds boolean values.
type BoolColumn struct {
	baseColumn
	data *Bitmap
}

// Value returns value i.
func (c *BoolColumn) Value(i int) bool { return c.data.IsSet(i) }

// GetDatum implements Column.
func (c *BoolColumn) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	return types.NewBoolDatum(c.data.IsSet(i))
}

// StringColumn holds varchar values packed in one buffer.
type StringColumn struct {
	baseColumn
	offsets []int64
	data    []byte
}

// Value returns value i.
func (c *StringColumn) Value(i int) string {
	return string(c.data[c.offsets[i]:c.offsets[i+1]])
}

// GetDatum implements Column.
func (c *StringColumn) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	return types.NewVarcharDatum(c.Value(i))
}

// DecimalColumn holds decimal values.
type DecimalColumn struct {
	baseColumn
	data []decimal.Decimal
}

// Value returns value i.
func (c *DecimalColumn) Value(i int) decimal.Decimal { return c.data[i] }

// GetDatum implements Column.
func (c *DecimalColumn) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	return types.NewDecimalDatum(c.data[i])
}

// IntervalColumn holds interval values.
type IntervalColumn struct {
	baseColumn
	data []types.Interval
}

// Value returns value i.
func (c *IntervalColumn) Value(i int) types.Interval { return c.data[i] }

// GetDatum implements Column.
func (c *IntervalColumn) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	return types.NewIntervalDatum(c.data[i])
}

// StructColumn holds one child column per struct field.
type StructColumn struct {
	baseColumn
	fields []Column
}

// NumFields returns the number of fields.
func (c *StructColumn) NumFields() int { return len(c.fields) }

// Field returns the child column of field j.
func (c *StructColumn) Field(j int) Column { return c.fields[j] }

// GetDatum implements Column.
func (c *StructColumn) GetDatum(i int) types.Datum {
	if c.IsNull(i) {
		return types.Datum{}
	}
	fields := make([]types.Datum, len(c.fields))
	for j, f := range c.fields {
		fields[j] = f.GetDatum(i)
	}
	return types.NewStructDatum(fields...)
}

// ColumnDatums returns every value of col as datums.
func ColumnDatums(col Column) []types.Datum {
	res := make([]types.Datum, col.Len())
	for i := range res {
		res[i] = col.GetDatum(i)
	}
	return res
}
