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
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/flowsql/flowsql/types"
)

// OpFieldName is the name of the operation column of exported records.
const OpFieldName = "__op"

// ArrowType returns the arrow type values of tp are exported as. Decimals
// have no precision bound, so they are exported as their text form.
func ArrowType(tp types.DataType) arrow.DataType {
	switch tp.Kind() {
	case types.KindBoolean:
		return arrow.FixedWidthTypes.Boolean
	case types.KindInt16:
		return arrow.PrimitiveTypes.Int16
	case types.KindInt32:
		return arrow.PrimitiveTypes.Int32
	case types.KindInt64:
		return arrow.PrimitiveTypes.Int64
	case types.KindFloat32:
		return arrow.PrimitiveTypes.Float32
	case types.KindFloat64:
		return arrow.PrimitiveTypes.Float64
	case types.KindDate:
		return arrow.FixedWidthTypes.Date32
	case types.KindDecimal, types.KindVarchar:
		return arrow.BinaryTypes.String
	case types.KindInterval:
		return arrow.FixedWidthTypes.MonthDayNanoInterval
	case types.KindStruct:
		st := tp.(*types.StructType)
		fields := make([]arrow.Field, 0, len(st.Fields()))
		for i, ft := range st.Fields() {
			fields = append(fields, arrow.Field{Name: "f" + strconv.Itoa(i), Type: ArrowType(ft), Nullable: ft.IsNullable()})
		}
		return arrow.StructOf(fields...)
	}
	panic(fmt.Sprintf("no arrow type for %s", tp))
}

// ToArrow exports col as an arrow array allocated from mem. The caller
// releases the result.
func ToArrow(col Column, mem memory.Allocator) arrow.Array {
	b := array.NewBuilder(mem, ArrowType(col.DataType()))
	defer b.Release()
	b.Reserve(col.Len())
	for i := 0; i < col.Len(); i++ {
		appendArrowDatum(b, col.GetDatum(i))
	}
	return b.NewArray()
}

// ToArrowRecord exports the visible rows of chk as an arrow record with the
// operation as a leading int8 column. names must have one entry per column.
func ToArrowRecord(chk *StreamChunk, names []string, mem memory.Allocator) arrow.Record {
	fields := make([]arrow.Field, 0, len(chk.columns)+1)
	fields = append(fields, arrow.Field{Name: OpFieldName, Type: arrow.PrimitiveTypes.Int8})
	for j, col := range chk.columns {
		tp := col.DataType()
		fields = append(fields, arrow.Field{Name: names[j], Type: ArrowType(tp), Nullable: tp.IsNullable()})
	}
	builder := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer builder.Release()

	opBuilder := builder.Field(0).(*array.Int8Builder)
	for row, op := range chk.ops.VisibleRows(chk.visibility) {
		opBuilder.Append(int8(op))
		for j, col := range chk.columns {
			appendArrowDatum(builder.Field(j+1), col.GetDatum(row))
		}
	}
	return builder.NewRecord()
}

func appendArrowDatum(b array.Builder, d types.Datum) {
	if d.IsNull() {
		b.AppendNull()
		return
	}
	switch x := b.(type) {
	case *array.BooleanBuilder:
		x.Append(d.GetBool())
	case *array.Int16Builder:
		x.Append(d.GetInt16())
	case *array.Int32Builder:
		x.Append(d.GetInt32())
	case *array.Int64Builder:
		x.Append(d.GetInt64())
	case *array.Float32Builder:
		x.Append(d.GetFloat32())
	case *array.Float64Builder:
		x.Append(d.GetFloat64())
	case *array.Date32Builder:
		x.Append(arrow.Date32(d.GetDate()))
	case *array.StringBuilder:
		x.Append(d.String())
	case *array.MonthDayNanoIntervalBuilder:
		iv := d.GetInterval()
		x.Append(arrow.MonthDayNanoInterval{Months: iv.Months, Days: iv.Days, Nanoseconds: iv.Ms * 1e6})
	case *array.StructBuilder:
		x.Append(true)
		for i, f := range d.GetStruct() {
			appendArrowDatum(x.FieldBuilder(i), f)
		}
	default:
		panic(fmt.Sprintf("unexpected arrow builder %T", b))
	}
}
