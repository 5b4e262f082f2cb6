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
	"testing"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveBuilder(t *testing.T) {
	b := NewPrimitiveBuilder(types.NewInt32Type(true), 4)
	b.Append(1)
	b.AppendNull()
	b.AppendDatum(types.NewInt32Datum(3))
	b.AppendDatum(types.NewNullDatum())
	require.Equal(t, 4, b.Len())

	col := b.Finish().(*PrimitiveColumn[int32])
	require.Equal(t, 0, b.Len())
	require.Equal(t, 4, col.Len())
	require.Equal(t, 2, col.NullCount())
	require.Equal(t, int32(1), col.Value(0))
	require.True(t, col.IsNull(1))
	require.Equal(t, int32(3), col.GetDatum(2).GetInt32())
	require.True(t, col.GetDatum(3).IsNull())
	require.True(t, types.Equal(types.NewInt32Type(true), col.DataType()))
}

func TestBuilderTypeMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		NewBuilder(types.NewInt32Type(true), 1).AppendDatum(types.NewInt64Datum(1))
	})
	require.Panics(t, func() {
		NewBuilder(types.NewDateType(true), 1).AppendDatum(types.NewInt32Datum(1))
	})
	require.Panics(t, func() {
		NewBuilder(types.NewVarcharType(true), 1).AppendDatum(types.NewBoolDatum(true))
	})
	st := types.NewStructType(true, types.NewInt32Type(true))
	require.Panics(t, func() {
		NewBuilder(st, 1).AppendDatum(types.NewStructDatum(types.NewInt32Datum(1), types.NewInt32Datum(2)))
	})
}

func TestNewBuilderVariants(t *testing.T) {
	st := types.NewStructType(true, types.NewInt64Type(true), types.NewVarcharType(true))
	cases := []struct {
		tp     types.DataType
		values []types.Datum
	}{
		{types.NewBooleanType(true), []types.Datum{types.NewBoolDatum(true), types.NewNullDatum(), types.NewBoolDatum(false)}},
		{types.NewInt16Type(true), []types.Datum{types.NewInt16Datum(-3), types.NewNullDatum()}},
		{types.NewInt64Type(false), []types.Datum{types.NewInt64Datum(9)}},
		{types.NewFloat32Type(true), []types.Datum{types.NewFloat32Datum(1.5)}},
		{types.NewFloat64Type(true), []types.Datum{types.NewNullDatum(), types.NewFloat64Datum(-0.5)}},
		{types.NewDateType(true), []types.Datum{types.NewDateDatum(19000)}},
		{types.NewVarcharType(true), []types.Datum{types.NewVarcharDatum("ab"), types.NewNullDatum(), types.NewVarcharDatum(""), types.NewVarcharDatum("c")}},
		{types.NewDecimalType(true, 10, 2), []types.Datum{types.NewDecimalDatum(decimal.RequireFromString("1.25")), types.NewNullDatum()}},
		{types.NewIntervalType(true, streampb.DataType_DAY), []types.Datum{types.NewIntervalDatum(types.NewInterval(1, 2, 3))}},
		{st, []types.Datum{
			types.NewStructDatum(types.NewInt64Datum(1), types.NewVarcharDatum("x")),
			types.NewNullDatum(),
			types.NewStructDatum(types.NewNullDatum(), types.NewVarcharDatum("y")),
		}},
	}
	for _, c := range cases {
		col := BuildColumn(c.tp, c.values...)
		require.Equal(t, len(c.values), col.Len(), c.tp.String())
		got := ColumnDatums(col)
		for i := range c.values {
			require.Equal(t, c.values[i].IsNull(), col.IsNull(i))
			require.True(t, c.values[i].Equal(got[i]), "%s: %s != %s", c.tp, c.values[i], got[i])
		}
	}
}

func TestBuilderReuseAfterFinish(t *testing.T) {
	b := NewStringBuilder(types.NewVarcharType(true), 2)
	b.Append("first")
	first := b.Finish().(*StringColumn)
	b.Append("second")
	second := b.Finish().(*StringColumn)
	require.Equal(t, "first", first.Value(0))
	require.Equal(t, "second", second.Value(0))
	require.Equal(t, 1, second.Len())
}

func TestStructColumnFields(t *testing.T) {
	st := types.NewStructType(true, types.NewInt32Type(true), types.NewBooleanType(true))
	col := BuildColumn(st,
		types.NewStructDatum(types.NewInt32Datum(5), types.NewBoolDatum(true)),
		types.NewNullDatum(),
	).(*StructColumn)
	require.Equal(t, 2, col.NumFields())
	require.Equal(t, 2, col.Field(0).Len())
	require.Equal(t, int32(5), col.Field(0).(*PrimitiveColumn[int32]).Value(0))
	require.True(t, col.Field(1).(*BoolColumn).Value(0))
	require.True(t, col.Field(0).IsNull(1))
}
