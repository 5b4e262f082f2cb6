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

package aggfuncs

import (
	"math"
	"testing"

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustDesc(t *testing.T, kind AggKind, argType types.DataType) *AggFuncDesc {
	desc, err := NewAggFuncDesc(kind, []int{0}, []types.DataType{argType})
	require.NoError(t, err)
	return desc
}

func TestCountSkipsNull(t *testing.T) {
	tp := types.NewInt32Type(true)
	s := mustBuild(t, mustDesc(t, AggCount, tp), types.Datum{})
	col := chunk.BuildColumn(tp, types.NewInt32Datum(1), types.NewNullDatum(), types.NewInt32Datum(3))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert, chunk.OpInsert}, nil, []chunk.Column{col}))
	requireOutputInt64(t, s, 2)

	col = chunk.BuildColumn(tp, types.NewInt32Datum(1), types.NewNullDatum())
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete, chunk.OpDelete}, nil, []chunk.Column{col}))
	requireOutputInt64(t, s, 1)

	restored := mustBuild(t, s.(*count).desc, s.ToDatum())
	requireOutputInt64(t, restored, 1)
}

func TestBatchErrorsLeaveStateUntouched(t *testing.T) {
	tp := types.NewInt32Type(true)
	s := mustBuild(t, mustDesc(t, AggSum, tp), types.Datum{})
	col := chunk.BuildColumn(tp, types.NewInt32Datum(7))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert}, nil, []chunk.Column{col}))
	before := s.ToDatum()

	err := s.ApplyBatch(chunk.Ops{chunk.OpInsert}, nil, nil)
	require.True(t, ErrMissingArgument.Equal(err))

	err = s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert}, nil, []chunk.Column{col})
	require.True(t, ErrMalformedBatch.Equal(err))

	other := chunk.BuildColumn(types.NewVarcharType(true), types.NewVarcharDatum("x"))
	err = s.ApplyBatch(chunk.Ops{chunk.OpInsert}, nil, []chunk.Column{other})
	require.True(t, ErrMalformedBatch.Equal(err))

	require.True(t, before.Equal(s.ToDatum()))
}

func TestSumInt(t *testing.T) {
	tp := types.NewInt16Type(true)
	desc := mustDesc(t, AggSum, tp)
	require.Equal(t, types.KindInt64, desc.ReturnType.Kind())
	s := mustBuild(t, desc, types.Datum{})
	require.True(t, getOutput(t, s).IsNull())

	col := chunk.BuildColumn(tp, types.NewInt16Datum(math.MaxInt16), types.NewInt16Datum(math.MaxInt16), types.NewNullDatum())
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert, chunk.OpInsert}, nil, []chunk.Column{col}))
	requireOutputInt64(t, s, 2*math.MaxInt16)

	restored := mustBuild(t, desc, s.ToDatum())
	require.NoError(t, restored.ApplyBatch(chunk.Ops{chunk.OpDelete, chunk.OpUpdateDelete}, nil,
		[]chunk.Column{chunk.BuildColumn(tp, types.NewInt16Datum(math.MaxInt16), types.NewInt16Datum(math.MaxInt16))}))
	// The sum is 0 but no value remains, so the output is NULL.
	require.True(t, getOutput(t, restored).IsNull())
}

func TestSumInt64NeverOverflows(t *testing.T) {
	tp := types.NewInt64Type(true)
	desc := mustDesc(t, AggSum, tp)
	require.Equal(t, types.KindDecimal, desc.ReturnType.Kind())
	s := mustBuild(t, desc, types.Datum{})

	col := chunk.BuildColumn(tp, types.NewInt64Datum(math.MaxInt64), types.NewInt64Datum(math.MaxInt64), types.NewInt64Datum(1))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert, chunk.OpInsert}, nil, []chunk.Column{col}))
	expected := decimal.NewFromInt(math.MaxInt64).Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(1))
	require.True(t, expected.Equal(getOutput(t, s).GetDecimal()))

	col = chunk.BuildColumn(tp, types.NewInt64Datum(math.MinInt64))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete}, nil, []chunk.Column{col}))
	expected = expected.Sub(decimal.NewFromInt(math.MinInt64))
	require.True(t, expected.Equal(getOutput(t, s).GetDecimal()))

	restored := mustBuild(t, desc, s.ToDatum())
	require.True(t, expected.Equal(getOutput(t, restored).GetDecimal()))
}

func TestSumDecimal(t *testing.T) {
	tp := types.NewDecimalType(true, 10, 2)
	desc := mustDesc(t, AggSum, tp)
	require.Equal(t, uint32(2), desc.ReturnType.(*types.DecimalType).Scale())
	s := mustBuild(t, desc, types.Datum{})
	col := chunk.BuildColumn(tp,
		types.NewDecimalDatum(decimal.RequireFromString("1.25")),
		types.NewDecimalDatum(decimal.RequireFromString("2.50")),
		types.NewNullDatum())
	vis := chunk.NewBitmap([]bool{true, true, false})
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpUpdateInsert, chunk.OpInsert}, vis, []chunk.Column{col}))
	require.True(t, decimal.RequireFromString("3.75").Equal(getOutput(t, s).GetDecimal()))
}

func TestSumFloat(t *testing.T) {
	tp := types.NewFloat32Type(true)
	desc := mustDesc(t, AggSum, tp)
	require.Equal(t, types.KindFloat32, desc.ReturnType.Kind())
	s := mustBuild(t, desc, types.Datum{})
	col := chunk.BuildColumn(tp, types.NewFloat32Datum(1.5), types.NewFloat32Datum(2.25))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert}, nil, []chunk.Column{col}))
	d := getOutput(t, s)
	require.Equal(t, types.KindFloat32, d.Kind())
	require.Equal(t, float32(3.75), d.GetFloat32())

	restored := mustBuild(t, desc, s.ToDatum())
	require.True(t, restored.ToDatum().Equal(s.ToDatum()))

	tp64 := types.NewFloat64Type(true)
	s = mustBuild(t, mustDesc(t, AggSum, tp64), types.Datum{})
	col = chunk.BuildColumn(tp64, types.NewFloat64Datum(0.5))
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete}, nil, []chunk.Column{col}))
	require.Equal(t, -0.5, getOutput(t, s).GetFloat64())
}

func TestSumCheckpointMismatchPanics(t *testing.T) {
	desc := mustDesc(t, AggSum, types.NewInt32Type(true))
	require.Panics(t, func() {
		_, _ = Build(desc, types.NewInt64Datum(1))
	})
	require.Panics(t, func() {
		_, _ = Build(desc, types.NewStructDatum(types.NewFloat64Datum(1), types.NewInt64Datum(1)))
	})
}

func TestSumUnsupported(t *testing.T) {
	_, err := NewAggFuncDesc(AggSum, []int{0}, []types.DataType{types.NewVarcharType(true)})
	require.True(t, ErrUnsupportedAgg.Equal(err))

	desc := &AggFuncDesc{Kind: AggSum, Args: []int{0}, ArgTypes: []types.DataType{types.NewBooleanType(true)}, ReturnType: types.NewInt64Type(true)}
	_, err = Build(desc, types.Datum{})
	require.True(t, ErrUnsupportedAgg.Equal(err))
}
