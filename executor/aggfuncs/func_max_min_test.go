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
	"testing"

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/stretchr/testify/require"
)

func int32Batch(tp types.DataType, vs ...int32) []chunk.Column {
	datums := make([]types.Datum, 0, len(vs))
	for _, v := range vs {
		datums = append(datums, types.NewInt32Datum(v))
	}
	return []chunk.Column{chunk.BuildColumn(tp, datums...)}
}

func requireOutputInt32(t *testing.T, s StreamingAggState, expected int32) {
	d := getOutput(t, s)
	require.False(t, d.IsNull())
	require.Equal(t, expected, d.GetInt32())
}

func TestMaxRetractExtreme(t *testing.T) {
	tp := types.NewInt32Type(false)
	s := mustBuild(t, mustDesc(t, AggMax, tp), types.Datum{})
	require.True(t, getOutput(t, s).IsNull())

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert, chunk.OpInsert}, nil, int32Batch(tp, 3, 9, 9)))
	requireOutputInt32(t, s, 9)

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete}, nil, int32Batch(tp, 9)))
	requireOutputInt32(t, s, 9)

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpUpdateDelete, chunk.OpUpdateInsert}, nil, int32Batch(tp, 9, 5)))
	requireOutputInt32(t, s, 5)

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete, chunk.OpDelete}, nil, int32Batch(tp, 5, 3)))
	require.True(t, getOutput(t, s).IsNull())
	require.Empty(t, s.ToDatum().GetStruct())
}

func TestMinNegativeMultiplicity(t *testing.T) {
	tp := types.NewInt32Type(true)
	desc := mustDesc(t, AggMin, tp)
	require.True(t, desc.ReturnType.IsNullable())
	s := mustBuild(t, desc, types.Datum{})

	// A retraction that arrives before its insert is never the output.
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpDelete, chunk.OpInsert}, nil, int32Batch(tp, 1, 4)))
	requireOutputInt32(t, s, 4)

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert}, nil, int32Batch(tp, 1)))
	requireOutputInt32(t, s, 4)
	require.Len(t, s.ToDatum().GetStruct(), 1)

	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert}, nil, int32Batch(tp, 1)))
	requireOutputInt32(t, s, 1)
}

func TestMaxMinCheckpoint(t *testing.T) {
	tp := types.NewVarcharType(true)
	desc := mustDesc(t, AggMin, tp)
	s := mustBuild(t, desc, types.Datum{})
	col := chunk.BuildColumn(tp, types.NewVarcharDatum("b"), types.NewVarcharDatum("a"), types.NewNullDatum(), types.NewVarcharDatum("b"))
	vis := chunk.NewBitmap([]bool{true, true, true, true})
	require.NoError(t, s.ApplyBatch(chunk.Ops{chunk.OpInsert, chunk.OpInsert, chunk.OpInsert, chunk.OpInsert}, vis, []chunk.Column{col}))

	ckpt := s.ToDatum()
	require.Equal(t, "((a,1),(b,2))", ckpt.String())
	restored := mustBuild(t, desc, ckpt)
	require.True(t, ckpt.Equal(restored.ToDatum()))
	require.Equal(t, "a", getOutput(t, restored).GetString())
	require.Greater(t, restored.(MemoryUsager).MemoryUsage(), int64(0))

	require.Panics(t, func() {
		_, _ = Build(desc, types.NewStructDatum(types.NewStructDatum(types.NewInt32Datum(1), types.NewInt64Datum(1))))
	})
	require.Panics(t, func() {
		_, _ = Build(desc, types.NewVarcharDatum("a"))
	})
}
