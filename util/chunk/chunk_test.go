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

	"github.com/flowsql/flowsql/types"
	"github.com/stretchr/testify/require"
)

func int64Column(values ...int64) Column {
	b := NewPrimitiveBuilder(types.NewInt64Type(true), len(values))
	for _, v := range values {
		b.Append(v)
	}
	return b.Finish()
}

func TestOp(t *testing.T) {
	require.False(t, OpInsert.IsRetraction())
	require.False(t, OpUpdateInsert.IsRetraction())
	require.True(t, OpDelete.IsRetraction())
	require.True(t, OpUpdateDelete.IsRetraction())
	require.Equal(t, int64(1), OpUpdateInsert.Sign())
	require.Equal(t, int64(-1), OpDelete.Sign())
	require.Equal(t, "U-", OpUpdateDelete.String())
	require.Equal(t, "Op(9)", Op(9).String())
	require.True(t, OpInsert.Valid())
	require.True(t, OpUpdateInsert.Valid())
	require.False(t, Op(0).Valid())
	require.False(t, Op(9).Valid())
	require.PanicsWithValue(t, "unknown row op Op(0)", func() { Op(0).Sign() })
}

func TestOpsIter(t *testing.T) {
	ops := Ops{OpInsert, OpDelete, OpUpdateDelete, OpUpdateInsert}

	var visible []bool
	for _, v := range ops.Iter(nil) {
		visible = append(visible, v)
	}
	require.Equal(t, []bool{true, true, true, true}, visible)

	vis := NewBitmap([]bool{false, true, false, true})
	var gotOps []Op
	visible = visible[:0]
	for op, v := range ops.Iter(vis) {
		gotOps = append(gotOps, op)
		visible = append(visible, v)
	}
	require.Equal(t, []Op(ops), gotOps)
	require.Equal(t, []bool{false, true, false, true}, visible)

	var rows []int
	gotOps = gotOps[:0]
	for row, op := range ops.VisibleRows(vis) {
		rows = append(rows, row)
		gotOps = append(gotOps, op)
	}
	require.Equal(t, []int{1, 3}, rows)
	require.Equal(t, []Op{OpDelete, OpUpdateInsert}, gotOps)

	// Early break stops the enumeration.
	count := 0
	for range ops.VisibleRows(nil) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestNewStreamChunkLengthMismatch(t *testing.T) {
	_, err := NewStreamChunk(Ops{OpInsert, OpInsert}, []Column{int64Column(1)}, nil)
	require.True(t, ErrLengthMismatch.Equal(err))

	_, err = NewStreamChunk(Ops{OpInsert}, []Column{int64Column(1)}, NewBitmapWithLength(2, true))
	require.True(t, ErrLengthMismatch.Equal(err))

	chk, err := NewStreamChunk(Ops{OpInsert}, []Column{int64Column(1)}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, chk.Capacity())
	require.Equal(t, 1, chk.Cardinality())
}

func TestStreamChunkCompact(t *testing.T) {
	ops := Ops{OpInsert, OpDelete, OpInsert}
	vis := NewBitmap([]bool{true, false, true})
	chk, err := NewStreamChunk(ops, []Column{int64Column(10, 20, 30)}, vis)
	require.NoError(t, err)
	require.Equal(t, 3, chk.Capacity())
	require.Equal(t, 2, chk.Cardinality())

	compact := chk.Compact()
	require.Nil(t, compact.Visibility())
	require.Equal(t, Ops{OpInsert, OpInsert}, compact.Ops())
	require.Equal(t, int64(30), compact.Column(0).GetDatum(1).GetInt64())
	require.Equal(t, chk.String(), compact.String())
	require.Equal(t, "+ 10\n+ 30\n", compact.String())
	require.Same(t, compact, compact.Compact())
}

func TestStreamChunkBuilder(t *testing.T) {
	b := NewStreamChunkBuilder([]types.DataType{types.NewInt64Type(true), types.NewVarcharType(true)}, 2)
	require.Nil(t, b.Take())
	b.Append(OpInsert, types.NewInt64Datum(1), types.NewVarcharDatum("a"))
	b.Append(OpUpdateDelete, types.NewNullDatum(), types.NewVarcharDatum("b"))
	require.Equal(t, 2, b.Len())
	require.Panics(t, func() { b.Append(OpInsert, types.NewInt64Datum(1)) })

	chk := b.Take()
	require.Equal(t, 0, b.Len())
	ops, rows := chk.Rows()
	require.Equal(t, []Op{OpInsert, OpUpdateDelete}, ops)
	require.True(t, rows[1][0].IsNull())
	require.Equal(t, "b", rows[1][1].GetString())
}

func TestChunk(t *testing.T) {
	chk := NewDummyChunk(5)
	require.Equal(t, 5, chk.Capacity())
	require.Equal(t, 5, chk.Cardinality())
	require.Equal(t, 0, chk.NumCols())

	chk, err := New([]Column{int64Column(1, 2, 3)}, NewBitmap([]bool{true, false, false}))
	require.NoError(t, err)
	require.Equal(t, 3, chk.Capacity())
	require.Equal(t, 1, chk.Cardinality())

	_, err = New([]Column{int64Column(1, 2, 3), int64Column(1)}, nil)
	require.True(t, ErrLengthMismatch.Equal(err))
	_, err = New([]Column{int64Column(1)}, NewBitmapWithLength(2, true))
	require.True(t, ErrLengthMismatch.Equal(err))

	chk, err = New(nil, NewBitmapWithLength(4, true))
	require.NoError(t, err)
	require.Equal(t, 4, chk.Capacity())
}
