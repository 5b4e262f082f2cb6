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

package expression

import (
	"context"
	"testing"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/stretchr/testify/require"
)

func TestInputRef(t *testing.T) {
	ctx := context.Background()
	col := chunk.BuildColumn(types.NewInt64Type(true), types.NewInt64Datum(4), types.NewNullDatum())
	chk, err := chunk.New([]chunk.Column{col}, nil)
	require.NoError(t, err)

	ref := NewInputRef(0, types.NewInt64Type(true))
	got, err := ref.Eval(ctx, chk)
	require.NoError(t, err)
	require.Same(t, col, got)

	_, err = NewInputRef(1, types.NewInt64Type(true)).Eval(ctx, chk)
	require.True(t, ErrColumnIndex.Equal(err))
	_, err = NewInputRef(0, types.NewInt32Type(true)).Eval(ctx, chk)
	require.True(t, types.ErrTypeMismatch.Equal(err))

	d, err := ref.EvalRow(ctx, []types.Datum{types.NewInt64Datum(9)})
	require.NoError(t, err)
	require.Equal(t, int64(9), d.GetInt64())
	_, err = ref.EvalRow(ctx, nil)
	require.True(t, ErrColumnIndex.Equal(err))

	_, ok := ref.EvalConst()
	require.False(t, ok)
	require.Equal(t, "$0", ref.String())
}

func TestBuildFromProto(t *testing.T) {
	exprs := []Expression{
		NewInputRef(2, types.NewVarcharType(true)),
		NewLiteral(types.NewInt64Type(false), types.NewInt64Datum(3)),
	}
	built, err := BuildExprsFromProto(ExpressionsToPB(exprs))
	require.NoError(t, err)
	require.Len(t, built, 2)
	require.Equal(t, 2, built[0].(*InputRef).Index())
	require.Equal(t, int64(3), built[1].(*Literal).Value().GetInt64())

	_, err = BuildFromProto(&streampb.ExprNode{ExprType: streampb.ExprNode_ADD})
	require.True(t, ErrUnsupportedExpr.Equal(err))
	_, err = BuildFromProto(nil)
	require.True(t, ErrParseExpr.Equal(err))

	_, err = NewInputRefFromProto(&streampb.ExprNode{
		ExprType:   streampb.ExprNode_INPUT_REF,
		ReturnType: types.NewInt64Type(true).ToProto(),
	})
	require.True(t, ErrParseExpr.Equal(err))
	_, err = NewInputRefFromProto(&streampb.ExprNode{
		ExprType:   streampb.ExprNode_INPUT_REF,
		ReturnType: types.NewInt64Type(true).ToProto(),
		InputRef:   &streampb.InputRefExpr{ColumnIdx: -1},
	})
	require.True(t, ErrParseExpr.Equal(err))
}

func TestFoldConstant(t *testing.T) {
	lit := NewLiteral(types.NewInt32Type(true), types.NewInt32Datum(1))
	require.Same(t, lit, FoldConstant(lit))

	ref := NewInputRef(0, types.NewInt32Type(true))
	require.Same(t, ref, FoldConstant(ref))

	folded := FoldConstant(constExpr{Literal: lit})
	require.IsType(t, &Literal{}, folded)
	require.Equal(t, int32(1), folded.(*Literal).Value().GetInt32())
}

// constExpr is a non-literal expression with a constant value.
type constExpr struct {
	*Literal
}
