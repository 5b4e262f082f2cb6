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
	"fmt"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
)

// InputRef refers to one column of the input.
type InputRef struct {
	index   int
	retType types.DataType
}

// NewInputRef creates an InputRef to column index of type tp.
func NewInputRef(index int, tp types.DataType) *InputRef {
	return &InputRef{index: index, retType: tp}
}

// Index returns the referenced column index.
func (r *InputRef) Index() int { return r.index }

// ReturnType implements Expression.
func (r *InputRef) ReturnType() types.DataType { return r.retType }

// Eval implements Expression. The input column is returned as is.
func (r *InputRef) Eval(_ context.Context, chk *chunk.Chunk) (chunk.Column, error) {
	if r.index < 0 || r.index >= chk.NumCols() {
		return nil, ErrColumnIndex.GenWithStackByArgs(r.index, chk.NumCols())
	}
	col := chk.Column(r.index)
	if col.DataType().Kind() != r.retType.Kind() {
		return nil, types.ErrTypeMismatch.GenWithStackByArgs(r.retType, col.DataType())
	}
	return col, nil
}

// EvalRow implements Expression.
func (r *InputRef) EvalRow(_ context.Context, row []types.Datum) (types.Datum, error) {
	if r.index < 0 || r.index >= len(row) {
		return types.Datum{}, ErrColumnIndex.GenWithStackByArgs(r.index, len(row))
	}
	return row[r.index], nil
}

// EvalConst implements ConstEvaluator. An input reference is never
// constant.
func (*InputRef) EvalConst() (types.Datum, bool) {
	return types.Datum{}, false
}

// ToProto implements Expression.
func (r *InputRef) ToProto() *streampb.ExprNode {
	return &streampb.ExprNode{
		ExprType:   streampb.ExprNode_INPUT_REF,
		ReturnType: r.retType.ToProto(),
		InputRef:   &streampb.InputRefExpr{ColumnIdx: int32(r.index)},
	}
}

// String implements fmt.Stringer interface.
func (r *InputRef) String() string {
	return fmt.Sprintf("$%d", r.index)
}
