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
	"github.com/flowsql/flowsql/util/codec"
)

// Literal is a constant of a declared type. Its value may be NULL.
type Literal struct {
	retType types.DataType
	value   types.Datum
}

// NewLiteral creates a Literal. It panics when value does not match tp.
func NewLiteral(tp types.DataType, value types.Datum) *Literal {
	if !types.LiteralTypeMatch(tp, value) {
		panic(fmt.Sprintf("literal of type %s cannot hold %s datum %s", tp, value.Kind(), value))
	}
	return &Literal{retType: tp, value: value}
}

// NewNullLiteral creates a NULL Literal of type tp.
func NewNullLiteral(tp types.DataType) *Literal {
	return &Literal{retType: tp}
}

// Value returns the literal value.
func (l *Literal) Value() types.Datum { return l.value }

// ReturnType implements Expression.
func (l *Literal) ReturnType() types.DataType { return l.retType }

// Eval implements Expression. The value is repeated chk.Capacity() times.
func (l *Literal) Eval(_ context.Context, chk *chunk.Chunk) (chunk.Column, error) {
	n := chk.Capacity()
	b := chunk.NewBuilder(l.retType, n)
	for i := 0; i < n; i++ {
		b.AppendDatum(l.value)
	}
	return b.Finish(), nil
}

// EvalRow implements Expression.
func (l *Literal) EvalRow(context.Context, []types.Datum) (types.Datum, error) {
	return l.value, nil
}

// EvalConst implements ConstEvaluator.
func (l *Literal) EvalConst() (types.Datum, bool) {
	return l.value, true
}

// ToProto implements Expression. A NULL literal has no constant body.
func (l *Literal) ToProto() *streampb.ExprNode {
	node := &streampb.ExprNode{
		ExprType:   streampb.ExprNode_CONSTANT_VALUE,
		ReturnType: l.retType.ToProto(),
	}
	if !l.value.IsNull() {
		node.Constant = &streampb.ConstantValue{Body: codec.EncodeValue(nil, l.value)}
	}
	return node
}

// String implements fmt.Stringer interface.
func (l *Literal) String() string {
	return fmt.Sprintf("%s:%s", l.value, l.retType)
}
