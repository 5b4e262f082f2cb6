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
	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/codec"
	"github.com/flowsql/flowsql/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// BuildFromProto converts a wire expression into an Expression.
func BuildFromProto(node *streampb.ExprNode) (Expression, error) {
	if node == nil {
		return nil, ErrParseExpr.GenWithStackByArgs("nil expression node")
	}
	switch node.ExprType {
	case streampb.ExprNode_CONSTANT_VALUE:
		return NewLiteralFromProto(node)
	case streampb.ExprNode_INPUT_REF:
		return NewInputRefFromProto(node)
	}
	return nil, ErrUnsupportedExpr.GenWithStackByArgs(node.ExprType)
}

// BuildExprsFromProto converts a list of wire expressions.
func BuildExprsFromProto(nodes []*streampb.ExprNode) ([]Expression, error) {
	exprs := make([]Expression, 0, len(nodes))
	for _, node := range nodes {
		expr, err := BuildFromProto(node)
		if err != nil {
			return nil, errors.Trace(err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// NewLiteralFromProto converts a CONSTANT_VALUE node into a Literal. A node
// without a constant body is a NULL literal. The body is decoded as a value
// of the declared return type.
func NewLiteralFromProto(node *streampb.ExprNode) (*Literal, error) {
	if node.GetExprType() != streampb.ExprNode_CONSTANT_VALUE {
		return nil, ErrParseExpr.GenWithStackByArgs("expected CONSTANT_VALUE, got " + node.GetExprType().String())
	}
	tp, err := returnTypeFromProto(node)
	if err != nil {
		return nil, err
	}
	if node.Constant == nil {
		return NewNullLiteral(tp), nil
	}
	d, err := codec.DecodeValue(node.Constant.GetBody(), tp)
	if err != nil {
		logutil.BgLogger().Debug("undecodable constant", zap.Stringer("expr", logutil.HexExpr(node)), zap.Error(err))
		return nil, ErrParseExpr.GenWithStackByArgs(err.Error())
	}
	return NewLiteral(tp, d), nil
}

// NewInputRefFromProto converts an INPUT_REF node into an InputRef.
func NewInputRefFromProto(node *streampb.ExprNode) (*InputRef, error) {
	if node.GetExprType() != streampb.ExprNode_INPUT_REF {
		return nil, ErrParseExpr.GenWithStackByArgs("expected INPUT_REF, got " + node.GetExprType().String())
	}
	tp, err := returnTypeFromProto(node)
	if err != nil {
		return nil, err
	}
	if node.InputRef == nil {
		return nil, ErrParseExpr.GenWithStackByArgs("INPUT_REF without column index")
	}
	idx := node.InputRef.GetColumnIdx()
	if idx < 0 {
		return nil, ErrParseExpr.GenWithStackByArgs("negative column index")
	}
	return NewInputRef(int(idx), tp), nil
}

func returnTypeFromProto(node *streampb.ExprNode) (types.DataType, error) {
	tp, err := types.FromProto(node.GetReturnType())
	if err != nil {
		return nil, ErrParseExpr.GenWithStackByArgs(err.Error())
	}
	return tp, nil
}
