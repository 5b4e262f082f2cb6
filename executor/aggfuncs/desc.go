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
	"fmt"
	"strings"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
)

// AggKind is the closed set of streaming aggregate functions.
type AggKind int

// Aggregate kinds.
const (
	AggRowCount AggKind = iota + 1
	AggCount
	AggSum
	AggMin
	AggMax
)

var aggKindNames = map[AggKind]string{
	AggRowCount: "row_count",
	AggCount:    "count",
	AggSum:      "sum",
	AggMin:      "min",
	AggMax:      "max",
}

// String implements fmt.Stringer interface.
func (k AggKind) String() string {
	if s, ok := aggKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AggKind(%d)", int(k))
}

// numArgs returns the number of argument columns of k.
func (k AggKind) numArgs() int {
	if k == AggRowCount {
		return 0
	}
	return 1
}

var aggKindFromProto = map[streampb.AggCall_Type]AggKind{
	streampb.AggCall_ROW_COUNT: AggRowCount,
	streampb.AggCall_COUNT:     AggCount,
	streampb.AggCall_SUM:       AggSum,
	streampb.AggCall_MIN:       AggMin,
	streampb.AggCall_MAX:       AggMax,
}

// AggFuncDesc describes one aggregate call: its kind, the input columns
// feeding its arguments and the resolved types.
type AggFuncDesc struct {
	Kind       AggKind
	Args       []int
	ArgTypes   []types.DataType
	ReturnType types.DataType
}

// NewAggFuncDesc creates an AggFuncDesc and infers its return type.
func NewAggFuncDesc(kind AggKind, args []int, argTypes []types.DataType) (*AggFuncDesc, error) {
	if _, ok := aggKindNames[kind]; !ok {
		return nil, ErrInvalidAggCall.GenWithStackByArgs("unknown aggregate " + kind.String())
	}
	if len(args) != kind.numArgs() || len(argTypes) != len(args) {
		return nil, ErrInvalidAggCall.GenWithStackByArgs(
			fmt.Sprintf("%s takes %d arguments, got %d", kind, kind.numArgs(), len(args)))
	}
	retType, err := ReturnTypeOf(kind, argTypes)
	if err != nil {
		return nil, err
	}
	return &AggFuncDesc{Kind: kind, Args: args, ArgTypes: argTypes, ReturnType: retType}, nil
}

// ReturnTypeOf infers the return type of kind over argTypes.
//
//	row_count, count        -> Int64 NOT NULL
//	sum(Int16 | Int32)      -> Int64
//	sum(Int64 | Decimal)    -> Decimal
//	sum(Float32 | Float64)  -> the argument type
//	min, max                -> the argument type
func ReturnTypeOf(kind AggKind, argTypes []types.DataType) (types.DataType, error) {
	switch kind {
	case AggRowCount, AggCount:
		return types.NewInt64Type(false), nil
	}
	if len(argTypes) != 1 {
		return nil, ErrInvalidAggCall.GenWithStackByArgs(
			fmt.Sprintf("%s takes 1 argument, got %d", kind, len(argTypes)))
	}
	arg := argTypes[0]
	switch kind {
	case AggSum:
		switch arg.Kind() {
		case types.KindInt16, types.KindInt32:
			return types.NewInt64Type(true), nil
		case types.KindInt64:
			return types.NewDecimalType(true, 0, 0), nil
		case types.KindDecimal:
			dt := arg.(*types.DecimalType)
			return types.NewDecimalType(true, 0, dt.Scale()), nil
		case types.KindFloat32:
			return types.NewFloat32Type(true), nil
		case types.KindFloat64:
			return types.NewFloat64Type(true), nil
		}
	case AggMin, AggMax:
		return types.FromProto(withNullable(arg.ToProto()))
	}
	return nil, ErrUnsupportedAgg.GenWithStackByArgs(kind, arg)
}

func withNullable(pb *streampb.DataType) *streampb.DataType {
	pb.IsNullable = true
	return pb
}

// NewAggFuncDescFromProto resolves a wire aggregate call against the types
// of the input columns. A declared return type must agree with the
// inferred one.
func NewAggFuncDescFromProto(call *streampb.AggCall, inputTypes []types.DataType) (*AggFuncDesc, error) {
	kind, ok := aggKindFromProto[call.GetType()]
	if !ok {
		return nil, ErrInvalidAggCall.GenWithStackByArgs("unknown aggregate " + call.GetType().String())
	}
	args := make([]int, 0, len(call.GetArgs()))
	argTypes := make([]types.DataType, 0, len(call.GetArgs()))
	for _, arg := range call.GetArgs() {
		idx := int(arg.GetColumnIdx())
		if idx < 0 || idx >= len(inputTypes) {
			return nil, ErrInvalidAggCall.GenWithStackByArgs(
				fmt.Sprintf("argument column %d out of range, input has %d columns", idx, len(inputTypes)))
		}
		args = append(args, idx)
		argTypes = append(argTypes, inputTypes[idx])
	}
	desc, err := NewAggFuncDesc(kind, args, argTypes)
	if err != nil {
		return nil, err
	}
	if pb := call.GetReturnType(); pb != nil {
		declared, err := types.FromProto(pb)
		if err != nil {
			return nil, err
		}
		if declared.Kind() != desc.ReturnType.Kind() {
			return nil, ErrInvalidAggCall.GenWithStackByArgs(
				fmt.Sprintf("%s returns %s, declared %s", kind, desc.ReturnType, declared))
		}
	}
	return desc, nil
}

// String implements fmt.Stringer interface.
func (d *AggFuncDesc) String() string {
	args := make([]string, 0, len(d.Args))
	for _, a := range d.Args {
		args = append(args, fmt.Sprintf("$%d", a))
	}
	return d.Kind.String() + "(" + strings.Join(args, ", ") + ")"
}
