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

// Package streampb holds the wire schema shared by the planner and the
// streaming executors. The layout follows streampb.proto; messages are
// marshaled through the struct tags by github.com/gogo/protobuf.
package streampb

import (
	"github.com/gogo/protobuf/proto"
)

// DataType_TypeName is the wire tag of a data type kind.
type DataType_TypeName int32

// Type names.
const (
	DataType_TYPE_UNSPECIFIED DataType_TypeName = 0
	DataType_INT16            DataType_TypeName = 1
	DataType_INT32            DataType_TypeName = 2
	DataType_INT64            DataType_TypeName = 3
	DataType_FLOAT            DataType_TypeName = 4
	DataType_DOUBLE           DataType_TypeName = 5
	DataType_BOOLEAN          DataType_TypeName = 6
	DataType_VARCHAR          DataType_TypeName = 7
	DataType_DECIMAL          DataType_TypeName = 8
	DataType_DATE             DataType_TypeName = 9
	DataType_INTERVAL         DataType_TypeName = 10
	DataType_STRUCT           DataType_TypeName = 11
)

var DataType_TypeName_name = map[int32]string{
	0:  "TYPE_UNSPECIFIED",
	1:  "INT16",
	2:  "INT32",
	3:  "INT64",
	4:  "FLOAT",
	5:  "DOUBLE",
	6:  "BOOLEAN",
	7:  "VARCHAR",
	8:  "DECIMAL",
	9:  "DATE",
	10: "INTERVAL",
	11: "STRUCT",
}

var DataType_TypeName_value = map[string]int32{
	"TYPE_UNSPECIFIED": 0,
	"INT16":            1,
	"INT32":            2,
	"INT64":            3,
	"FLOAT":            4,
	"DOUBLE":           5,
	"BOOLEAN":          6,
	"VARCHAR":          7,
	"DECIMAL":          8,
	"DATE":             9,
	"INTERVAL":         10,
	"STRUCT":           11,
}

func (x DataType_TypeName) String() string {
	return proto.EnumName(DataType_TypeName_name, int32(x))
}

// DataType_IntervalType is the sub-unit of an interval type.
type DataType_IntervalType int32

// Interval sub-units.
const (
	DataType_INVALID          DataType_IntervalType = 0
	DataType_YEAR             DataType_IntervalType = 1
	DataType_MONTH            DataType_IntervalType = 2
	DataType_DAY              DataType_IntervalType = 3
	DataType_HOUR             DataType_IntervalType = 4
	DataType_MINUTE           DataType_IntervalType = 5
	DataType_SECOND           DataType_IntervalType = 6
	DataType_YEAR_TO_MONTH    DataType_IntervalType = 7
	DataType_DAY_TO_HOUR      DataType_IntervalType = 8
	DataType_DAY_TO_MINUTE    DataType_IntervalType = 9
	DataType_DAY_TO_SECOND    DataType_IntervalType = 10
	DataType_HOUR_TO_MINUTE   DataType_IntervalType = 11
	DataType_HOUR_TO_SECOND   DataType_IntervalType = 12
	DataType_MINUTE_TO_SECOND DataType_IntervalType = 13
)

var DataType_IntervalType_name = map[int32]string{
	0:  "INVALID",
	1:  "YEAR",
	2:  "MONTH",
	3:  "DAY",
	4:  "HOUR",
	5:  "MINUTE",
	6:  "SECOND",
	7:  "YEAR_TO_MONTH",
	8:  "DAY_TO_HOUR",
	9:  "DAY_TO_MINUTE",
	10: "DAY_TO_SECOND",
	11: "HOUR_TO_MINUTE",
	12: "HOUR_TO_SECOND",
	13: "MINUTE_TO_SECOND",
}

func (x DataType_IntervalType) String() string {
	return proto.EnumName(DataType_IntervalType_name, int32(x))
}

// DataType describes a column type on the wire.
type DataType struct {
	TypeName     DataType_TypeName     `protobuf:"varint,1,opt,name=type_name,json=typeName,proto3,enum=streampb.DataType_TypeName" json:"type_name,omitempty"`
	Precision    uint32                `protobuf:"varint,2,opt,name=precision,proto3" json:"precision,omitempty"`
	Scale        uint32                `protobuf:"varint,3,opt,name=scale,proto3" json:"scale,omitempty"`
	IsNullable   bool                  `protobuf:"varint,4,opt,name=is_nullable,json=isNullable,proto3" json:"is_nullable,omitempty"`
	IntervalType DataType_IntervalType `protobuf:"varint,5,opt,name=interval_type,json=intervalType,proto3,enum=streampb.DataType_IntervalType" json:"interval_type,omitempty"`
	FieldType    []*DataType           `protobuf:"bytes,6,rep,name=field_type,json=fieldType,proto3" json:"field_type,omitempty"`
}

func (m *DataType) Reset()         { *m = DataType{} }
func (m *DataType) String() string { return proto.CompactTextString(m) }
func (*DataType) ProtoMessage()    {}

// GetTypeName returns the type name, tolerating a nil receiver.
func (m *DataType) GetTypeName() DataType_TypeName {
	if m != nil {
		return m.TypeName
	}
	return DataType_TYPE_UNSPECIFIED
}

// GetFieldType returns the nested field types of a struct type.
func (m *DataType) GetFieldType() []*DataType {
	if m != nil {
		return m.FieldType
	}
	return nil
}

// ConstantValue carries the value-encoded body of a constant.
type ConstantValue struct {
	Body []byte `protobuf:"bytes,1,opt,name=body,proto3" json:"body,omitempty"`
}

func (m *ConstantValue) Reset()         { *m = ConstantValue{} }
func (m *ConstantValue) String() string { return proto.CompactTextString(m) }
func (*ConstantValue) ProtoMessage()    {}

// GetBody returns the encoded body.
func (m *ConstantValue) GetBody() []byte {
	if m != nil {
		return m.Body
	}
	return nil
}

// InputRefExpr refers to a column of the input chunk.
type InputRefExpr struct {
	ColumnIdx int32 `protobuf:"varint,1,opt,name=column_idx,json=columnIdx,proto3" json:"column_idx,omitempty"`
}

func (m *InputRefExpr) Reset()         { *m = InputRefExpr{} }
func (m *InputRefExpr) String() string { return proto.CompactTextString(m) }
func (*InputRefExpr) ProtoMessage()    {}

// GetColumnIdx returns the referenced column index.
func (m *InputRefExpr) GetColumnIdx() int32 {
	if m != nil {
		return m.ColumnIdx
	}
	return 0
}

// ExprNode_Type tags an expression node.
type ExprNode_Type int32

// Expression tags.
const (
	ExprNode_UNSPECIFIED    ExprNode_Type = 0
	ExprNode_INPUT_REF      ExprNode_Type = 1
	ExprNode_CONSTANT_VALUE ExprNode_Type = 2
	ExprNode_ADD            ExprNode_Type = 3
	ExprNode_SUBTRACT       ExprNode_Type = 4
	ExprNode_EQUAL          ExprNode_Type = 5
)

var ExprNode_Type_name = map[int32]string{
	0: "UNSPECIFIED",
	1: "INPUT_REF",
	2: "CONSTANT_VALUE",
	3: "ADD",
	4: "SUBTRACT",
	5: "EQUAL",
}

func (x ExprNode_Type) String() string {
	return proto.EnumName(ExprNode_Type_name, int32(x))
}

// ExprNode is an expression tree node.
type ExprNode struct {
	ExprType   ExprNode_Type  `protobuf:"varint,1,opt,name=expr_type,json=exprType,proto3,enum=streampb.ExprNode_Type" json:"expr_type,omitempty"`
	ReturnType *DataType      `protobuf:"bytes,3,opt,name=return_type,json=returnType,proto3" json:"return_type,omitempty"`
	InputRef   *InputRefExpr  `protobuf:"bytes,4,opt,name=input_ref,json=inputRef,proto3" json:"input_ref,omitempty"`
	Constant   *ConstantValue `protobuf:"bytes,5,opt,name=constant,proto3" json:"constant,omitempty"`
}

func (m *ExprNode) Reset()         { *m = ExprNode{} }
func (m *ExprNode) String() string { return proto.CompactTextString(m) }
func (*ExprNode) ProtoMessage()    {}

// GetExprType returns the expression tag.
func (m *ExprNode) GetExprType() ExprNode_Type {
	if m != nil {
		return m.ExprType
	}
	return ExprNode_UNSPECIFIED
}

// GetReturnType returns the declared return type.
func (m *ExprNode) GetReturnType() *DataType {
	if m != nil {
		return m.ReturnType
	}
	return nil
}

func (m *ExprNode) GetInputRef() *InputRefExpr {
	if m != nil {
		return m.InputRef
	}
	return nil
}

func (m *ExprNode) GetConstant() *ConstantValue {
	if m != nil {
		return m.Constant
	}
	return nil
}

// AggCall_Type tags an aggregate function.
type AggCall_Type int32

// Aggregate tags.
const (
	AggCall_UNSPECIFIED AggCall_Type = 0
	AggCall_ROW_COUNT   AggCall_Type = 1
	AggCall_COUNT       AggCall_Type = 2
	AggCall_SUM         AggCall_Type = 3
	AggCall_MIN         AggCall_Type = 4
	AggCall_MAX         AggCall_Type = 5
)

var AggCall_Type_name = map[int32]string{
	0: "UNSPECIFIED",
	1: "ROW_COUNT",
	2: "COUNT",
	3: "SUM",
	4: "MIN",
	5: "MAX",
}

func (x AggCall_Type) String() string {
	return proto.EnumName(AggCall_Type_name, int32(x))
}

// AggCall describes one aggregate call of a streaming aggregation.
type AggCall struct {
	Type       AggCall_Type    `protobuf:"varint,1,opt,name=type,proto3,enum=streampb.AggCall_Type" json:"type,omitempty"`
	Args       []*InputRefExpr `protobuf:"bytes,2,rep,name=args,proto3" json:"args,omitempty"`
	ReturnType *DataType       `protobuf:"bytes,3,opt,name=return_type,json=returnType,proto3" json:"return_type,omitempty"`
}

func (m *AggCall) Reset()         { *m = AggCall{} }
func (m *AggCall) String() string { return proto.CompactTextString(m) }
func (*AggCall) ProtoMessage()    {}

func (m *AggCall) GetType() AggCall_Type {
	if m != nil {
		return m.Type
	}
	return AggCall_UNSPECIFIED
}

func (m *AggCall) GetArgs() []*InputRefExpr {
	if m != nil {
		return m.Args
	}
	return nil
}

func (m *AggCall) GetReturnType() *DataType {
	if m != nil {
		return m.ReturnType
	}
	return nil
}
