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

package types

import (
	"strconv"
	"strings"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/pingcap/errors"
)

// BooleanType is the type of boolean values.
type BooleanType struct {
	nullable bool
}

// NewBooleanType creates a BooleanType.
func NewBooleanType(nullable bool) *BooleanType {
	return &BooleanType{nullable: nullable}
}

// Kind implements DataType.
func (*BooleanType) Kind() Kind { return KindBoolean }

// IsNullable implements DataType.
func (t *BooleanType) IsNullable() bool { return t.nullable }

// DataSize implements DataType.
func (*BooleanType) DataSize() DataSize { return FixedSize(1) }

// ToProto implements DataType.
func (t *BooleanType) ToProto() *streampb.DataType {
	return &streampb.DataType{TypeName: streampb.DataType_BOOLEAN, IsNullable: t.nullable}
}

func (t *BooleanType) String() string { return "Boolean" + nullableSuffix(t.nullable) }

// BooleanTypeFromProto parses a BooleanType.
func BooleanTypeFromProto(pb *streampb.DataType) (*BooleanType, error) {
	if err := ensureTypeName(pb, streampb.DataType_BOOLEAN); err != nil {
		return nil, err
	}
	return NewBooleanType(pb.IsNullable), nil
}

// DecimalType is an exact numeric type. A zero precision means unbounded.
type DecimalType struct {
	nullable  bool
	precision uint32
	scale     uint32
}

// NewDecimalType creates a DecimalType.
func NewDecimalType(nullable bool, precision, scale uint32) *DecimalType {
	return &DecimalType{nullable: nullable, precision: precision, scale: scale}
}

// Kind implements DataType.
func (*DecimalType) Kind() Kind { return KindDecimal }

// IsNullable implements DataType.
func (t *DecimalType) IsNullable() bool { return t.nullable }

// DataSize implements DataType.
func (*DecimalType) DataSize() DataSize { return VariableSize() }

// Precision returns the declared precision.
func (t *DecimalType) Precision() uint32 { return t.precision }

// Scale returns the declared scale.
func (t *DecimalType) Scale() uint32 { return t.scale }

// ToProto implements DataType.
func (t *DecimalType) ToProto() *streampb.DataType {
	return &streampb.DataType{
		TypeName:   streampb.DataType_DECIMAL,
		IsNullable: t.nullable,
		Precision:  t.precision,
		Scale:      t.scale,
	}
}

func (t *DecimalType) String() string {
	if t.precision == 0 {
		return "Decimal" + nullableSuffix(t.nullable)
	}
	return "Decimal(" + itoa(t.precision) + "," + itoa(t.scale) + ")" + nullableSuffix(t.nullable)
}

// DecimalTypeFromProto parses a DecimalType.
func DecimalTypeFromProto(pb *streampb.DataType) (*DecimalType, error) {
	if err := ensureTypeName(pb, streampb.DataType_DECIMAL); err != nil {
		return nil, err
	}
	return NewDecimalType(pb.IsNullable, pb.Precision, pb.Scale), nil
}

// VarcharType is the type of UTF-8 strings.
type VarcharType struct {
	nullable bool
}

// NewVarcharType creates a VarcharType.
func NewVarcharType(nullable bool) *VarcharType {
	return &VarcharType{nullable: nullable}
}

// Kind implements DataType.
func (*VarcharType) Kind() Kind { return KindVarchar }

// IsNullable implements DataType.
func (t *VarcharType) IsNullable() bool { return t.nullable }

// DataSize implements DataType.
func (*VarcharType) DataSize() DataSize { return VariableSize() }

// ToProto implements DataType.
func (t *VarcharType) ToProto() *streampb.DataType {
	return &streampb.DataType{TypeName: streampb.DataType_VARCHAR, IsNullable: t.nullable}
}

func (t *VarcharType) String() string { return "Varchar" + nullableSuffix(t.nullable) }

// VarcharTypeFromProto parses a VarcharType.
func VarcharTypeFromProto(pb *streampb.DataType) (*VarcharType, error) {
	if err := ensureTypeName(pb, streampb.DataType_VARCHAR); err != nil {
		return nil, err
	}
	return NewVarcharType(pb.IsNullable), nil
}

// IntervalType is the type of intervals. The unit only affects parsing and
// display; values are always stored as months, days and milliseconds.
type IntervalType struct {
	nullable bool
	unit     streampb.DataType_IntervalType
}

// NewIntervalType creates an IntervalType.
func NewIntervalType(nullable bool, unit streampb.DataType_IntervalType) *IntervalType {
	return &IntervalType{nullable: nullable, unit: unit}
}

// Kind implements DataType.
func (*IntervalType) Kind() Kind { return KindInterval }

// IsNullable implements DataType.
func (t *IntervalType) IsNullable() bool { return t.nullable }

// DataSize implements DataType.
func (*IntervalType) DataSize() DataSize { return FixedSize(16) }

// Unit returns the interval sub-unit.
func (t *IntervalType) Unit() streampb.DataType_IntervalType { return t.unit }

// ToProto implements DataType.
func (t *IntervalType) ToProto() *streampb.DataType {
	return &streampb.DataType{
		TypeName:     streampb.DataType_INTERVAL,
		IsNullable:   t.nullable,
		IntervalType: t.unit,
	}
}

func (t *IntervalType) String() string {
	return "Interval " + t.unit.String() + nullableSuffix(t.nullable)
}

// IntervalTypeFromProto parses an IntervalType.
func IntervalTypeFromProto(pb *streampb.DataType) (*IntervalType, error) {
	if err := ensureTypeName(pb, streampb.DataType_INTERVAL); err != nil {
		return nil, err
	}
	return NewIntervalType(pb.IsNullable, pb.IntervalType), nil
}

// StructType is a composite type with ordered fields.
type StructType struct {
	nullable bool
	fields   []DataType
}

// NewStructType creates a StructType.
func NewStructType(nullable bool, fields ...DataType) *StructType {
	return &StructType{nullable: nullable, fields: fields}
}

// Kind implements DataType.
func (*StructType) Kind() Kind { return KindStruct }

// IsNullable implements DataType.
func (t *StructType) IsNullable() bool { return t.nullable }

// DataSize implements DataType.
func (*StructType) DataSize() DataSize { return VariableSize() }

// Fields returns the field types.
func (t *StructType) Fields() []DataType { return t.fields }

// ToProto implements DataType.
func (t *StructType) ToProto() *streampb.DataType {
	pb := &streampb.DataType{
		TypeName:   streampb.DataType_STRUCT,
		IsNullable: t.nullable,
		FieldType:  make([]*streampb.DataType, 0, len(t.fields)),
	}
	for _, f := range t.fields {
		pb.FieldType = append(pb.FieldType, f.ToProto())
	}
	return pb
}

func (t *StructType) String() string {
	names := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		names = append(names, f.String())
	}
	return "Struct<" + strings.Join(names, ", ") + ">" + nullableSuffix(t.nullable)
}

// StructTypeFromProto parses a StructType and its field types.
func StructTypeFromProto(pb *streampb.DataType) (*StructType, error) {
	if err := ensureTypeName(pb, streampb.DataType_STRUCT); err != nil {
		return nil, err
	}
	fields := make([]DataType, 0, len(pb.FieldType))
	for _, f := range pb.FieldType {
		ft, err := FromProto(f)
		if err != nil {
			return nil, errors.Trace(err)
		}
		fields = append(fields, ft)
	}
	return NewStructType(pb.IsNullable, fields...), nil
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
