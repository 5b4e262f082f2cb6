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
	"unsafe"

	"github.com/flowsql/flowsql/proto/streampb"
)

// Native is the set of native representations of numeric types.
type Native interface {
	int16 | int32 | int64 | float32 | float64
}

// NumericType is a primitive numeric type backed by the native
// representation N. Int16, Int32, Int64, Float32, Float64 and Date are all
// instances; adding a new one only needs a native type and a wire tag.
type NumericType[N Native] struct {
	kind     Kind
	nullable bool
}

// NewNumericType creates a numeric type of kind k stored as N.
func NewNumericType[N Native](k Kind, nullable bool) *NumericType[N] {
	return &NumericType[N]{kind: k, nullable: nullable}
}

// NewInt16Type creates an Int16 type.
func NewInt16Type(nullable bool) *NumericType[int16] {
	return NewNumericType[int16](KindInt16, nullable)
}

// NewInt32Type creates an Int32 type.
func NewInt32Type(nullable bool) *NumericType[int32] {
	return NewNumericType[int32](KindInt32, nullable)
}

// NewInt64Type creates an Int64 type.
func NewInt64Type(nullable bool) *NumericType[int64] {
	return NewNumericType[int64](KindInt64, nullable)
}

// NewFloat32Type creates a Float32 type.
func NewFloat32Type(nullable bool) *NumericType[float32] {
	return NewNumericType[float32](KindFloat32, nullable)
}

// NewFloat64Type creates a Float64 type.
func NewFloat64Type(nullable bool) *NumericType[float64] {
	return NewNumericType[float64](KindFloat64, nullable)
}

// NewDateType creates a Date type. Dates are days since 1970-01-01.
func NewDateType(nullable bool) *NumericType[int32] {
	return NewNumericType[int32](KindDate, nullable)
}

// Kind implements DataType.
func (t *NumericType[N]) Kind() Kind {
	return t.kind
}

// IsNullable implements DataType.
func (t *NumericType[N]) IsNullable() bool {
	return t.nullable
}

// DataSize implements DataType.
func (*NumericType[N]) DataSize() DataSize {
	var n N
	return FixedSize(int(unsafe.Sizeof(n)))
}

// ToProto implements DataType.
func (t *NumericType[N]) ToProto() *streampb.DataType {
	return &streampb.DataType{
		TypeName:   TypeNameOf(t.kind),
		IsNullable: t.nullable,
	}
}

// String implements fmt.Stringer interface.
func (t *NumericType[N]) String() string {
	return t.kind.String() + nullableSuffix(t.nullable)
}

// NumericTypeFromProto parses a numeric type of kind k, failing with
// ErrTypeMismatch when the wire tag is not the one of k.
func NumericTypeFromProto[N Native](k Kind, pb *streampb.DataType) (*NumericType[N], error) {
	if err := ensureTypeName(pb, TypeNameOf(k)); err != nil {
		return nil, err
	}
	return NewNumericType[N](k, pb.IsNullable), nil
}
