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
	"fmt"
	"sync"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/gogo/protobuf/proto"
	"github.com/pingcap/errors"
)

// DataType is the declared type of a column, a literal or an aggregate
// result. The kind never changes after construction.
type DataType interface {
	fmt.Stringer
	// Kind returns the kind of the type.
	Kind() Kind
	// IsNullable reports whether values of this type may be NULL.
	IsNullable() bool
	// DataSize returns the storage size classification of one value.
	DataSize() DataSize
	// ToProto serializes the type to the wire schema.
	ToProto() *streampb.DataType
}

// DataSize is either a fixed byte width or variable.
type DataSize struct {
	width int
}

// FixedSize returns a fixed DataSize of width bytes.
func FixedSize(width int) DataSize {
	return DataSize{width: width}
}

// VariableSize returns a variable DataSize.
func VariableSize() DataSize {
	return DataSize{width: -1}
}

// IsFixed reports whether the size is fixed.
func (s DataSize) IsFixed() bool {
	return s.width >= 0
}

// Width returns the fixed width, or -1 for a variable size.
func (s DataSize) Width() int {
	return s.width
}

// String implements fmt.Stringer interface.
func (s DataSize) String() string {
	if !s.IsFixed() {
		return "Variable"
	}
	return fmt.Sprintf("Fixed(%d)", s.width)
}

// Equal reports whether two types have the same kind, nullability and
// kind-specific attributes.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return proto.Equal(a.ToProto(), b.ToProto())
}

// TypeParser parses a wire type of one registered type name.
type TypeParser func(pb *streampb.DataType) (DataType, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[streampb.DataType_TypeName]TypeParser)
)

func init() {
	// Struct parsing recurses through FromProto, so the table is filled here
	// rather than in the registry initializer.
	registry[streampb.DataType_BOOLEAN] = parserOf(BooleanTypeFromProto)
	registry[streampb.DataType_INT16] = parserOf(numericParser[int16](KindInt16))
	registry[streampb.DataType_INT32] = parserOf(numericParser[int32](KindInt32))
	registry[streampb.DataType_INT64] = parserOf(numericParser[int64](KindInt64))
	registry[streampb.DataType_FLOAT] = parserOf(numericParser[float32](KindFloat32))
	registry[streampb.DataType_DOUBLE] = parserOf(numericParser[float64](KindFloat64))
	registry[streampb.DataType_DATE] = parserOf(numericParser[int32](KindDate))
	registry[streampb.DataType_DECIMAL] = parserOf(DecimalTypeFromProto)
	registry[streampb.DataType_VARCHAR] = parserOf(VarcharTypeFromProto)
	registry[streampb.DataType_INTERVAL] = parserOf(IntervalTypeFromProto)
	registry[streampb.DataType_STRUCT] = parserOf(StructTypeFromProto)
}

// parserOf erases the concrete type of a parser, keeping a failed parse from
// leaking a typed nil into the DataType interface.
func parserOf[T DataType](parse func(*streampb.DataType) (T, error)) TypeParser {
	return func(pb *streampb.DataType) (DataType, error) {
		tp, err := parse(pb)
		if err != nil {
			return nil, err
		}
		return tp, nil
	}
}

func numericParser[N Native](k Kind) func(*streampb.DataType) (*NumericType[N], error) {
	return func(pb *streampb.DataType) (*NumericType[N], error) {
		return NumericTypeFromProto[N](k, pb)
	}
}

// RegisterType registers the parser of a wire type name. It replaces any
// parser registered before for the same name.
func RegisterType(name streampb.DataType_TypeName, parser TypeParser) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = parser
}

// FromProto parses a wire type with the parser registered for its type name.
func FromProto(pb *streampb.DataType) (DataType, error) {
	if pb == nil {
		return nil, ErrUnknownTypeName.GenWithStackByArgs("<nil>")
	}
	registryMu.RLock()
	parser, ok := registry[pb.TypeName]
	registryMu.RUnlock()
	if !ok {
		return nil, ErrUnknownTypeName.GenWithStackByArgs(pb.TypeName)
	}
	tp, err := parser(pb)
	return tp, errors.Trace(err)
}

// ensureTypeName fails with ErrTypeMismatch when pb is not tagged expected.
func ensureTypeName(pb *streampb.DataType, expected streampb.DataType_TypeName) error {
	if pb.GetTypeName() != expected {
		return ErrTypeMismatch.GenWithStackByArgs(expected, pb.GetTypeName())
	}
	return nil
}

func nullableSuffix(nullable bool) string {
	if nullable {
		return ""
	}
	return " NOT NULL"
}
