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

// StructTypeBuilder constructs a StructType field by field.
type StructTypeBuilder struct {
	nullable bool
	fields   []DataType
}

// NewStructTypeBuilder will allocate the builder on the heap.
func NewStructTypeBuilder() *StructTypeBuilder {
	return &StructTypeBuilder{}
}

// SetNullable sets nullability of the struct
func (b *StructTypeBuilder) SetNullable(nullable bool) *StructTypeBuilder {
	b.nullable = nullable
	return b
}

// AddField appends a field type
func (b *StructTypeBuilder) AddField(tp DataType) *StructTypeBuilder {
	b.fields = append(b.fields, tp)
	return b
}

// NumFields returns the number of fields added so far
func (b *StructTypeBuilder) NumFields() int {
	return len(b.fields)
}

// Build returns the struct type
func (b *StructTypeBuilder) Build() *StructType {
	fields := make([]DataType, len(b.fields))
	copy(fields, b.fields)
	return NewStructType(b.nullable, fields...)
}
