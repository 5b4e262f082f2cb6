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
	"unsafe"

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
)

// DefRowCountSize is the size of a row count state.
const DefRowCountSize = int64(unsafe.Sizeof(rowCount{}))

// rowCount counts visible rows, +1 for Insert and UpdateInsert and -1 for
// Delete and UpdateDelete, regardless of their values. The count may go
// negative when retractions run ahead of their inserts.
type rowCount struct {
	baseAggState
	cnt int64
}

// newRowCount creates a row count state of desc restored from checkpoint.
// A NULL checkpoint starts from zero; any non-Int64 checkpoint panics.
func newRowCount(desc *AggFuncDesc, checkpoint types.Datum) *rowCount {
	return &rowCount{baseAggState: baseAggState{desc: desc}, cnt: mustInt64Checkpoint(AggRowCount, checkpoint)}
}

func mustInt64Checkpoint(kind AggKind, d types.Datum) int64 {
	switch d.Kind() {
	case types.KindNull:
		return 0
	case types.KindInt64:
		return d.GetInt64()
	}
	panic(fmt.Sprintf("invalid %s checkpoint %s of kind %s", kind, d, d.Kind()))
}

// ApplyBatch implements StreamingAggState.
func (s *rowCount) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	for op, visible := range ops.Iter(vis) {
		if visible {
			s.cnt += op.Sign()
		}
	}
	return nil
}

// GetOutput implements StreamingAggState. A count is always emitted, zero
// included.
func (s *rowCount) GetOutput(builder chunk.Builder) error {
	return appendInt64Output(builder, s.cnt)
}

func appendInt64Output(builder chunk.Builder, v int64) error {
	b, ok := builder.(*chunk.PrimitiveBuilder[int64])
	if !ok || b.DataType().Kind() != types.KindInt64 {
		panic(fmt.Sprintf("type mismatch: count cannot output to %s builder", builder.DataType()))
	}
	b.Append(v)
	return nil
}

// ToDatum implements StreamingAggState.
func (s *rowCount) ToDatum() types.Datum {
	return types.NewInt64Datum(s.cnt)
}

// Count returns the current row count.
func (s *rowCount) Count() int64 {
	return s.cnt
}

// MemoryUsage implements MemoryUsager.
func (*rowCount) MemoryUsage() int64 {
	return DefRowCountSize
}
