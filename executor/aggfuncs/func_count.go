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
	"unsafe"

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
)

// DefCountSize is the size of a count state.
const DefCountSize = int64(unsafe.Sizeof(count{}))

// count is like rowCount but skips rows whose argument is NULL.
type count struct {
	baseAggState
	cnt int64
}

func newCount(desc *AggFuncDesc, checkpoint types.Datum) *count {
	return &count{baseAggState: baseAggState{desc: desc}, cnt: mustInt64Checkpoint(AggCount, checkpoint)}
}

// ApplyBatch implements StreamingAggState.
func (s *count) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	arg := data[0]
	for row, op := range ops.VisibleRows(vis) {
		if arg.IsNull(row) {
			continue
		}
		s.cnt += op.Sign()
	}
	return nil
}

// GetOutput implements StreamingAggState.
func (s *count) GetOutput(builder chunk.Builder) error {
	return appendInt64Output(builder, s.cnt)
}

// ToDatum implements StreamingAggState.
func (s *count) ToDatum() types.Datum {
	return types.NewInt64Datum(s.cnt)
}

// MemoryUsage implements MemoryUsager.
func (*count) MemoryUsage() int64 {
	return DefCountSize
}
