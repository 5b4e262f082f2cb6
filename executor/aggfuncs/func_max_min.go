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
	"github.com/google/btree"
)

const (
	btreeDegree = 16
	// DefMaxMinEntrySize is the size of one distinct value held by a
	// maxMin state, not counting variable length payloads.
	DefMaxMinEntrySize = int64(unsafe.Sizeof(maxMinEntry{}))
)

// maxMinEntry is one distinct value and its multiplicity.
type maxMinEntry struct {
	value types.Datum
	cnt   int64
}

func lessEntry(a, b maxMinEntry) bool {
	return a.value.Compare(b.value) < 0
}

// maxMin keeps every live argument value with its multiplicity, so a
// retraction of the current extreme exposes the next one. A retraction
// without a matching insert leaves a negative multiplicity that a later
// insert cancels; such values are never the output.
type maxMin struct {
	baseAggState
	isMax  bool
	values *btree.BTreeG[maxMinEntry]
}

func newMaxMin(desc *AggFuncDesc, checkpoint types.Datum) *maxMin {
	s := &maxMin{
		baseAggState: baseAggState{desc: desc},
		isMax:        desc.Kind == AggMax,
		values:       btree.NewG(btreeDegree, lessEntry),
	}
	if checkpoint.IsNull() {
		return s
	}
	for _, f := range mustCheckpointStruct(desc.Kind, checkpoint, -1) {
		pair := mustCheckpointStruct(desc.Kind, f, 2)
		if pair[1].Kind() != types.KindInt64 || pair[0].IsNull() || !types.LiteralTypeMatch(desc.ReturnType, pair[0]) {
			panic(fmt.Sprintf("invalid %s checkpoint entry %s", desc.Kind, f))
		}
		s.values.ReplaceOrInsert(maxMinEntry{value: pair[0], cnt: pair[1].GetInt64()})
	}
	return s
}

// ApplyBatch implements StreamingAggState.
func (s *maxMin) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	arg := data[0]
	for row, op := range ops.VisibleRows(vis) {
		if arg.IsNull(row) {
			continue
		}
		s.add(arg.GetDatum(row), op.Sign())
	}
	return nil
}

func (s *maxMin) add(v types.Datum, delta int64) {
	entry, ok := s.values.Get(maxMinEntry{value: v})
	if !ok {
		entry = maxMinEntry{value: v}
	}
	entry.cnt += delta
	if entry.cnt == 0 {
		s.values.Delete(entry)
		return
	}
	s.values.ReplaceOrInsert(entry)
}

// extreme returns the smallest (or largest) value with a positive
// multiplicity, or NULL when there is none.
func (s *maxMin) extreme() types.Datum {
	var res types.Datum
	visit := func(e maxMinEntry) bool {
		if e.cnt > 0 {
			res = e.value
			return false
		}
		return true
	}
	if s.isMax {
		s.values.Descend(visit)
	} else {
		s.values.Ascend(visit)
	}
	return res
}

// GetOutput implements StreamingAggState.
func (s *maxMin) GetOutput(builder chunk.Builder) error {
	s.appendOutput(builder, s.extreme())
	return nil
}

// ToDatum implements StreamingAggState. The checkpoint is a struct of
// (value, multiplicity) structs in ascending value order.
func (s *maxMin) ToDatum() types.Datum {
	entries := make([]types.Datum, 0, s.values.Len())
	s.values.Ascend(func(e maxMinEntry) bool {
		entries = append(entries, types.NewStructDatum(e.value, types.NewInt64Datum(e.cnt)))
		return true
	})
	return types.NewStructDatum(entries...)
}

// MemoryUsage implements MemoryUsager.
func (s *maxMin) MemoryUsage() int64 {
	size := int64(unsafe.Sizeof(*s))
	s.values.Ascend(func(e maxMinEntry) bool {
		size += DefMaxMinEntrySize + int64(len(e.value.GetString()))
		return true
	})
	return size
}
