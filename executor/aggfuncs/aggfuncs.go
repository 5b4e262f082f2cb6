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

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
)

// All the StreamingAggState implementations are listed here for navigation.
var (
	// All the StreamingAggState implementations for "ROW_COUNT" are listed here.
	_ StreamingAggState = (*rowCount)(nil)
	// All the StreamingAggState implementations for "COUNT" are listed here.
	_ StreamingAggState = (*count)(nil)
	// All the StreamingAggState implementations for "SUM" are listed here.
	_ StreamingAggState = (*sum4Int)(nil)
	_ StreamingAggState = (*sum4Decimal)(nil)
	_ StreamingAggState = (*sum4Float)(nil)
	// All the StreamingAggState implementations for "MAX" and "MIN" are listed here.
	_ StreamingAggState = (*maxMin)(nil)
)

// StreamingAggState is the incremental state of one aggregate for one
// group. A state is owned by a single goroutine.
type StreamingAggState interface {
	// ApplyBatch folds the visible rows of a changelog batch into the
	// state. Insert and UpdateInsert apply positively, Delete and
	// UpdateDelete retract. data holds the argument columns in order. The
	// batch is validated before any mutation, so an error leaves the state
	// untouched.
	ApplyBatch(ops chunk.Ops, visibility *chunk.Bitmap, data []chunk.Column) error

	// GetOutput appends the current value to builder. The builder must be
	// of the return type; any other builder is a planner bug and panics.
	GetOutput(builder chunk.Builder) error

	// ToDatum returns a checkpoint of the state. Build accepts it unchanged
	// to restore an equivalent state.
	ToDatum() types.Datum

	// NewBuilder returns an empty builder of the return type.
	NewBuilder() chunk.Builder
}

// MemoryUsager reports the approximate memory held by a state.
type MemoryUsager interface {
	MemoryUsage() int64
}

type baseAggState struct {
	desc *AggFuncDesc
}

// NewBuilder implements StreamingAggState.
func (s *baseAggState) NewBuilder() chunk.Builder {
	return chunk.NewBuilder(s.desc.ReturnType, 1)
}

// validate checks a batch before the state is mutated.
func (s *baseAggState) validate(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	return validateBatch(s.desc, ops, vis, data)
}

// appendOutput appends d to builder after checking the builder type.
func (s *baseAggState) appendOutput(builder chunk.Builder, d types.Datum) {
	checkBuilder(builder, s.desc.ReturnType)
	builder.AppendDatum(d)
}

func checkBuilder(builder chunk.Builder, tp types.DataType) {
	if builder.DataType().Kind() != tp.Kind() {
		panic(fmt.Sprintf("type mismatch: aggregate of %s cannot output to %s builder", tp, builder.DataType()))
	}
}

func validateBatch(desc *AggFuncDesc, ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if len(desc.Args) != len(desc.ArgTypes) {
		return ErrInvalidAggCall.GenWithStackByArgs(
			fmt.Sprintf("%s has %d arguments and %d argument types", desc.Kind, len(desc.Args), len(desc.ArgTypes)))
	}
	if vis != nil && vis.Len() != len(ops) {
		return ErrMalformedBatch.GenWithStackByArgs(
			fmt.Sprintf("visibility has %d rows, expected %d", vis.Len(), len(ops)))
	}
	for i, op := range ops {
		if !op.Valid() {
			return ErrMalformedBatch.GenWithStackByArgs(fmt.Sprintf("row %d has unknown op %s", i, op))
		}
	}
	if len(data) < len(desc.Args) {
		return ErrMissingArgument.GenWithStackByArgs(desc.Kind, len(desc.Args), len(data))
	}
	for i, argType := range desc.ArgTypes {
		col := data[i]
		if col == nil {
			return ErrMissingArgument.GenWithStackByArgs(desc.Kind, len(desc.Args), i)
		}
		if col.Len() != len(ops) {
			return ErrMalformedBatch.GenWithStackByArgs(
				fmt.Sprintf("argument %d has %d rows, expected %d", i, col.Len(), len(ops)))
		}
		if col.DataType().Kind() != argType.Kind() {
			return ErrMalformedBatch.GenWithStackByArgs(
				fmt.Sprintf("argument %d is %s, expected %s", i, col.DataType(), argType))
		}
	}
	return nil
}

// mustCheckpointStruct returns the fields of a struct checkpoint and
// panics on anything else.
func mustCheckpointStruct(kind AggKind, d types.Datum, numFields int) []types.Datum {
	fields := d.GetStruct()
	if d.Kind() != types.KindStruct || (numFields >= 0 && len(fields) != numFields) {
		panic(fmt.Sprintf("invalid %s checkpoint %s", kind, d))
	}
	return fields
}
