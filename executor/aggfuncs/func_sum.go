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
	"math"
	"unsafe"

	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
	"github.com/shopspring/decimal"
)

const (
	// DefSum4IntSize is the size of a sum4Int state.
	DefSum4IntSize = int64(unsafe.Sizeof(sum4Int{}))
	// DefSum4FloatSize is the size of a sum4Float state.
	DefSum4FloatSize = int64(unsafe.Sizeof(sum4Float{}))
	// DefSum4DecimalSize is the size of a sum4Decimal state without the
	// coefficient it points to.
	DefSum4DecimalSize = int64(unsafe.Sizeof(sum4Decimal{}))
)

// baseSum keeps the number of non-null values behind the sum. The output
// is NULL while it is zero.
type baseSum struct {
	baseAggState
	notNullRowCount int64
}

// restore splits a (sum, non-null count) checkpoint. ok is false for a
// NULL checkpoint.
func (s *baseSum) restore(checkpoint types.Datum) (sum types.Datum, ok bool) {
	if checkpoint.IsNull() {
		return types.Datum{}, false
	}
	fields := mustCheckpointStruct(AggSum, checkpoint, 2)
	if fields[0].Kind() != s.desc.ReturnType.Kind() || fields[1].Kind() != types.KindInt64 {
		panic(fmt.Sprintf("invalid %s checkpoint %s", AggSum, checkpoint))
	}
	s.notNullRowCount = fields[1].GetInt64()
	return fields[0], true
}

func (s *baseSum) checkpoint(sum types.Datum) types.Datum {
	return types.NewStructDatum(sum, types.NewInt64Datum(s.notNullRowCount))
}

func (s *baseSum) output(builder chunk.Builder, sum types.Datum) error {
	if s.notNullRowCount == 0 {
		sum = types.Datum{}
	}
	s.appendOutput(builder, sum)
	return nil
}

// foldPrimitive calls fn with every visible non-null value of col and the
// sign of its row operation.
func foldPrimitive[N types.Native](col *chunk.PrimitiveColumn[N], ops chunk.Ops, vis *chunk.Bitmap, fn func(v N, sign int64)) {
	for row, op := range ops.VisibleRows(vis) {
		if col.IsNull(row) {
			continue
		}
		fn(col.Value(row), op.Sign())
	}
}

func unexpectedColumn(col chunk.Column) error {
	return ErrMalformedBatch.GenWithStackByArgs(fmt.Sprintf("unexpected argument column %T", col))
}

// sum4Int sums Int16 and Int32 values into an Int64.
type sum4Int struct {
	baseSum
	sum int64
}

func newSum4Int(desc *AggFuncDesc, checkpoint types.Datum) *sum4Int {
	s := &sum4Int{baseSum: baseSum{baseAggState: baseAggState{desc: desc}}}
	if d, ok := s.restore(checkpoint); ok {
		s.sum = d.GetInt64()
	}
	return s
}

// ApplyBatch implements StreamingAggState.
func (s *sum4Int) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	var delta, cnt int64
	switch col := data[0].(type) {
	case *chunk.PrimitiveColumn[int16]:
		foldPrimitive(col, ops, vis, func(v int16, sign int64) {
			delta += sign * int64(v)
			cnt += sign
		})
	case *chunk.PrimitiveColumn[int32]:
		foldPrimitive(col, ops, vis, func(v int32, sign int64) {
			delta += sign * int64(v)
			cnt += sign
		})
	default:
		return unexpectedColumn(col)
	}
	s.sum += delta
	s.notNullRowCount += cnt
	return nil
}

// GetOutput implements StreamingAggState.
func (s *sum4Int) GetOutput(builder chunk.Builder) error {
	return s.output(builder, types.NewInt64Datum(s.sum))
}

// ToDatum implements StreamingAggState.
func (s *sum4Int) ToDatum() types.Datum {
	return s.checkpoint(types.NewInt64Datum(s.sum))
}

// MemoryUsage implements MemoryUsager.
func (*sum4Int) MemoryUsage() int64 {
	return DefSum4IntSize
}

// sum4Decimal sums Int64 and Decimal values into a Decimal, so Int64 sums
// never overflow.
type sum4Decimal struct {
	baseSum
	sum decimal.Decimal
}

func newSum4Decimal(desc *AggFuncDesc, checkpoint types.Datum) *sum4Decimal {
	s := &sum4Decimal{baseSum: baseSum{baseAggState: baseAggState{desc: desc}}, sum: decimal.Zero}
	if d, ok := s.restore(checkpoint); ok {
		s.sum = d.GetDecimal()
	}
	return s
}

// ApplyBatch implements StreamingAggState.
func (s *sum4Decimal) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	delta := decimal.Zero
	var cnt int64
	switch col := data[0].(type) {
	case *chunk.PrimitiveColumn[int64]:
		// Accumulate in int64 and spill to the decimal on overflow.
		var partial int64
		foldPrimitive(col, ops, vis, func(v int64, sign int64) {
			cnt += sign
			if sign < 0 {
				if v == math.MinInt64 {
					delta = delta.Sub(decimal.NewFromInt(v))
					return
				}
				v = -v
			}
			next := partial + v
			if (v > 0 && next < partial) || (v < 0 && next > partial) {
				delta = delta.Add(decimal.NewFromInt(partial))
				next = v
			}
			partial = next
		})
		delta = delta.Add(decimal.NewFromInt(partial))
	case *chunk.DecimalColumn:
		for row, op := range ops.VisibleRows(vis) {
			if col.IsNull(row) {
				continue
			}
			if op.IsRetraction() {
				delta = delta.Sub(col.Value(row))
			} else {
				delta = delta.Add(col.Value(row))
			}
			cnt += op.Sign()
		}
	default:
		return unexpectedColumn(col)
	}
	s.sum = s.sum.Add(delta)
	s.notNullRowCount += cnt
	return nil
}

// GetOutput implements StreamingAggState.
func (s *sum4Decimal) GetOutput(builder chunk.Builder) error {
	return s.output(builder, types.NewDecimalDatum(s.sum))
}

// ToDatum implements StreamingAggState.
func (s *sum4Decimal) ToDatum() types.Datum {
	return s.checkpoint(types.NewDecimalDatum(s.sum))
}

// MemoryUsage implements MemoryUsager.
func (s *sum4Decimal) MemoryUsage() int64 {
	return DefSum4DecimalSize + int64(len(s.sum.Coefficient().Bits()))*int64(unsafe.Sizeof(uint(0)))
}

// sum4Float sums Float32 or Float64 values. The accumulator is always a
// float64; Float32 sums are narrowed on output.
type sum4Float struct {
	baseSum
	sum float64
}

func newSum4Float(desc *AggFuncDesc, checkpoint types.Datum) *sum4Float {
	s := &sum4Float{baseSum: baseSum{baseAggState: baseAggState{desc: desc}}}
	if d, ok := s.restore(checkpoint); ok {
		s.sum = d.GetFloat64()
	}
	return s
}

// ApplyBatch implements StreamingAggState.
func (s *sum4Float) ApplyBatch(ops chunk.Ops, vis *chunk.Bitmap, data []chunk.Column) error {
	if err := s.validate(ops, vis, data); err != nil {
		return err
	}
	var (
		delta float64
		cnt   int64
	)
	switch col := data[0].(type) {
	case *chunk.PrimitiveColumn[float32]:
		foldPrimitive(col, ops, vis, func(v float32, sign int64) {
			delta += float64(sign) * float64(v)
			cnt += sign
		})
	case *chunk.PrimitiveColumn[float64]:
		foldPrimitive(col, ops, vis, func(v float64, sign int64) {
			delta += float64(sign) * v
			cnt += sign
		})
	default:
		return unexpectedColumn(col)
	}
	s.sum += delta
	s.notNullRowCount += cnt
	return nil
}

func (s *sum4Float) datum() types.Datum {
	if s.desc.ReturnType.Kind() == types.KindFloat32 {
		return types.NewFloat32Datum(float32(s.sum))
	}
	return types.NewFloat64Datum(s.sum)
}

// GetOutput implements StreamingAggState.
func (s *sum4Float) GetOutput(builder chunk.Builder) error {
	return s.output(builder, s.datum())
}

// ToDatum implements StreamingAggState.
func (s *sum4Float) ToDatum() types.Datum {
	return s.checkpoint(s.datum())
}

// MemoryUsage implements MemoryUsager.
func (*sum4Float) MemoryUsage() int64 {
	return DefSum4FloatSize
}
