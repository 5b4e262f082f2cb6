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

package chunk

import (
	"fmt"
	"strings"

	"github.com/flowsql/flowsql/types"
	"github.com/pingcap/errors"
)

// Chunk is a batch of columns without row operations, used as the input
// of expression evaluation.
type Chunk struct {
	columns    []Column
	visibility *Bitmap
	capacity   int
}

// New creates a Chunk over columns of equal length. vis may be nil. A
// chunk without columns takes its capacity from vis.
func New(columns []Column, vis *Bitmap) (*Chunk, error) {
	var capacity int
	switch {
	case len(columns) > 0:
		capacity = columns[0].Len()
	case vis != nil:
		capacity = vis.Len()
	}
	if err := checkColumns(columns, capacity); err != nil {
		return nil, errors.Trace(err)
	}
	if vis != nil && vis.Len() != capacity {
		return nil, ErrLengthMismatch.GenWithStackByArgs("visibility", vis.Len(), capacity)
	}
	return &Chunk{columns: columns, visibility: vis, capacity: capacity}, nil
}

// NewDummyChunk creates a Chunk with no columns and n rows.
func NewDummyChunk(n int) *Chunk {
	return &Chunk{capacity: n}
}

// Capacity returns the physical number of rows, invisible rows included.
func (c *Chunk) Capacity() int { return c.capacity }

// Cardinality returns the number of visible rows.
func (c *Chunk) Cardinality() int {
	if c.visibility == nil {
		return c.capacity
	}
	return c.visibility.CountOnes()
}

// NumCols returns the number of columns.
func (c *Chunk) NumCols() int { return len(c.columns) }

// Column returns column i.
func (c *Chunk) Column(i int) Column { return c.columns[i] }

// Columns returns all columns.
func (c *Chunk) Columns() []Column { return c.columns }

// Visibility returns the visibility mask, nil when every row is visible.
func (c *Chunk) Visibility() *Bitmap { return c.visibility }

func checkColumns(columns []Column, n int) error {
	for i, col := range columns {
		if col.Len() != n {
			return ErrLengthMismatch.GenWithStackByArgs(fmt.Sprintf("column %d", i), col.Len(), n)
		}
	}
	return nil
}

// StreamChunk is a changelog batch: one operation per row, typed columns
// of the same length and an optional visibility mask.
type StreamChunk struct {
	ops        Ops
	columns    []Column
	visibility *Bitmap
}

// NewStreamChunk creates a StreamChunk, failing with ErrLengthMismatch when
// a column or the mask does not have one entry per operation.
func NewStreamChunk(ops Ops, columns []Column, vis *Bitmap) (*StreamChunk, error) {
	if err := checkColumns(columns, len(ops)); err != nil {
		return nil, errors.Trace(err)
	}
	if vis != nil && vis.Len() != len(ops) {
		return nil, ErrLengthMismatch.GenWithStackByArgs("visibility", vis.Len(), len(ops))
	}
	return &StreamChunk{ops: ops, columns: columns, visibility: vis}, nil
}

// Ops returns the row operations.
func (c *StreamChunk) Ops() Ops { return c.ops }

// Columns returns all columns.
func (c *StreamChunk) Columns() []Column { return c.columns }

// Column returns column i.
func (c *StreamChunk) Column(i int) Column { return c.columns[i] }

// Visibility returns the visibility mask, nil when every row is visible.
func (c *StreamChunk) Visibility() *Bitmap { return c.visibility }

// Capacity returns the physical number of rows.
func (c *StreamChunk) Capacity() int { return len(c.ops) }

// Cardinality returns the number of visible rows.
func (c *StreamChunk) Cardinality() int {
	if c.visibility == nil {
		return len(c.ops)
	}
	return c.visibility.CountOnes()
}

// DataChunk returns the columns and mask of c as a Chunk.
func (c *StreamChunk) DataChunk() *Chunk {
	return &Chunk{columns: c.columns, visibility: c.visibility, capacity: len(c.ops)}
}

// Compact returns a StreamChunk holding only the visible rows and no mask.
// c is returned as is when it has no mask.
func (c *StreamChunk) Compact() *StreamChunk {
	if c.visibility == nil {
		return c
	}
	n := c.Cardinality()
	ops := make(Ops, 0, n)
	builders := make([]Builder, len(c.columns))
	for j, col := range c.columns {
		builders[j] = NewBuilder(col.DataType(), n)
	}
	for row, op := range c.ops.VisibleRows(c.visibility) {
		ops = append(ops, op)
		for j, col := range c.columns {
			builders[j].AppendDatum(col.GetDatum(row))
		}
	}
	columns := make([]Column, len(builders))
	for j, b := range builders {
		columns[j] = b.Finish()
	}
	return &StreamChunk{ops: ops, columns: columns}
}

// Rows returns the visible rows as datums with their operations.
func (c *StreamChunk) Rows() ([]Op, [][]types.Datum) {
	ops := make([]Op, 0, c.Cardinality())
	rows := make([][]types.Datum, 0, c.Cardinality())
	for row, op := range c.ops.VisibleRows(c.visibility) {
		datums := make([]types.Datum, len(c.columns))
		for j, col := range c.columns {
			datums[j] = col.GetDatum(row)
		}
		ops = append(ops, op)
		rows = append(rows, datums)
	}
	return ops, rows
}

// String renders the visible rows one per line, for tests and logs.
func (c *StreamChunk) String() string {
	var sb strings.Builder
	ops, rows := c.Rows()
	for i, row := range rows {
		sb.WriteString(ops[i].String())
		for _, d := range row {
			sb.WriteByte(' ')
			sb.WriteString(d.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StreamChunkBuilder accumulates rows of a changelog batch.
type StreamChunkBuilder struct {
	ops      Ops
	builders []Builder
}

// NewStreamChunkBuilder creates a StreamChunkBuilder for columns of tps.
func NewStreamChunkBuilder(tps []types.DataType, capacity int) *StreamChunkBuilder {
	builders := make([]Builder, len(tps))
	for i, tp := range tps {
		builders[i] = NewBuilder(tp, capacity)
	}
	return &StreamChunkBuilder{ops: make(Ops, 0, capacity), builders: builders}
}

// Append appends one row. It panics when the row width is wrong.
func (b *StreamChunkBuilder) Append(op Op, row ...types.Datum) {
	if len(row) != len(b.builders) {
		panic(fmt.Sprintf("row has %d datums, expected %d", len(row), len(b.builders)))
	}
	b.ops = append(b.ops, op)
	for i, d := range row {
		b.builders[i].AppendDatum(d)
	}
}

// Len returns the number of appended rows.
func (b *StreamChunkBuilder) Len() int { return len(b.ops) }

// Take returns the accumulated rows as a StreamChunk and resets the
// builder. It returns nil when no row was appended.
func (b *StreamChunkBuilder) Take() *StreamChunk {
	if len(b.ops) == 0 {
		return nil
	}
	columns := make([]Column, len(b.builders))
	for i, builder := range b.builders {
		columns[i] = builder.Finish()
	}
	chk := &StreamChunk{ops: b.ops, columns: columns}
	b.ops = make(Ops, 0, cap(b.ops))
	return chk
}
