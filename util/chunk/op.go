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
	"iter"
	"strconv"
)

// Op is the changelog operation of one row.
type Op byte

// Row operations. Insert and UpdateInsert apply positively; Delete and
// UpdateDelete retract. UpdateDelete is always followed by its
// UpdateInsert for the same key.
const (
	OpInsert Op = iota + 1
	OpDelete
	OpUpdateDelete
	OpUpdateInsert
)

// String implements fmt.Stringer interface.
func (op Op) String() string {
	switch op {
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	case OpUpdateDelete:
		return "U-"
	case OpUpdateInsert:
		return "U+"
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Valid reports whether op is one of the four row operations.
func (op Op) Valid() bool {
	return op >= OpInsert && op <= OpUpdateInsert
}

// IsRetraction reports whether op removes a previously applied row.
func (op Op) IsRetraction() bool {
	return op == OpDelete || op == OpUpdateDelete
}

// Sign returns 1 for Insert and UpdateInsert and -1 for Delete and
// UpdateDelete. It panics on an unknown op; batches are validated before
// their ops are applied.
func (op Op) Sign() int64 {
	switch op {
	case OpInsert, OpUpdateInsert:
		return 1
	case OpDelete, OpUpdateDelete:
		return -1
	}
	panic("unknown row op " + op.String())
}

// Ops is the operation column of a changelog batch.
type Ops []Op

// Iter yields (op, visible) for every row. Without a mask every row is
// visible. All mutations of aggregation state enumerate rows through Iter
// or VisibleRows so that the mask is never ignored.
func (ops Ops) Iter(vis *Bitmap) iter.Seq2[Op, bool] {
	return func(yield func(Op, bool) bool) {
		for i, op := range ops {
			if !yield(op, vis == nil || vis.IsSet(i)) {
				return
			}
		}
	}
}

// VisibleRows yields (row index, op) for visible rows only.
func (ops Ops) VisibleRows(vis *Bitmap) iter.Seq2[int, Op] {
	return func(yield func(int, Op) bool) {
		row := -1
		for op, visible := range ops.Iter(vis) {
			row++
			if !visible {
				continue
			}
			if !yield(row, op) {
				return
			}
		}
	}
}
