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

package expression

import (
	"context"
	"fmt"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/chunk"
)

// Expression represents a scalar expression evaluated over changelog
// batches.
type Expression interface {
	fmt.Stringer

	// ReturnType returns the declared type of the result.
	ReturnType() types.DataType

	// Eval evaluates the expression over every row of chk, invisible rows
	// included, and returns a column of chk.Capacity() values.
	Eval(ctx context.Context, chk *chunk.Chunk) (chunk.Column, error)

	// EvalRow evaluates the expression over one row.
	EvalRow(ctx context.Context, row []types.Datum) (types.Datum, error)

	// ToProto converts the expression to its wire form.
	ToProto() *streampb.ExprNode
}

// ConstEvaluator is implemented by expressions whose value does not depend
// on the input.
type ConstEvaluator interface {
	// EvalConst returns the value of the expression. ok is false when it
	// cannot be computed without input.
	EvalConst() (d types.Datum, ok bool)
}
