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
	"github.com/flowsql/flowsql/types"
)

// Build creates the state of desc, restored from checkpoint. A NULL
// checkpoint creates an empty state. A checkpoint that was not produced by
// ToDatum of the same kind of state panics.
func Build(desc *AggFuncDesc, checkpoint types.Datum) (StreamingAggState, error) {
	switch desc.Kind {
	case AggRowCount:
		return newRowCount(desc, checkpoint), nil
	case AggCount:
		return newCount(desc, checkpoint), nil
	case AggSum:
		return buildSum(desc, checkpoint)
	case AggMin, AggMax:
		return newMaxMin(desc, checkpoint), nil
	}
	return nil, ErrUnsupportedAgg.GenWithStackByArgs(desc.Kind, desc.ArgTypes)
}

func buildSum(desc *AggFuncDesc, checkpoint types.Datum) (StreamingAggState, error) {
	if len(desc.ArgTypes) != 1 {
		return nil, ErrMissingArgument.GenWithStackByArgs(desc.Kind, 1, len(desc.ArgTypes))
	}
	switch desc.ArgTypes[0].Kind() {
	case types.KindInt16, types.KindInt32:
		return newSum4Int(desc, checkpoint), nil
	case types.KindInt64, types.KindDecimal:
		return newSum4Decimal(desc, checkpoint), nil
	case types.KindFloat32, types.KindFloat64:
		return newSum4Float(desc, checkpoint), nil
	}
	return nil, ErrUnsupportedAgg.GenWithStackByArgs(desc.Kind, desc.ArgTypes[0])
}

// NewRowCountDesc returns the descriptor of a row count aggregate.
func NewRowCountDesc() *AggFuncDesc {
	return &AggFuncDesc{Kind: AggRowCount, ReturnType: types.NewInt64Type(false)}
}
