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
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/logutil"
	"go.uber.org/zap"
)

// FoldConstant replaces an expression whose value does not depend on the
// input with a Literal of the same type.
func FoldConstant(expr Expression) Expression {
	if lit, ok := expr.(*Literal); ok {
		return lit
	}
	ce, ok := expr.(ConstEvaluator)
	if !ok {
		return expr
	}
	value, ok := ce.EvalConst()
	if !ok {
		return expr
	}
	if !types.LiteralTypeMatch(expr.ReturnType(), value) {
		logutil.BgLogger().Warn("constant folding produced a value of the wrong type",
			zap.Stringer("expr", expr), zap.Stringer("value", value))
		return expr
	}
	return NewLiteral(expr.ReturnType(), value)
}
