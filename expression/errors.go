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
	"github.com/flowsql/flowsql/errno"
	"github.com/flowsql/flowsql/util/dbterror"
)

// Error instances.
var (
	// ErrParseExpr is returned when a wire expression cannot be turned into
	// an expression of the kind asked for.
	ErrParseExpr = dbterror.ClassExpression.NewStd(errno.ErrParseExpr)
	// ErrUnsupportedExpr is returned for wire expression types that have no
	// evaluator.
	ErrUnsupportedExpr = dbterror.ClassExpression.NewStd(errno.ErrUnsupportedExpr)
	// ErrColumnIndex is returned when an input reference points past the
	// input columns.
	ErrColumnIndex = dbterror.ClassExpression.NewStd(errno.ErrColumnIndex)
)
