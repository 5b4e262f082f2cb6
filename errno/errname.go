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

package errno

// ErrMessage maps an error code to its message pattern.
var ErrMessage = map[ErrCode]string{
	ErrTypeMismatch:      "type mismatch: expected %s, got %s",
	ErrUnknownTypeName:   "unknown type name %s",
	ErrInvalidEncoding:   "invalid value encoding: %s",
	ErrLengthMismatch:    "length mismatch: %s has %d rows, expected %d",
	ErrParseExpr:         "cannot parse expression: %s",
	ErrUnsupportedExpr:   "unsupported expression type %s",
	ErrMissingArgument:   "aggregate %s expects %d argument columns, got %d",
	ErrMalformedBatch:    "malformed batch: %s",
	ErrUnsupportedAgg:    "unsupported aggregate %s(%s)",
	ErrInvalidConfig:     "invalid config: %s",
	ErrInvalidAggCall:    "invalid aggregate call: %s",
	ErrColumnIndex:       "column index %d out of range, input has %d columns",
	ErrInvalidCheckpoint: "invalid checkpoint: %s",
}
