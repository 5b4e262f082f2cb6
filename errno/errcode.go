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

// ErrCode is the numeric code of an error raised by the streaming core.
type ErrCode int

// Error codes of the streaming core.
const (
	ErrTypeMismatch      ErrCode = 8301
	ErrUnknownTypeName   ErrCode = 8302
	ErrInvalidEncoding   ErrCode = 8303
	ErrLengthMismatch    ErrCode = 8304
	ErrParseExpr         ErrCode = 8305
	ErrUnsupportedExpr   ErrCode = 8306
	ErrMissingArgument   ErrCode = 8307
	ErrMalformedBatch    ErrCode = 8308
	ErrUnsupportedAgg    ErrCode = 8309
	ErrInvalidConfig     ErrCode = 8310
	ErrInvalidAggCall    ErrCode = 8311
	ErrColumnIndex       ErrCode = 8312
	ErrInvalidCheckpoint ErrCode = 8313
)
