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
	"github.com/flowsql/flowsql/errno"
	"github.com/flowsql/flowsql/util/dbterror"
)

// Error instances.
var (
	// ErrMissingArgument is returned when a batch carries fewer argument
	// columns than the aggregate needs.
	ErrMissingArgument = dbterror.ClassExecutor.NewStd(errno.ErrMissingArgument)
	// ErrMalformedBatch is returned when a batch is not aligned or its
	// argument columns have the wrong type.
	ErrMalformedBatch = dbterror.ClassExecutor.NewStd(errno.ErrMalformedBatch)
	// ErrUnsupportedAgg is returned for aggregate and argument type pairs
	// without an implementation.
	ErrUnsupportedAgg = dbterror.ClassExecutor.NewStd(errno.ErrUnsupportedAgg)
	// ErrInvalidAggCall is returned for aggregate calls that cannot be
	// planned, such as a wrong number of arguments.
	ErrInvalidAggCall = dbterror.ClassExecutor.NewStd(errno.ErrInvalidAggCall)
)
