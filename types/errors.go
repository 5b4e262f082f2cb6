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

package types

import (
	"github.com/flowsql/flowsql/errno"
	"github.com/flowsql/flowsql/util/dbterror"
)

// Error instances.
var (
	// ErrTypeMismatch is returned when a wire type name does not match the
	// expected kind.
	ErrTypeMismatch = dbterror.ClassTypes.NewStd(errno.ErrTypeMismatch)
	// ErrUnknownTypeName is returned when no parser is registered for a wire
	// type name.
	ErrUnknownTypeName = dbterror.ClassTypes.NewStd(errno.ErrUnknownTypeName)
)
