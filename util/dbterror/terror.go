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

package dbterror

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowsql/flowsql/errno"
	"github.com/pingcap/errors"
)

// ErrClass represents a class of errors.
type ErrClass int

// Error classes.
const (
	ClassTypes ErrClass = iota + 1
	ClassChunk
	ClassCodec
	ClassExpression
	ClassExecutor
	ClassConfig
	// Add more as needed.
)

var errClassToDesc = map[ErrClass]string{
	ClassTypes:      "types",
	ClassChunk:      "chunk",
	ClassCodec:      "codec",
	ClassExpression: "expression",
	ClassExecutor:   "executor",
	ClassConfig:     "config",
}

// String implements fmt.Stringer interface.
func (ec ErrClass) String() string {
	if s, ok := errClassToDesc[ec]; ok {
		return s
	}
	return strconv.Itoa(int(ec))
}

// NewStdErr creates an error with a code and a message pattern. The RFC code
// text is "<class>:<code>", so two errors compare equal when both match.
func (ec ErrClass) NewStdErr(code errno.ErrCode, message string) *errors.Error {
	return errors.Normalize(message,
		errors.RFCCodeText(fmt.Sprintf("%s:%d", ec, code)),
		errors.MySQLErrorCode(int(code)),
	)
}

// NewStd calls NewStdErr with the registered message of code.
func (ec ErrClass) NewStd(code errno.ErrCode) *errors.Error {
	return ec.NewStdErr(code, errno.ErrMessage[code])
}

// EqualClass returns true if err is *errors.Error with the same class.
func (ec ErrClass) EqualClass(err error) bool {
	e := errors.Cause(err)
	if e == nil {
		return false
	}
	if te, ok := e.(*errors.Error); ok {
		return strings.HasPrefix(string(te.RFCCode()), ec.String()+":")
	}
	return false
}

// NotEqualClass returns true if err is not *errors.Error with the same class.
func (ec ErrClass) NotEqualClass(err error) bool {
	return !ec.EqualClass(err)
}
