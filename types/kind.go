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
	"strconv"

	"github.com/flowsql/flowsql/proto/streampb"
)

// Kind is the tag shared by data types and datums.
type Kind byte

// Kinds of data types and datums. KindNull is only carried by NULL datums.
const (
	KindNull Kind = iota
	KindBoolean
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindDate
	KindVarchar
	KindInterval
	KindStruct
)

var kindNames = map[Kind]string{
	KindNull:     "Null",
	KindBoolean:  "Boolean",
	KindInt16:    "Int16",
	KindInt32:    "Int32",
	KindInt64:    "Int64",
	KindFloat32:  "Float32",
	KindFloat64:  "Float64",
	KindDecimal:  "Decimal",
	KindDate:     "Date",
	KindVarchar:  "Varchar",
	KindInterval: "Interval",
	KindStruct:   "Struct",
}

// String implements fmt.Stringer interface.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// kindToTypeName maps a kind to its wire tag.
var kindToTypeName = map[Kind]streampb.DataType_TypeName{
	KindBoolean:  streampb.DataType_BOOLEAN,
	KindInt16:    streampb.DataType_INT16,
	KindInt32:    streampb.DataType_INT32,
	KindInt64:    streampb.DataType_INT64,
	KindFloat32:  streampb.DataType_FLOAT,
	KindFloat64:  streampb.DataType_DOUBLE,
	KindDecimal:  streampb.DataType_DECIMAL,
	KindDate:     streampb.DataType_DATE,
	KindVarchar:  streampb.DataType_VARCHAR,
	KindInterval: streampb.DataType_INTERVAL,
	KindStruct:   streampb.DataType_STRUCT,
}

// TypeNameOf returns the wire tag of k.
func TypeNameOf(k Kind) streampb.DataType_TypeName {
	return kindToTypeName[k]
}
