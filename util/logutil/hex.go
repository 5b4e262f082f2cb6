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

package logutil

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/flowsql/flowsql/proto/streampb"
)

// HexExpr returns a fmt.Stringer printing an expression node on one line,
// with a constant payload in hex.
func HexExpr(node *streampb.ExprNode) fmt.Stringer {
	return exprStringer{node}
}

type exprStringer struct {
	node *streampb.ExprNode
}

func (s exprStringer) String() string {
	if s.node == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "{%s", s.node.ExprType)
	if rt := s.node.ReturnType; rt != nil {
		b.WriteString(" return:")
		writeDataType(&b, rt)
	}
	if ref := s.node.InputRef; ref != nil {
		fmt.Fprintf(&b, " column:%d", ref.ColumnIdx)
	}
	if c := s.node.Constant; c != nil {
		fmt.Fprintf(&b, " body:%s", hex.EncodeToString(c.Body))
	}
	b.WriteString("}")
	return b.String()
}

func writeDataType(b *strings.Builder, tp *streampb.DataType) {
	b.WriteString(tp.TypeName.String())
	switch tp.TypeName {
	case streampb.DataType_DECIMAL:
		fmt.Fprintf(b, "(%d,%d)", tp.Precision, tp.Scale)
	case streampb.DataType_INTERVAL:
		fmt.Fprintf(b, "(%s)", tp.IntervalType)
	case streampb.DataType_STRUCT:
		b.WriteString("<")
		for i, f := range tp.FieldType {
			if i > 0 {
				b.WriteString(",")
			}
			writeDataType(b, f)
		}
		b.WriteString(">")
	}
	if !tp.IsNullable {
		b.WriteString(" NOT NULL")
	}
}
