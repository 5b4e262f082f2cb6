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
	"context"
	"testing"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/pingcap/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHexExpr(t *testing.T) {
	node := &streampb.ExprNode{
		ExprType:   streampb.ExprNode_CONSTANT_VALUE,
		ReturnType: &streampb.DataType{TypeName: streampb.DataType_DECIMAL, Precision: 10, Scale: 2},
		Constant:   &streampb.ConstantValue{Body: []byte{0x01, 0xab}},
	}
	require.Equal(t, "{CONSTANT_VALUE return:DECIMAL(10,2) NOT NULL body:01ab}", HexExpr(node).String())

	node = &streampb.ExprNode{
		ExprType: streampb.ExprNode_INPUT_REF,
		ReturnType: &streampb.DataType{TypeName: streampb.DataType_STRUCT, IsNullable: true, FieldType: []*streampb.DataType{
			{TypeName: streampb.DataType_INT64, IsNullable: true},
			{TypeName: streampb.DataType_VARCHAR},
		}},
		InputRef: &streampb.InputRefExpr{ColumnIdx: 3},
	}
	require.Equal(t, "{INPUT_REF return:STRUCT<INT64,VARCHAR NOT NULL> column:3}", HexExpr(node).String())
	require.Equal(t, "<nil>", HexExpr(nil).String())
}

func TestInitLogger(t *testing.T) {
	cfg := NewLogConfig("warn", DefaultLogFormat, EmptyFileLogConfig, false)
	require.NoError(t, InitLogger(cfg))
	require.False(t, BgLogger().Core().Enabled(zap.InfoLevel))
	require.NoError(t, SetLevel("debug"))
	require.True(t, BgLogger().Core().Enabled(zap.DebugLevel))
	require.Error(t, SetLevel("not-a-level"))
	require.NoError(t, SetLevel(DefaultLogLevel))
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, log.L(), Logger(ctx))

	core, logs := observer.New(zap.InfoLevel)
	ctx = WithLogger(ctx, zap.New(core).With(zap.String(LogFieldCategory, "stream-agg")))
	Logger(ctx).Info("applied", zap.Int("rows", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "applied", entries[0].Message)
	require.Equal(t, map[string]any{LogFieldCategory: "stream-agg", "rows": int64(3)}, entries[0].ContextMap())
}
