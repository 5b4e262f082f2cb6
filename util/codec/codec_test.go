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

package codec

import (
	"math"
	"testing"

	"github.com/flowsql/flowsql/proto/streampb"
	"github.com/flowsql/flowsql/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	st := types.NewStructType(true, types.NewInt32Type(true), types.NewVarcharType(true))
	cases := []struct {
		tp types.DataType
		d  types.Datum
	}{
		{types.NewBooleanType(true), types.NewBoolDatum(true)},
		{types.NewInt16Type(true), types.NewInt16Datum(math.MinInt16)},
		{types.NewInt32Type(true), types.NewInt32Datum(1)},
		{types.NewInt64Type(true), types.NewInt64Datum(math.MaxInt64)},
		{types.NewFloat32Type(true), types.NewFloat32Datum(-1.5)},
		{types.NewFloat64Type(true), types.NewFloat64Datum(3.25)},
		{types.NewDateType(true), types.NewDateDatum(-10)},
		{types.NewDecimalType(true, 0, 0), types.NewDecimalDatum(decimal.RequireFromString("-12345678901234567890.0125"))},
		{types.NewDecimalType(true, 0, 0), types.NewDecimalDatum(decimal.Zero)},
		{types.NewVarcharType(true), types.NewVarcharDatum("héllo")},
		{types.NewVarcharType(true), types.NewVarcharDatum("")},
		{types.NewIntervalType(true, streampb.DataType_DAY_TO_SECOND), types.NewIntervalDatum(types.NewInterval(-3, 4, 5000))},
		{st, types.NewStructDatum(types.NewInt32Datum(7), types.NewNullDatum())},
		{types.NewInt32Type(true), types.NewNullDatum()},
	}
	for _, c := range cases {
		b := EncodeValue(nil, c.d)
		d, err := DecodeValue(b, c.tp)
		require.NoError(t, err, c.tp.String())
		require.Equal(t, c.d.Kind(), d.Kind())
		require.True(t, c.d.Equal(d), "%s != %s", c.d, d)
	}
}

func TestDecodeFlagMismatch(t *testing.T) {
	b := EncodeValue(nil, types.NewVarcharDatum("1"))
	_, err := DecodeValue(b, types.NewInt32Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b = EncodeValue(nil, types.NewInt32Datum(1))
	_, err = DecodeValue(b, types.NewFloat64Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))
}

func TestDecodeRange(t *testing.T) {
	b := EncodeValue(nil, types.NewInt64Datum(math.MaxInt16+1))
	_, err := DecodeValue(b, types.NewInt16Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b = EncodeValue(nil, types.NewInt64Datum(2))
	_, err = DecodeValue(b, types.NewBooleanType(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b = EncodeValue(nil, types.NewInt64Datum(math.MinInt32))
	d, err := DecodeValue(b, types.NewInt32Type(true))
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), d.GetInt32())
}

func TestDecodeMalformed(t *testing.T) {
	_, err := DecodeValue(nil, types.NewInt32Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b := EncodeValue(nil, types.NewInt32Datum(1))
	_, err = DecodeValue(append(b, 0), types.NewInt32Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b = EncodeValue(nil, types.NewVarcharDatum("abcdef"))
	_, err = DecodeValue(b[:len(b)-2], types.NewVarcharType(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	b = EncodeValue(nil, types.NewFloat64Datum(1))
	_, err = DecodeValue(b[:4], types.NewFloat64Type(true))
	require.True(t, ErrInvalidEncoding.Equal(err))

	st := types.NewStructType(true, types.NewInt32Type(true))
	b = EncodeValue(nil, types.NewStructDatum(types.NewInt32Datum(1), types.NewInt32Datum(2)))
	_, err = DecodeValue(b, st)
	require.True(t, ErrInvalidEncoding.Equal(err))
}

func TestEncodeKey(t *testing.T) {
	tps := []types.DataType{types.NewDecimalType(true, 0, 0), types.NewFloat64Type(true), types.NewVarcharType(true)}

	a := EncodeKey(nil,
		types.NewDecimalDatum(decimal.RequireFromString("1.10")),
		types.NewFloat64Datum(math.Copysign(0, -1)),
		types.NewVarcharDatum("x"))
	b := EncodeKey(nil,
		types.NewDecimalDatum(decimal.RequireFromString("1.1")),
		types.NewFloat64Datum(0),
		types.NewVarcharDatum("x"))
	require.Equal(t, a, b)

	datums, err := DecodeKey(a, tps)
	require.NoError(t, err)
	require.Len(t, datums, 3)
	require.Equal(t, "1.1", datums[0].String())
	require.Equal(t, "x", datums[2].GetString())

	// Prefix-free: ("ab", "c") and ("a", "bc") are distinct keys.
	require.NotEqual(t,
		EncodeKey(nil, types.NewVarcharDatum("ab"), types.NewVarcharDatum("c")),
		EncodeKey(nil, types.NewVarcharDatum("a"), types.NewVarcharDatum("bc")))

	_, err = DecodeKey(a, tps[:2])
	require.True(t, ErrInvalidEncoding.Equal(err))
}

func TestFloatOrder(t *testing.T) {
	values := []float64{math.Inf(-1), -2.5, -0.1, 0, 0.1, 3, math.Inf(1)}
	var prev []byte
	for _, v := range values {
		b := EncodeFloat(nil, v)
		if prev != nil {
			require.Less(t, string(prev), string(b))
		}
		_, got, err := DecodeFloat(b)
		require.NoError(t, err)
		require.Equal(t, v, got)
		prev = b
	}
}

func TestTrimDecimal(t *testing.T) {
	require.Equal(t, "12", trimDecimal(decimal.RequireFromString("12.000")).String())
	require.Equal(t, int32(2), trimDecimal(decimal.RequireFromString("1200")).Exponent())
	require.True(t, trimDecimal(decimal.RequireFromString("0.00")).IsZero())
}
