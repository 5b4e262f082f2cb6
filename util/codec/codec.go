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
	"encoding/binary"
	"math"

	"github.com/flowsql/flowsql/errno"
	"github.com/flowsql/flowsql/types"
	"github.com/flowsql/flowsql/util/dbterror"
	"github.com/pingcap/errors"
)

// First byte in the encoded value which specifies the encoding type.
const (
	NilFlag          byte = 0
	compactBytesFlag byte = 2
	floatFlag        byte = 5
	decimalFlag      byte = 6
	varintFlag       byte = 8
	intervalFlag     byte = 10
	structFlag       byte = 11
)

// ErrInvalidEncoding is returned when a value cannot be decoded as the
// declared type.
var ErrInvalidEncoding = dbterror.ClassCodec.NewStd(errno.ErrInvalidEncoding)

// EncodeValue appends the encoded value of d to b and returns the result.
func EncodeValue(b []byte, d types.Datum) []byte {
	return encode(b, d, false)
}

// EncodeKey appends the encoded datums to b as one group key. Datums that
// compare equal as decimals or floats produce the same key.
func EncodeKey(b []byte, datums ...types.Datum) []byte {
	for _, d := range datums {
		b = encode(b, d, true)
	}
	return b
}

func encode(b []byte, d types.Datum, key bool) []byte {
	switch d.Kind() {
	case types.KindNull:
		return append(b, NilFlag)
	case types.KindBoolean, types.KindInt16, types.KindInt32, types.KindInt64, types.KindDate:
		b = append(b, varintFlag)
		return EncodeVarint(b, d.GetInt64())
	case types.KindFloat32, types.KindFloat64:
		v := d.GetFloat64()
		if key {
			v = normalizeFloat(v)
		}
		b = append(b, floatFlag)
		return EncodeFloat(b, v)
	case types.KindDecimal:
		v := d.GetDecimal()
		if key {
			v = trimDecimal(v)
		}
		b = append(b, decimalFlag)
		return EncodeDecimal(b, v)
	case types.KindVarchar:
		b = append(b, compactBytesFlag)
		return EncodeCompactBytes(b, []byte(d.GetString()))
	case types.KindInterval:
		iv := d.GetInterval()
		b = append(b, intervalFlag)
		b = EncodeVarint(b, int64(iv.Months))
		b = EncodeVarint(b, int64(iv.Days))
		return EncodeVarint(b, iv.Ms)
	case types.KindStruct:
		fields := d.GetStruct()
		b = append(b, structFlag)
		b = EncodeUvarint(b, uint64(len(fields)))
		for _, f := range fields {
			b = encode(b, f, key)
		}
		return b
	}
	panic("unsupported datum kind " + d.Kind().String())
}

// DecodeValue decodes b as one value of type tp. Trailing bytes are an
// error.
func DecodeValue(b []byte, tp types.DataType) (types.Datum, error) {
	remain, d, err := DecodeOne(b, tp)
	if err != nil {
		return d, errors.Trace(err)
	}
	if len(remain) > 0 {
		return types.Datum{}, ErrInvalidEncoding.GenWithStackByArgs("trailing bytes after value")
	}
	return d, nil
}

// DecodeKey decodes a group key into one datum per type in tps.
func DecodeKey(b []byte, tps []types.DataType) ([]types.Datum, error) {
	datums := make([]types.Datum, 0, len(tps))
	for _, tp := range tps {
		var (
			d   types.Datum
			err error
		)
		b, d, err = DecodeOne(b, tp)
		if err != nil {
			return nil, errors.Trace(err)
		}
		datums = append(datums, d)
	}
	if len(b) > 0 {
		return nil, ErrInvalidEncoding.GenWithStackByArgs("trailing bytes after key")
	}
	return datums, nil
}

// DecodeOne decodes one value of type tp from b and returns the remaining
// bytes. The flag must agree with the kind of tp.
func DecodeOne(b []byte, tp types.DataType) (remain []byte, d types.Datum, err error) {
	if len(b) < 1 {
		return nil, d, ErrInvalidEncoding.GenWithStackByArgs("insufficient bytes to decode value")
	}
	flag, b := b[0], b[1:]
	if flag == NilFlag {
		return b, types.NewNullDatum(), nil
	}
	if expected := flagOf(tp.Kind()); flag != expected {
		return nil, d, ErrInvalidEncoding.GenWithStackByArgs(
			"flag " + flagName(flag) + " does not match type " + tp.String())
	}
	switch tp.Kind() {
	case types.KindBoolean:
		var v int64
		b, v, err = DecodeVarint(b)
		if err == nil && v != 0 && v != 1 {
			err = ErrInvalidEncoding.GenWithStackByArgs("boolean out of range")
		}
		d = types.NewBoolDatum(v == 1)
	case types.KindInt16:
		var v int64
		b, v, err = decodeRangedVarint(b, math.MinInt16, math.MaxInt16)
		d = types.NewInt16Datum(int16(v))
	case types.KindInt32, types.KindDate:
		var v int64
		b, v, err = decodeRangedVarint(b, math.MinInt32, math.MaxInt32)
		d = types.NewNativeDatum(tp.Kind(), int32(v))
	case types.KindInt64:
		var v int64
		b, v, err = DecodeVarint(b)
		d = types.NewInt64Datum(v)
	case types.KindFloat32:
		var v float64
		b, v, err = DecodeFloat(b)
		d = types.NewFloat32Datum(float32(v))
	case types.KindFloat64:
		var v float64
		b, v, err = DecodeFloat(b)
		d = types.NewFloat64Datum(v)
	case types.KindDecimal:
		b, d, err = decodeDecimalDatum(b)
	case types.KindVarchar:
		var v []byte
		b, v, err = DecodeCompactBytes(b)
		d = types.NewVarcharDatum(string(v))
	case types.KindInterval:
		b, d, err = decodeIntervalDatum(b)
	case types.KindStruct:
		b, d, err = decodeStructDatum(b, tp.(*types.StructType))
	default:
		err = ErrInvalidEncoding.GenWithStackByArgs("unsupported type " + tp.String())
	}
	if err != nil {
		return nil, types.Datum{}, errors.Trace(err)
	}
	return b, d, nil
}

func decodeRangedVarint(b []byte, lower, upper int64) ([]byte, int64, error) {
	b, v, err := DecodeVarint(b)
	if err != nil {
		return nil, 0, err
	}
	if v < lower || v > upper {
		return nil, 0, ErrInvalidEncoding.GenWithStackByArgs("integer out of range")
	}
	return b, v, nil
}

func decodeDecimalDatum(b []byte) ([]byte, types.Datum, error) {
	b, v, err := DecodeDecimal(b)
	if err != nil {
		return nil, types.Datum{}, err
	}
	return b, types.NewDecimalDatum(v), nil
}

func decodeIntervalDatum(b []byte) ([]byte, types.Datum, error) {
	var parts [3]int64
	for i := range parts {
		var err error
		b, parts[i], err = DecodeVarint(b)
		if err != nil {
			return nil, types.Datum{}, err
		}
	}
	if parts[0] < math.MinInt32 || parts[0] > math.MaxInt32 || parts[1] < math.MinInt32 || parts[1] > math.MaxInt32 {
		return nil, types.Datum{}, ErrInvalidEncoding.GenWithStackByArgs("interval out of range")
	}
	return b, types.NewIntervalDatum(types.NewInterval(int32(parts[0]), int32(parts[1]), parts[2])), nil
}

func decodeStructDatum(b []byte, tp *types.StructType) ([]byte, types.Datum, error) {
	b, n, err := DecodeUvarint(b)
	if err != nil {
		return nil, types.Datum{}, err
	}
	fieldTypes := tp.Fields()
	if n != uint64(len(fieldTypes)) {
		return nil, types.Datum{}, ErrInvalidEncoding.GenWithStackByArgs("struct field count mismatch")
	}
	fields := make([]types.Datum, len(fieldTypes))
	for i, ft := range fieldTypes {
		b, fields[i], err = DecodeOne(b, ft)
		if err != nil {
			return nil, types.Datum{}, err
		}
	}
	return b, types.NewStructDatum(fields...), nil
}

func flagOf(k types.Kind) byte {
	switch k {
	case types.KindBoolean, types.KindInt16, types.KindInt32, types.KindInt64, types.KindDate:
		return varintFlag
	case types.KindFloat32, types.KindFloat64:
		return floatFlag
	case types.KindDecimal:
		return decimalFlag
	case types.KindVarchar:
		return compactBytesFlag
	case types.KindInterval:
		return intervalFlag
	case types.KindStruct:
		return structFlag
	}
	return NilFlag
}

func flagName(flag byte) string {
	switch flag {
	case NilFlag:
		return "nil"
	case compactBytesFlag:
		return "compactBytes"
	case floatFlag:
		return "float"
	case decimalFlag:
		return "decimal"
	case varintFlag:
		return "varint"
	case intervalFlag:
		return "interval"
	case structFlag:
		return "struct"
	}
	return "0x" + hexByte(flag)
}

func hexByte(v byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0xf]})
}

// EncodeVarint appends the encoded value to slice b as a variable length int.
func EncodeVarint(b []byte, v int64) []byte {
	return binary.AppendVarint(b, v)
}

// DecodeVarint decodes value encoded by EncodeVarint before.
// It returns the leftover un-decoded slice, decoded value if no error.
func DecodeVarint(b []byte) ([]byte, int64, error) {
	v, n := binary.Varint(b)
	if n > 0 {
		return b[n:], v, nil
	}
	if n < 0 {
		return nil, 0, ErrInvalidEncoding.GenWithStackByArgs("value larger than 64 bits")
	}
	return nil, 0, ErrInvalidEncoding.GenWithStackByArgs("insufficient bytes to decode value")
}

// EncodeUvarint appends the encoded value to slice b as a variable length uint.
func EncodeUvarint(b []byte, v uint64) []byte {
	return binary.AppendUvarint(b, v)
}

// DecodeUvarint decodes value encoded by EncodeUvarint before.
// It returns the leftover un-decoded slice, decoded value if no error.
func DecodeUvarint(b []byte) ([]byte, uint64, error) {
	v, n := binary.Uvarint(b)
	if n > 0 {
		return b[n:], v, nil
	}
	if n < 0 {
		return nil, 0, ErrInvalidEncoding.GenWithStackByArgs("value larger than 64 bits")
	}
	return nil, 0, ErrInvalidEncoding.GenWithStackByArgs("insufficient bytes to decode value")
}

// EncodeCompactBytes joins bytes with its length into a byte slice.
func EncodeCompactBytes(b []byte, data []byte) []byte {
	b = EncodeVarint(b, int64(len(data)))
	return append(b, data...)
}

// DecodeCompactBytes decodes bytes which is encoded by EncodeCompactBytes before.
func DecodeCompactBytes(b []byte) ([]byte, []byte, error) {
	b, n, err := DecodeVarint(b)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	if n < 0 || int64(len(b)) < n {
		return nil, nil, ErrInvalidEncoding.GenWithStackByArgs("insufficient bytes to decode value")
	}
	return b[n:], b[:n], nil
}
