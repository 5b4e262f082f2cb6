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
	"math/big"

	"github.com/pingcap/errors"
	"github.com/shopspring/decimal"
)

const (
	negativeSign byte = 8
	zeroSign     byte = 16
	positiveSign byte = 24
)

var bigTen = big.NewInt(10)

// EncodeDecimal encodes a decimal as its sign, exponent and absolute
// coefficient bytes.
// Decimal encoding:
// Byte -> value sign
// Varint -> exponent
// CompactBytes -> abs coefficient, big-endian
func EncodeDecimal(b []byte, d decimal.Decimal) []byte {
	coef := d.Coefficient()
	switch coef.Sign() {
	case 0:
		return append(b, zeroSign)
	case -1:
		b = append(b, negativeSign)
	default:
		b = append(b, positiveSign)
	}
	b = EncodeVarint(b, int64(d.Exponent()))
	return EncodeCompactBytes(b, coef.Abs(coef).Bytes())
}

// DecodeDecimal decodes a decimal encoded by EncodeDecimal.
func DecodeDecimal(b []byte) ([]byte, decimal.Decimal, error) {
	if len(b) < 1 {
		return nil, decimal.Decimal{}, ErrInvalidEncoding.GenWithStackByArgs("insufficient bytes to decode value")
	}
	sign, b := b[0], b[1:]
	switch sign {
	case zeroSign:
		return b, decimal.Zero, nil
	case negativeSign, positiveSign:
	default:
		return nil, decimal.Decimal{}, ErrInvalidEncoding.GenWithStackByArgs("invalid decimal sign")
	}
	b, exp, err := DecodeVarint(b)
	if err != nil {
		return nil, decimal.Decimal{}, errors.Trace(err)
	}
	if exp < -(1<<31) || exp > 1<<31-1 {
		return nil, decimal.Decimal{}, ErrInvalidEncoding.GenWithStackByArgs("decimal exponent out of range")
	}
	b, abs, err := DecodeCompactBytes(b)
	if err != nil {
		return nil, decimal.Decimal{}, errors.Trace(err)
	}
	coef := new(big.Int).SetBytes(abs)
	if sign == negativeSign {
		coef.Neg(coef)
	}
	return b, decimal.NewFromBigInt(coef, int32(exp)), nil
}

// trimDecimal strips trailing zeros of the coefficient, so decimals that
// compare equal share one representation.
func trimDecimal(d decimal.Decimal) decimal.Decimal {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimal.Zero
	}
	exp := d.Exponent()
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		coef, q = q, coef
		exp++
	}
	return decimal.NewFromBigInt(coef, exp)
}
