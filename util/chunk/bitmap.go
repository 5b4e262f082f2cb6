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

package chunk

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Bitmap is a fixed length sequence of bits. It is used as the validity
// bitmap of columns and as the visibility mask of batches.
type Bitmap struct {
	bits   *bitset.BitSet
	length int
}

// NewBitmap creates a Bitmap with bit i set iff values[i].
func NewBitmap(values []bool) *Bitmap {
	b := &Bitmap{bits: bitset.New(uint(len(values))), length: len(values)}
	for i, v := range values {
		if v {
			b.bits.Set(uint(i))
		}
	}
	return b
}

// NewBitmapWithLength creates a Bitmap of n bits, all set to v.
func NewBitmapWithLength(n int, v bool) *Bitmap {
	b := &Bitmap{bits: bitset.New(uint(n)), length: n}
	if v {
		b.bits.FlipRange(0, uint(n))
	}
	return b
}

// Len returns the number of bits.
func (b *Bitmap) Len() int {
	return b.length
}

// IsSet reports whether bit i is set. Bits past the end are unset.
func (b *Bitmap) IsSet(i int) bool {
	return i >= 0 && i < b.length && b.bits.Test(uint(i))
}

// Set sets bit i to v.
func (b *Bitmap) Set(i int, v bool) {
	if i < 0 || i >= b.length {
		panic("bitmap index out of range")
	}
	b.bits.SetTo(uint(i), v)
}

// CountOnes returns the number of set bits.
func (b *Bitmap) CountOnes() int {
	return int(b.bits.Count())
}

// All reports whether every bit is set.
func (b *Bitmap) All() bool {
	return b.CountOnes() == b.length
}

// And returns the intersection of b and o. Both must have the same length.
func (b *Bitmap) And(o *Bitmap) *Bitmap {
	if b.length != o.length {
		panic("bitmap length mismatch")
	}
	return &Bitmap{bits: b.bits.Intersection(o.bits), length: b.length}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{bits: b.bits.Clone(), length: b.length}
}

// reset clears the bitmap and resizes it to n bits.
func (b *Bitmap) reset(n int) {
	b.bits.ClearAll()
	b.length = n
}

// Bools returns the bits as a bool slice.
func (b *Bitmap) Bools() []bool {
	res := make([]bool, b.length)
	for i, e := b.bits.NextSet(0); e && int(i) < b.length; i, e = b.bits.NextSet(i + 1) {
		res[i] = true
	}
	return res
}

// String implements fmt.Stringer interface.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(b.length)
	for i := 0; i < b.length; i++ {
		if b.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
