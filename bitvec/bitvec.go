// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bitvec

import (
	"iter"
	"math/big"
	"slices"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Vector is a fixed size sequence of bits. Bit 0 is the least significant.
//
// The width of a Vector never changes after construction.
type Vector struct {
	bits []bool
}

// New creates an all zero vector of size bits.
func New(size int) (v *Vector, err error) {
	if size <= 0 {
		err = ErrInvalidWidth
		return
	}

	v = &Vector{bits: make([]bool, size)}
	return
}

// FromUint decodes the low size bits of x. Higher bits of x are discarded,
// and widths beyond 64 bits are zero extended.
func FromUint(x uint64, size int) (v *Vector, err error) {
	v, err = New(size)
	if err != nil {
		return
	}

	for n := 0; n < size && n < 64; n++ {
		v.bits[n] = (x>>n)&1 == 1
	}

	return
}

// FromBig decodes the low size bits of a non-negative big integer.
func FromBig(x *big.Int, size int) (v *Vector, err error) {
	if x.Sign() < 0 {
		err = ErrNegative
		return
	}

	v, err = New(size)
	if err != nil {
		return
	}

	for n := range v.bits {
		v.bits[n] = x.Bit(n) == 1
	}

	return
}

// FromBytes decodes little-endian packed bytes, byte 0 holding bits 0 to 7.
// Bits of b beyond size are discarded.
func FromBytes(b []byte, size int) (v *Vector, err error) {
	v, err = New(size)
	if err != nil {
		return
	}

	for n := range v.bits {
		if n/8 >= len(b) {
			break
		}
		v.bits[n] = (b[n/8]>>(n%8))&1 == 1
	}

	return
}

// Size returns the width in bits.
func (v *Vector) Size() int {
	return len(v.bits)
}

// Copy returns an independent vector with the same bits.
func (v *Vector) Copy() *Vector {
	return &Vector{bits: slices.Clone(v.bits)}
}

// Equal is true when both vectors have the same width and bits.
func (v *Vector) Equal(other *Vector) bool {
	return slices.Equal(v.bits, other.bits)
}

// Bit returns the value of bit n.
func (v *Vector) Bit(n int) (value bool, err error) {
	if n < 0 || n >= len(v.bits) {
		err = &ErrIndex{Index: n, Size: len(v.bits)}
		return
	}

	value = v.bits[n]
	return
}

// SetBit sets bit n to value.
func (v *Vector) SetBit(n int, value bool) (err error) {
	if n < 0 || n >= len(v.bits) {
		err = &ErrIndex{Index: n, Size: len(v.bits)}
		return
	}

	v.bits[n] = value
	return
}

// All iterates over every bit, least significant first.
func (v *Vector) All() iter.Seq2[int, bool] {
	return slices.All(v.bits)
}

// Range extracts bits lsb through msb inclusive, re-indexed from 0.
func (v *Vector) Range(lsb, msb int) (out *Vector, err error) {
	if lsb < 0 || msb < lsb || msb >= len(v.bits) {
		err = &ErrRange{Lsb: lsb, Msb: msb, Size: len(v.bits)}
		return
	}

	out = &Vector{bits: slices.Clone(v.bits[lsb : msb+1])}
	return
}

// SetRange overwrites bits start through start+other.Size()-1 with other.
// Bits outside of that range are unchanged.
func (v *Vector) SetRange(start int, other *Vector) (err error) {
	if start < 0 || start+len(other.bits) > len(v.bits) {
		err = &ErrRange{Lsb: start, Msb: start + len(other.bits) - 1, Size: len(v.bits)}
		return
	}

	copy(v.bits[start:], other.bits)
	return
}

// Uint returns the vector as an unsigned integer. Vectors wider than 64 bits
// convert as long as no bit at or above bit 64 is set.
func (v *Vector) Uint() (value uint64, err error) {
	for n, bit := range v.bits {
		if !bit {
			continue
		}
		if n >= 64 {
			value = 0
			err = ErrWidthOverflow
			return
		}
		value |= 1 << n
	}

	return
}

// Int returns the vector as a big integer, for any width.
func (v *Vector) Int() *big.Int {
	value := new(big.Int)
	for n, bit := range v.bits {
		if bit {
			value.SetBit(value, n, 1)
		}
	}

	return value
}

// Bytes packs the vector little-endian, byte 0 holding bits 0 to 7.
func (v *Vector) Bytes() []byte {
	out := make([]byte, (len(v.bits)+7)/8)
	for n, bit := range v.bits {
		if bit {
			out[n/8] |= 1 << (n % 8)
		}
	}

	return out
}

// BinaryString renders one '0' or '1' per bit, most significant first.
func (v *Vector) BinaryString() string {
	var sb strings.Builder
	sb.Grow(len(v.bits))
	for n := len(v.bits) - 1; n >= 0; n-- {
		if v.bits[n] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// HexString renders upper case hex digits, most significant nibble first.
// A partial top nibble is padded with zero bits.
func (v *Vector) HexString() string {
	nibbles := (len(v.bits) + 3) / 4

	var sb strings.Builder
	sb.Grow(nibbles)
	for n := nibbles - 1; n >= 0; n-- {
		var nibble int
		for b := range 4 {
			i := n*4 + b
			if i < len(v.bits) && v.bits[i] {
				nibble |= 1 << b
			}
		}
		sb.WriteByte(hexDigits[nibble])
	}

	return sb.String()
}

// String returns the hex rendering.
func (v *Vector) String() string {
	return v.HexString()
}
