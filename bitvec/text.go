package bitvec

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalText renders the vector as a sized hex literal, such as
// "40'hE7E7E7E7E7", so the width survives a text round trip.
func (v *Vector) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d'h%s", len(v.bits), v.HexString())), nil
}

// UnmarshalText decodes a sized literal ("8'h08" or "8'b0000_1000") or an
// unsized hex string.
func (v *Vector) UnmarshalText(text []byte) (err error) {
	str := string(text)

	width, literal, sized := strings.Cut(str, "'")
	if !sized {
		var out *Vector
		out, err = FromHexString(str)
		if err != nil {
			return
		}
		v.bits = out.bits
		return
	}

	size, err := strconv.Atoi(width)
	if err != nil || size < 0 || len(literal) == 0 {
		err = ErrInvalidWidth
		return
	}

	var out *Vector
	switch literal[0] {
	case 'h', 'H':
		out, err = FromHexStringWidth(literal[1:], size)
	case 'b', 'B':
		out, err = FromBinaryStringWidth(literal[1:], size)
	default:
		err = &ErrDigit{Literal: str, Char: rune(literal[0])}
	}
	if err != nil {
		return
	}

	v.bits = out.bits
	return
}

// FromBinaryStringWidth decodes a binary string like FromBinaryString and
// zero extends it to size bits. More digits than size fails with
// ErrOversizedLiteral.
func FromBinaryStringWidth(str string, size int) (v *Vector, err error) {
	digits := FromBinaryString(str)
	if digits.Size() > size {
		err = &ErrLiteral{Literal: str, Need: digits.Size(), Size: size}
		return
	}

	v = &Vector{bits: make([]bool, size)}
	copy(v.bits, digits.bits)
	return
}
