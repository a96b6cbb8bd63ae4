package bitvec

import (
	"slices"
)

// FromBinaryString decodes the '0' and '1' characters of str, most
// significant first. Every other character is a separator and is skipped, so
// "0000_1000" decodes to an 8 bit vector. A string without any binary digits
// decodes to a valid zero width vector.
func FromBinaryString(str string) *Vector {
	bits := make([]bool, 0, len(str))
	for _, c := range str {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		}
	}

	slices.Reverse(bits)

	return &Vector{bits: bits}
}

// FromHexString decodes a hex string into a vector of 4 bits per digit.
func FromHexString(str string) (v *Vector, err error) {
	return FromHexStringWidth(str, 4*len([]rune(str)))
}

// FromHexStringWidth decodes a hex string, most significant digit first, into
// a vector of size bits. Digits may be upper or lower case; no prefix or
// separator is accepted. When size is not a multiple of 4 the bits of the top
// digit that fall beyond size are dropped. A literal with more digits than a
// size bit vector can show fails with ErrOversizedLiteral.
func FromHexStringWidth(str string, size int) (v *Vector, err error) {
	if size < 0 {
		err = ErrInvalidWidth
		return
	}

	digits := []rune(str)
	if len(digits) > (size+3)/4 {
		err = &ErrLiteral{Literal: str, Need: 4 * len(digits), Size: size}
		return
	}

	out := &Vector{bits: make([]bool, size)}
	for n, bit := len(digits)-1, 0; n >= 0; n, bit = n-1, bit+4 {
		nibble, ok := hexValue(digits[n])
		if !ok {
			err = &ErrDigit{Literal: str, Char: digits[n]}
			return
		}
		for b := range 4 {
			if bit+b < size {
				out.bits[bit+b] = (nibble>>b)&1 == 1
			}
		}
	}

	v = out
	return
}

func hexValue(c rune) (value uint8, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint8(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint8(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint8(c-'A') + 10, true
	}

	return
}
