// Package bitvec implements a fixed width, bit addressable unsigned value.
//
// A Vector holds an ordered sequence of bits with bit 0 as the least
// significant bit. Widths are not limited to multiples of 8, so a 3 bit
// sub-field or a 40 bit address is represented exactly. Vectors decode from
// and encode to unsigned integers, big integers, binary strings (with
// optional grouping separators such as '_') and hexadecimal strings.
//
// Values never sign extend and never wrap: decoding an integer keeps only the
// low bits that fit the requested width, and every range operation is bounds
// checked against the vector width.
package bitvec
