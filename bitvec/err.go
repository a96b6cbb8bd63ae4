package bitvec

import (
	"errors"

	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

var (
	ErrInvalidWidth     = errors.New(f("invalid width"))
	ErrInvalidDigit     = errors.New(f("invalid digit"))
	ErrOversizedLiteral = errors.New(f("literal exceeds width"))
	ErrRangeOutOfBounds = errors.New(f("range out of bounds"))
	ErrIndexOutOfRange  = errors.New(f("index out of range"))
	ErrWidthOverflow    = errors.New(f("value exceeds 64 bits"))
	ErrNegative         = errors.New(f("negative value"))
)

// ErrIndex reports a single bit access outside of the vector.
type ErrIndex struct {
	Index int
	Size  int
}

func (err *ErrIndex) Error() string {
	return f("bit %d outside of [0, %d)", err.Index, err.Size)
}

func (err *ErrIndex) Unwrap() error {
	return ErrIndexOutOfRange
}

// ErrRange reports a range operation that does not fit the vector.
type ErrRange struct {
	Lsb  int
	Msb  int
	Size int
}

func (err *ErrRange) Error() string {
	return f("bits [%d:%d] outside of %d bit vector", err.Msb, err.Lsb, err.Size)
}

func (err *ErrRange) Unwrap() error {
	return ErrRangeOutOfBounds
}

// ErrDigit reports the first character of a literal that is not a digit.
type ErrDigit struct {
	Literal string
	Char    rune
}

func (err *ErrDigit) Error() string {
	return f("'%c' in '%v' is not a hex digit", err.Char, err.Literal)
}

func (err *ErrDigit) Unwrap() error {
	return ErrInvalidDigit
}

// ErrLiteral reports a literal that needs more bits than requested.
type ErrLiteral struct {
	Literal string
	Need    int
	Size    int
}

func (err *ErrLiteral) Error() string {
	return f("'%v' needs %d bits, only %d available", err.Literal, err.Need, err.Size)
}

func (err *ErrLiteral) Unwrap() error {
	return ErrOversizedLiteral
}
