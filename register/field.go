package register

import (
	"fmt"

	"github.com/ezrec/nrfcfg/bitvec"
)

// Field is a named, contiguous bit range [Lsb, Msb] of a Register.
type Field struct {
	Name     string // Name, unique within the schema unless Reserved.
	Lsb      int    // Least significant bit within the register.
	Msb      int    // Most significant bit within the register, inclusive.
	Hex      bool   // Display hint: prefer hex over binary text.
	Reserved bool   // Reserved fields are only visible from their register.

	register *Register
}

// FieldOption modifies a field at creation.
type FieldOption func(fl *Field)

// WithHex marks the field as preferring hex display.
func WithHex() FieldOption {
	return func(fl *Field) {
		fl.Hex = true
	}
}

// WithReserved marks the field as reserved. Reserved fields are attached to
// their register but are not entered into the schema wide name lookup, so
// every register may carry its own "Reserved" field.
func WithReserved() FieldOption {
	return func(fl *Field) {
		fl.Reserved = true
	}
}

// NewField creates an unattached field covering bits lsb through msb.
func NewField(name string, lsb, msb int, opts ...FieldOption) (fl *Field, err error) {
	if lsb < 0 || msb < lsb {
		err = ErrFieldRange
		return
	}

	fl = &Field{
		Name: name,
		Lsb:  lsb,
		Msb:  msb,
	}
	for _, opt := range opts {
		opt(fl)
	}

	return
}

// Size is the field width in bits.
func (fl *Field) Size() int {
	return fl.Msb - fl.Lsb + 1
}

// Register returns the owning register, or nil if not yet attached.
func (fl *Field) Register() *Register {
	return fl.register
}

// BitRange renders the bit position as "7" or "7:6".
func (fl *Field) BitRange() string {
	if fl.Msb == fl.Lsb {
		return fmt.Sprintf("%d", fl.Msb)
	}
	return fmt.Sprintf("%d:%d", fl.Msb, fl.Lsb)
}

// String returns NAME[msb:lsb].
func (fl *Field) String() string {
	return fmt.Sprintf("%v[%v]", fl.Name, fl.BitRange())
}

// Bits returns a copy of the field's bits. The copy may be freely modified.
// An unattached field reads as zero.
func (fl *Field) Bits() *bitvec.Vector {
	if fl.register == nil {
		v, _ := bitvec.New(fl.Size())
		return v
	}

	// Bounds were checked when the field was attached.
	v, _ := fl.register.value.Range(fl.Lsb, fl.Msb)
	return v
}

// SetBits writes value into the field's bits of the owning register. The
// value must be exactly as wide as the field; on error the register is left
// unchanged.
func (fl *Field) SetBits(value *bitvec.Vector) (err error) {
	if value.Size() != fl.Size() {
		err = &ErrWidth{Name: fl.Name, Want: fl.Size(), Got: value.Size()}
		return
	}

	if fl.register == nil {
		err = ErrNoRegister
		return
	}

	err = fl.register.value.SetRange(fl.Lsb, value)
	return
}

// Uint returns the field as an unsigned integer.
func (fl *Field) Uint() (uint64, error) {
	return fl.Bits().Uint()
}

// SetUint writes the low bits of x into the field.
func (fl *Field) SetUint(x uint64) (err error) {
	value, err := bitvec.FromUint(x, fl.Size())
	if err != nil {
		return
	}

	return fl.SetBits(value)
}

// HexString returns the field as hex text.
func (fl *Field) HexString() string {
	return fl.Bits().HexString()
}

// SetHexString decodes hex text sized to the field and writes it.
func (fl *Field) SetHexString(str string) (err error) {
	value, err := bitvec.FromHexStringWidth(str, fl.Size())
	if err != nil {
		return
	}

	return fl.SetBits(value)
}

// BinaryString returns the field as binary text.
func (fl *Field) BinaryString() string {
	return fl.Bits().BinaryString()
}

// SetBinaryString decodes binary text and writes it. The number of binary
// digits must match the field width.
func (fl *Field) SetBinaryString(str string) error {
	return fl.SetBits(bitvec.FromBinaryString(str))
}

// Text renders the field in its preferred encoding.
func (fl *Field) Text() string {
	if fl.Hex {
		return fl.HexString()
	}
	return fl.BinaryString()
}
