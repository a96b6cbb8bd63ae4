// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package register

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/nrfcfg/bitvec"
)

// Register is a named, addressed, fixed width device register.
//
// The register value is the single source of truth for its bits; all field
// reads and writes act on it.
type Register struct {
	address int
	name    string
	reset   *bitvec.Vector
	value   *bitvec.Vector

	fields   []*Field
	fieldMap map[string]*Field

	schema *Schema
}

// NewRegister creates a register whose value starts as a copy of reset. A nil
// reset value is all zeros.
func NewRegister(address int, name string, size int, reset *bitvec.Vector) (reg *Register, err error) {
	if reset == nil {
		reset, err = bitvec.New(size)
		if err != nil {
			return
		}
	}

	if size <= 0 {
		err = bitvec.ErrInvalidWidth
		return
	}

	if reset.Size() != size {
		err = &ErrWidth{Name: name, Want: size, Got: reset.Size()}
		return
	}

	reg = &Register{
		address:  address,
		name:     name,
		reset:    reset.Copy(),
		value:    reset.Copy(),
		fieldMap: make(map[string]*Field),
	}

	return
}

// Address of the register in the device register space.
func (reg *Register) Address() int {
	return reg.address
}

// Name of the register.
func (reg *Register) Name() string {
	return reg.name
}

// Size is the register width in bits.
func (reg *Register) Size() int {
	return reg.value.Size()
}

// String returns "0xAA NAME".
func (reg *Register) String() string {
	return fmt.Sprintf("0x%02X %v", reg.address, reg.name)
}

// AttachField appends fl to the register and sets its back reference. The
// field must fit the register, must not overlap an attached field, and its
// name must be unique within the register. Registers that belong to a
// schema are frozen and fail with ErrRegisterFrozen; declare their fields
// through a Builder instead.
func (reg *Register) AttachField(fl *Field) (err error) {
	if reg.schema != nil {
		err = &ErrDefinition{Register: reg.name, Field: fl.Name, Err: ErrRegisterFrozen}
		return
	}

	return reg.attachField(fl)
}

func (reg *Register) attachField(fl *Field) (err error) {
	defer func() {
		if err != nil {
			err = &ErrDefinition{Register: reg.name, Field: fl.Name, Err: err}
		}
	}()

	if fl.register != nil {
		err = ErrFieldAttached
		return
	}

	if fl.Lsb < 0 || fl.Msb < fl.Lsb || fl.Msb >= reg.Size() {
		err = ErrFieldRange
		return
	}

	if _, ok := reg.fieldMap[fl.Name]; ok {
		err = ErrDuplicateField
		return
	}

	for _, other := range reg.fields {
		if fl.Lsb <= other.Msb && other.Lsb <= fl.Msb {
			err = fmt.Errorf("%w: %v", ErrFieldOverlap, other)
			return
		}
	}

	fl.register = reg
	reg.fields = append(reg.fields, fl)
	reg.fieldMap[fl.Name] = fl

	return
}

// Fields returns the attached fields in declaration order.
func (reg *Register) Fields() []*Field {
	return slices.Clone(reg.fields)
}

// All iterates over the attached fields in declaration order.
func (reg *Register) All() iter.Seq[*Field] {
	return slices.Values(reg.fields)
}

// Field looks up an attached field by name, including reserved fields.
func (reg *Register) Field(name string) (fl *Field, err error) {
	fl, ok := reg.fieldMap[name]
	if !ok {
		err = ErrFieldMissing(name)
	}
	return
}

// Value returns a copy of the current register value.
func (reg *Register) Value() *bitvec.Vector {
	return reg.value.Copy()
}

// ResetValue returns a copy of the power-on value.
func (reg *Register) ResetValue() *bitvec.Vector {
	return reg.reset.Copy()
}

// SetValue overwrites the whole register value.
func (reg *Register) SetValue(value *bitvec.Vector) (err error) {
	if value.Size() != reg.Size() {
		err = &ErrWidth{Name: reg.name, Want: reg.Size(), Got: value.Size()}
		return
	}

	reg.value = value.Copy()
	return
}

// Reset restores the power-on value.
func (reg *Register) Reset() {
	reg.value = reg.reset.Copy()
}

// Dirty is true when the value differs from the power-on value.
func (reg *Register) Dirty() bool {
	return !reg.value.Equal(reg.reset)
}
