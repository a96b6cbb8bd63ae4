package register

import (
	"github.com/ezrec/nrfcfg/bitvec"
)

// Builder declares a schema one register at a time. Fields attach to the
// most recently declared register. The first error stops further
// declarations and is returned by Build.
//
//	schema, err := register.NewBuilder().
//		Register(0x00, "CONFIG", 8, bitvec.FromBinaryString("0000_1000")).
//		Bit("PRIM_RX", 0).
//		Bit("PWR_UP", 1).
//		Build()
type Builder struct {
	schema  *Schema
	current *Register
	err     error
}

// NewBuilder starts an empty schema.
func NewBuilder() *Builder {
	return &Builder{
		schema: newSchema(),
	}
}

// Register declares a register. A nil reset value is all zeros.
func (b *Builder) Register(address int, name string, size int, reset *bitvec.Vector) *Builder {
	if b.err != nil {
		return b
	}

	reg, err := NewRegister(address, name, size, reset)
	if err == nil {
		err = b.schema.addRegister(reg)
	}
	if err != nil {
		b.err = &ErrDefinition{Register: name, Err: err}
		return b
	}

	b.current = reg
	return b
}

// Field declares a field of bits lsb through msb of the current register.
func (b *Builder) Field(name string, lsb, msb int, opts ...FieldOption) *Builder {
	if b.err != nil {
		return b
	}

	if b.current == nil {
		b.err = &ErrDefinition{Field: name, Err: ErrNoRegister}
		return b
	}

	fl, err := NewField(name, lsb, msb, opts...)
	if err != nil {
		b.err = &ErrDefinition{Register: b.current.name, Field: name, Err: err}
		return b
	}

	b.err = b.schema.addField(b.current, fl)
	return b
}

// Bit declares a single bit field of the current register.
func (b *Builder) Bit(name string, bit int, opts ...FieldOption) *Builder {
	return b.Field(name, bit, bit, opts...)
}

// Err returns the first declaration error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the declared schema, and starts the builder afresh.
func (b *Builder) Build() (schema *Schema, err error) {
	schema, err = b.schema, b.err
	if err != nil {
		schema = nil
	}

	*b = *NewBuilder()

	return
}
