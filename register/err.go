package register

import (
	"errors"

	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

var (
	ErrWidthMismatch     = errors.New(f("width mismatch"))
	ErrUnknownField      = errors.New(f("unknown field"))
	ErrUnknownRegister   = errors.New(f("unknown register"))
	ErrFieldRange        = errors.New(f("field outside of register"))
	ErrFieldOverlap      = errors.New(f("fields overlap"))
	ErrFieldAttached     = errors.New(f("field already attached"))
	ErrDuplicateField    = errors.New(f("field name duplicated"))
	ErrDuplicateRegister = errors.New(f("register name duplicated"))
	ErrDuplicateAddress  = errors.New(f("register address duplicated"))
	ErrNoRegister        = errors.New(f("field without register"))
	ErrSchemaSyntax      = errors.New(f("schema syntax"))
	ErrRegisterFrozen    = errors.New(f("register belongs to a schema"))
)

// ErrFieldMissing reports a lookup of a field name absent from the schema.
type ErrFieldMissing string

func (err ErrFieldMissing) Error() string {
	return f("field %v missing", string(err))
}

func (err ErrFieldMissing) Unwrap() error {
	return ErrUnknownField
}

// ErrRegisterMissing reports a lookup of a register absent from the schema.
type ErrRegisterMissing string

func (err ErrRegisterMissing) Error() string {
	return f("register %v missing", string(err))
}

func (err ErrRegisterMissing) Unwrap() error {
	return ErrUnknownRegister
}

// ErrWidth reports a value whose width does not match its destination.
type ErrWidth struct {
	Name string
	Want int
	Got  int
}

func (err *ErrWidth) Error() string {
	return f("%v is %d bits wide, value is %d bits", err.Name, err.Want, err.Got)
}

func (err *ErrWidth) Unwrap() error {
	return ErrWidthMismatch
}

// ErrDefinition locates a schema construction error.
type ErrDefinition struct {
	Register string
	Field    string
	Err      error
}

func (err *ErrDefinition) Error() string {
	if len(err.Field) == 0 {
		return f("register %v: %v", err.Register, err.Err)
	}
	return f("register %v field %v: %v", err.Register, err.Field, err.Err)
}

func (err *ErrDefinition) Unwrap() error {
	return err.Err
}
