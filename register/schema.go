package register

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/nrfcfg/internal"
)

// Schema is the catalog of the registers and fields of one device.
type Schema struct {
	registers []*Register
	regMap    map[string]*Register
	addrMap   map[int]*Register
	fieldMap  map[string]*Field
}

func newSchema() *Schema {
	return &Schema{
		regMap:   make(map[string]*Register),
		addrMap:  make(map[int]*Register),
		fieldMap: make(map[string]*Field),
	}
}

// Registers returns the registers in declaration order.
func (s *Schema) Registers() []*Register {
	return slices.Clone(s.registers)
}

// Fields iterates over every field of every register, in declaration order.
func (s *Schema) Fields() iter.Seq[*Field] {
	seqs := make([]iter.Seq[*Field], 0, len(s.registers))
	for _, reg := range s.registers {
		seqs = append(seqs, reg.All())
	}

	return internal.IterSeqConcat(seqs...)
}

// Field resolves a field by its schema wide name. Reserved fields are only
// reachable through their register.
func (s *Schema) Field(name string) (fl *Field, err error) {
	fl, ok := s.fieldMap[name]
	if !ok {
		err = ErrFieldMissing(name)
	}
	return
}

// Register resolves a register by name.
func (s *Schema) Register(name string) (reg *Register, err error) {
	reg, ok := s.regMap[name]
	if !ok {
		err = ErrRegisterMissing(name)
	}
	return
}

// RegisterAt resolves a register by address.
func (s *Schema) RegisterAt(address int) (reg *Register, err error) {
	reg, ok := s.addrMap[address]
	if !ok {
		err = ErrRegisterMissing(fmt.Sprintf("0x%02X", address))
	}
	return
}

// Reset restores every register to its power-on value.
func (s *Schema) Reset() {
	for _, reg := range s.registers {
		reg.Reset()
	}
}

// Dirty returns the registers whose value differs from their power-on value.
func (s *Schema) Dirty() (regs []*Register) {
	for _, reg := range s.registers {
		if reg.Dirty() {
			regs = append(regs, reg)
		}
	}
	return
}

func (s *Schema) addRegister(reg *Register) (err error) {
	if reg.schema != nil {
		err = ErrRegisterFrozen
		return
	}
	if _, ok := s.regMap[reg.name]; ok {
		err = ErrDuplicateRegister
		return
	}
	if _, ok := s.addrMap[reg.address]; ok {
		err = ErrDuplicateAddress
		return
	}

	reg.schema = s
	s.registers = append(s.registers, reg)
	s.regMap[reg.name] = reg
	s.addrMap[reg.address] = reg

	return
}

func (s *Schema) addField(reg *Register, fl *Field) (err error) {
	if !fl.Reserved {
		if _, ok := s.fieldMap[fl.Name]; ok {
			err = &ErrDefinition{Register: reg.name, Field: fl.Name, Err: ErrDuplicateField}
			return
		}
	}

	err = reg.attachField(fl)
	if err != nil {
		return
	}

	if !fl.Reserved {
		s.fieldMap[fl.Name] = fl
	}

	return
}
