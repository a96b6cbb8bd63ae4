package register

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/nrfcfg/bitvec"
)

// yamlSchema is the declarative schema table.
//
//	registers:
//	  - address: 0x00
//	    name: CONFIG
//	    size: 8
//	    reset: "0b0000_1000"
//	    fields:
//	      - { name: Reserved, bits: "7", reserved: true }
//	      - { name: PRIM_RX, bits: "0" }
//	  - address: 0x10
//	    name: TX_ADDR
//	    size: 40
//	    reset: "0xE7E7E7E7E7"
//	    fields:
//	      - { name: TX_ADDR, bits: "39:0", hex: true }
type yamlSchema struct {
	Registers []yamlRegister `yaml:"registers"`
}

type yamlRegister struct {
	Address int         `yaml:"address"`
	Name    string      `yaml:"name"`
	Size    int         `yaml:"size"`
	Reset   string      `yaml:"reset"`
	Fields  []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name     string `yaml:"name"`
	Bits     string `yaml:"bits"`
	Hex      bool   `yaml:"hex"`
	Reserved bool   `yaml:"reserved"`
}

// LoadYAML builds a schema from a YAML register table.
//
// A reset value is written "0x..." (hex, sized to the register) or "0b..."
// (binary, one digit per register bit, '_' separators allowed); an empty
// reset value is all zeros. Field bits are written "7" or "7:6".
func LoadYAML(r io.Reader) (schema *Schema, err error) {
	var table yamlSchema

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(&table)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSchemaSyntax, err)
		return
	}

	b := NewBuilder()
	for _, yreg := range table.Registers {
		var reset *bitvec.Vector
		reset, err = parseReset(yreg.Reset, yreg.Size)
		if err != nil {
			err = &ErrDefinition{Register: yreg.Name, Err: err}
			return
		}

		b.Register(yreg.Address, yreg.Name, yreg.Size, reset)

		for _, yfield := range yreg.Fields {
			var lsb, msb int
			lsb, msb, err = parseBits(yfield.Bits)
			if err != nil {
				err = &ErrDefinition{Register: yreg.Name, Field: yfield.Name, Err: err}
				return
			}

			var opts []FieldOption
			if yfield.Hex {
				opts = append(opts, WithHex())
			}
			if yfield.Reserved {
				opts = append(opts, WithReserved())
			}
			b.Field(yfield.Name, lsb, msb, opts...)
		}
	}

	return b.Build()
}

// parseReset decodes a "0x" or "0b" prefixed reset literal.
func parseReset(text string, size int) (reset *bitvec.Vector, err error) {
	text = strings.TrimSpace(text)

	switch {
	case len(text) == 0:
		return
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		reset, err = bitvec.FromHexStringWidth(strings.ReplaceAll(text[2:], "_", ""), size)
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		reset = bitvec.FromBinaryString(text[2:])
	default:
		err = fmt.Errorf("%w: reset '%v'", ErrSchemaSyntax, text)
	}

	return
}

// parseBits decodes "7", "7:6" or "6:7" into an lsb, msb pair.
func parseBits(text string) (lsb, msb int, err error) {
	hi, lo, isRange := strings.Cut(strings.TrimSpace(text), ":")
	if !isRange {
		lo = hi
	}

	msb, err = strconv.Atoi(strings.TrimSpace(hi))
	if err == nil {
		lsb, err = strconv.Atoi(strings.TrimSpace(lo))
	}
	if err != nil {
		err = fmt.Errorf("%w: bits '%v'", ErrSchemaSyntax, text)
		return
	}

	if lsb > msb {
		lsb, msb = msb, lsb
	}

	return
}
