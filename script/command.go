package script

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ezrec/nrfcfg/bitvec"
)

// Op is a script command.
type Op int

const (
	OpSet    = Op(iota) // set NAME VALUE
	OpReset             // reset [REGISTER]
	OpShow              // show [NAME]
	OpExpect            // expect NAME VALUE
)

var opMap = map[string]Op{
	"set":    OpSet,
	"reset":  OpReset,
	"show":   OpShow,
	"expect": OpExpect,
}

func (op Op) String() string {
	for name, value := range opMap {
		if value == op {
			return name
		}
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Command is a single parsed script command.
type Command struct {
	LineNo int      // Source line; for macro expansions, the macro body line.
	Words  []string // Words after equate and expression substitution.
	Op     Op       // Command operation.
	Target string   // Field or register name. Empty means all registers.
	Value  string   // Value text for set and expect.
}

// String returns the command text.
func (cmd Command) String() string {
	return strings.Join(cmd.Words, " ")
}

// Script is a parsed list of commands.
type Script struct {
	Commands []Command
}

// checkValue verifies the syntax of a value without knowing its width.
func checkValue(text string) (err error) {
	_, err = ParseValue(text, -1)
	return
}

// ParseValue decodes a value literal into a vector of size bits.
//
// "0x" hex follows bitvec.FromHexStringWidth: at most one digit per 4 bits
// of size, with bits of the top digit beyond size dropped. "0b" binary and
// decimal values are zero extended and fail with bitvec.ErrOversizedLiteral
// when they need more than size bits. '_' may separate digits. A negative
// size only checks the syntax and returns a nil vector.
func ParseValue(text string, size int) (value *bitvec.Vector, err error) {
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "0x"):
		digits := strings.ReplaceAll(text[2:], "_", "")
		if len(digits) == 0 {
			err = fmt.Errorf("%w: '%v'", ErrValueSyntax, text)
			return
		}
		if size < 0 {
			_, err = bitvec.FromHexString(digits)
			return
		}
		value, err = bitvec.FromHexStringWidth(digits, size)
	case strings.HasPrefix(lower, "0b"):
		digits := strings.ReplaceAll(text[2:], "_", "")
		if len(digits) == 0 || strings.Trim(digits, "01") != "" {
			err = fmt.Errorf("%w: '%v'", ErrValueSyntax, text)
			return
		}
		if size < 0 {
			return
		}
		value, err = bitvec.FromBinaryStringWidth(digits, size)
	default:
		x, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), 10)
		if !ok {
			err = fmt.Errorf("%w: '%v'", ErrValueSyntax, text)
			return
		}
		if x.Sign() < 0 {
			err = fmt.Errorf("%w: '%v'", bitvec.ErrNegative, text)
			return
		}
		if size < 0 {
			return
		}
		if x.BitLen() > size {
			err = &bitvec.ErrLiteral{Literal: text, Need: x.BitLen(), Size: size}
			return
		}
		if size == 0 {
			value = bitvec.FromBinaryString("")
			return
		}
		value, err = bitvec.FromBig(x, size)
	}

	return
}
