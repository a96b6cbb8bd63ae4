package session

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/translate"
)

func newTable(w io.Writer) (tw *tabwriter.Writer, err error) {
	tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	_, err = translate.Fprintf(tw, "Addr\tRegister\tField\tValue\tBits\n")
	return
}

func writeRegister(tw io.Writer, reg *register.Register) (err error) {
	mark := ""
	if reg.Dirty() {
		mark = " *"
	}

	value := reg.Value()
	_, err = fmt.Fprintf(tw, "0x%02X\t%v\t\t%v%v\t%v\n",
		reg.Address(), reg.Name(), value.HexString(), mark, value.BinaryString())
	if err != nil {
		return
	}

	for fl := range reg.All() {
		_, err = fmt.Fprintf(tw, "\t\t%v\t%v\t\n", fl, fl.Text())
		if err != nil {
			return
		}
	}

	return
}

// summarize writes the table of a single register.
func summarize(w io.Writer, reg *register.Register) (err error) {
	tw, err := newTable(w)
	if err != nil {
		return
	}

	err = writeRegister(tw, reg)
	if err != nil {
		return
	}

	return tw.Flush()
}

// Summary writes a table of every register: address, name, hex value and
// bits, then one row per field. Registers that differ from their power-on
// value are marked with '*'.
func (s *Session) Summary(w io.Writer) (err error) {
	tw, err := newTable(w)
	if err != nil {
		return
	}

	for _, reg := range s.Schema.Registers() {
		err = writeRegister(tw, reg)
		if err != nil {
			return
		}
	}

	return tw.Flush()
}
