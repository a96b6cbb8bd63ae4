// Package image captures and restores register values of a schema, and
// renders them as nRF24L01+ SPI register writes.
package image

import (
	"fmt"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/spi"
)

// Entry is the value of one register.
type Entry struct {
	Address int
	Name    string
	Value   *bitvec.Vector
}

// Image is an ordered list of register values.
type Image []Entry

// Payload returns the SPI payload of the register value, least significant
// byte first.
func (e Entry) Payload() []byte {
	return e.Value.Bytes()
}

// Frame returns the complete SPI write transaction for the register: the
// W_REGISTER command byte followed by the payload.
func (e Entry) Frame() []byte {
	return spi.WriteRegister(uint8(e.Address), e.Payload())
}

// String returns "0xAA NAME VALUE".
func (e Entry) String() string {
	return fmt.Sprintf("0x%02X %v %v", e.Address, e.Name, e.Value)
}

func capture(schema *register.Schema, keep func(reg *register.Register) bool) (img Image) {
	for _, reg := range schema.Registers() {
		if !keep(reg) {
			continue
		}
		img = append(img, Entry{
			Address: reg.Address(),
			Name:    reg.Name(),
			Value:   reg.Value(),
		})
	}

	return
}

// Capture snapshots every register of the schema, in declaration order.
func Capture(schema *register.Schema) Image {
	return capture(schema, func(*register.Register) bool { return true })
}

// CaptureDirty snapshots only the registers that differ from their power-on
// value.
func CaptureDirty(schema *register.Schema) Image {
	return capture(schema, (*register.Register).Dirty)
}

// Apply writes the image values into the schema. Every entry is checked
// before any register is written, so on error the schema is unchanged.
func Apply(schema *register.Schema, img Image) (err error) {
	regs := make([]*register.Register, len(img))

	for n, entry := range img {
		var reg *register.Register
		reg, err = schema.RegisterAt(entry.Address)
		if err != nil || (len(entry.Name) > 0 && entry.Name != reg.Name()) {
			err = &ErrEntry{Address: entry.Address, Name: entry.Name, Err: ErrUnknownRegister}
			return
		}

		if entry.Value == nil || entry.Value.Size() != reg.Size() {
			got := 0
			if entry.Value != nil {
				got = entry.Value.Size()
			}
			err = &ErrEntry{
				Address: entry.Address,
				Name:    entry.Name,
				Err:     &register.ErrWidth{Name: reg.Name(), Want: reg.Size(), Got: got},
			}
			return
		}

		regs[n] = reg
	}

	for n, reg := range regs {
		// Widths were checked above.
		_ = reg.SetValue(img[n].Value)
	}

	return
}

// Frames returns the SPI write transactions of every entry, in order.
func (img Image) Frames() (frames [][]byte) {
	for _, entry := range img {
		frames = append(frames, entry.Frame())
	}

	return
}
