// Package nrf24 describes the configuration registers of the Nordic
// nRF24L01+ 2.4GHz transceiver.
package nrf24

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

//go:embed nrf24.yaml
var table []byte

// Pipes is the number of receive data pipes.
const Pipes = 6

// New builds a fresh schema of the nRF24L01+ registers at their power-on
// values. Each call returns an independent schema.
func New() (*register.Schema, error) {
	return register.LoadYAML(bytes.NewReader(table))
}

// AddressPrefix returns the hex text of the 4 address bytes that receive
// pipes 2 to 5 share with pipe 1. Pipes 0 and 1 have no shared prefix and
// return "". RX_ADDR_P1 must be 40 bits wide.
func AddressPrefix(schema *register.Schema, pipe int) (prefix string, err error) {
	if pipe < 2 || pipe >= Pipes {
		return
	}

	p1, err := schema.Field("RX_ADDR_P1")
	if err != nil {
		return
	}

	if p1.Size() != 40 {
		err = &register.ErrWidth{Name: "RX_ADDR_P1", Want: 40, Got: p1.Size()}
		return
	}

	prefix = p1.HexString()[:8]
	return
}

// Address returns the full 40 bit receive address of a pipe. Pipes 2 to 5
// only store their least significant byte, the rest comes from pipe 1.
func Address(schema *register.Schema, pipe int) (addr *bitvec.Vector, err error) {
	if pipe < 0 || pipe >= Pipes {
		err = register.ErrFieldMissing(fmt.Sprintf("RX_ADDR_P%d", pipe))
		return
	}

	own, err := schema.Field(fmt.Sprintf("RX_ADDR_P%d", pipe))
	if err != nil {
		return
	}

	if pipe < 2 {
		addr = own.Bits()
		return
	}

	p1, err := schema.Field("RX_ADDR_P1")
	if err != nil {
		return
	}

	addr = p1.Bits()
	err = addr.SetRange(0, own.Bits())
	return
}

// AddressWidth returns the configured address width in bytes, or 0 when
// SETUP_AW holds the illegal value.
func AddressWidth(schema *register.Schema) (width int, err error) {
	aw, err := schema.Field("AW")
	if err != nil {
		return
	}

	value, err := aw.Uint()
	if err != nil || value == 0 {
		return
	}

	width = int(value) + 2
	return
}

// ChannelMHz returns the RF channel frequency in MHz.
func ChannelMHz(schema *register.Schema) (mhz int, err error) {
	ch, err := schema.Field("RF_CH")
	if err != nil {
		return
	}

	value, err := ch.Uint()
	if err != nil {
		return
	}

	mhz = 2400 + int(value)
	return
}

// DataRate returns the air data rate in kbps selected by RF_DR_LOW and
// RF_DR_HIGH. The reserved combination of both bits set returns 0.
func DataRate(schema *register.Schema) (kbps int, err error) {
	low, err := schema.Field("RF_DR_LOW")
	if err != nil {
		return
	}
	high, err := schema.Field("RF_DR_HIGH")
	if err != nil {
		return
	}

	lo, _ := low.Uint()
	hi, _ := high.Uint()
	switch {
	case lo == 1 && hi == 1:
	case lo == 1:
		kbps = 250
	case hi == 1:
		kbps = 2000
	default:
		kbps = 1000
	}

	return
}
