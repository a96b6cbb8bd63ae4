package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/nrfcfg/image"
	"github.com/ezrec/nrfcfg/nrf24"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/spi"
	"github.com/ezrec/nrfcfg/translate"
)

// printForm writes every section of the configuration form with the
// current state of its controls. Controls whose field is missing from the
// schema are skipped.
func printForm(w io.Writer, schema *register.Schema) (err error) {
	for n, section := range nrf24.Form() {
		if n > 0 {
			_, err = fmt.Fprintln(w)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "%v\n", section.Title)
		if err != nil {
			return
		}

		for _, c := range section.Controls {
			var text string
			text, err = c.Render(schema)
			if err != nil {
				err = nil
				continue
			}

			switch c.Kind {
			case nrf24.Checkbox:
				_, err = fmt.Fprintf(w, "  %v %v\n", text, c.Label)
			case nrf24.Dropdown:
				_, err = fmt.Fprintf(w, "  %v\n", text)
			default:
				_, err = fmt.Fprintf(w, "  %v: %v\n", c.Label, text)
			}
			if err != nil {
				return
			}
		}
	}

	return
}

// printFrames writes one SPI write transaction per line, as hex bytes.
func printFrames(w io.Writer, img image.Image) (err error) {
	for _, entry := range img {
		var hex []string
		for _, b := range entry.Frame() {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		_, err = fmt.Fprintf(w, "%-10v %v\n", entry.Name, strings.Join(hex, " "))
		if err != nil {
			return
		}
	}

	return
}

// printStatus writes a one line digest of the radio settings.
func printStatus(w io.Writer, schema *register.Schema) (err error) {
	mhz, err := nrf24.ChannelMHz(schema)
	if err != nil {
		return
	}
	kbps, err := nrf24.DataRate(schema)
	if err != nil {
		return
	}
	width, err := nrf24.AddressWidth(schema)
	if err != nil {
		return
	}

	// Numbers are pre-formatted to avoid locale digit grouping.
	_, err = translate.Fprintf(w, "%v MHz, %v kbps, %d byte addresses, %d registers changed\n",
		strconv.Itoa(mhz), strconv.Itoa(kbps), width, len(schema.Dirty()))
	return
}

// verify replays the SPI write frames of the changed registers of schema
// into a device model over fresh, a power-on copy of the same table, then
// reads every register back over SPI and compares it.
func verify(w io.Writer, schema, fresh *register.Schema) (err error) {
	dev := spi.NewDevice(fresh)

	err = dev.Program(image.CaptureDirty(schema).Frames())
	if err != nil {
		return
	}

	for _, reg := range schema.Registers() {
		want := reg.Value().Bytes()

		var miso []byte
		miso, err = dev.Transfer(spi.ReadRegister(uint8(reg.Address()), len(want)))
		if err != nil {
			return
		}

		if !bytes.Equal(miso[1:], want) {
			err = fmt.Errorf("%w: %v reads % X, expected % X", spi.ErrReadback, reg, miso[1:], want)
			return
		}
	}

	_, err = translate.Fprintf(w, "%d registers verified over SPI\n", len(schema.Registers()))
	return
}
