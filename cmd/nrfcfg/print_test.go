package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nrfcfg/image"
	"github.com/ezrec/nrfcfg/nrf24"
	"github.com/ezrec/nrfcfg/spi"
)

func TestPrintForm(t *testing.T) {
	assert := assert.New(t)

	schema, err := nrf24.New()
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(printForm(&buf, schema))

	text := buf.String()
	assert.True(strings.HasPrefix(text, "General\n  [ ] Power up module\n  Primary transmitter [PRIM_RX=0]\n"))
	assert.Contains(text, "  [x] Reflect RX_DR status bit on active low IRQ line\n")
	assert.Contains(text, "  Channel: 2402 MHz [RF_CH=0000010]\n")
	assert.Contains(text, "RX Pipe 3\n  [ ] Enable\n  RX address: C2C2C2C2C4\n")
	assert.Contains(text, "  TX address: E7E7E7E7E7\n")
}

func TestPrintFrames(t *testing.T) {
	assert := assert.New(t)

	schema, err := nrf24.New()
	assert.NoError(err)

	ch, _ := schema.Field("RF_CH")
	assert.NoError(ch.SetUint(76))
	tx, _ := schema.Field("TX_ADDR")
	assert.NoError(tx.SetHexString("0123456789"))

	var buf bytes.Buffer
	assert.NoError(printFrames(&buf, image.CaptureDirty(schema)))
	assert.Equal("RF_CH      25 4C\nTX_ADDR    30 89 67 45 23 01\n", buf.String())
}

func TestPrintStatus(t *testing.T) {
	assert := assert.New(t)

	schema, err := nrf24.New()
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(printStatus(&buf, schema))
	assert.Equal("2402 MHz, 2000 kbps, 5 byte addresses, 0 registers changed\n", buf.String())
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	schema, err := nrf24.New()
	assert.NoError(err)
	tx, _ := schema.Field("TX_ADDR")
	assert.NoError(tx.SetHexString("0123456789"))
	aw, _ := schema.Field("AW")
	assert.NoError(aw.SetUint(1))

	fresh, err := nrf24.New()
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(verify(&buf, schema, fresh))
	assert.Equal("22 registers verified over SPI\n", buf.String())
	assert.Len(fresh.Dirty(), 2)
}

func TestVerify_Mismatch(t *testing.T) {
	assert := assert.New(t)

	schema, err := nrf24.New()
	assert.NoError(err)

	// The device model starts from a different state.
	fresh, err := nrf24.New()
	assert.NoError(err)
	ch, _ := fresh.Field("RF_CH")
	assert.NoError(ch.SetUint(76))

	var buf bytes.Buffer
	err = verify(&buf, schema, fresh)
	assert.ErrorIs(err, spi.ErrReadback)
	assert.Equal("", buf.String())
}
