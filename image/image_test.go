package image

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/nrf24"
	"github.com/ezrec/nrfcfg/register"
)

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestCapture(t *testing.T) {
	assert := assert.New(t)

	schema := must(nrf24.New())

	img := Capture(schema)
	assert.Len(img, len(schema.Registers()))
	assert.Equal(0x00, img[0].Address)
	assert.Equal("CONFIG", img[0].Name)
	assert.Equal("08", img[0].Value.HexString())

	// The image holds copies.
	assert.NoError(img[0].Value.SetBit(1, true))
	config := must(schema.Register("CONFIG"))
	assert.Equal("08", config.Value().HexString())

	assert.Len(CaptureDirty(schema), 0)

	pwr := must(schema.Field("PWR_UP"))
	assert.NoError(pwr.SetUint(1))
	dirty := CaptureDirty(schema)
	if assert.Len(dirty, 1) {
		assert.Equal("0x00 CONFIG 0A", dirty[0].String())
	}
}

func TestEntry_Payload(t *testing.T) {
	assert := assert.New(t)

	entry := Entry{
		Address: 0x10,
		Name:    "TX_ADDR",
		Value:   must(bitvec.FromHexString("0123456789")),
	}

	assert.Equal([]byte{0x89, 0x67, 0x45, 0x23, 0x01}, entry.Payload())
	assert.Equal([]byte{0x30, 0x89, 0x67, 0x45, 0x23, 0x01}, entry.Frame())

	img := Image{entry, {Address: 0x05, Name: "RF_CH", Value: must(bitvec.FromUint(76, 8))}}
	assert.Equal([][]byte{
		{0x30, 0x89, 0x67, 0x45, 0x23, 0x01},
		{0x25, 76},
	}, img.Frames())
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	src := must(nrf24.New())
	ch := must(src.Field("RF_CH"))
	assert.NoError(ch.SetUint(76))
	tx := must(src.Field("TX_ADDR"))
	assert.NoError(tx.SetHexString("0123456789"))

	dst := must(nrf24.New())
	assert.NoError(Apply(dst, Capture(src)))

	assert.Equal("0123456789", must(dst.Field("TX_ADDR")).HexString())
	assert.Equal(uint64(76), must(must(dst.Field("RF_CH")).Uint()))
}

func TestApply_Errors(t *testing.T) {
	assert := assert.New(t)

	schema := must(nrf24.New())

	good := Entry{Address: 0x05, Name: "RF_CH", Value: must(bitvec.FromUint(76, 8))}

	err := Apply(schema, Image{good, {Address: 0x07, Value: must(bitvec.New(8))}})
	assert.True(errors.Is(err, ErrUnknownRegister))

	err = Apply(schema, Image{good, {Address: 0x05, Name: "CONFIG", Value: must(bitvec.New(8))}})
	assert.True(errors.Is(err, ErrUnknownRegister))

	err = Apply(schema, Image{good, {Address: 0x10, Value: must(bitvec.New(8))}})
	assert.True(errors.Is(err, register.ErrWidthMismatch))

	err = Apply(schema, Image{good, {Address: 0x10}})
	assert.True(errors.Is(err, register.ErrWidthMismatch))

	var entry *ErrEntry
	assert.True(errors.As(err, &entry))
	assert.Equal(0x10, entry.Address)

	// Nothing was written.
	assert.Equal(uint64(2), must(must(schema.Field("RF_CH")).Uint()))
}

func TestEncode_Decode(t *testing.T) {
	assert := assert.New(t)

	src := must(nrf24.New())
	assert.NoError(must(src.Field("TX_ADDR")).SetHexString("0123456789"))
	assert.NoError(must(src.Field("ARD")).SetUint(5))

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, Capture(src)))

	var again bytes.Buffer
	assert.NoError(Encode(&again, Capture(src)))
	assert.Equal(buf.Bytes(), again.Bytes())

	img, err := Decode(&buf)
	assert.NoError(err)

	dst := must(nrf24.New())
	assert.NoError(Apply(dst, img))

	for _, reg := range src.Registers() {
		other := must(dst.RegisterAt(reg.Address()))
		assert.True(reg.Value().Equal(other.Value()), reg.Name())
	}
}

func TestDecode_Errors(t *testing.T) {
	assert := assert.New(t)

	data, err := encMode.Marshal(&wireImage{Version: 99})
	assert.NoError(err)
	_, err = Decode(bytes.NewReader(data))
	assert.True(errors.Is(err, ErrImageVersion))

	data, err = encMode.Marshal(&wireImage{
		Version: VERSION,
		Entries: []wireEntry{{Address: 0x05, Size: 8, Value: []byte{1, 2}}},
	})
	assert.NoError(err)
	_, err = Decode(bytes.NewReader(data))
	assert.True(errors.Is(err, ErrImageEntry))

	data, err = encMode.Marshal(&wireImage{
		Version: VERSION,
		Entries: []wireEntry{{Address: 0x05, Size: 0, Value: []byte{}}},
	})
	assert.NoError(err)
	_, err = Decode(bytes.NewReader(data))
	assert.True(errors.Is(err, bitvec.ErrInvalidWidth))

	_, err = Decode(bytes.NewReader([]byte{0xff}))
	assert.Error(err)
}

func TestCapture_WideAddress(t *testing.T) {
	assert := assert.New(t)

	build := func() *register.Schema {
		return must(register.NewBuilder().
			Register(0x00, "LOW", 8, nil).
			Register(0x100, "HIGH", 8, nil).
			Build())
	}

	src := build()
	assert.NoError(must(src.Register("HIGH")).SetValue(must(bitvec.FromUint(0x55, 8))))

	img := Capture(src)
	if assert.Len(img, 2) {
		assert.Equal(0x100, img[1].Address)
	}

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, img))
	decoded, err := Decode(&buf)
	assert.NoError(err)

	dst := build()
	assert.NoError(Apply(dst, decoded))
	assert.Equal("55", must(dst.Register("HIGH")).Value().HexString())
	assert.Equal("00", must(dst.Register("LOW")).Value().HexString())
}
