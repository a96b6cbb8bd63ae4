// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package spi

import (
	"log"
	"slices"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/register"
)

// Device models the SPI slave of an nRF24L01+: its configuration
// registers, STATUS, and the TX and RX payload FIFOs.
//
// Bits are shifted most significant first. Every byte shifted in returns a
// byte shifted out: the STATUS register during the command byte, then the
// command's reply. Writes take effect when the device is deselected.
type Device struct {
	Verbose bool             // If set, logs every transaction.
	Schema  *register.Schema // Configuration registers.

	TxFifo [][]byte // Pending transmit payloads, oldest first.
	RxFifo [][]byte // Received payloads, oldest first.

	irq     uint8 // Pending STATUS interrupt bits.
	txReuse bool

	selected bool
	bitIndex int
	inByte   byte
	outByte  byte
	count    int
	command  byte
	data     []byte
	reply    []byte
}

// NewDevice creates a device over schema.
func NewDevice(schema *register.Schema) *Device {
	return &Device{
		Schema: schema,
	}
}

// Status returns the STATUS register.
func (dev *Device) Status() (status uint8) {
	status = dev.irq
	if len(dev.RxFifo) == 0 {
		status |= STATUS_RX_P_NO
	}
	if len(dev.TxFifo) >= FIFO_DEPTH {
		status |= STATUS_TX_FULL
	}
	return
}

// FifoStatus returns the FIFO_STATUS register.
func (dev *Device) FifoStatus() (status uint8) {
	if dev.txReuse {
		status |= FIFO_TX_REUSE
	}
	switch len(dev.TxFifo) {
	case 0:
		status |= FIFO_TX_EMPTY
	case FIFO_DEPTH:
		status |= FIFO_TX_FULL
	}
	switch len(dev.RxFifo) {
	case 0:
		status |= FIFO_RX_EMPTY
	case FIFO_DEPTH:
		status |= FIFO_RX_FULL
	}
	return
}

// Receive places a payload in the RX FIFO, as if it arrived over the air,
// and raises RX_DR.
func (dev *Device) Receive(payload []byte) (err error) {
	if len(payload) == 0 || len(payload) > PAYLOAD_MAX {
		err = ErrPayloadSize
		return
	}
	if len(dev.RxFifo) >= FIFO_DEPTH {
		err = ErrFifoFull
		return
	}

	dev.RxFifo = append(dev.RxFifo, slices.Clone(payload))
	dev.irq |= STATUS_RX_DR
	return
}

// Select asserts chip select, starting a transaction.
func (dev *Device) Select() (err error) {
	if dev.selected {
		err = ErrSelected
		return
	}

	dev.selected = true
	dev.bitIndex = 0
	dev.inByte = 0
	dev.outByte = dev.Status()
	dev.count = 0
	dev.command = NOP
	dev.data = nil
	dev.reply = nil

	return
}

// Shift exchanges one bit: mosi is shifted in, and the returned bit is
// shifted out.
func (dev *Device) Shift(mosi bool) (miso bool, err error) {
	if !dev.selected {
		err = ErrNotSelected
		return
	}

	shift := 7 - dev.bitIndex
	miso = (dev.outByte>>shift)&1 == 1
	if mosi {
		dev.inByte |= 1 << shift
	}

	dev.bitIndex++
	if dev.bitIndex == 8 {
		dev.byteDone(dev.inByte)
		dev.bitIndex = 0
		dev.inByte = 0
	}

	return
}

// byteDone handles a complete byte shifted in, and loads the next byte to
// shift out.
func (dev *Device) byteDone(in byte) {
	if dev.count == 0 {
		dev.command = in
		dev.reply = dev.prepare(in)
	} else {
		dev.data = append(dev.data, in)
	}

	dev.outByte = 0
	if dev.count < len(dev.reply) {
		dev.outByte = dev.reply[dev.count]
	}
	dev.count++
}

// readRegister returns the current bytes of a register, least significant
// first.
func (dev *Device) readRegister(address uint8) (value []byte, ok bool) {
	switch address {
	case STATUS:
		return []byte{dev.Status()}, true
	case FIFO_STATUS:
		return []byte{dev.FifoStatus()}, true
	}

	reg, err := dev.Schema.RegisterAt(int(address))
	if err != nil {
		return
	}

	return reg.Value().Bytes(), true
}

// prepare returns the reply bytes of a command.
func (dev *Device) prepare(command byte) (reply []byte) {
	switch {
	case command&^REGISTER_MASK == R_REGISTER:
		reply, _ = dev.readRegister(command & REGISTER_MASK)
	case command == R_RX_PAYLOAD:
		if len(dev.RxFifo) > 0 {
			reply = dev.RxFifo[0]
		}
	case command == R_RX_PL_WID:
		if len(dev.RxFifo) > 0 {
			reply = []byte{uint8(len(dev.RxFifo[0]))}
		}
	}

	return
}

// Deselect releases chip select, completing the transaction.
func (dev *Device) Deselect() (err error) {
	if !dev.selected {
		err = ErrNotSelected
		return
	}

	dev.selected = false

	if dev.count == 0 {
		return
	}

	command := dev.command
	defer func() {
		if err != nil {
			err = &ErrTransaction{Command: command, Err: err}
		}
	}()

	if dev.Verbose {
		log.Printf("spi: 0x%02X % X", command, dev.data)
	}

	switch {
	case command&^REGISTER_MASK == R_REGISTER:
		_, ok := dev.readRegister(command & REGISTER_MASK)
		if !ok {
			err = ErrRegisterUnknown
		}
	case command&^REGISTER_MASK == W_REGISTER:
		err = dev.writeRegister(command&REGISTER_MASK, dev.data)
	case command == R_RX_PAYLOAD:
		if len(dev.RxFifo) > 0 {
			dev.RxFifo = dev.RxFifo[1:]
		}
	case command == W_TX_PAYLOAD, command == W_TX_PAYLOAD_NOACK, command&^7 == W_ACK_PAYLOAD:
		err = dev.pushTx(dev.data)
	case command == FLUSH_TX:
		dev.TxFifo = nil
		dev.txReuse = false
	case command == FLUSH_RX:
		dev.RxFifo = nil
	case command == REUSE_TX_PL:
		dev.txReuse = true
	case command == R_RX_PL_WID, command == NOP:
	default:
		err = ErrCommandInvalid
	}

	return
}

func (dev *Device) pushTx(payload []byte) (err error) {
	if len(payload) == 0 || len(payload) > PAYLOAD_MAX {
		err = ErrPayloadSize
		return
	}
	if len(dev.TxFifo) >= FIFO_DEPTH {
		err = ErrFifoFull
		return
	}

	dev.TxFifo = append(dev.TxFifo, payload)
	dev.txReuse = false
	return
}

func (dev *Device) writeRegister(address uint8, data []byte) (err error) {
	switch address {
	case STATUS:
		if len(data) == 0 {
			err = ErrShortWrite
			return
		}
		// Interrupt bits are cleared by writing 1.
		dev.irq &^= data[0] & STATUS_IRQ
		return
	case FIFO_STATUS:
		return
	}

	reg, err := dev.Schema.RegisterAt(int(address))
	if err != nil {
		err = ErrRegisterUnknown
		return
	}

	if len(data)*8 < reg.Size() {
		err = ErrShortWrite
		return
	}

	value, err := bitvec.FromBytes(data, reg.Size())
	if err != nil {
		return
	}

	return reg.SetValue(value)
}

// Transfer runs one complete transaction, returning the bytes shifted out.
func (dev *Device) Transfer(mosi []byte) (miso []byte, err error) {
	err = dev.Select()
	if err != nil {
		return
	}

	miso = make([]byte, len(mosi))
	for n, out := range mosi {
		for shift := 7; shift >= 0; shift-- {
			// Shift cannot fail while selected.
			bit, _ := dev.Shift((out>>shift)&1 == 1)
			if bit {
				miso[n] |= 1 << shift
			}
		}
	}

	err = dev.Deselect()
	return
}

// Program runs each frame as its own transaction, stopping at the first
// error.
func (dev *Device) Program(frames [][]byte) (err error) {
	for _, frame := range frames {
		_, err = dev.Transfer(frame)
		if err != nil {
			return
		}
	}

	return
}
