package spi

import (
	"errors"

	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

var (
	ErrNotSelected     = errors.New(f("device not selected"))
	ErrSelected        = errors.New(f("device already selected"))
	ErrCommandInvalid  = errors.New(f("command invalid"))
	ErrShortWrite      = errors.New(f("write shorter than register"))
	ErrRegisterUnknown = errors.New(f("register unknown"))
	ErrFifoFull        = errors.New(f("fifo full"))
	ErrPayloadSize     = errors.New(f("payload size invalid"))
	ErrReadback        = errors.New(f("readback mismatch"))
)

// ErrTransaction locates a failed SPI transaction by its command byte.
type ErrTransaction struct {
	Command byte
	Err     error
}

func (err *ErrTransaction) Error() string {
	return f("command 0x%02X: %v", err.Command, err.Err)
}

func (err *ErrTransaction) Unwrap() error {
	return err.Err
}
