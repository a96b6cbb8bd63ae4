package image

import (
	"errors"

	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

var (
	ErrUnknownRegister = errors.New(f("image register unknown"))
	ErrImageVersion    = errors.New(f("image version unsupported"))
	ErrImageEntry      = errors.New(f("image entry invalid"))
)

// ErrEntry locates an image entry that does not fit the schema.
type ErrEntry struct {
	Address int
	Name    string
	Err     error
}

func (err *ErrEntry) Error() string {
	return f("entry 0x%02X %v: %v", err.Address, err.Name, err.Err)
}

func (err *ErrEntry) Unwrap() error {
	return err.Err
}
