package session

import (
	"errors"

	"github.com/ezrec/nrfcfg/translate"
)

var f = translate.From

var (
	ErrInputRejected = errors.New(f("input rejected"))
	ErrExpectation   = errors.New(f("expectation failed"))
)

// ErrRejected reports a write whose value could not be decoded for its
// destination. The schema is left unchanged.
type ErrRejected struct {
	Name  string
	Value string
	Err   error
}

func (err *ErrRejected) Error() string {
	return f("%v = '%v' rejected: %v", err.Name, err.Value, err.Err)
}

func (err *ErrRejected) Is(target error) bool {
	return target == ErrInputRejected
}

func (err *ErrRejected) Unwrap() error {
	return err.Err
}

// ErrMismatch reports an expect command that did not hold.
type ErrMismatch struct {
	Name string
	Want string
	Got  string
}

func (err *ErrMismatch) Error() string {
	return f("%v is %v, expected %v", err.Name, err.Got, err.Want)
}

func (err *ErrMismatch) Unwrap() error {
	return ErrExpectation
}

// ErrRuntime indicates the script line of a failed command.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
