package nrf24

import (
	"errors"
)

var (
	ErrNotCheckbox = errors.New(f("control is not a checkbox"))
)
