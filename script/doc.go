// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script parses register configuration scripts.
//
// A script is line oriented text. A ';' starts a comment.
//
//	.equ CHANNEL 76
//	.macro crc BYTES
//	set EN_CRC 1
//	set CRCO $(BYTES - 1)
//	.endm
//
//	reset
//	set RF_CH $(CHANNEL + 2)
//	set TX_ADDR 0xE7E7E7E7E7
//	set CONFIG 0b0000_1010
//	crc 2
//	show CONFIG
//	expect PWR_UP 1
//
// A command is set, reset, show or expect, or the name of a macro. Macro
// arguments are substituted word by word, like equates.
//
// Values are written as 0x hex (sized to the field), 0b binary or decimal.
// A $(...) expression is evaluated as Starlark with the integer equates
// predeclared, and replaced by its decimal value.
package script
