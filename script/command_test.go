package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nrfcfg/bitvec"
)

func TestParseValue(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text   string
		size   int
		binary string
	}{
		{"0x08", 8, "00001000"},
		{"0X8", 8, "00001000"},
		{"0xe7", 8, "11100111"},
		{"0xF", 3, "111"},
		{"0xE7E7_E7E7_E7", 40, "1110011111100111111001111110011111100111"},
		{"0b1", 2, "01"},
		{"0b0000_1010", 8, "00001010"},
		{"0", 1, "0"},
		{"76", 7, "1001100"},
		{"1_000", 10, "1111101000"},
	}

	for _, entry := range table {
		value, err := ParseValue(entry.text, entry.size)
		if assert.NoError(err, entry.text) {
			assert.Equal(entry.binary, value.BinaryString(), entry.text)
		}
	}
}

func TestParseValue_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		size int
		err  error
	}{
		{"0x100", 8, bitvec.ErrOversizedLiteral},
		{"0xFFF", 8, bitvec.ErrOversizedLiteral},
		{"0xG", 8, bitvec.ErrInvalidDigit},
		{"0b111", 2, bitvec.ErrOversizedLiteral},
		{"0b2", 2, ErrValueSyntax},
		{"128", 7, bitvec.ErrOversizedLiteral},
		{"-1", 8, bitvec.ErrNegative},
		{"0x", 8, ErrValueSyntax},
		{"", 8, ErrValueSyntax},
	}

	for _, entry := range table {
		_, err := ParseValue(entry.text, entry.size)
		assert.ErrorIs(err, entry.err, entry.text)
	}
}

func TestParseValue_SyntaxOnly(t *testing.T) {
	assert := assert.New(t)

	value, err := ParseValue("0xFFFFFFFFFFFFFFFFFFFF", -1)
	assert.NoError(err)
	assert.Nil(value)

	assert.NoError(checkValue("12345678901234567890123"))
	assert.ErrorIs(checkValue("0xQ"), bitvec.ErrInvalidDigit)
}

func TestOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("set", OpSet.String())
	assert.Equal("reset", OpReset.String())
	assert.Equal("show", OpShow.String())
	assert.Equal("expect", OpExpect.String())
	assert.Equal("Op(9)", Op(9).String())
}
