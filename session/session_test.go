package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/nrf24"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/script"
)

func newSession(t *testing.T) (s *Session, notified *int) {
	schema, err := nrf24.New()
	if err != nil {
		t.Fatal(err)
	}

	s = New(schema)
	notified = new(int)
	s.Observers.Add(func() { *notified++ })

	return
}

func fieldText(t *testing.T, s *Session, name string) string {
	fl, err := s.Schema.Field(name)
	if err != nil {
		t.Fatal(err)
	}
	return fl.Text()
}

func TestSession_Set(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	assert.NoError(s.Set("TX_ADDR", "0x0123456789"))
	assert.Equal("0123456789", fieldText(t, s, "TX_ADDR"))
	assert.Equal(1, *notified)

	assert.NoError(s.Set("RF_CH", "76"))
	assert.Equal("1001100", fieldText(t, s, "RF_CH"))
	assert.Equal(2, *notified)

	// Whole register write when the name is not a field.
	assert.NoError(s.Set("CONFIG", "0b0000_1010"))
	assert.Equal("1", fieldText(t, s, "PWR_UP"))
	assert.Equal(3, *notified)
}

func TestSession_Set_Rejected(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	table := []struct {
		name string
		text string
		err  error
	}{
		{"TX_ADDR", "0xE7E7E7E7EG", bitvec.ErrInvalidDigit},
		{"TX_ADDR", "0x0123456789AB", bitvec.ErrOversizedLiteral},
		{"RF_CH", "128", bitvec.ErrOversizedLiteral},
		{"CRCO", "0b11", bitvec.ErrOversizedLiteral},
		{"RF_CH", "seven", script.ErrValueSyntax},
		{"NOPE", "1", register.ErrUnknownField},
	}

	for _, entry := range table {
		err := s.Set(entry.name, entry.text)
		assert.ErrorIs(err, ErrInputRejected, entry.text)
		assert.ErrorIs(err, entry.err, entry.text)

		var rejected *ErrRejected
		if assert.True(errors.As(err, &rejected)) {
			assert.Equal(entry.name, rejected.Name)
			assert.Equal(entry.text, rejected.Value)
		}
	}

	assert.Equal("E7E7E7E7E7", fieldText(t, s, "TX_ADDR"))
	assert.Equal("0000010", fieldText(t, s, "RF_CH"))
	assert.Equal(0, *notified)
	assert.Len(s.Schema.Dirty(), 0)
}

func TestSession_Reset(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	assert.NoError(s.Set("TX_ADDR", "0x0123456789"))
	assert.NoError(s.Set("PWR_UP", "1"))
	assert.NoError(s.Set("PRIM_RX", "1"))

	assert.NoError(s.Reset("PWR_UP"))
	assert.Equal("0", fieldText(t, s, "PWR_UP"))
	assert.Equal("1", fieldText(t, s, "PRIM_RX"))

	assert.NoError(s.Reset("CONFIG"))
	assert.Equal("0", fieldText(t, s, "PRIM_RX"))
	assert.Equal("0123456789", fieldText(t, s, "TX_ADDR"))

	assert.NoError(s.Reset(""))
	assert.Equal("E7E7E7E7E7", fieldText(t, s, "TX_ADDR"))
	assert.Equal(6, *notified)

	assert.ErrorIs(s.Reset("NOPE"), register.ErrUnknownField)
	assert.Equal(6, *notified)
}

func TestSession_Expect(t *testing.T) {
	assert := assert.New(t)

	s, _ := newSession(t)

	assert.NoError(s.Expect("CONFIG", "0x08"))
	assert.NoError(s.Expect("EN_CRC", "1"))
	assert.NoError(s.Expect("RX_ADDR_P1", "0xC2C2C2C2C2"))

	err := s.Expect("EN_CRC", "0")
	assert.ErrorIs(err, ErrExpectation)

	var mismatch *ErrMismatch
	if assert.True(errors.As(err, &mismatch)) {
		assert.Equal("1", mismatch.Got)
		assert.Equal("0", mismatch.Want)
	}

	assert.ErrorIs(s.Expect("EN_CRC", "2"), ErrInputRejected)
	assert.ErrorIs(s.Expect("NOPE", "0"), register.ErrUnknownField)
}

func TestSession_Show(t *testing.T) {
	assert := assert.New(t)

	s, _ := newSession(t)

	var buf bytes.Buffer
	assert.NoError(s.Show(&buf, "RF_CH"))
	text := buf.String()
	assert.True(strings.HasPrefix(text, "Addr"))
	assert.Contains(text, "0x05")
	assert.Contains(text, "RF_CH[6:0]")
	assert.Contains(text, "00000010")
	assert.NotContains(text, "CONFIG")

	buf.Reset()
	assert.NoError(s.Show(&buf, "PWR_UP"))
	assert.Equal("PWR_UP[1] = 0\n", buf.String())

	buf.Reset()
	assert.NoError(s.Show(&buf, "TX_ADDR"))
	assert.Contains(buf.String(), "TX_ADDR[39:0]")

	assert.ErrorIs(s.Show(&buf, "NOPE"), register.ErrUnknownField)
}

func TestSession_Summary(t *testing.T) {
	assert := assert.New(t)

	s, _ := newSession(t)
	assert.NoError(s.Set("PWR_UP", "1"))

	var buf bytes.Buffer
	assert.NoError(s.Summary(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	rows := 1
	for range s.Schema.Fields() {
		rows++
	}
	rows += len(s.Schema.Registers())
	assert.Len(lines, rows)

	assert.Contains(lines[1], "0x00")
	assert.Contains(lines[1], "CONFIG")
	assert.Contains(lines[1], "0A *")
	assert.Contains(buf.String(), "FEATURE")
	assert.NotContains(buf.String(), "0C *")
}

func parse(t *testing.T, lines ...string) *script.Script {
	p := &script.Parser{}
	prog, err := p.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestSession_Run(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	var out bytes.Buffer
	s.Output = &out

	prog := parse(t,
		".equ CHANNEL 76",
		"reset",
		"set RF_CH CHANNEL",
		"set PWR_UP 1",
		"set TX_ADDR 0x0123456789",
		"expect CONFIG 0x0A",
		"show PWR_UP",
	)

	assert.NoError(s.Run(prog))
	assert.Equal(1, *notified)
	assert.Equal("1001100", fieldText(t, s, "RF_CH"))
	assert.Equal("PWR_UP[1] = 1\n", out.String())

	// Read only scripts do not notify.
	assert.NoError(s.Run(parse(t, "show", "expect PWR_UP 1")))
	assert.Equal(1, *notified)
}

func TestSession_Run_Error(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	prog := parse(t,
		"set RF_CH 76",
		"set TX_ADDR 0x0123456789",
		"",
		"set CRCO 0b11",
		"set PWR_UP 1",
	)

	err := s.Run(prog)
	assert.ErrorIs(err, ErrInputRejected)
	assert.ErrorIs(err, bitvec.ErrOversizedLiteral)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(4, runtime.LineNo)
	}

	// The whole burst was rolled back.
	assert.Equal("0000010", fieldText(t, s, "RF_CH"))
	assert.Equal("E7E7E7E7E7", fieldText(t, s, "TX_ADDR"))
	assert.Len(s.Schema.Dirty(), 0)
	assert.Equal(0, *notified)

	err = s.Run(parse(t, "expect EN_CRC 0"))
	assert.ErrorIs(err, ErrExpectation)
}

func TestSession_Run_WideAddress(t *testing.T) {
	assert := assert.New(t)

	table := `
registers:
  - address: 0x100
    name: HIGH
    size: 8
    fields:
      - { name: A, bits: "7:0", hex: true }
  - address: 0x00
    name: LOW
    size: 8
    fields:
      - { name: B, bits: "7:0", hex: true }
`
	schema, err := register.LoadYAML(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	s := New(schema)

	err = s.Run(parse(t, "set A 0x55", "set B 0x12", "expect B 0x13"))
	assert.ErrorIs(err, ErrExpectation)

	a, _ := schema.Field("A")
	b, _ := schema.Field("B")
	assert.Equal("00", a.HexString())
	assert.Equal("00", b.HexString())
	assert.Len(schema.Dirty(), 0)
}

func TestSession_ReentrantObserver(t *testing.T) {
	assert := assert.New(t)

	s, notified := newSession(t)

	// A view that writes while refreshing does not recurse.
	s.Observers.Add(func() {
		assert.NoError(s.Set("PWR_UP", "1"))
	})

	assert.NoError(s.Set("PRIM_RX", "1"))
	assert.Equal(1, *notified)
	assert.Equal("1", fieldText(t, s, "PWR_UP"))
}
