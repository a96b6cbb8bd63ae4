package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("register CONFIG", From("register %v", "CONFIG"))
	assert.Equal("plain", From("plain"))
}

func TestFprintf(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	n, err := Fprintf(buf, "0x%02X %v", 0x1d, "FEATURE")
	assert.NoError(err)
	assert.Equal(buf.Len(), n)
	assert.Equal("0x1D FEATURE", buf.String())
}

func TestNewPrinter(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(NewPrinter())
}
