package image

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/nrfcfg/bitvec"
)

// VERSION of the encoded image format.
const VERSION = 1

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: cbor encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("image: cbor decoder mode: %v", err))
	}
}

type wireImage struct {
	Version int         `cbor:"1,keyasint"`
	Entries []wireEntry `cbor:"2,keyasint"`
}

type wireEntry struct {
	Address int    `cbor:"1,keyasint"`
	Name    string `cbor:"2,keyasint,omitempty"`
	Size    int    `cbor:"3,keyasint"`
	Value   []byte `cbor:"4,keyasint"`
}

// Encode writes the image to w as a single canonical CBOR item. Register
// values are stored as their SPI payload bytes.
func Encode(w io.Writer, img Image) (err error) {
	wire := wireImage{
		Version: VERSION,
		Entries: make([]wireEntry, 0, len(img)),
	}

	for _, entry := range img {
		wire.Entries = append(wire.Entries, wireEntry{
			Address: entry.Address,
			Name:    entry.Name,
			Size:    entry.Value.Size(),
			Value:   entry.Payload(),
		})
	}

	return encMode.NewEncoder(w).Encode(&wire)
}

// Decode reads one image written by Encode.
func Decode(r io.Reader) (img Image, err error) {
	var wire wireImage

	err = decMode.NewDecoder(r).Decode(&wire)
	if err != nil {
		return
	}

	if wire.Version != VERSION {
		err = fmt.Errorf("%w: %d", ErrImageVersion, wire.Version)
		return
	}

	img = make(Image, 0, len(wire.Entries))
	for _, entry := range wire.Entries {
		if len(entry.Value) != (entry.Size+7)/8 {
			err = &ErrEntry{Address: entry.Address, Name: entry.Name, Err: ErrImageEntry}
			img = nil
			return
		}

		var value *bitvec.Vector
		value, err = bitvec.FromBytes(entry.Value, entry.Size)
		if err != nil {
			err = &ErrEntry{Address: entry.Address, Name: entry.Name, Err: err}
			img = nil
			return
		}

		img = append(img, Entry{
			Address: entry.Address,
			Name:    entry.Name,
			Value:   value,
		})
	}

	return
}
