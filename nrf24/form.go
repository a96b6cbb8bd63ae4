package nrf24

import (
	"fmt"

	"github.com/ezrec/nrfcfg/register"
)

// Kind of a form control.
type Kind int

const (
	Checkbox = Kind(iota) // Single bit, on or off.
	Dropdown              // Enumerated field, see Options.
	HexEntry              // Hex text entry.
)

func (k Kind) String() string {
	switch k {
	case Checkbox:
		return "checkbox"
	case Dropdown:
		return "dropdown"
	case HexEntry:
		return "hex"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Control is one entry of the configuration form, bound to a schema field.
type Control struct {
	Kind   Kind
	Label  string
	Field  string
	Prefix int // Pipe whose address shares the RX_ADDR_P1 prefix, or -1.
}

// Section is a titled group of controls.
type Section struct {
	Title    string
	Controls []Control
}

func checkbox(label, field string) Control {
	return Control{Kind: Checkbox, Label: label, Field: field, Prefix: -1}
}

func dropdown(field string) Control {
	return Control{Kind: Dropdown, Label: field, Field: field, Prefix: -1}
}

func hexEntry(label, field string) Control {
	return Control{Kind: HexEntry, Label: label, Field: field, Prefix: -1}
}

// Form returns the configuration form layout, section by section.
func Form() (sections []Section) {
	sections = []Section{
		{Title: f("General"), Controls: []Control{
			checkbox(f("Power up module"), "PWR_UP"),
			dropdown("PRIM_RX"),
		}},
		{Title: f("Features"), Controls: []Control{
			checkbox(f("Enable CRC"), "EN_CRC"),
			dropdown("CRCO"),
			dropdown("AW"),
			dropdown("ARC"),
			dropdown("ARD"),
			checkbox(f("Enable dynamic payload length"), "EN_DPL"),
			checkbox(f("Enable payload in ACK packet"), "EN_ACK_PAY"),
			checkbox(f("Enable the W_TX_PAYLOAD_NOACK command"), "EN_DYN_ACK"),
		}},
		{Title: f("RF"), Controls: []Control{
			dropdown("RF_CH"),
			dropdown("RF_PWR"),
			checkbox(f("Enable continuous carrier transmit (for testing)"), "CONT_WAVE"),
			checkbox(f("Force PLL lock signal (for testing)"), "PLL_LOCK"),
		}},
		{Title: f("Interrupts"), Controls: []Control{
			checkbox(f("Reflect RX_DR status bit on active low IRQ line"), "MASK_RX_DR"),
			checkbox(f("Reflect TX_DS status bit on active low IRQ line"), "MASK_TX_DS"),
			checkbox(f("Reflect MAX_RT status bit on active low IRQ line"), "MASK_MAX_RT"),
		}},
		{Title: f("TX"), Controls: []Control{
			hexEntry(f("TX address"), "TX_ADDR"),
		}},
	}

	for pipe := range Pipes {
		addr := hexEntry(f("RX address"), fmt.Sprintf("RX_ADDR_P%d", pipe))
		if pipe > 1 {
			addr.Prefix = pipe
		}
		sections = append(sections, Section{
			Title: f("RX Pipe %d", pipe),
			Controls: []Control{
				checkbox(f("Enable"), fmt.Sprintf("ERX_P%d", pipe)),
				addr,
				checkbox(f("Auto-ack"), fmt.Sprintf("ENAA_P%d", pipe)),
				checkbox(f("Dynamic payload length"), fmt.Sprintf("DPL_P%d", pipe)),
			},
		})
	}

	return
}

// Render returns the control's current state as text: "[x]" or "[ ]" for a
// checkbox, the option label and bits for a dropdown, and the hex value for
// an entry, preceded by the shared address prefix where there is one.
func (c Control) Render(schema *register.Schema) (text string, err error) {
	fl, err := schema.Field(c.Field)
	if err != nil {
		return
	}

	switch c.Kind {
	case Checkbox:
		var on uint64
		on, err = fl.Uint()
		if err != nil {
			return
		}
		checked := on != 0
		if Inverted(c.Field) {
			checked = !checked
		}
		text = "[ ]"
		if checked {
			text = "[x]"
		}
	case Dropdown:
		var value uint64
		value, err = fl.Uint()
		if err != nil {
			return
		}
		text = fmt.Sprintf("%v [%v=%v]", Label(c.Field, value), c.Field, fl.BinaryString())
	case HexEntry:
		var prefix string
		if c.Prefix >= 0 {
			prefix, err = AddressPrefix(schema, c.Prefix)
			if err != nil {
				return
			}
		}
		text = prefix + fl.HexString()
	}

	return
}

// Check sets a checkbox control. Inverted fields store the complement.
func (c Control) Check(schema *register.Schema, checked bool) (err error) {
	if c.Kind != Checkbox {
		err = fmt.Errorf("%w: %v is a %v", ErrNotCheckbox, c.Field, c.Kind)
		return
	}

	fl, err := schema.Field(c.Field)
	if err != nil {
		return
	}

	var bit uint64
	if checked != Inverted(c.Field) {
		bit = 1
	}

	return fl.SetUint(bit)
}
