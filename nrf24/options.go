package nrf24

import (
	"slices"
	"strconv"
)

var inverted = []string{"MASK_RX_DR", "MASK_TX_DS", "MASK_MAX_RT"}

// Inverted is true for the active-low interrupt mask bits, where a set bit
// disables the interrupt.
func Inverted(field string) bool {
	return slices.Contains(inverted, field)
}

// Options returns the labels of each value of an enumerated field, indexed by
// field value. Fields that are not enumerated return nil.
func Options(field string) (labels []string) {
	switch field {
	case "PRIM_RX":
		labels = []string{f("Primary transmitter"), f("Primary receiver")}
	case "CRCO":
		labels = []string{f("1 byte CRC"), f("2 byte CRC")}
	case "AW":
		labels = []string{f("(illegal)")}
		for n := 3; n <= 5; n++ {
			labels = append(labels, f("%d byte addresses", n))
		}
	case "ARC":
		labels = []string{f("Re-transmit disabled")}
		for n := 1; n < 16; n++ {
			if n == 1 {
				labels = append(labels, f("Up to %d re-transmit upon auto-ack failure", n))
			} else {
				labels = append(labels, f("Up to %d re-transmits upon auto-ack failure", n))
			}
		}
	case "ARD":
		for n := range 16 {
			labels = append(labels, f("%v µs auto re-transmit delay", strconv.Itoa((n+1)*250)))
		}
	case "RF_CH":
		for n := range 128 {
			labels = append(labels, f("Channel: %v MHz", strconv.Itoa(2400+n)))
		}
	case "RF_PWR":
		for _, dbm := range []int{-18, -12, -6, 0} {
			labels = append(labels, f("TX output power: %d dBm", dbm))
		}
	}

	return
}

// Label returns the option label for the current value of an enumerated
// field, or "" if the field is not enumerated.
func Label(field string, value uint64) string {
	labels := Options(field)
	if value >= uint64(len(labels)) {
		return ""
	}
	return labels[value]
}
