package spi

// SPI command bytes of the nRF24L01+.
const (
	R_REGISTER         = 0x00
	W_REGISTER         = 0x20
	REGISTER_MASK      = 0x1F
	R_RX_PAYLOAD       = 0x61
	W_TX_PAYLOAD       = 0xA0
	FLUSH_TX           = 0xE1
	FLUSH_RX           = 0xE2
	REUSE_TX_PL        = 0xE3
	R_RX_PL_WID        = 0x60
	W_ACK_PAYLOAD      = 0xA8 // Low 3 bits select the pipe.
	W_TX_PAYLOAD_NOACK = 0xB0
	NOP                = 0xFF
)

// Registers that are part of the device but not of the configuration
// schema.
const (
	STATUS      = 0x07
	FIFO_STATUS = 0x17
)

const (
	FIFO_DEPTH  = 3  // Entries in each of the TX and RX FIFOs.
	PAYLOAD_MAX = 32 // Bytes in a single payload.
)

// STATUS register bits.
const (
	STATUS_RX_DR   = 1 << 6
	STATUS_TX_DS   = 1 << 5
	STATUS_MAX_RT  = 1 << 4
	STATUS_RX_P_NO = 7 << 1
	STATUS_TX_FULL = 1 << 0

	STATUS_IRQ = STATUS_RX_DR | STATUS_TX_DS | STATUS_MAX_RT
)

// FIFO_STATUS register bits.
const (
	FIFO_TX_REUSE = 1 << 6
	FIFO_TX_FULL  = 1 << 5
	FIFO_TX_EMPTY = 1 << 4
	FIFO_RX_FULL  = 1 << 1
	FIFO_RX_EMPTY = 1 << 0
)

// ReadRegister returns the command frame reading size bytes of a register.
func ReadRegister(address uint8, size int) []byte {
	frame := make([]byte, 1+size)
	frame[0] = R_REGISTER | (address & REGISTER_MASK)
	for n := 1; n < len(frame); n++ {
		frame[n] = NOP
	}
	return frame
}

// WriteRegister returns the command frame writing payload, least significant
// byte first, into a register.
func WriteRegister(address uint8, payload []byte) []byte {
	return append([]byte{W_REGISTER | (address & REGISTER_MASK)}, payload...)
}
