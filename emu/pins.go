package emu

// Z80 pin bus word. The CPU collaborator presents one bus transaction per
// callback as a 64-bit pin word: address in bits 0-15, data in bits 16-23,
// control pins above. The word is passed by value through the tick
// callback and the modified copy is returned; the board never holds a
// reference into CPU internals.
const (
	PinM1   uint64 = 1 << 24 // machine cycle one (opcode fetch / int ack)
	PinMREQ uint64 = 1 << 25 // memory request
	PinIORQ uint64 = 1 << 26 // I/O request
	PinRD   uint64 = 1 << 27 // read
	PinWR   uint64 = 1 << 28 // write
	PinINT  uint64 = 1 << 29 // maskable interrupt
)

// PinAddr extracts the 16-bit address bus.
func PinAddr(pins uint64) uint16 {
	return uint16(pins)
}

// PinSetAddr places addr on the address bus.
func PinSetAddr(pins uint64, addr uint16) uint64 {
	return (pins &^ 0xFFFF) | uint64(addr)
}

// PinData extracts the 8-bit data bus.
func PinData(pins uint64) uint8 {
	return uint8(pins >> 16)
}

// PinSetData places data on the data bus.
func PinSetData(pins uint64, data uint8) uint64 {
	return (pins &^ 0xFF0000) | uint64(data)<<16
}
