package emu

// Bus adapts the mainboard's pin-level tick callback to the go-chip-z80
// Bus interface. Each CPU memory access is synthesized into a pin word,
// run through the decoder, and the data bus read back out of the returned
// word. Tick accounting happens in the frame loop, so bus transactions
// pass a zero tick count.
type Bus struct {
	board *Mainboard
}

// NewBus creates the CPU-facing bus for the given board.
func NewBus(board *Mainboard) *Bus {
	return &Bus{board: board}
}

func (b *Bus) Fetch(addr uint16) uint8 {
	return b.Read(addr)
}

func (b *Bus) Read(addr uint16) uint8 {
	pins := PinSetAddr(PinMREQ|PinRD, addr)
	pins = b.board.Tick(0, pins)
	return PinData(pins)
}

func (b *Bus) Write(addr uint16, val uint8) {
	pins := PinSetData(PinSetAddr(PinMREQ|PinWR, addr), val)
	b.board.Tick(0, pins)
}

// The main board has no I/O-mapped devices; IORQ is only raised for the
// interrupt acknowledge, which the CPU core handles internally.
func (b *Bus) In(port uint16) uint8 { return 0 }

func (b *Bus) Out(port uint16, val uint8) {}
