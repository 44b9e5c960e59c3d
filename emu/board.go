package emu

// Input ports and video registers above the bank window. Reads and writes
// at the same address decode to different devices: $F800-$F805 reads the
// control ports while writes latch the tilemap scroll registers.
const (
	portJoystick = 0xF800
	portButtons  = 0xF801
	portSys      = 0xF804
	portDIP2H    = 0xF807

	fgScrollStart = 0xF800
	fgScrollEnd   = 0xF802
	bgScrollStart = 0xF803
	bgScrollEnd   = 0xF805
	bankSwitch    = 0xF808

	// DIP switch bank 2 high nibble, hardwired.
	dip2hValue = 0x08

	// The hardware offsets all horizontal scroll values by a fixed amount.
	scrollOffset = 48
)

// Frame timing. The main CPU runs at 4 MHz against a 60 Hz, 525-line
// field of which 42 lines are vertical blanking.
const (
	CPUClockHz = 4_000_000
	FPS        = 60

	// Ticks between vertical sync pulses.
	VSyncPeriod = 66_667
	// Ticks the INT pin is held during vertical blanking.
	VBlankDuration = 5_333
)

// Mainboard is the fused CPU-bus / video-generation subsystem: the
// address decoder for every CPU bus transaction, the scroll and bank
// latches, and the vsync/vblank counters that drive the CPU's INT pin.
type Mainboard struct {
	mem   *Memory
	video *Video
	input *Input

	fgScroll [3]uint8
	bgScroll [3]uint8

	vsyncCount  int
	vblankCount int
	intAck      bool
}

// NewMainboard wires the board to its memory map, video subsystem and
// input registers.
func NewMainboard(mem *Memory, video *Video, input *Input) *Mainboard {
	b := &Mainboard{
		mem:   mem,
		video: video,
		input: input,
	}
	b.Reset()
	return b
}

// Reset restores the power-on counter state.
func (b *Mainboard) Reset() {
	b.vsyncCount = VSyncPeriod
	b.vblankCount = 0
	b.intAck = false
}

// Tick is the per-tick bus callback. It advances the vsync/vblank
// counters by numTicks, drives the INT pin, and decodes the bus
// transaction carried in the pin word. The modified pin word is returned;
// pins is value in, value out.
func (b *Mainboard) Tick(numTicks int, pins uint64) uint64 {
	vblankTicks := numTicks
	b.vsyncCount -= numTicks
	if b.vsyncCount <= 0 {
		// Ticks past the reload point, including the tick that crossed
		// it, count against the new vblank window.
		vblankTicks = -b.vsyncCount + 1
		b.vsyncCount += VSyncPeriod
		b.vblankCount = VBlankDuration
		b.intAck = false
	}

	if b.vblankCount > 0 {
		b.vblankCount -= vblankTicks
		if !b.intAck {
			pins |= PinINT
		}
	} else {
		b.vblankCount = 0
	}

	addr := PinAddr(pins)

	switch {
	case pins&PinMREQ != 0 && pins&PinWR != 0:
		b.write(addr, PinData(pins))
	case pins&PinMREQ != 0 && pins&PinRD != 0:
		pins = PinSetData(pins, b.read(addr))
	case pins&PinIORQ != 0 && pins&PinM1 != 0:
		// Interrupt acknowledge: release INT until the next vblank.
		pins &^= PinINT
		b.intAck = true
	}

	return pins
}

func (b *Mainboard) write(addr uint16, data uint8) {
	switch {
	case addr >= ramStart && addr <= ramEnd:
		b.mem.Set(addr, data)

		switch {
		case addr >= charRAMStart && addr <= charRAMEnd:
			b.video.charMap.MarkTileDirty(int(addr-charRAMStart) & 0x3FF)
		case addr >= fgRAMStart && addr <= fgRAMEnd:
			b.video.fgMap.MarkTileDirty(int(addr-fgRAMStart) & 0x1FF)
		case addr >= bgRAMStart && addr <= bgRAMEnd:
			b.video.bgMap.MarkTileDirty(int(addr-bgRAMStart) & 0x1FF)
		case addr >= paletteRAMStart && addr <= paletteRAMEnd:
			b.video.palette.Write(addr-paletteRAMStart, data)
		}

	case addr >= fgScrollStart && addr <= fgScrollEnd:
		b.fgScroll[addr-fgScrollStart] = data
		b.video.fgMap.SetScrollX(scrollX(b.fgScroll))

	case addr >= bgScrollStart && addr <= bgScrollEnd:
		b.bgScroll[addr-bgScrollStart] = data
		b.video.bgMap.SetScrollX(scrollX(b.bgScroll))

	case addr == bankSwitch:
		// The bank register latches data bits 3-6 (DO3-DO6 in the
		// schematic), so only banks 0-15 are reachable.
		b.mem.SetBank((data & 0x78) >> 3)
	}
}

func (b *Mainboard) read(addr uint16) uint8 {
	switch {
	case addr <= ramEnd:
		return b.mem.Get(addr)
	case addr <= bankWindowEnd:
		return b.mem.Get(addr)
	case addr == portJoystick:
		return b.input.Joystick
	case addr == portButtons:
		return b.input.Buttons
	case addr == portSys:
		return b.input.Sys
	case addr == portDIP2H:
		return dip2hValue
	default:
		// Unmapped reads see the data bus pull-downs.
		return 0
	}
}

// scrollX combines a scroll latch pair into the effective horizontal
// scroll value. The third latched byte is retained but unused; this board
// never scrolls vertically under software control.
func scrollX(scroll [3]uint8) uint16 {
	return (uint16(scroll[1])<<8 | uint16(scroll[0])) + scrollOffset
}

// IntAsserted reports the current level of the INT pin.
func (b *Mainboard) IntAsserted() bool {
	return b.vblankCount > 0 && !b.intAck
}

// ticksToEvent returns the tick count until the next counter event (vsync
// reload or end of vblank), used to bound CPU execution slices so the INT
// line is re-evaluated on time.
func (b *Mainboard) ticksToEvent() int {
	n := b.vsyncCount
	if b.vblankCount > 0 && b.vblankCount < n {
		n = b.vblankCount
	}
	if n < 1 {
		n = 1
	}
	return n
}
