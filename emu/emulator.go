package emu

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/go-chip-z80"
)

// Compile-time interface check.
var _ emucore.Emulator = (*Emulator)(nil)

// Core identification, surfaced through the adapter.
const (
	Name    = "erygar"
	Version = "1.0.0"
)

// Host frame period handed to the clock each RunFrame.
const frameMicroSeconds = 1_000_000 / FPS

// Emulator ties the Z80 core, the mainboard and the video subsystem into
// the host-facing emulator interface. Everything is single-threaded: the
// CPU mutates board state synchronously inside RunFrame, the host mutates
// inputs between frames, and the compositor runs after the CPU budget for
// the frame is spent.
type Emulator struct {
	cpu   *z80.CPU
	board *Mainboard
	mem   *Memory
	video *Video
	input *Input
	clock *Clock

	region emucore.Region
}

// NewEmulator creates and initializes the emulator from an opaque ROM-set
// blob.
func NewEmulator(rom []byte, region emucore.Region) (*Emulator, error) {
	set, err := LoadROMSet(rom)
	if err != nil {
		return nil, err
	}

	mem := NewMemory(set)
	input := &Input{}
	video := NewVideo(mem, set)
	board := NewMainboard(mem, video, input)
	cpu := z80.New(NewBus(board))

	return &Emulator{
		cpu:    cpu,
		board:  board,
		mem:    mem,
		video:  video,
		input:  input,
		clock:  NewClock(CPUClockHz),
		region: region,
	}, nil
}

// RunFrame executes one frame: convert the frame period to a tick budget,
// run the CPU in slices bounded by the next timing event so the INT line
// is re-evaluated on time, then composite the frame from the resulting
// state.
func (e *Emulator) RunFrame() {
	ticksToRun := e.clock.TicksToRun(frameMicroSeconds)
	executed := 0

	for executed < ticksToRun {
		budget := ticksToRun - executed
		if slice := e.board.ticksToEvent(); slice < budget {
			budget = slice
		}

		n := e.cpu.StepCycles(budget)
		if n <= 0 {
			break
		}

		e.board.Tick(n, 0)
		e.cpu.INT(e.board.IntAsserted(), 0xFF)
		executed += n
	}

	e.clock.TicksExecuted(executed)
	e.video.Draw()
}

// GetFramebuffer returns raw RGBA pixel data for the current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.video.framebuffer.Pix
}

// GetFramebufferStride returns the stride (bytes per row) of the
// framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.video.framebuffer.Stride
}

// GetActiveHeight returns the display height; the visible region is
// always 256x224.
func (e *Emulator) GetActiveHeight() int {
	return ScreenHeight
}

// GetAudioSamples returns no samples. The board's audio hardware lives on
// a second CPU that is not modeled.
func (e *Emulator) GetAudioSamples() []int16 {
	return nil
}

// SetInput unpacks a button bitmask and sets the control ports. Only the
// primary controls are wired.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}

	e.input.SetControls(
		buttons&(1<<emucore.ButtonLeft) != 0,
		buttons&(1<<emucore.ButtonRight) != 0,
		buttons&(1<<emucore.ButtonDown) != 0,
		buttons&(1<<emucore.ButtonUp) != 0,
		buttons&(1<<4) != 0, // attack
		buttons&(1<<5) != 0, // jump
	)
	e.input.SetCoin(buttons&(1<<6) != 0)
	e.input.SetStart(buttons&(1<<7) != 0)
}

// GetRegion returns the configured region. The board itself is fixed
// 60 Hz hardware.
func (e *Emulator) GetRegion() emucore.Region {
	return e.region
}

// SetRegion records the region setting; timing is unaffected.
func (e *Emulator) SetRegion(region emucore.Region) {
	e.region = region
}

// GetTiming returns the fixed 60 Hz, 525-line field timing.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       FPS,
		Scanlines: 525,
	}
}

// SetOption applies a core option change; no options are defined.
func (e *Emulator) SetOption(key string, value string) {}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}
