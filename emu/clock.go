package emu

// Clock converts host frame time into CPU tick budgets. The CPU core
// executes whole instructions, so a frame usually overshoots its budget
// by a few ticks; the overrun is carried into the next frame to keep the
// emulation locked to the 4 MHz clock.
type Clock struct {
	freqHz    int
	requested int
	overrun   int
}

// NewClock creates a clock for the given CPU frequency.
func NewClock(freqHz int) *Clock {
	return &Clock{freqHz: freqHz}
}

// TicksToRun returns the tick budget for a host delta of the given number
// of microseconds, less any overrun carried from the previous frame.
func (c *Clock) TicksToRun(microSeconds int) int {
	ticks := int(int64(microSeconds)*int64(c.freqHz)/1_000_000) - c.overrun
	if ticks < 0 {
		ticks = 0
	}
	c.requested = ticks
	return ticks
}

// TicksExecuted records how many ticks actually ran for the budget
// returned by the last TicksToRun call.
func (c *Clock) TicksExecuted(ticks int) {
	if ticks > c.requested {
		c.overrun = ticks - c.requested
	} else {
		c.overrun = 0
	}
}
