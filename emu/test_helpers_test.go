package emu

// newTestROMSet returns a zero-filled ROM set with the real region sizes.
func newTestROMSet() *ROMSet {
	return splitFlatSet(make([]byte, FlatSetSize))
}

// testMachine bundles the subsystems a board test needs to poke.
type testMachine struct {
	set   *ROMSet
	mem   *Memory
	video *Video
	input *Input
	board *Mainboard
}

// newTestMachine builds a full machine over a zero-filled ROM set.
func newTestMachine() *testMachine {
	set := newTestROMSet()
	mem := NewMemory(set)
	video := NewVideo(mem, set)
	input := &Input{}
	return &testMachine{
		set:   set,
		mem:   mem,
		video: video,
		input: input,
		board: NewMainboard(mem, video, input),
	}
}

// busWrite drives a CPU write through the pin bus.
func busWrite(b *Mainboard, addr uint16, data uint8) {
	b.Tick(0, PinSetData(PinSetAddr(PinMREQ|PinWR, addr), data))
}

// busRead drives a CPU read through the pin bus.
func busRead(b *Mainboard, addr uint16) uint8 {
	return PinData(b.Tick(0, PinSetAddr(PinMREQ|PinRD, addr)))
}

// clearDirty resets a tilemap's dirty set so tests observe only their own
// marks.
func clearDirty(t *Tilemap) {
	for i := range t.dirty {
		t.dirty[i] = false
	}
}

// dirtyIndices returns the indices currently marked dirty.
func dirtyIndices(t *Tilemap) []int {
	var indices []int
	for i, d := range t.dirty {
		if d {
			indices = append(indices, i)
		}
	}
	return indices
}
