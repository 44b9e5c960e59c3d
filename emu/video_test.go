package emu

import (
	"bytes"
	"testing"
)

// TestVideo_TileInfo verifies code and color decode from the parallel RAM
// halves of each layer.
func TestVideo_TileInfo(t *testing.T) {
	m := newTestMachine()

	m.mem.charRAM[5] = 0x34
	m.mem.charRAM[5+0x400] = 0xA3 // color 0xA, code high bits 0x03
	info := m.video.charTileInfo(5)
	if info.Code != 0x334 || info.Color != 0x0A {
		t.Errorf("char: got code 0x%03X color 0x%X", info.Code, info.Color)
	}

	m.mem.fgRAM[9] = 0x12
	m.mem.fgRAM[9+0x200] = 0x57 // color 0x5, code high bits 0x07
	info = m.video.fgTileInfo(9)
	if info.Code != 0x712 || info.Color != 0x05 {
		t.Errorf("fg: got code 0x%03X color 0x%X", info.Code, info.Color)
	}

	m.mem.bgRAM[1] = 0xFF
	m.mem.bgRAM[1+0x200] = 0xFF // color 0xF, code high bits masked to 0x07
	info = m.video.bgTileInfo(1)
	if info.Code != 0x7FF || info.Color != 0x0F {
		t.Errorf("bg: got code 0x%03X color 0x%X", info.Code, info.Color)
	}
}

// TestVideo_Draw_Backdrop verifies an idle machine renders the backdrop
// palette entry across the whole visible window.
func TestVideo_Draw_Backdrop(t *testing.T) {
	m := newTestMachine()

	// Backdrop index 0x100 lives at palette RAM offset 0x200/0x201.
	busWrite(m.board, 0xE800+0x200, 0x05)
	busWrite(m.board, 0xE800+0x201, 0xAB)

	m.video.Draw()

	pix := m.video.framebuffer.Pix
	if len(pix) != ScreenWidth*ScreenHeight*4 {
		t.Fatalf("framebuffer size: %d", len(pix))
	}

	// RGBA byte order: R, G, B, A.
	want := []byte{0xAA, 0xBB, 0x55, 0xFF}
	for _, i := range []int{0, 4 * (ScreenWidth - 1), 4 * (ScreenWidth*ScreenHeight - 1)} {
		if !bytes.Equal(pix[i:i+4], want) {
			t.Fatalf("pixel at byte %d: got %v, want %v", i, pix[i:i+4], want)
		}
	}
}

// TestVideo_Draw_VisibleWindow verifies the top 16 scanlines of the
// internal bitmap are skipped.
func TestVideo_Draw_VisibleWindow(t *testing.T) {
	m := newTestMachine()

	// Make char tile 1 fully opaque with pen 1 and set palette entries so
	// backdrop (0x100) and char pixels (0x101) differ.
	rom := m.video.charMap.rom
	for i := 0; i < 64; i++ {
		rom[64+i] = 1
	}
	busWrite(m.board, 0xE800+0x202, 0x0F) // index 0x101: blue 0xFF

	// Char cell 0 (bitmap rows 0-7, hidden) and cell 64 (rows 16-23, the
	// first visible line).
	busWrite(m.board, 0xD000, 0x01)
	busWrite(m.board, 0xD000+64, 0x01)

	m.video.Draw()

	pix := m.video.framebuffer.Pix
	// Framebuffer (0,0) is bitmap (0,16): char cell 64, pen 1 -> 0x101.
	if !bytes.Equal(pix[0:4], []byte{0x00, 0x00, 0xFF, 0xFF}) {
		t.Errorf("visible origin: got %v", pix[0:4])
	}
}

// TestVideo_Draw_LayerOrder verifies char draws over fg over bg, and the
// backdrop shows through fully transparent cells.
func TestVideo_Draw_LayerOrder(t *testing.T) {
	m := newTestMachine()

	// Opaque tile 1 in every layer's ROM: 64 bytes per 8x8 char tile, 256
	// per 16x16 fg/bg tile.
	for i := 64; i < 128; i++ {
		m.video.charMap.rom[i] = 1
	}
	for i := 256; i < 512; i++ {
		m.video.fgMap.rom[i] = 1
		m.video.bgMap.rom[i] = 1
	}

	// Place tile 1 at cell 64 of the char map (visible origin) and cell 32
	// of the fg and bg maps (also covering the visible origin: 16px tiles,
	// row 1 spans y 16-31).
	busWrite(m.board, 0xD000+64, 0x01)
	busWrite(m.board, 0xD800+32, 0x01)
	busWrite(m.board, 0xDC00+32, 0x01)

	m.video.Draw()

	// The composed indexed pixel at the visible origin must be the char
	// layer's: palette base 0x100, pen 1.
	got := m.video.bitmap.At(0, visibleTop)
	want := LayerChar | charPaletteBase | 1
	if got != want {
		t.Errorf("layer order: expected 0x%04X, got 0x%04X", want, got)
	}

	// Without the char tile the fg layer shows.
	busWrite(m.board, 0xD000+64, 0x00)
	m.video.Draw()
	got = m.video.bitmap.At(0, visibleTop)
	want = LayerFG | fgPaletteBase | 1
	if got != want {
		t.Errorf("fg under char: expected 0x%04X, got 0x%04X", want, got)
	}

	// Without fg either, bg shows.
	busWrite(m.board, 0xD800+32, 0x00)
	m.video.Draw()
	got = m.video.bitmap.At(0, visibleTop)
	want = LayerBG | bgPaletteBase | 1
	if got != want {
		t.Errorf("bg under fg: expected 0x%04X, got 0x%04X", want, got)
	}

	// With nothing opaque the backdrop index remains.
	busWrite(m.board, 0xDC00+32, 0x00)
	m.video.Draw()
	if got := m.video.bitmap.At(0, visibleTop); got != backdropIndex {
		t.Errorf("backdrop: expected 0x%04X, got 0x%04X", backdropIndex, got)
	}
}

// TestVideo_Draw_SpriteOverLayers verifies a priority-0 sprite composes
// over the tile layers at the sprite palette base.
func TestVideo_Draw_SpriteOverLayers(t *testing.T) {
	m := newTestMachine()

	for i := 64; i < 128; i++ {
		m.video.charMap.rom[i] = 1
	}
	busWrite(m.board, 0xD000+64, 0x01)

	for i := 0; i < 64; i++ {
		m.video.spriteROM[64+i] = 2
	}
	// Sprite code 1, color 3, at (0,16).
	busWrite(m.board, 0xE000+0, 0x04)
	busWrite(m.board, 0xE000+1, 0x01)
	busWrite(m.board, 0xE000+3, 0x03)
	busWrite(m.board, 0xE000+4, 16)
	busWrite(m.board, 0xE000+5, 0)

	m.video.Draw()

	got := m.video.bitmap.At(0, visibleTop)
	want := LayerSprite | spritePaletteBase | 3<<4 | 2
	if got != want {
		t.Errorf("sprite composite: expected 0x%04X, got 0x%04X", want, got)
	}
}

// TestVideo_Draw_Deterministic verifies repeated composition of the same
// state is byte-identical.
func TestVideo_Draw_Deterministic(t *testing.T) {
	m := newTestMachine()

	for i := 64; i < 128; i++ {
		m.video.charMap.rom[i] = 1
	}
	for i := uint16(0); i < 0x40; i++ {
		busWrite(m.board, 0xD000+i, uint8(i))
		busWrite(m.board, 0xE800+i, uint8(i*7))
	}
	busWrite(m.board, 0xF800, 0x30)

	m.video.Draw()
	first := make([]byte, len(m.video.framebuffer.Pix))
	copy(first, m.video.framebuffer.Pix)

	m.video.Draw()

	if !bytes.Equal(first, m.video.framebuffer.Pix) {
		t.Error("repeated draw differs")
	}
}
