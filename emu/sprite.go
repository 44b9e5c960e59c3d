package emu

// Sprite RAM holds 256 descriptors of 8 bytes each:
//
//	byte     bit        usage
//	--------+-76543210-+----------------
//	      0 | xxxx---- | code bank
//	        | -----x-- | visible
//	        | ------x- | flip y
//	        | -------x | flip x
//	      1 | xxxxxxxx | tile code
//	      2 | ------xx | size (8, 16, 32, 64 px square)
//	      3 | xx------ | priority
//	        | --x----- | upper y co-ord
//	        | ---x---- | upper x co-ord
//	        | ----xxxx | color
//	      4 | xxxxxxxx | ypos
//	      5 | xxxxxxxx | xpos
//	      6 | -------- |
//	      7 | -------- |
const spriteSize = 8

// spriteLayout maps the (row, col) of an 8x8 sub-tile within a large
// sprite to its code offset. Large sprites assemble 8x8 tiles in this
// hardware-defined order.
var spriteLayout = [8][8]uint16{
	{0, 1, 4, 5, 16, 17, 20, 21},
	{2, 3, 6, 7, 18, 19, 22, 23},
	{8, 9, 12, 13, 24, 25, 28, 29},
	{10, 11, 14, 15, 26, 27, 30, 31},
	{32, 33, 36, 37, 48, 49, 52, 53},
	{34, 35, 38, 39, 50, 51, 54, 55},
	{40, 41, 44, 45, 56, 57, 60, 61},
	{42, 43, 46, 47, 58, 59, 62, 63},
}

// spriteOcclusion maps the 2-bit priority field to the set of layer tags
// that hide the sprite: 0 draws in front of everything, 3 behind every
// tile layer.
var spriteOcclusion = [4]uint16{
	0,
	LayerChar,
	LayerChar | LayerFG,
	LayerChar | LayerFG | LayerBG,
}

// DrawSprites rasterizes sprite RAM in memory order into dst. Pixels with
// a zero pen are transparent; opaque pixels carry the palette index
// paletteBase | color<<4 | pen and the sprite layer tag. A pixel already
// stamped by an earlier sprite is never overwritten, so lower descriptor
// addresses take priority.
func DrawSprites(dst *Bitmap, ram []uint8, rom []uint8, paletteBase uint16, layer uint16) {
	for addr := 0; addr+spriteSize <= len(ram); addr += spriteSize {
		if ram[addr]&0x04 == 0 {
			continue
		}

		bank := ram[addr]
		code := uint16(ram[addr+1]) | uint16(bank&0xF0)<<4
		size := ram[addr+2] & 0x03

		// Large sprite codes are aligned to their tile count.
		code &^= 1<<(size*2) - 1
		tiles := 1 << size

		flags := ram[addr+3]
		xpos := int(ram[addr+5]) - int(flags&0x10)<<4
		ypos := int(ram[addr+4]) - int(flags&0x20)<<3

		flipX := bank&0x01 != 0
		flipY := bank&0x02 != 0
		color := uint16(flags & 0x0F)
		mask := spriteOcclusion[flags>>6]

		for ty := 0; ty < tiles; ty++ {
			for tx := 0; tx < tiles; tx++ {
				sx := xpos + 8*tx
				sy := ypos + 8*ty
				if flipX {
					sx = xpos + 8*(tiles-1-tx)
				}
				if flipY {
					sy = ypos + 8*(tiles-1-ty)
				}

				drawSpriteTile(dst, rom, code+spriteLayout[ty][tx], color,
					sx, sy, flipX, flipY, paletteBase, layer, mask)
			}
		}
	}
}

// drawSpriteTile blits one 8x8 tile of a sprite with clipping, flipping
// and layer occlusion.
func drawSpriteTile(dst *Bitmap, rom []uint8, code uint16, color uint16, sx, sy int, flipX, flipY bool, paletteBase uint16, layer uint16, mask uint16) {
	base := int(code) * 8 * 8

	for y := 0; y < 8; y++ {
		dy := sy + y
		if flipY {
			dy = sy + 7 - y
		}
		if dy < 0 || dy >= dst.Height {
			continue
		}

		pens := rom[base+y*8 : base+y*8+8]
		row := dst.Data[dy*dst.Width:]

		for x, pen := range pens {
			pen &= 0x0F
			if pen == 0 {
				continue
			}

			dx := sx + x
			if flipX {
				dx = sx + 7 - x
			}
			if dx < 0 || dx >= dst.Width {
				continue
			}

			if row[dx]&(mask|layer) != 0 {
				continue
			}
			row[dx] = layer | paletteBase | color<<4 | uint16(pen)
		}
	}
}
