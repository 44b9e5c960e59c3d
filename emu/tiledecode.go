package emu

// TileDecodeDesc describes the planar layout of a tile ROM. Offsets are
// in bits within a tile record: each pixel's 4-bit value is scattered
// across four interleaved bitplanes, and the decoder gathers them back
// into one byte per pixel.
type TileDecodeDesc struct {
	TileWidth  int
	TileHeight int
	Planes     int

	PlaneOffsets []int
	XOffsets     []int
	YOffsets     []int

	// Total bits per tile record.
	TileSize int
}

// stepOffsets returns count offsets starting at start with the given
// stride, the building block for descriptor offset tables.
func stepOffsets(start, step, count int) []int {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = start + i*step
	}
	return offsets
}

// tileDesc8x8 describes an 8x8 4bpp tile: four plane bits per pixel
// column, one 32-bit group per row.
func tileDesc8x8() *TileDecodeDesc {
	return &TileDecodeDesc{
		TileWidth:    8,
		TileHeight:   8,
		Planes:       4,
		PlaneOffsets: stepOffsets(0, 1, 4),
		XOffsets:     stepOffsets(0, 4, 8),
		YOffsets:     stepOffsets(0, 4*8, 8),
		TileSize:     4 * 8 * 8,
	}
}

// tileDesc16x16 describes a 16x16 tile built from four 8x8 sub-tiles in
// reading order: the right half is offset by one sub-tile record, the
// bottom half by two.
func tileDesc16x16() *TileDecodeDesc {
	return &TileDecodeDesc{
		TileWidth:    16,
		TileHeight:   16,
		Planes:       4,
		PlaneOffsets: stepOffsets(0, 1, 4),
		XOffsets:     append(stepOffsets(0, 4, 8), stepOffsets(4*8*8, 4, 8)...),
		YOffsets:     append(stepOffsets(0, 4*8, 8), stepOffsets(4*8*8*2, 4*8, 8)...),
		TileSize:     4 * 4 * 8 * 8,
	}
}

// readBit reads a single bit from the tile ROM at the given bit offset.
func readBit(src []byte, offset int) bool {
	return src[offset/8]&(0x80>>(offset%8)) != 0
}

// DecodeTiles expands a planar tile ROM into a linear indexed bitmap with
// one byte per pixel. The output for pixel (x, y) of tile t lives at
// t*w*h + y*w + x. Decoding is a pure function of the source bytes.
func DecodeTiles(desc *TileDecodeDesc, src []byte, count int) []uint8 {
	dst := make([]uint8, count*desc.TileWidth*desc.TileHeight)

	for tile := 0; tile < count; tile++ {
		base := tile * desc.TileWidth * desc.TileHeight

		for plane := 0; plane < desc.Planes; plane++ {
			planeBit := uint8(1 << (desc.Planes - 1 - plane))
			planeOffset := tile*desc.TileSize + desc.PlaneOffsets[plane]

			for y := 0; y < desc.TileHeight; y++ {
				yOffset := planeOffset + desc.YOffsets[y]
				row := dst[base+y*desc.TileWidth : base+(y+1)*desc.TileWidth]

				for x := range row {
					if readBit(src, yOffset+desc.XOffsets[x]) {
						row[x] |= planeBit
					}
				}
			}
		}
	}

	return dst
}
