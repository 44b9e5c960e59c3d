package emu

// TileInfo describes one tilemap cell: which tile to draw and which
// 16-color palette row it uses.
type TileInfo struct {
	Code  uint16
	Color uint8
}

// TilemapDesc configures a tilemap.
type TilemapDesc struct {
	// ROM is the decoded tile pixel data, one byte per pixel.
	ROM []uint8

	TileWidth  int
	TileHeight int
	Cols       int
	Rows       int

	// Info resolves a cell index against the owning RAM region.
	Info func(index int) TileInfo
}

// Tilemap renders a grid of tile cells into a map-sized scratch bitmap,
// re-rasterizing only cells whose RAM changed since the last draw, then
// blits the scratch with horizontal scroll wrap.
type Tilemap struct {
	rom []uint8

	tileWidth  int
	tileHeight int
	cols       int
	rows       int

	scrollX uint16
	dirty   []bool
	scratch *Bitmap
	info    func(index int) TileInfo
}

// NewTilemap creates a tilemap. All cells start dirty so the first draw
// rasterizes the whole map.
func NewTilemap(desc *TilemapDesc) *Tilemap {
	t := &Tilemap{
		rom:        desc.ROM,
		tileWidth:  desc.TileWidth,
		tileHeight: desc.TileHeight,
		cols:       desc.Cols,
		rows:       desc.Rows,
		dirty:      make([]bool, desc.Cols*desc.Rows),
		scratch:    NewBitmap(desc.Cols*desc.TileWidth, desc.Rows*desc.TileHeight),
		info:       desc.Info,
	}
	for i := range t.dirty {
		t.dirty[i] = true
	}
	return t
}

// MarkTileDirty queues the cell for re-rasterization on the next draw.
// Marking is idempotent; the two RAM bytes of a cell map to the same
// index.
func (t *Tilemap) MarkTileDirty(index int) {
	t.dirty[index%len(t.dirty)] = true
}

// SetScrollX latches the horizontal scroll value.
func (t *Tilemap) SetScrollX(value uint16) {
	t.scrollX = value
}

// drawTile rasterizes one cell into the scratch bitmap. Each pixel gets
// the 8-bit palette offset color<<4 | pen. Tile codes beyond the ROM's
// catalog mirror, like the mask ROM's address decoding.
func (t *Tilemap) drawTile(info TileInfo, col, row int) {
	count := len(t.rom) / (t.tileWidth * t.tileHeight)
	base := int(info.Code) % count * t.tileWidth * t.tileHeight
	sx := col * t.tileWidth
	sy := row * t.tileHeight

	for y := 0; y < t.tileHeight; y++ {
		pens := t.rom[base+y*t.tileWidth : base+(y+1)*t.tileWidth]
		out := t.scratch.Data[(sy+y)*t.scratch.Width+sx:]
		for x, pen := range pens {
			out[x] = uint16(info.Color)<<4 | uint16(pen&0x0F)
		}
	}
}

// Draw refreshes dirty cells and blits the map into dst with horizontal
// wrap. Pixels with a zero pen are transparent; opaque pixels carry the
// full palette index (paletteBase | color<<4 | pen) plus the layer tag.
func (t *Tilemap) Draw(dst *Bitmap, paletteBase uint16, layer uint16) {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			index := row*t.cols + col
			if t.dirty[index] {
				t.drawTile(t.info(index), col, row)
				t.dirty[index] = false
			}
		}
	}

	width := t.scratch.Width
	scroll := int(t.scrollX)

	for y := 0; y < dst.Height; y++ {
		src := t.scratch.Data[y*width : (y+1)*width]
		out := dst.Data[y*dst.Width : (y+1)*dst.Width]
		for x := range out {
			// Wrap into map space; wrapping occurs when the visible
			// area runs past the edge of the map.
			v := src[(x+scroll)%width]
			if v&0x0F != 0 {
				out[x] = layer | paletteBase | v
			}
		}
	}
}
