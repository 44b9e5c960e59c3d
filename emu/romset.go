package emu

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ROM region sizes. Program ROM aggregates two images; the fg, bg and
// sprite tile regions aggregate four images each before decoding, and the
// char region is a single image.
const (
	progROMSize   = 0x0C000
	bankedROMSize = 0x08000
	charROMSize   = 0x08000
	tileROMSize   = 0x20000

	// FlatSetSize is the length of a flat ROM-set image: the regions
	// concatenated in order prog, banked, char, fg, bg, sprite.
	FlatSetSize = progROMSize + bankedROMSize + charROMSize + 3*tileROMSize
)

// ROMSet holds the raw mask-ROM contents of a Rygar board, aggregated per
// region and ready for mapping and tile decoding.
type ROMSet struct {
	Prog   []byte // main CPU ROM, $0000-$BFFF
	Banked []byte // bank-switched CPU ROM
	Char   []byte // 8x8 text layer tiles
	Fg     []byte // 16x16 foreground tiles
	Bg     []byte // 16x16 background tiles
	Sprite []byte // 8x8 sprite tiles
}

var (
	// ErrBadROMSet is returned for data that is neither a zip, a 7z, nor
	// a flat set image.
	ErrBadROMSet = errors.New("unrecognized ROM set format")

	// ErrMissingROM is returned when an archive lacks a required image.
	ErrMissingROM = errors.New("ROM set is missing a required image")
)

// Archive magic bytes, same detection scheme the loaders for cartridge
// dumps use.
var (
	magicZIP = []byte{0x50, 0x4B, 0x03, 0x04}
	magic7z  = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
)

const (
	regionProg = iota
	regionBanked
	regionChar
	regionFg
	regionBg
	regionSprite
)

// romChunks lists the individual mask-ROM images of the set and where
// each lands in its region. Names cover the common dump variants; the
// sound CPU images present in full sets are ignored.
var romChunks = []struct {
	names  []string
	size   int
	region int
	offset int
}{
	{[]string{"5.5p", "5p.bin", "cpu_5p.bin", "cpur_5p.bin"}, 0x8000, regionProg, 0x0000},
	{[]string{"cpu_5m.bin", "5m.bin", "cpur_5m.bin"}, 0x4000, regionProg, 0x8000},
	{[]string{"cpu_5j.bin", "5j.bin", "cpur_5j.bin"}, 0x8000, regionBanked, 0x0000},
	{[]string{"cpu_8k.bin", "8k.bin"}, 0x8000, regionChar, 0x0000},

	{[]string{"vid_6p.bin", "6p.bin"}, 0x8000, regionFg, 0x00000},
	{[]string{"vid_6o.bin", "6o.bin"}, 0x8000, regionFg, 0x08000},
	{[]string{"vid_6n.bin", "6n.bin"}, 0x8000, regionFg, 0x10000},
	{[]string{"vid_6l.bin", "6l.bin"}, 0x8000, regionFg, 0x18000},

	{[]string{"vid_6f.bin", "6f.bin"}, 0x8000, regionBg, 0x00000},
	{[]string{"vid_6e.bin", "6e.bin"}, 0x8000, regionBg, 0x08000},
	{[]string{"vid_6c.bin", "6c.bin"}, 0x8000, regionBg, 0x10000},
	{[]string{"vid_6b.bin", "6b.bin"}, 0x8000, regionBg, 0x18000},

	{[]string{"vid_6k.bin", "6k.bin"}, 0x8000, regionSprite, 0x00000},
	{[]string{"vid_6j.bin", "6j.bin"}, 0x8000, regionSprite, 0x08000},
	{[]string{"vid_6h.bin", "6h.bin"}, 0x8000, regionSprite, 0x10000},
	{[]string{"vid_6g.bin", "6g.bin"}, 0x8000, regionSprite, 0x18000},
}

// LoadROMSet parses an opaque ROM blob into its regions. The blob may be
// a zip or 7z archive of the individual mask-ROM images, or a flat image
// of FlatSetSize bytes with the regions concatenated in order.
func LoadROMSet(data []byte) (*ROMSet, error) {
	switch {
	case bytes.HasPrefix(data, magicZIP):
		files, err := extractZip(data)
		if err != nil {
			return nil, err
		}
		return assembleSet(files)

	case bytes.HasPrefix(data, magic7z):
		files, err := extract7z(data)
		if err != nil {
			return nil, err
		}
		return assembleSet(files)

	case len(data) == FlatSetSize:
		return splitFlatSet(data), nil

	default:
		return nil, ErrBadROMSet
	}
}

// extractZip reads every archive member into memory, keyed by lowercased
// base name.
func extractZip(data []byte) (map[string][]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	files := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		files[strings.ToLower(path.Base(f.Name))] = content
	}
	return files, nil
}

// extract7z reads every archive member into memory, keyed by lowercased
// base name.
func extract7z(data []byte) (map[string][]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	files := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		files[strings.ToLower(path.Base(f.Name))] = content
	}
	return files, nil
}

// assembleSet builds the region buffers from extracted archive members.
func assembleSet(files map[string][]byte) (*ROMSet, error) {
	set := newROMSet()
	regions := set.regions()

	for _, chunk := range romChunks {
		var content []byte
		for _, name := range chunk.names {
			if c, ok := files[name]; ok {
				content = c
				break
			}
		}
		if content == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingROM, chunk.names[0])
		}
		if len(content) != chunk.size {
			return nil, fmt.Errorf("%s: expected %d bytes, got %d",
				chunk.names[0], chunk.size, len(content))
		}
		copy(regions[chunk.region][chunk.offset:], content)
	}

	return set, nil
}

// splitFlatSet slices a flat image into its regions.
func splitFlatSet(data []byte) *ROMSet {
	set := newROMSet()
	offset := 0
	for _, region := range set.regions() {
		copy(region, data[offset:offset+len(region)])
		offset += len(region)
	}
	return set
}

func newROMSet() *ROMSet {
	return &ROMSet{
		Prog:   make([]byte, progROMSize),
		Banked: make([]byte, bankedROMSize),
		Char:   make([]byte, charROMSize),
		Fg:     make([]byte, tileROMSize),
		Bg:     make([]byte, tileROMSize),
		Sprite: make([]byte, tileROMSize),
	}
}

// regions returns the region buffers in flat-image order.
func (s *ROMSet) regions() [][]byte {
	return [][]byte{s.Prog, s.Banked, s.Char, s.Fg, s.Bg, s.Sprite}
}
