package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/erygar/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the Rygar arcade board.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "erygar",
		ConsoleName:     "Rygar (Tecmo)",
		Extensions:      []string{".zip", ".7z"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.ScreenHeight,
		AspectRatio:     4.0 / 3.0,
		SampleRate:      48000,
		Buttons: []emucore.Button{
			{Name: "Attack", ID: 4, DefaultKey: "Z", DefaultPad: "A"},
			{Name: "Jump", ID: 5, DefaultKey: "X", DefaultPad: "B"},
			{Name: "Coin", ID: 6, DefaultKey: "1", DefaultPad: "Select"},
			{Name: "Start", ID: 7, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players:       1,
		RDBName:       "Tecmo - Rygar",
		ThumbnailRepo: "Tecmo_-_Rygar",
		DataDirName:   "erygar",
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
	}
}

// CreateEmulator creates a new emulator instance with the given ROM set
// and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	return emu.NewEmulator(rom, region)
}

// DetectRegion reports the fixed region; the board is 60 Hz hardware
// regardless of the dump variant.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emucore.RegionNTSC, true
}
