package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/erygar/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: 4},      // Attack
		{RetroID: libretro.JoypadB, BitID: 5},      // Jump
		{RetroID: libretro.JoypadSelect, BitID: 6}, // Coin
		{RetroID: libretro.JoypadStart, BitID: 7},  // Start
	})
}

func main() {}
