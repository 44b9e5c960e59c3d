//go:build !libretro && !ios

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/erygar/cli"
	"github.com/user-none/erygar/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM set (zip, 7z, or flat image)")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: erygar -rom <romset>")
		os.Exit(1)
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatal(err)
	}

	emulator, err := emu.NewEmulator(rom, emucore.RegionNTSC)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(emu.ScreenWidth*4, emu.ScreenHeight*3)
	ebiten.SetWindowTitle("Rygar")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(cli.NewRunner(emulator)); err != nil {
		log.Fatal(err)
	}
}
