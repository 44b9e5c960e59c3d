//go:build !libretro && !ios

package main

import (
	"flag"
	"log"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/erygar/adapter"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM set (opens UI if not provided)")
	flag.Parse()

	factory := &adapter.Factory{}

	if *romPath != "" {
		if err := standalone.RunDirect(factory, *romPath, "ntsc", nil); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
