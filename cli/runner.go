//go:build !libretro

// Package cli provides a command-line runner for the emulator. It polls
// keyboard input and runs the emulator in a plain window without the full
// UI, following the libretro pattern where the frontend owns input
// polling.
package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/erygar/emu"
)

// Runner wraps an emulator for command-line mode.
type Runner struct {
	emulator *emu.Emulator

	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions
	keys      []ebiten.Key
}

// NewRunner creates a new Runner wrapping the given emulator.
func NewRunner(e *emu.Emulator) *Runner {
	return &Runner{emulator: e}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	r.pollInput()
	r.emulator.RunFrame()

	return nil
}

// Draw implements ebiten.Game. The framebuffer is scaled to the largest
// 4:3 rectangle that fits the window, centered, with nearest filtering.
func (r *Runner) Draw(screen *ebiten.Image) {
	if r.offscreen == nil {
		r.offscreen = ebiten.NewImage(emu.ScreenWidth, emu.ScreenHeight)
	}
	r.offscreen.WritePixels(r.emulator.GetFramebuffer())

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	// Fixed 4:3 display aspect, so pixels are not square.
	displayW := float64(screenW)
	displayH := displayW * 3 / 4
	if displayH > float64(screenH) {
		displayH = float64(screenH)
		displayW = displayH * 4 / 3
	}

	offsetX := (float64(screenW) - displayW) / 2
	offsetY := (float64(screenH) - displayH) / 2

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(displayW/emu.ScreenWidth, displayH/emu.ScreenHeight)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(r.offscreen, &r.drawOpts)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// pollInput reads the keyboard and updates the board's control ports.
// Arrow keys steer, Z attacks, X jumps, 1 inserts a coin; any other key
// presses start.
func (r *Runner) pollInput() {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	down := ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	up := ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	attack := ebiten.IsKeyPressed(ebiten.KeyZ)
	jump := ebiten.IsKeyPressed(ebiten.KeyX)
	coin := ebiten.IsKeyPressed(ebiten.KeyDigit1)

	start := false
	r.keys = inpututil.AppendPressedKeys(r.keys[:0])
	for _, k := range r.keys {
		switch k {
		case ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowDown,
			ebiten.KeyArrowUp, ebiten.KeyZ, ebiten.KeyX, ebiten.KeyDigit1:
		default:
			start = true
		}
	}

	var buttons uint32
	if left {
		buttons |= 1 << emucore.ButtonLeft
	}
	if right {
		buttons |= 1 << emucore.ButtonRight
	}
	if down {
		buttons |= 1 << emucore.ButtonDown
	}
	if up {
		buttons |= 1 << emucore.ButtonUp
	}
	if attack {
		buttons |= 1 << 4
	}
	if jump {
		buttons |= 1 << 5
	}
	if coin {
		buttons |= 1 << 6
	}
	if start {
		buttons |= 1 << 7
	}

	r.emulator.SetInput(0, buttons)
}
