// Package gui renders the machine display in a window and maps the host
// keyboard to the hexadecimal keypad.
package gui

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8go/internal/chip8"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Game drives the machine from the window event loop.
type Game struct {
	ctx    context.Context
	logger *log.Logger

	vm      *chip8.VM
	program []byte
	steps   int

	frame  *ebiten.Image
	pixels []byte

	beeper *Beeper
}

// Compile-time check to ensure Game implements ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// Run opens the window and runs the game loop until the window is closed,
// the context is cancelled or the machine faults. Audio output failures
// are not fatal, the machine runs muted in that case.
func Run(ctx context.Context, logger *log.Logger, opts options.Program,
	vm *chip8.VM, program []byte) error {

	game := &Game{
		ctx:     ctx,
		logger:  logger,
		vm:      vm,
		program: program,
		steps:   opts.Steps,
		pixels:  make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}

	if !opts.Mute {
		beeper, err := NewBeeper()
		if err != nil {
			logger.Warn("Audio output unavailable", log.Err(err))
		} else {
			game.beeper = beeper
			defer func() { _ = beeper.Close() }()
		}
	}

	ebiten.SetWindowSize(chip8.DisplayWidth*opts.Scale, chip8.DisplayHeight*opts.Scale)
	ebiten.SetWindowTitle("chip8go")

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running game loop: %w", err)
	}
	return ctx.Err()
}

// Update advances the machine by one display frame. It polls the keypad
// state, executes the configured amount of instructions, ticks the timers
// and gates the beeper based on the sound timer.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if err := g.handleKeys(); err != nil {
		return err
	}

	if err := g.runFrame(); err != nil {
		return err
	}

	if g.beeper != nil {
		g.beeper.SetBeeping(g.vm.IsBeeping())
	}
	return nil
}

// Draw renders the monochrome display buffer to the window.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	renderPixels(g.vm.Display(), g.pixels)
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)
}

// Layout returns the logical screen size, the window scaling is handled
// by the game library.
func (g *Game) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}

// runFrame executes one display frame worth of instructions and advances
// the timers once.
func (g *Game) runFrame() error {
	for range g.steps {
		if err := g.vm.Step(); err != nil {
			return err
		}
	}

	g.vm.TickTimers()
	return nil
}

// handleKeys forwards the host keyboard state to the machine keypad.
func (g *Game) handleKeys() error {
	for key, index := range keypad {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.vm.SetKey(index, true); err != nil {
				return err
			}
		}
		if inpututil.IsKeyJustReleased(key) {
			if err := g.vm.SetKey(index, false); err != nil {
				return err
			}
		}
	}

	if inpututil.IsKeyJustReleased(ebiten.KeyN) {
		return g.reset()
	}
	return nil
}

// reset restarts the loaded program from the beginning.
func (g *Game) reset() error {
	g.vm.Reset()
	if err := g.vm.Load(g.program); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}

	g.logger.Info("Machine reset")
	return nil
}

// renderPixels converts the monochrome display buffer into RGBA pixel data.
func renderPixels(display []bool, pixels []byte) {
	for i, lit := range display {
		c := byte(0)
		if lit {
			c = 0xFF
		}
		pixels[i*4] = c
		pixels[i*4+1] = c
		pixels[i*4+2] = c
		pixels[i*4+3] = 0xFF
	}
}
