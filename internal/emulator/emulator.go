// Package emulator handles the ROM loading and machine execution workflow
package emulator

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8go/internal/chip8"
	"github.com/retroenv/chip8go/internal/gui"
	"github.com/retroenv/chip8go/internal/loader"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Run handles the complete emulation workflow: it loads the ROM file into
// a new machine and drives it in a window until the window is closed, the
// context is cancelled or the machine faults.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	vm := chip8.NewWithOptions(chip8.Options{
		Tracer: createTracer(logger, opts.Debug),
	})
	if err := vm.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	printInfo(logger, opts, len(program))

	return gui.Run(ctx, logger, opts, vm, program)
}

// createTracer builds an instruction tracer that logs every executed
// instruction. Tracing is only active in debug mode, a nil tracer keeps
// the machine execution path trace free.
func createTracer(logger *log.Logger, debug bool) chip8.Tracer {
	if !debug {
		return nil
	}

	return chip8.TracerFunc(func(address, opcode uint16, instruction string) {
		logger.Debug("Executing",
			log.Hex("address", address),
			log.Hex("opcode", opcode),
			log.String("instruction", instruction),
		)
	})
}

// printInfo prints the information about the loaded ROM.
func printInfo(logger *log.Logger, opts options.Program, programSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", programSize),
		log.Int("steps_per_frame", opts.Steps),
	)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8go", log.String("version", buildinfo.Version(version, commit, date)))
}
