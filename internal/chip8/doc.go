// Package chip8 implements a CHIP-8 virtual machine.
//
// CHIP-8 is an interpreted programming language from the 1970s designed for
// simple games on early microcomputers. This package provides the complete
// interpreter core: machine state, the fetch/decode/execute cycle and the
// exact semantics of all instructions including arithmetic flag behavior,
// sprite collision detection and timer driven blocking.
//
// # Machine Model
//
// The machine consists of 4KB of memory, 16 general purpose 8 bit registers
// V0-VF (VF doubles as the arithmetic and collision flag), a 16 bit address
// register I, a program counter, a 16 entry call stack, two 8 bit countdown
// timers (delay and sound), a 16 key hexadecimal keypad and a 64x32 pixel
// monochrome display that sprites are XOR drawn onto.
//
// Memory addresses 0x000-0x04F hold the glyph sprites for the hexadecimal
// digits. Programs are loaded at ProgramStart (0x200) and may use memory up
// to MaxAddress.
//
// # Execution Model
//
// The host drives the machine in a frame loop:
//
//	vm := chip8.New()
//	if err := vm.Load(rom); err != nil {
//		return err
//	}
//	for {
//		// forward host input via vm.SetKey(index, pressed)
//		for range stepsPerFrame {
//			if err := vm.Step(); err != nil {
//				return err
//			}
//		}
//		vm.TickTimers()
//		// render vm.Display(), drive audio from vm.IsBeeping()
//	}
//
// Step performs one fetch/decode/execute cycle and reports errors instead of
// terminating: programs that overflow the call stack, fetch outside memory or
// execute an undefined opcode surface ErrStackOverflow, ErrAddressOutOfRange
// or ErrUnsupportedInstruction to the host. The wait-for-key instruction does
// not block the calling goroutine, it rewinds the program counter so that the
// next Step retries the keypad scan.
//
// All operations are synchronous and a VM instance must only be used from a
// single goroutine.
//
// # Tracing
//
// An optional Tracer supplied via NewWithOptions receives every executed
// instruction with its address, raw opcode word and assembly representation.
// Tracing shares the single dispatch path with execution, the observed
// instruction is exactly the executed one.
package chip8
