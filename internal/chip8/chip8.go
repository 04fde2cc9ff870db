package chip8

import (
	"fmt"
)

// Memory layout and machine dimension constants.
//
// Memory map (4KB total):
//
//	0x000-0x04F: glyph sprites for the hexadecimal digits 0-F
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: user program and data space
const (
	// ProgramStart is the memory address where programs begin execution.
	// Program bytes are loaded verbatim starting at this address.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in the 4KB memory space.
	MaxAddress = 0xFFF

	// MemorySize is the total amount of addressable memory in bytes.
	MemorySize = 4096

	// DisplayWidth is the width of the monochrome display in pixels.
	DisplayWidth = 64

	// DisplayHeight is the height of the monochrome display in pixels.
	DisplayHeight = 32

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	registerCount = 16
	stackDepth    = 16
	glyphSize     = 5
)

// fontset contains the 5 byte glyph sprites for the hexadecimal digits,
// stored at address 0x000 on construction and reset.
var fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Tracer receives a description of each executed instruction: the address it
// was fetched from, the raw opcode word and its assembly representation.
// Implementations must not mutate the machine, tracing is a read-only side
// channel of the single execution path.
type Tracer interface {
	Trace(address, opcode uint16, instruction string)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(address, opcode uint16, instruction string)

// Trace calls the adapted function.
func (f TracerFunc) Trace(address, opcode uint16, instruction string) {
	f(address, opcode, instruction)
}

// Options configures the optional collaborators of a VM.
type Options struct {
	// Random overrides the default randomness source used by the random
	// number instruction.
	Random Random

	// Tracer receives every executed instruction. A nil tracer disables
	// the trace path.
	Tracer Tracer
}

// VM implements the virtual machine: 4KB of memory, 16 general purpose
// registers, a 16 entry call stack, a 64x32 monochrome display, a 16 key
// keypad and two countdown timers.
//
// The host drives execution by calling Step repeatedly and TickTimers at
// a lower cadence, conventionally 8-12 steps per timer tick. A VM is not
// safe for concurrent use.
type VM struct {
	memory  [MemorySize]byte
	display [DisplayWidth * DisplayHeight]bool

	v  [registerCount]byte
	i  uint16
	pc uint16

	stack [stackDepth]uint16
	sp    byte

	delay byte
	sound byte

	keys [KeyCount]bool

	random Random
	tracer Tracer
}

// New creates a new VM with default options. The machine starts zeroed with
// the glyph sprites loaded and the program counter set to ProgramStart.
func New() *VM {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a new VM with the given options.
func NewWithOptions(options Options) *VM {
	v := &VM{
		random: options.Random,
		tracer: options.Tracer,
	}
	if v.random == nil {
		v.random = mathRandom{}
	}
	v.Reset()
	return v
}

// Reset returns the machine to its initial state: registers, stack, timers,
// keys and display are zeroed, the glyph sprites are restored and the program
// counter is set to ProgramStart. A loaded program is discarded and has to be
// loaded again. The configured randomness source and tracer are kept.
func (v *VM) Reset() {
	v.memory = [MemorySize]byte{}
	v.display = [DisplayWidth * DisplayHeight]bool{}
	v.v = [registerCount]byte{}
	v.stack = [stackDepth]uint16{}
	v.keys = [KeyCount]bool{}
	v.i = 0
	v.pc = ProgramStart
	v.sp = 0
	v.delay = 0
	v.sound = 0

	copy(v.memory[:], fontset[:])
}

// Load copies a program into memory starting at ProgramStart. The program
// size is validated before any byte is copied.
func (v *VM) Load(program []byte) error {
	if ProgramStart+len(program) > MemorySize {
		return fmt.Errorf("%w: %d byte program exceeds %d bytes of program space",
			ErrMemoryOverflow, len(program), MemorySize-ProgramStart)
	}

	copy(v.memory[ProgramStart:], program)
	return nil
}

// SetKey sets the pressed state of a keypad key. Key indexes range from
// 0 to 15.
func (v *VM) SetKey(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return fmt.Errorf("%w: key %d", ErrIndexOutOfRange, index)
	}

	v.keys[index] = pressed
	return nil
}

// Display returns a copy of the display buffer in row-major order, one bool
// per pixel and DisplayWidth entries per row. True marks a lit pixel.
func (v *VM) Display() []bool {
	display := make([]bool, len(v.display))
	copy(display, v.display[:])
	return display
}

// TickTimers decrements the delay and sound timers by one, saturating at
// zero. The host calls it once per frame, independently of Step.
func (v *VM) TickTimers() {
	if v.delay > 0 {
		v.delay--
	}
	if v.sound > 0 {
		v.sound--
	}
}

// IsBeeping returns whether the sound timer is running. The host drives its
// audio output from this flag, the machine itself produces no sound.
func (v *VM) IsBeeping() bool {
	return v.sound > 0
}

// readByte reads a byte from memory, validating the address range.
func (v *VM) readByte(address uint16) (byte, error) {
	if address >= MemorySize {
		return 0, fmt.Errorf("%w: read at $%04X", ErrAddressOutOfRange, address)
	}
	return v.memory[address], nil
}

// writeByte writes a byte to memory, validating the address range.
func (v *VM) writeByte(address uint16, value byte) error {
	if address >= MemorySize {
		return fmt.Errorf("%w: write at $%04X", ErrAddressOutOfRange, address)
	}
	v.memory[address] = value
	return nil
}

// push puts a return address onto the call stack.
func (v *VM) push(address uint16) error {
	if v.sp >= stackDepth {
		return ErrStackOverflow
	}
	v.stack[v.sp] = address
	v.sp++
	return nil
}

// pop removes and returns the top return address from the call stack.
func (v *VM) pop() (uint16, error) {
	if v.sp == 0 {
		return 0, ErrStackUnderflow
	}
	v.sp--
	return v.stack[v.sp], nil
}
