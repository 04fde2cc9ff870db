package chip8

import "errors"

// Error conditions reported by the virtual machine. Step and Load wrap these
// with the failing opcode and address, callers match them with errors.Is.
var (
	// ErrMemoryOverflow is returned when a program does not fit into the
	// memory space above ProgramStart.
	ErrMemoryOverflow = errors.New("memory overflow")

	// ErrIndexOutOfRange is returned when a key index outside the keypad
	// range is passed to SetKey or used by a key skip instruction.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStackOverflow is returned when a call exceeds the call stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a return is executed with an empty
	// call stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrAddressOutOfRange is returned when an instruction fetch or a memory
	// access falls outside the valid memory space.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrUnsupportedInstruction is returned when the fetched opcode has no
	// defined semantics. The failing step leaves the machine state otherwise
	// consistent, the host decides whether to stop or skip.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
)
