// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string // ROM file to run

	Scale int // window scale factor
	Steps int // instructions to execute per frame

	Mute  bool
	Debug bool
	Quiet bool
}
