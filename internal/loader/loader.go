// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// ErrNoProgramData is returned for ROM files without any program bytes.
var ErrNoProgramData = errors.New("file contains no program data")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file and returns the raw program bytes. The cartridge
// buffer loader pads the data to a full bank, the padding gets trimmed
// back to the on disk size.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file %s: %w", path, ErrNoProgramData)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM data: %w", err)
	}

	program := cart.PRG
	if size := info.Size(); int64(len(program)) > size {
		program = program[:size]
	}
	return program, nil
}
