package emulator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8go/internal/chip8"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRunMissingFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Input: "/nonexistent/file.ch8"}

	err := Run(context.Background(), logger, opts)
	assert.Error(t, err)
}

func TestRunOversizedProgram(t *testing.T) {
	logger := log.NewTestLogger(t)

	// programs larger than the 3584 byte program space are rejected
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(tmpFile, make([]byte, 4096), 0600))
	opts := options.Program{Input: tmpFile}

	err := Run(context.Background(), logger, opts)
	assert.True(t, errors.Is(err, chip8.ErrMemoryOverflow))
}

func TestCreateTracer(t *testing.T) {
	logger := log.NewTestLogger(t)

	assert.Nil(t, createTracer(logger, false))

	tracer := createTracer(logger, true)
	assert.NotNil(t, tracer)
	tracer.Trace(0x200, 0x6142, "ld V1, $42")
}
