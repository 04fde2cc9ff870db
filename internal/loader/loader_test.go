package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x60, 0x0A, 0x61, 0x05, 0x80, 0x14}
		tmpFile := createTempFile(t, data)

		loader := New()
		program, err := loader.Load(tmpFile)
		assert.NoError(t, err)

		// the bank padding of the buffer loader is trimmed away
		assert.Len(t, program, len(data))
		for i := range data {
			assert.Equal(t, data[i], program[i])
		}
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrNoProgramData))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
