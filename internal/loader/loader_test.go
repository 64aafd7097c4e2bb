package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		tmpFile := createTempFile(t, data)

		loader := New()
		loaded, err := loader.Load(tmpFile)
		assert.NoError(t, err)

		// LoadBuffer pads to the minimum bank size, the loader trims the
		// result back to the file size.
		assert.Len(t, loaded, len(data))
		assert.Equal(t, data, loaded)
	})

	t.Run("load maximum size ROM", func(t *testing.T) {
		data := make([]byte, cpu.MemorySize)
		data[0] = 0x12
		tmpFile := createTempFile(t, data)

		loader := New()
		loaded, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, loaded, cpu.MemorySize)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("error on file larger than memory", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, cpu.MemorySize+1))

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "larger than")
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
