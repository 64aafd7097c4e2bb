// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM image from disk. CHIP-8 ROM files have no
// header, the whole file is program data. LoadBuffer pads the buffer to
// its minimum bank size, the padding is trimmed back to the file size.
func (l *Loader) Load(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info for %s: %w", filename, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file %s is empty", filename)
	}
	if info.Size() > cpu.MemorySize {
		return nil, fmt.Errorf("file %s is %d bytes, larger than the %d byte CHIP-8 memory",
			filename, info.Size(), cpu.MemorySize)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM buffer: %w", err)
	}

	data := cart.PRG
	if int64(len(data)) > info.Size() {
		data = data[:info.Size()]
	}
	return data, nil
}
