// Package options contains the program options.
package options

import "github.com/retroenv/chip8go/internal/cpu"

// Program options of the emulator.
type Program struct {
	Input string // input ROM file
	Batch string // batch process files matching pattern

	Start     uint // start address for loading and execution
	MaxCycles uint64

	Trace bool
	Dump  bool
	Debug bool
	Quiet bool
}

// New returns program options with default values.
func New() Program {
	return Program{
		Start: cpu.ProgramStart,
	}
}
