package cpu

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Fields holds the decoded sub-fields of a 16-bit instruction word.
// Decoding is pure and total: every word decodes to some field tuple,
// though not every tuple corresponds to a supported opcode.
type Fields struct {
	Op uint8 // bits 12-15, instruction family
	X  uint8 // bits 8-11, usually a register index
	Y  uint8 // bits 4-7, usually a register index
	N  uint8 // bits 0-3, sub-opcode or literal nibble

	Addr uint16 // bits 0-11, jump/call target address
	Byte uint8  // bits 0-7, immediate operand
}

// Decode splits an instruction word into its nibble fields and
// immediate values.
func Decode(w uint16) Fields {
	return Fields{
		Op:   uint8(w >> 12),
		X:    uint8(w>>8) & 0xF,
		Y:    uint8(w>>4) & 0xF,
		N:    uint8(w) & 0xF,
		Addr: w & 0x0FFF,
		Byte: uint8(w),
	}
}

// fetch reads the big-endian instruction word at the program counter.
// It does not mutate state.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 >= MemorySize {
		return 0, ErrOutOfBoundsFetch
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1]), nil
}

// lookupOpcode matches an instruction word against the CHIP-8 opcode
// table. Entries are mask/value patterns grouped by the first nibble,
// with more specific patterns listed before the families they overlap.
// Table entries without an instruction are treated as unsupported.
func lookupOpcode(w uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(w>>12)] {
		if op.Info.Mask&w == op.Info.Value {
			if op.Instruction == nil {
				return chip8.Opcode{}, false
			}
			return op, true
		}
	}
	return chip8.Opcode{}, false
}
