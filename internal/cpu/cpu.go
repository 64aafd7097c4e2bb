package cpu

import (
	"fmt"
	"math/rand"
)

// CHIP-8 architecture constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, the dual-purpose data and
	// carry/borrow/collision flag register.
	FlagRegister = 0xF

	// StackDepth is the capacity of the call stack.
	StackDepth = 16

	// KeyCount is the number of keys on the CHIP-8 keypad.
	KeyCount = 16

	// DisplayWidth and DisplayHeight are the framebuffer dimensions in pixels.
	DisplayWidth  = 64
	DisplayHeight = 32

	// ProgramStart is the memory address where CHIP-8 programs are
	// classically loaded and begin execution. The area below it is
	// reserved for the interpreter and font data.
	ProgramStart = 0x200

	// instructionSize is the size of CHIP-8 instructions in bytes.
	instructionSize = 2
)

// Machine holds the complete state of one CHIP-8 CPU instance. It is
// created zeroed by New, mutated in place by the run loop and opcode
// handlers, and discarded when the run reaches a terminal state.
type Machine struct {
	registers [RegisterCount]uint8
	memory    [MemorySize]byte
	stack     [StackDepth]uint16
	sp        uint8

	pc    uint16
	index uint16

	delayTimer uint8
	soundTimer uint8

	display [DisplayHeight][DisplayWidth]uint8
	keys    [KeyCount]bool

	status Status
	fault  error
	cycles uint64

	randByte func() uint8
}

// New returns a new zero-initialized machine in the Running state,
// with the program counter at address 0. Program data, font sprites and
// the start address are set up by an external loader before the first
// Run or Step call.
func New() *Machine {
	return &Machine{
		randByte: func() uint8 {
			return uint8(rand.Intn(0x100)) //nolint:gosec // not used for security
		},
	}
}

// Load copies data into memory starting at offset.
func (m *Machine) Load(data []byte, offset uint16) error {
	if int(offset)+len(data) > MemorySize {
		return fmt.Errorf("%w: %d bytes at address %03X", ErrProgramTooLarge, len(data), offset)
	}
	copy(m.memory[offset:], data)
	return nil
}

// Register returns the value of register Vx. The index is masked to the
// 4-bit register range common to all decoded register operands.
func (m *Machine) Register(x uint8) uint8 {
	return m.registers[x&0xF]
}

// SetRegister sets register Vx to the given value.
func (m *Machine) SetRegister(x, value uint8) {
	m.registers[x&0xF] = value
}

// PC returns the current program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SetPC sets the program counter to the given start address. An address
// outside of memory is not rejected here, the next fetch faults on it.
func (m *Machine) SetPC(address uint16) {
	m.pc = address
}

// IndexRegister returns the value of the 16-bit index register I.
func (m *Machine) IndexRegister() uint16 {
	return m.index
}

// ReadMemory returns the byte at the given memory address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("%w: address %04X", ErrOutOfBoundsAccess, address)
	}
	return m.memory[address], nil
}

// StackSize returns the number of return addresses on the call stack.
func (m *Machine) StackSize() int {
	return int(m.sp)
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// TickTimers decrements the delay and sound timers by one if they are
// non-zero. The core never ticks timers itself, the host calls this at
// the classic 60 Hz rate or whatever rate it chooses.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SetKey sets the pressed state of a keypad key. The key index is masked
// to the 16-key keypad range.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keys[key&0xF] = pressed
}

// Display returns a copy of the framebuffer. Pixels are 0 or 1, indexed
// as [row][column].
func (m *Machine) Display() [DisplayHeight][DisplayWidth]uint8 {
	return m.display
}

// SetRandom replaces the random byte source used by the rnd instruction.
// Tests inject a deterministic source here.
func (m *Machine) SetRandom(randByte func() uint8) {
	m.randByte = randByte
}

// Status returns the current run loop state.
func (m *Machine) Status() Status {
	return m.status
}

// Cycles returns the number of executed fetch-decode-execute cycles.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}
