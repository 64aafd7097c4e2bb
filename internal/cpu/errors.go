package cpu

import "errors"

// Fault reasons of a run. All of them are terminal: the run loop stops at
// the first fault and the machine has to be recreated to run again, since
// the program counter has already advanced past the faulting instruction.
var (
	// ErrOutOfBoundsFetch indicates an instruction fetch outside of memory.
	ErrOutOfBoundsFetch = errors.New("instruction fetch out of memory bounds")

	// ErrOutOfBoundsAccess indicates a data read or write outside of memory.
	ErrOutOfBoundsAccess = errors.New("memory access out of bounds")

	// ErrStackOverflow indicates a call with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow indicates a return with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")

	// ErrUnimplementedOpcode indicates an instruction word that does not
	// match any supported opcode pattern.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
)

// ErrNotRunning is returned by Step when the machine has already reached a
// terminal state.
var ErrNotRunning = errors.New("machine is not running")

// ErrProgramTooLarge is returned by Load when the data does not fit into
// memory at the given offset.
var ErrProgramTooLarge = errors.New("program does not fit into memory")
