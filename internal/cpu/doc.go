// Package cpu implements the CHIP-8 CPU core as a synchronous
// fetch-decode-execute state machine.
//
// # Machine State
//
// A Machine owns the complete CHIP-8 state:
//   - 16 general-purpose 8-bit registers V0-VF; VF doubles as the
//     carry/borrow/collision flag
//   - 4KB of byte-addressable memory holding both code and data
//   - a 16-entry call stack with an explicit stack pointer
//   - the 16-bit index register I, delay and sound timers,
//     the 64x32 monochrome framebuffer and the 16-key keypad state
//
// # Execution Model
//
// The run loop fetches a big-endian 16-bit instruction word at the program
// counter, advances the program counter by 2, decodes the word into nibble
// fields and dispatches it against the retrogolib CHIP-8 opcode table.
// Call instructions therefore push the post-increment program counter.
//
// A run ends in one of two terminal states: Halted (the 0x0000 halt word
// was executed) or Faulted (out of bounds access, stack overflow or
// underflow, or an unimplemented opcode). Terminal states are final, a
// faulted machine cannot be resumed.
//
// # Side Effects
//
// Opcode handlers mutate machine state only. Display, timers and keypad
// are modeled as state that an external presenter observes and drives:
// the framebuffer is read through Display, timers are decremented through
// TickTimers and keys are set through SetKey. The core performs no I/O.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. It is owned by whatever
// goroutine drives Run or Step; embedders that want multiple machines
// create one Machine per logical CPU instance.
package cpu
