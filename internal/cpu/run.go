package cpu

import (
	"context"
	"fmt"
)

// opcodeHalt terminates the run loop normally. It is checked before the
// table lookup since the sys family pattern would otherwise match it.
const opcodeHalt = 0x0000

// Status is the state of the run loop.
type Status uint8

// Run loop states. Halted and Faulted are terminal, a machine never
// re-enters Running.
const (
	StatusRunning Status = iota
	StatusHalted
	StatusFaulted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusHalted:
		return "halted"
	case StatusFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("unknown status %d", uint8(s))
	}
}

// Result describes the outcome of a run.
type Result struct {
	Status Status
	Err    error // fault reason, set when Status is StatusFaulted
	Cycles uint64
}

// Step executes a single fetch-decode-execute cycle. A fault is recorded
// on the machine and returned; subsequent Step calls on a terminal
// machine return ErrNotRunning.
func (m *Machine) Step() error {
	if m.status != StatusRunning {
		return fmt.Errorf("%w: %s", ErrNotRunning, m.status)
	}

	position := m.pc
	w, err := m.fetch()
	if err != nil {
		return m.setFault(fmt.Errorf("address %04X: %w", position, err))
	}
	m.pc += instructionSize
	m.cycles++

	if w == opcodeHalt {
		m.status = StatusHalted
		return nil
	}

	op, ok := lookupOpcode(w)
	if !ok {
		return m.setFault(fmt.Errorf("opcode %04X at address %04X: %w",
			w, position, ErrUnimplementedOpcode))
	}

	if err := m.execute(w, op); err != nil {
		return m.setFault(fmt.Errorf("opcode %04X at address %04X: %w", w, position, err))
	}
	return nil
}

// Run drives the machine until it reaches a terminal state, polling the
// context once per cycle. The returned error is non-nil only when the
// context was cancelled, in which case the machine stays in the Running
// state and the partial result describes the progress made.
func (m *Machine) Run(ctx context.Context) (Result, error) {
	for m.status == StatusRunning {
		select {
		case <-ctx.Done():
			return m.Result(), ctx.Err()
		default:
		}

		if err := m.Step(); err != nil {
			break // fault recorded by Step
		}
	}
	return m.Result(), nil
}

// setFault transitions the machine into the Faulted terminal state.
func (m *Machine) setFault(err error) error {
	m.status = StatusFaulted
	m.fault = err
	return err
}

// Result returns the outcome of the run so far. It is meaningful once
// the machine reached a terminal state or the host stopped the loop.
func (m *Machine) Result() Result {
	return Result{
		Status: m.status,
		Err:    m.fault,
		Cycles: m.cycles,
	}
}
