// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/chip8go/internal/loader"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete emulation pipeline: load the ROM file, set up
// a machine and drive it to a terminal state. The returned error covers
// loading problems and context cancellation; a fault of the machine is
// reported in the result.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (cpu.Result, error) {
	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return cpu.Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithProgram(ctx, opts, data)
}

// ExecuteWithProgram runs the emulation pipeline with an in-memory
// program image. This is useful for testing and programmatic usage.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, opts options.Program, data []byte) (cpu.Result, error) {
	start := uint16(opts.Start)

	machine := cpu.New()
	machine.LoadFont()
	if err := machine.Load(data, start); err != nil {
		return cpu.Result{}, fmt.Errorf("loading program into machine: %w", err)
	}
	machine.SetPC(start)

	p.printInfo(opts, len(data))

	result, err := p.run(ctx, machine, opts)
	if err != nil {
		return result, err
	}

	p.report(machine, result, opts)
	return result, nil
}

// run drives the machine to a terminal state. The fast path hands the
// loop to the core; tracing and a cycle budget need the per-cycle
// insertion point that Step provides.
func (p *Pipeline) run(ctx context.Context, machine *cpu.Machine, opts options.Program) (cpu.Result, error) {
	if !opts.Trace && opts.MaxCycles == 0 {
		return machine.Run(ctx)
	}

	for machine.Status() == cpu.StatusRunning {
		select {
		case <-ctx.Done():
			return machine.Result(), ctx.Err()
		default:
		}

		if opts.MaxCycles > 0 && machine.Cycles() >= opts.MaxCycles {
			p.logger.Warn("Cycle budget exhausted, stopping the machine",
				log.Int("cycles", int(machine.Cycles())))
			break
		}

		if opts.Trace {
			p.traceStep(machine)
		}

		if err := machine.Step(); err != nil {
			break // fault recorded in the machine state
		}
	}
	return machine.Result(), nil
}

// traceStep logs the instruction about to be executed.
func (p *Pipeline) traceStep(machine *cpu.Machine) {
	pc := machine.PC()
	high, err1 := machine.ReadMemory(pc)
	low, err2 := machine.ReadMemory(pc + 1)
	if err1 != nil || err2 != nil {
		return // the fetch fault is reported by the run
	}
	w := uint16(high)<<8 | uint16(low)
	p.logger.Info("Trace",
		log.String("address", fmt.Sprintf("%04X", pc)),
		log.String("opcode", fmt.Sprintf("%04X", w)))
}

// printInfo prints information about the program to run.
func (p *Pipeline) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("start", fmt.Sprintf("%04X", opts.Start)),
	)
}

// report logs the terminal state of the run.
func (p *Pipeline) report(machine *cpu.Machine, result cpu.Result, opts options.Program) {
	switch result.Status {
	case cpu.StatusHalted:
		p.logger.Info("Machine halted",
			log.Int("cycles", int(result.Cycles)))

	case cpu.StatusFaulted:
		p.logger.Error("Machine faulted",
			log.Int("cycles", int(result.Cycles)),
			log.Err(result.Err))

	case cpu.StatusRunning:
		p.logger.Info("Machine stopped before reaching a terminal state",
			log.Int("cycles", int(result.Cycles)))
	}

	if opts.Dump {
		p.dump(machine)
	}
}

// dump logs the register file, index register and call stack.
func (p *Pipeline) dump(machine *cpu.Machine) {
	var registers strings.Builder
	for i := uint8(0); i < cpu.RegisterCount; i++ {
		if i > 0 {
			registers.WriteByte(' ')
		}
		fmt.Fprintf(&registers, "V%X=%02X", i, machine.Register(i))
	}

	p.logger.Info("Machine state",
		log.String("registers", registers.String()),
		log.String("pc", fmt.Sprintf("%04X", machine.PC())),
		log.String("i", fmt.Sprintf("%04X", machine.IndexRegister())),
		log.Int("stack_size", machine.StackSize()),
		log.Uint8("delay_timer", machine.DelayTimer()),
		log.Uint8("sound_timer", machine.SoundTimer()),
	)
}
