package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// execute dispatches a decoded instruction to its handler. Variants that
// share a mnemonic (ld, add, se, sne, jp) are disambiguated by the opcode
// bits, like the table groups them.
func (m *Machine) execute(w uint16, op chip8.Opcode) error {
	f := Decode(w)

	switch op.Instruction.Name {
	case chip8.ClsName:
		m.display = [DisplayHeight][DisplayWidth]uint8{}

	case chip8.RetName:
		return m.ret()

	case chip8.JpName:
		if f.Op == 0xB { // jp V0, addr
			m.pc = f.Addr + uint16(m.registers[0])
		} else {
			m.pc = f.Addr
		}

	case chip8.CallName:
		return m.call(f.Addr)

	case chip8.SeName:
		if f.Op == 0x5 { // se Vx, Vy
			m.skipIf(m.registers[f.X] == m.registers[f.Y])
		} else { // se Vx, byte
			m.skipIf(m.registers[f.X] == f.Byte)
		}

	case chip8.SneName:
		if f.Op == 0x9 { // sne Vx, Vy
			m.skipIf(m.registers[f.X] != m.registers[f.Y])
		} else { // sne Vx, byte
			m.skipIf(m.registers[f.X] != f.Byte)
		}

	case chip8.LdName:
		return m.load(f)

	case chip8.AddName:
		return m.add(f)

	case chip8.OrName:
		m.registers[f.X] |= m.registers[f.Y]

	case chip8.AndName:
		m.registers[f.X] &= m.registers[f.Y]

	case chip8.XorName:
		m.registers[f.X] ^= m.registers[f.Y]

	case chip8.SubName:
		m.sub(f.X, m.registers[f.X], m.registers[f.Y])

	case chip8.SubnName:
		m.sub(f.X, m.registers[f.Y], m.registers[f.X])

	case chip8.ShrName:
		value := m.registers[f.X]
		m.registers[f.X] = value >> 1
		m.registers[FlagRegister] = value & 0x01

	case chip8.ShlName:
		value := m.registers[f.X]
		m.registers[f.X] = value << 1
		m.registers[FlagRegister] = value >> 7

	case chip8.RndName:
		m.registers[f.X] = m.randByte() & f.Byte

	case chip8.DrwName:
		return m.draw(f)

	case chip8.SkpName:
		m.skipIf(m.keys[m.registers[f.X]&0xF])

	case chip8.SknpName:
		m.skipIf(!m.keys[m.registers[f.X]&0xF])

	default:
		// Includes sys: machine code routines of the original COSMAC
		// host have nothing to execute them on.
		return ErrUnimplementedOpcode
	}
	return nil
}

// call pushes the post-increment program counter and jumps to addr.
func (m *Machine) call(addr uint16) error {
	if m.sp >= StackDepth {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = addr
	return nil
}

// ret pops the saved return address into the program counter.
func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// skipIf advances the program counter past the next instruction when the
// condition holds. The program counter already points at the next
// instruction here.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += instructionSize
	}
}

// add handles the three add variants: add Vx, byte (no flag),
// add Vx, Vy (VF = carry) and add I, Vx.
func (m *Machine) add(f Fields) error {
	switch f.Op {
	case 0x7: // add Vx, byte
		m.registers[f.X] += f.Byte

	case 0x8: // add Vx, Vy
		x, y := m.registers[f.X], m.registers[f.Y]
		m.registers[f.X] = x + y
		// VF is overwritten even when x or y is VF itself, that quirk
		// is part of the instruction set.
		if y > 0xFF-x {
			m.registers[FlagRegister] = 1
		} else {
			m.registers[FlagRegister] = 0
		}

	case 0xF: // add I, Vx
		m.index += uint16(m.registers[f.X])

	default:
		return ErrUnimplementedOpcode
	}
	return nil
}

// sub implements the shared body of sub and subn:
// Vx = minuend - subtrahend with VF = NOT borrow.
func (m *Machine) sub(x uint8, minuend, subtrahend uint8) {
	m.registers[x] = minuend - subtrahend
	if minuend >= subtrahend {
		m.registers[FlagRegister] = 1
	} else {
		m.registers[FlagRegister] = 0
	}
}

// load handles all ld variants.
func (m *Machine) load(f Fields) error {
	switch f.Op {
	case 0x6: // ld Vx, byte
		m.registers[f.X] = f.Byte
		return nil

	case 0x8: // ld Vx, Vy
		m.registers[f.X] = m.registers[f.Y]
		return nil

	case 0xA: // ld I, addr
		m.index = f.Addr
		return nil

	case 0xF:
		return m.loadMisc(f)

	default:
		return ErrUnimplementedOpcode
	}
}

// loadMisc handles the ld variants of the 0xF instruction family:
// timers, key input, font addressing, BCD and register block transfers.
func (m *Machine) loadMisc(f Fields) error {
	switch f.Byte {
	case 0x07: // ld Vx, DT
		m.registers[f.X] = m.delayTimer

	case 0x0A: // ld Vx, K
		// Modeled without blocking: rewind the program counter so the
		// instruction retries every cycle until a key is down.
		for key := uint8(0); key < KeyCount; key++ {
			if m.keys[key] {
				m.registers[f.X] = key
				return nil
			}
		}
		m.pc -= instructionSize

	case 0x15: // ld DT, Vx
		m.delayTimer = m.registers[f.X]

	case 0x18: // ld ST, Vx
		m.soundTimer = m.registers[f.X]

	case 0x29: // ld F, Vx
		m.index = uint16(m.registers[f.X]&0xF) * FontSpriteSize

	case 0x33: // ld B, Vx
		if int(m.index)+2 >= MemorySize {
			return fmt.Errorf("%w: bcd write at %04X", ErrOutOfBoundsAccess, m.index)
		}
		value := m.registers[f.X]
		m.memory[m.index] = value / 100
		m.memory[m.index+1] = value / 10 % 10
		m.memory[m.index+2] = value % 10

	case 0x55: // ld [I], Vx
		if int(m.index)+int(f.X) >= MemorySize {
			return fmt.Errorf("%w: register store at %04X", ErrOutOfBoundsAccess, m.index)
		}
		for i := uint8(0); i <= f.X; i++ {
			m.memory[m.index+uint16(i)] = m.registers[i]
		}

	case 0x65: // ld Vx, [I]
		if int(m.index)+int(f.X) >= MemorySize {
			return fmt.Errorf("%w: register load at %04X", ErrOutOfBoundsAccess, m.index)
		}
		for i := uint8(0); i <= f.X; i++ {
			m.registers[i] = m.memory[m.index+uint16(i)]
		}

	default:
		return ErrUnimplementedOpcode
	}
	return nil
}

// draw XORs an n-byte sprite read from memory at I onto the framebuffer
// at (Vx, Vy) with wraparound and sets VF on pixel collision.
func (m *Machine) draw(f Fields) error {
	if int(m.index)+int(f.N) > MemorySize {
		return fmt.Errorf("%w: sprite read at %04X", ErrOutOfBoundsAccess, m.index)
	}

	x := m.registers[f.X] % DisplayWidth
	y := m.registers[f.Y] % DisplayHeight
	m.registers[FlagRegister] = 0

	for row := uint8(0); row < f.N; row++ {
		spriteRow := m.memory[m.index+uint16(row)]
		for col := uint8(0); col < 8; col++ {
			if spriteRow&(0x80>>col) == 0 {
				continue
			}
			px := (x + col) % DisplayWidth
			py := (y + row) % DisplayHeight
			m.display[py][px] ^= 1
			if m.display[py][px] == 0 {
				m.registers[FlagRegister] = 1
			}
		}
	}
	return nil
}
