package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, StatusRunning, m.Status())
	assert.Equal(t, uint16(0), m.PC())
	assert.Equal(t, uint16(0), m.IndexRegister())
	assert.Equal(t, 0, m.StackSize())
	assert.Equal(t, uint64(0), m.Cycles())

	for i := uint8(0); i < RegisterCount; i++ {
		assert.Equal(t, uint8(0), m.Register(i))
	}
	for address := uint16(0); address < MemorySize; address++ {
		b, err := m.ReadMemory(address)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), b)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		offset  uint16
		wantErr bool
	}{
		{"program at start of memory", 4, 0, false},
		{"program at classic start address", 4, ProgramStart, false},
		{"program filling remaining memory", MemorySize - ProgramStart, ProgramStart, false},
		{"program one byte too large", MemorySize - ProgramStart + 1, ProgramStart, true},
		{"offset at end of memory", 1, MemorySize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			data := make([]byte, tt.size)
			for i := range data {
				data[i] = byte(i + 1)
			}

			err := m.Load(data, tt.offset)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				return
			}

			assert.NoError(t, err)
			b, err := m.ReadMemory(tt.offset)
			assert.NoError(t, err)
			assert.Equal(t, byte(1), b)
		})
	}
}

func TestReadMemoryOutOfBounds(t *testing.T) {
	m := New()
	_, err := m.ReadMemory(MemorySize)
	assert.True(t, errors.Is(err, ErrOutOfBoundsAccess))
}

func TestRegisterAccess(t *testing.T) {
	m := New()

	m.SetRegister(0x3, 0xAB)
	assert.Equal(t, uint8(0xAB), m.Register(0x3))

	// Indices are masked to the 4-bit register range.
	m.SetRegister(0x13, 0xCD)
	assert.Equal(t, uint8(0xCD), m.Register(0x3))
	assert.Equal(t, uint8(0xCD), m.Register(0x13))
}

func TestLoadFont(t *testing.T) {
	m := New()
	m.LoadFont()

	// Sprite for digit 0 starts at address 0.
	b, err := m.ReadMemory(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)

	// Sprite for digit F occupies the last 5 font bytes.
	b, err = m.ReadMemory(0xF * FontSpriteSize)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
	b, err = m.ReadMemory(0xF*FontSpriteSize + FontSpriteSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), b)
}

func TestTickTimers(t *testing.T) {
	m := New()
	m.delayTimer = 2
	m.soundTimer = 1

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	// Timers stop at zero instead of wrapping.
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
}

func TestSetKey(t *testing.T) {
	m := New()

	m.SetKey(0xA, true)
	assert.True(t, m.keys[0xA])

	m.SetKey(0xA, false)
	assert.False(t, m.keys[0xA])

	// Key indices are masked to the 16-key keypad range.
	m.SetKey(0x1A, true)
	assert.True(t, m.keys[0xA])
}
