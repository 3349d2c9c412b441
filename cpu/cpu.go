package cpu

import "errors"

var (
	// ErrPCOutOfRange is returned when the program counter leaves the loaded program.
	ErrPCOutOfRange = errors.New("program counter out of range")
	// ErrIllegalInstruction is returned for words that are neither address nor compute instructions.
	ErrIllegalInstruction = errors.New("illegal instruction")
)

// CPU registers and memory.
type CPU struct {
	// A is the address register.
	A uint16
	// D is the data register.
	D uint16
	// PC is the program counter.
	PC uint16

	// RAM is data memory, including the screen and keyboard maps.
	RAM []uint16
	// ROM holds the loaded program.
	ROM []uint16

	// Cycles count.
	Cycles int
}

// New creates a new CPU with a full data memory and no program.
func New() *CPU {
	return &CPU{
		RAM: make([]uint16, RAMSize),
	}
}

// LoadROM copies a program into instruction memory and resets the CPU.
func (c *CPU) LoadROM(code []uint16) {
	if len(code) > ROMSize {
		code = code[:ROMSize]
	}
	c.ROM = append(c.ROM[:0], code...)
	c.Reset()
}

// Reset clears the registers and cycle count. RAM is left alone.
func (c *CPU) Reset() {
	c.A, c.D, c.PC = 0, 0, 0
	c.Cycles = 0
}

// Halted reports whether the CPU sits in the "@k / 0;JMP" end-of-program
// loop at address k.
func (c *CPU) Halted() bool {
	pc := int(c.PC)
	if pc+1 >= len(c.ROM) {
		return false
	}
	at, next := c.ROM[pc], c.ROM[pc+1]
	if !IsAddress(at) || at != c.PC {
		return false
	}
	return IsCompute(next) && next&MaskJump == JumpGT|JumpEQ|JumpLT
}
