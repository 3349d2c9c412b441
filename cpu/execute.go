package cpu

import "fmt"

// Step fetches, decodes, and executes a single instruction.
func (c *CPU) Step() error {
	if int(c.PC) >= len(c.ROM) {
		return fmt.Errorf("pc %d, rom size %d: %w", c.PC, len(c.ROM), ErrPCOutOfRange)
	}

	// Fetch
	op := c.ROM[c.PC]
	c.Cycles++

	if IsAddress(op) {
		c.A = op
		c.PC++
		return nil
	}
	if !IsCompute(op) {
		return fmt.Errorf("opcode %016b at %d: %w", op, c.PC, ErrIllegalInstruction)
	}

	// Decode
	addr := c.A & MaxAddress
	y := c.A
	if op&MaskA != 0 {
		y = c.RAM[addr]
	}
	out, zr, ng := ALU(c.D, y, (op&MaskC)>>ShiftComp)

	// Execute. M and the jump both use the A held before this instruction.
	dest := (op & MaskDest) >> ShiftDest
	if dest&DestM != 0 {
		c.RAM[addr] = out
	}
	if dest&DestD != 0 {
		c.D = out
	}
	if dest&DestA != 0 {
		c.A = out
	}

	if jumps(op&MaskJump, zr, ng) {
		c.PC = addr
	} else {
		c.PC++
	}
	return nil
}

// Run executes until the program halts, runs off the end of ROM, or
// maxCycles instructions have been executed. It returns the number of
// instructions executed by this call.
func (c *CPU) Run(maxCycles int) (int, error) {
	start := c.Cycles
	for c.Cycles-start < maxCycles {
		if c.Halted() || int(c.PC) >= len(c.ROM) {
			break
		}
		if err := c.Step(); err != nil {
			return c.Cycles - start, fmt.Errorf("execution failed: %w", err)
		}
	}
	return c.Cycles - start, nil
}
