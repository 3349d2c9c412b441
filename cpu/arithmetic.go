package cpu

// ALU control bits, in the order they sit in c1..c6.
const (
	aluZX = 1 << 5 // zero the x input
	aluNX = 1 << 4 // negate the x input
	aluZY = 1 << 3 // zero the y input
	aluNY = 1 << 2 // negate the y input
	aluF  = 1 << 1 // 1 = add, 0 = and
	aluNO = 1 << 0 // negate the output
)

// ALU computes out = f(x, y) for the six control bits c, and reports the
// zero and negative flags of the result.
func ALU(x, y uint16, c uint16) (out uint16, zr, ng bool) {
	if c&aluZX != 0 {
		x = 0
	}
	if c&aluNX != 0 {
		x = ^x
	}
	if c&aluZY != 0 {
		y = 0
	}
	if c&aluNY != 0 {
		y = ^y
	}
	if c&aluF != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if c&aluNO != 0 {
		out = ^out
	}
	return out, out == 0, out&0x8000 != 0
}

// jumps reports whether the jump bits select a branch for the given flags.
func jumps(j uint16, zr, ng bool) bool {
	switch {
	case zr:
		return j&JumpEQ != 0
	case ng:
		return j&JumpLT != 0
	default:
		return j&JumpGT != 0
	}
}
