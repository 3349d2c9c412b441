package cpu

import "fmt"

// Word layout.
const (
	// WordBits is the width of every instruction and data word.
	WordBits = 16
	// AddressBits is the width of the value carried by an address instruction.
	AddressBits = 15
	// MaxAddress is the largest value an address instruction can load.
	MaxAddress = 1<<AddressBits - 1

	// CompBitsLen is the width of the comp field (a-bit plus six c-bits).
	CompBitsLen = 7
	// DestBitsLen is the width of the dest field.
	DestBitsLen = 3
	// JumpBitsLen is the width of the jump field.
	JumpBitsLen = 3

	// AddressPrefix leads every address instruction.
	AddressPrefix = "0"
	// ComputePrefix leads every compute instruction.
	ComputePrefix = "111"
)

// Bit masks for decoding a compute word.
const (
	MaskCompute = 0xE000
	MaskA       = 0x1000
	MaskC       = 0x0FC0
	MaskDest    = 0x0038
	MaskJump    = 0x0007

	ShiftComp = 6
	ShiftDest = 3
)

// Dest bits.
const (
	DestM = 1 << 0
	DestD = 1 << 1
	DestA = 1 << 2
)

// Jump bits.
const (
	JumpGT = 1 << 0
	JumpEQ = 1 << 1
	JumpLT = 1 << 2
)

// Memory map.
const (
	// RAMSize is the number of addressable data words.
	RAMSize = 1 << AddressBits
	// ROMSize is the number of addressable instruction words.
	ROMSize = 1 << AddressBits
	// Screen is the base of the memory-mapped screen.
	Screen = 16384
	// Keyboard is the memory-mapped keyboard register.
	Keyboard = 24576
	// VariableBase is where the assembler starts allocating variables.
	VariableBase = 16
	// Registers is the number of virtual registers R0..R15.
	Registers = 16
)

// Predefined holds the architecture-reserved symbol names and their addresses.
var Predefined = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": Screen,
	"KBD":    Keyboard,
}

//
// Encoding tables
//

var compTable = map[string]string{
	// a=0
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"D|A": "0010101",
	// a=1
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"D|M": "1010101",
}

var destTable = map[string]string{
	"":    "000",
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"A":   "100",
	"AM":  "101",
	"AD":  "110",
	"AMD": "111",
}

var jumpTable = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

var (
	compReverse = mustReverse("comp", compTable, CompBitsLen, 28)
	destReverse = mustReverse("dest", destTable, DestBitsLen, 8)
	jumpReverse = mustReverse("jump", jumpTable, JumpBitsLen, 8)
)

// mustReverse checks that a table is closed over the expected number of
// mnemonics, that every pattern has the field's width, and that no two
// mnemonics share a pattern. It returns the pattern to mnemonic map.
func mustReverse(field string, table map[string]string, width, count int) map[string]string {
	if len(table) != count {
		panic(fmt.Sprintf("%s table has %d entries, want %d", field, len(table), count))
	}
	rev := make(map[string]string, len(table))
	for m, bits := range table {
		if len(bits) != width {
			panic(fmt.Sprintf("%s %q encodes to %d bits, want %d", field, m, len(bits), width))
		}
		for _, b := range bits {
			if b != '0' && b != '1' {
				panic(fmt.Sprintf("%s %q has non-binary pattern %q", field, m, bits))
			}
		}
		if prev, ok := rev[bits]; ok {
			panic(fmt.Sprintf("%s %q and %q share pattern %s", field, prev, m, bits))
		}
		rev[bits] = m
	}
	return rev
}

// CompBits returns the 7-bit pattern for a comp mnemonic.
func CompBits(mnemonic string) (string, bool) {
	bits, ok := compTable[mnemonic]
	return bits, ok
}

// DestBits returns the 3-bit pattern for a dest mnemonic. The empty
// mnemonic means no destination.
func DestBits(mnemonic string) (string, bool) {
	bits, ok := destTable[mnemonic]
	return bits, ok
}

// JumpBits returns the 3-bit pattern for a jump mnemonic. The empty
// mnemonic means no jump.
func JumpBits(mnemonic string) (string, bool) {
	bits, ok := jumpTable[mnemonic]
	return bits, ok
}

// CompMnemonic is the inverse of CompBits.
func CompMnemonic(bits string) (string, bool) {
	m, ok := compReverse[bits]
	return m, ok
}

// DestMnemonic is the inverse of DestBits.
func DestMnemonic(bits string) (string, bool) {
	m, ok := destReverse[bits]
	return m, ok
}

// JumpMnemonic is the inverse of JumpBits.
func JumpMnemonic(bits string) (string, bool) {
	m, ok := jumpReverse[bits]
	return m, ok
}

// CompMnemonics lists every comp mnemonic. The order is unspecified.
func CompMnemonics() []string {
	out := make([]string, 0, len(compTable))
	for m := range compTable {
		out = append(out, m)
	}
	return out
}

// IsCompute reports whether a word is a compute instruction.
func IsCompute(word uint16) bool {
	return word&MaskCompute == MaskCompute
}

// IsAddress reports whether a word is an address instruction.
func IsAddress(word uint16) bool {
	return word&0x8000 == 0
}
