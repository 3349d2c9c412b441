package assembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/cpu"
)

// Assembles source and checks the emitted words one by one.
func assembleAndMatch(t *testing.T, name, src string, want ...string) {
	t.Helper()

	got, err := assembler.Assemble(src)
	require.NoError(t, err, "[%s] failed to assemble:\n%s", name, src)
	require.Len(t, got, len(want), "[%s] word count", name)
	for i := range want {
		assert.Equal(t, want[i], got[i], "[%s] word %d", name, i)
	}
}

func TestAddTwoAndThree(t *testing.T) {
	src := `// Computes R0 = 2 + 3
@2
D=A
@3
D=D+A
@0
M=D
`
	assembleAndMatch(t, "Add", src,
		"0000000000000010",
		"1110110000010000",
		"0000000000000011",
		"1110000010010000",
		"0000000000000000",
		"1110001100001000",
	)
}

func TestComputeEncodings(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"DestComp", "D=A", "1110110000010000"},
		{"CompJump", "0;JMP", "1110101010000111"},
		{"DestCompJump", "AMD=M+1;JNE", "1111110111111101"},
		{"BareComp", "D", "1110001100000000"},
		{"MComp", "D=D|M", "1111010101010000"},
		{"Negate", "M=-1", "1110111010001000"},
		{"FieldSpaces", "D = M ; JGT", "1111110000010001"},
		{"AllDest", "AMD=0", "1110101010111000"},
		{"JLE", "D;JLE", "1110001100000110"},
	}
	for _, tc := range tests {
		assembleAndMatch(t, tc.name, tc.src, tc.want)
	}
}

func TestAddressEncodings(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"Zero", "@0", "0000000000000000"},
		{"Max", "@32767", "0111111111111111"},
		{"LeadingZeros", "@0017", "0000000000010001"},
		{"R0", "@R0", "0000000000000000"},
		{"R15", "@R15", "0000000000001111"},
		{"SP", "@SP", "0000000000000000"},
		{"THAT", "@THAT", "0000000000000100"},
		{"SCREEN", "@SCREEN", "0100000000000000"},
		{"KBD", "@KBD", "0110000000000000"},
		{"R9", "@R9", "0000000000001001"},
		{"R16IsVariable", "@R16", "0000000000010000"},
		{"R01IsVariable", "@R01", "0000000000010000"},
		{"R99IsVariable", "@R99", "0000000000010000"},
	}
	for _, tc := range tests {
		assembleAndMatch(t, tc.name, tc.src, tc.want)
	}
}

func TestPredefinedSymbols(t *testing.T) {
	st := assembler.NewSymbolTable()
	assert.Equal(t, 7, st.Len())
	for name, want := range map[string]uint16{
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"SCREEN": 16384, "KBD": 24576,
	} {
		got, ok := st.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestInstructionCountMatches(t *testing.T) {
	src := "@1\nD=A\n@2\nD=D-A\n@100\nM=D\n0;JMP\n"
	got, err := assembler.Assemble(src)
	require.NoError(t, err)
	assert.Len(t, got, 7)
	assert.Equal(t, "0000000001100100", got[4])
}

func TestForwardLabel(t *testing.T) {
	src := `
	@END
	0;JMP
	D=A
(END)
	M=D
`
	p, err := assembler.New().Assemble(src)
	require.NoError(t, err)
	require.Len(t, p.Instructions, 4)
	assert.Equal(t, "0000000000000011", p.Instructions[0].Binary)

	addr, ok := p.Symbols.Resolve("END")
	require.True(t, ok)
	assert.Equal(t, uint16(3), addr)
}

func TestLabelAtEnd(t *testing.T) {
	p, err := assembler.New().Assemble("@END\n0;JMP\n(END)\n")
	require.NoError(t, err)
	assert.Len(t, p.Instructions, 2)
	addr, ok := p.Symbols.Resolve("END")
	require.True(t, ok)
	assert.Equal(t, uint16(2), addr)
	assert.Equal(t, "0000000000000010", p.Instructions[0].Binary)
}

func TestInfiniteLoop(t *testing.T) {
	src := "@5\nD=A\n(LOOP)\n@LOOP\n0;JMP\n"
	assembleAndMatch(t, "Loop", src,
		"0000000000000101",
		"1110110000010000",
		"0000000000000010",
		"1110101010000111",
	)
}

func TestVariables(t *testing.T) {
	src := `
@i
M=1
@sum
M=0
@i
D=M
@sum
M=D+M
`
	p, err := assembler.New().Assemble(src)
	require.NoError(t, err)
	bin := p.Binary()
	assert.Equal(t, "0000000000010000", bin[0])
	assert.Equal(t, "0000000000010001", bin[2])
	assert.Equal(t, "0000000000010000", bin[4])
	assert.Equal(t, "0000000000010001", bin[6])

	kind, ok := p.Symbols.Kind("sum")
	require.True(t, ok)
	assert.Equal(t, assembler.SymbolVariable, kind)
}

func TestLabelBeatsVariable(t *testing.T) {
	// A label used before its declaration is still a label, not a variable.
	src := "@x\n@LOOP\n(LOOP)\n@y\n"
	assembleAndMatch(t, "LabelFirst", src,
		"0000000000010000",
		"0000000000000010",
		"0000000000010001",
	)
}

func TestComments(t *testing.T) {
	src := "// header\r\n\r\n   @2 // load two\r\n\tD=A\t// keep\r\n//\r\n"
	assembleAndMatch(t, "Comments", src,
		"0000000000000010",
		"1110110000010000",
	)
}

func TestEmptySource(t *testing.T) {
	got, err := assembler.Assemble("  \n// nothing\n\n")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		err   error
		line  int
		field string
	}{
		{"UnknownComp", "@1\n// x\nD=Q", assembler.ErrUnknownMnemonic, 3, "comp"},
		{"UnknownDest", "X=D", assembler.ErrUnknownMnemonic, 1, "dest"},
		{"UnknownJump", "0;JXX", assembler.ErrUnknownMnemonic, 1, "jump"},
		{"LowerCaseComp", "d=a", assembler.ErrUnknownMnemonic, 1, "comp"},
		{"EmptyAddress", "@", assembler.ErrMalformed, 1, "address"},
		{"BadSymbol", "@1abc", assembler.ErrMalformed, 1, "address"},
		{"SpaceInSymbol", "@a b", assembler.ErrMalformed, 1, "address"},
		{"OpenLabel", "(LOOP", assembler.ErrMalformed, 1, "label"},
		{"EmptyLabel", "()", assembler.ErrMalformed, 1, "label"},
		{"EmptyDest", "=D", assembler.ErrMalformed, 1, "dest"},
		{"EmptyJump", "D;", assembler.ErrMalformed, 1, "jump"},
		{"EmptyComp", "D=;JMP", assembler.ErrMalformed, 1, "comp"},
		{"TooBig", "@32768", assembler.ErrAddressRange, 1, "address"},
		{"WayTooBig", "@99999999999999999999999", assembler.ErrAddressRange, 1, "address"},
		{"DuplicateLabel", "(A1)\n@A1\n(A1)\nD=A", assembler.ErrDuplicateLabel, 3, "label"},
		{"PredefinedLabel", "(SCREEN)\n0;JMP", assembler.ErrDuplicateLabel, 1, "label"},
		{"RegisterLabel", "(R3)\n0;JMP", assembler.ErrDuplicateLabel, 1, "label"},
	}
	for _, tc := range tests {
		p, err := assembler.New().Assemble(tc.src)
		assert.Nil(t, p, tc.name)
		require.Error(t, err, tc.name)
		assert.ErrorIs(t, err, tc.err, tc.name)

		var le *assembler.LineError
		require.True(t, errors.As(err, &le), tc.name)
		assert.Equal(t, tc.line, le.Line.Number, tc.name)
		assert.Equal(t, tc.field, le.Field, tc.name)
		assert.Contains(t, err.Error(), le.Line.Text, tc.name)
	}
}

func TestAllowDuplicateLabels(t *testing.T) {
	asm := assembler.New()
	asm.AllowDuplicateLabels = true

	p, err := asm.Assemble("(A1)\n@A1\n(A1)\nD=A\n@A1\n(SP)\n@SP")
	require.NoError(t, err)
	bin := p.Binary()
	assert.Equal(t, "0000000000000000", bin[0])
	assert.Equal(t, "0000000000000000", bin[2])
	assert.Equal(t, "0000000000000000", bin[3])
}

func TestRunAssembled(t *testing.T) {
	src := `
	@2
	D=A
	@3
	D=D+A
	@0
	M=D
(END)
	@END
	0;JMP
`
	p, err := assembler.New().Assemble(src)
	require.NoError(t, err)

	c := cpu.New()
	c.LoadROM(p.Words())
	_, err = c.Run(100)
	require.NoError(t, err)
	assert.True(t, c.Halted())
	assert.Equal(t, uint16(5), c.RAM[0])
}

func TestRunCountdown(t *testing.T) {
	// Sums 1..R0 into R1.
	src := `
	@10
	D=A
	@R0
	M=D
	@R1
	M=0
(LOOP)
	@R0
	D=M
	@END
	D;JEQ
	@R1
	M=D+M
	@R0
	M=M-1
	@LOOP
	0;JMP
(END)
	@END
	0;JMP
`
	p, err := assembler.New().Assemble(src)
	require.NoError(t, err)

	c := cpu.New()
	c.LoadROM(p.Words())
	_, err = c.Run(10000)
	require.NoError(t, err)
	assert.True(t, c.Halted())
	assert.Equal(t, uint16(55), c.RAM[1])
	assert.Equal(t, uint16(0), c.RAM[0])
}

func TestProgramOutput(t *testing.T) {
	p, err := assembler.New().Assemble("@i\nM=1 // set\n(END)\n@END\n0;JMP\n")
	require.NoError(t, err)

	assert.Equal(t, "0000000000010000\n1110111111001000\n0000000000000010\n1110101010000111\n", p.String())
	assert.Equal(t, []uint16{0x0010, 0xEFC8, 0x0002, 0xEA87}, p.Words())

	var buf bytes.Buffer
	require.NoError(t, p.Listing(&buf))
	out := buf.String()
	assert.Contains(t, out, "    1  1110111111001000     2: M=1")
	assert.Contains(t, out, "END")
	assert.Contains(t, out, "label")
	assert.Contains(t, out, "variable")
	assert.NotContains(t, out, "SCREEN")

	buf.Reset()
	require.NoError(t, p.WriteSymbols(&buf, true))
	assert.Equal(t, 1+p.Symbols.Len(), strings.Count(strings.TrimSpace(buf.String()), "\n")+1)
	assert.Contains(t, buf.String(), "SCREEN")
}
