package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/hack/assembler"
)

func TestNormalize(t *testing.T) {
	src := "  // comment\n\n@2 // x\r\n  D=A  \n\t\n(LOOP)//tail\n"
	got := assembler.Normalize(src)
	assert.Equal(t, []assembler.Line{
		{Number: 3, Text: "@2"},
		{Number: 4, Text: "D=A"},
		{Number: 6, Text: "(LOOP)"},
	}, got)

	assert.Empty(t, assembler.Normalize(""))
	assert.Empty(t, assembler.Normalize("//only\n   \n"))
}

func TestDeclareLabelFirstWins(t *testing.T) {
	st := assembler.NewSymbolTable()
	assert.True(t, st.DeclareLabel("LOOP", 4))
	assert.False(t, st.DeclareLabel("LOOP", 9))
	assert.False(t, st.DeclareLabel("KBD", 1))

	addr, ok := st.Resolve("LOOP")
	require.True(t, ok)
	assert.Equal(t, uint16(4), addr)

	addr, ok = st.Resolve("KBD")
	require.True(t, ok)
	assert.Equal(t, uint16(24576), addr)

	kind, ok := st.Kind("LOOP")
	require.True(t, ok)
	assert.Equal(t, assembler.SymbolLabel, kind)
	assert.Equal(t, "label", kind.String())
}

func TestAllocateVariable(t *testing.T) {
	st := assembler.NewSymbolTable()
	_, ok := st.Resolve("x")
	assert.False(t, ok)

	assert.Equal(t, uint16(16), st.AllocateVariable("x"))
	assert.Equal(t, uint16(17), st.AllocateVariable("y"))
	assert.Equal(t, uint16(16), st.AllocateVariable("x"))
	assert.Equal(t, uint16(18), st.AllocateVariable("z"))
	assert.Equal(t, 10, st.Len())

	addr, ok := st.Resolve("y")
	require.True(t, ok)
	assert.Equal(t, uint16(17), addr)
}

func TestSymbolNamesOrder(t *testing.T) {
	st := assembler.NewSymbolTable()
	st.DeclareLabel("START", 0)
	st.AllocateVariable("v")
	names := st.Names()
	require.Len(t, names, 9)
	// Address 0 holds SP and START; ties break by name.
	assert.Equal(t, []string{"SP", "START", "LCL"}, names[:3])
	assert.Equal(t, "v", names[6])
	assert.Equal(t, "KBD", names[8])
}
