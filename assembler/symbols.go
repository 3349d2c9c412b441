package assembler

import (
	"sort"

	"github.com/golang/glog"

	"github.com/Urethramancer/hack/cpu"
)

// SymbolKind says where a symbol came from.
type SymbolKind int

const (
	// SymbolPredefined is one of the architecture-reserved names.
	SymbolPredefined SymbolKind = iota
	// SymbolLabel was declared with (name).
	SymbolLabel
	// SymbolVariable was allocated on first use by an address instruction.
	SymbolVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolPredefined:
		return "predefined"
	case SymbolLabel:
		return "label"
	case SymbolVariable:
		return "variable"
	}
	return "unknown"
}

type symbol struct {
	addr uint16
	kind SymbolKind
}

// SymbolTable maps names to addresses for one assembly run. Entries are
// never removed or renumbered.
type SymbolTable struct {
	symbols map[string]symbol
	nextVar uint16
}

// NewSymbolTable returns a table holding exactly the predefined symbols.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		symbols: make(map[string]symbol, len(cpu.Predefined)),
		nextVar: cpu.VariableBase,
	}
	for name, addr := range cpu.Predefined {
		st.symbols[name] = symbol{addr: addr, kind: SymbolPredefined}
	}
	return st
}

// DeclareLabel records name at the given instruction index unless the name
// is already present. It reports whether the label was inserted.
func (st *SymbolTable) DeclareLabel(name string, index uint16) bool {
	if _, ok := st.symbols[name]; ok {
		return false
	}
	st.symbols[name] = symbol{addr: index, kind: SymbolLabel}
	glog.V(2).Infof("label %s = %d", name, index)
	return true
}

// Resolve looks up a symbol.
func (st *SymbolTable) Resolve(name string) (uint16, bool) {
	s, ok := st.symbols[name]
	return s.addr, ok
}

// Kind reports the origin of a symbol.
func (st *SymbolTable) Kind(name string) (SymbolKind, bool) {
	s, ok := st.symbols[name]
	return s.kind, ok
}

// AllocateVariable gives name the next free variable address, starting at
// 16. A name that is already present keeps its address.
func (st *SymbolTable) AllocateVariable(name string) uint16 {
	if s, ok := st.symbols[name]; ok {
		return s.addr
	}
	addr := st.nextVar
	st.symbols[name] = symbol{addr: addr, kind: SymbolVariable}
	st.nextVar++
	glog.V(2).Infof("variable %s = %d", name, addr)
	return addr
}

// Len returns the number of symbols, predefined ones included.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns every symbol name sorted by address, then name.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symbols))
	for n := range st.symbols {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := st.symbols[names[i]], st.symbols[names[j]]
		if a.addr != b.addr {
			return a.addr < b.addr
		}
		return names[i] < names[j]
	})
	return names
}
