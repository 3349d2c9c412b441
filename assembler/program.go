package assembler

import (
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/hack/cpu"
)

// Instruction is one emitted word and the source line it came from.
type Instruction struct {
	Line   Line
	Binary string
}

// Word returns the instruction as a number.
func (i Instruction) Word() uint16 {
	w, _ := cpu.ParseWord(i.Binary)
	return w
}

// Program is the result of a successful assembly run.
type Program struct {
	Instructions []Instruction
	Symbols      *SymbolTable
}

// Binary returns the 16-digit words in source order.
func (p *Program) Binary() []string {
	out := make([]string, len(p.Instructions))
	for i, in := range p.Instructions {
		out[i] = in.Binary
	}
	return out
}

// Words returns the program as machine words, ready to load into ROM.
func (p *Program) Words() []uint16 {
	out := make([]uint16, len(p.Instructions))
	for i, in := range p.Instructions {
		out[i] = in.Word()
	}
	return out
}

// String returns the .hack file contents: one word per line.
func (p *Program) String() string {
	var sb strings.Builder
	for _, in := range p.Instructions {
		sb.WriteString(in.Binary)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Listing writes each ROM address, word and source text, followed by the
// user-defined symbols.
func (p *Program) Listing(w io.Writer) error {
	for addr, in := range p.Instructions {
		if _, err := fmt.Fprintf(w, "%5d  %s  %4d: %s\n", addr, in.Binary, in.Line.Number, in.Line.Text); err != nil {
			return err
		}
	}
	return p.WriteSymbols(w, false)
}

// WriteSymbols dumps the symbol table. Predefined symbols are only
// included when all is set.
func (p *Program) WriteSymbols(w io.Writer, all bool) error {
	if _, err := fmt.Fprintf(w, "\n%-16s %-10s %s\n", "SYMBOL", "KIND", "VALUE"); err != nil {
		return err
	}
	for _, name := range p.Symbols.Names() {
		kind, _ := p.Symbols.Kind(name)
		if kind == SymbolPredefined && !all {
			continue
		}
		addr, _ := p.Symbols.Resolve(name)
		if _, err := fmt.Fprintf(w, "%-16s %-10s %d\n", name, kind, addr); err != nil {
			return err
		}
	}
	return nil
}
