package assembler

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/Urethramancer/hack/cpu"
)

// Assembler holds the settings for translating Hack assembly. It keeps no
// state between runs; every call to Assemble gets a fresh symbol table.
type Assembler struct {
	// AllowDuplicateLabels keeps the first declaration of a repeated label
	// and ignores the rest, instead of failing.
	AllowDuplicateLabels bool
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{}
}

// Assemble translates src into one 16-digit binary word per instruction.
func Assemble(src string) ([]string, error) {
	p, err := New().Assemble(src)
	if err != nil {
		return nil, err
	}
	return p.Binary(), nil
}

// Assemble takes Hack assembly source and returns the assembled program.
// No partial program is returned on error.
func (asm *Assembler) Assemble(src string) (*Program, error) {
	nodes, err := parseLines(Normalize(src))
	if err != nil {
		return nil, err
	}

	symbols := NewSymbolTable()
	if err := asm.collectLabels(nodes, symbols); err != nil {
		return nil, err
	}

	prog := &Program{Symbols: symbols}
	for _, n := range nodes {
		var word string
		switch n.Type {
		case NodeLabel:
			continue
		case NodeAddress:
			word, err = encodeAddress(n, symbols)
		case NodeCompute:
			word, err = encodeCompute(n)
		}
		if err != nil {
			return nil, err
		}
		prog.Instructions = append(prog.Instructions, Instruction{Line: n.Line, Binary: word})
	}
	glog.V(1).Infof("assembled %d instructions, %d symbols", len(prog.Instructions), symbols.Len())
	return prog, nil
}

// parseLines converts normalized lines into nodes.
func parseLines(lines []Line) ([]*Node, error) {
	nodes := make([]*Node, 0, len(lines))
	for _, l := range lines {
		n, err := parseLine(l)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// collectLabels is the first pass. Each label gets the index of the next
// instruction; labels themselves take no slot.
func (asm *Assembler) collectLabels(nodes []*Node, symbols *SymbolTable) error {
	var pc int
	for _, n := range nodes {
		if n.Type != NodeLabel {
			pc++
			continue
		}
		if pc > cpu.MaxAddress+1 {
			return lineError(n.Line, "label", fmt.Errorf("%w: index %d", ErrAddressRange, pc))
		}
		if !asm.AllowDuplicateLabels {
			if _, ok := registerValue(n.Symbol); ok {
				return lineError(n.Line, "label", fmt.Errorf("%w: %s is a register", ErrDuplicateLabel, n.Symbol))
			}
			if kind, ok := symbols.Kind(n.Symbol); ok {
				return lineError(n.Line, "label", fmt.Errorf("%w: %s is already a %s symbol", ErrDuplicateLabel, n.Symbol, kind))
			}
		}
		symbols.DeclareLabel(n.Symbol, uint16(pc))
	}
	return nil
}

// encodeAddress resolves the target of an @ instruction in priority order:
// register, known symbol, numeric literal, new variable.
func encodeAddress(n *Node, symbols *SymbolTable) (string, error) {
	var value int
	if r, ok := registerValue(n.Symbol); ok {
		value = r
	} else if addr, ok := symbols.Resolve(n.Symbol); ok {
		value = int(addr)
	} else if v, ok, err := numberValue(n.Symbol); ok {
		if err != nil || v > cpu.MaxAddress {
			return "", lineError(n.Line, "address", fmt.Errorf("%w: %s", ErrAddressRange, n.Symbol))
		}
		value = v
	} else {
		value = int(symbols.AllocateVariable(n.Symbol))
	}

	bits, err := cpu.TwosComplement(cpu.AddressBits, value)
	if err != nil {
		if errors.Is(err, cpu.ErrRange) {
			err = fmt.Errorf("%w: %v", ErrAddressRange, err)
		}
		return "", lineError(n.Line, "address", err)
	}
	return cpu.AddressPrefix + bits, nil
}

// encodeCompute looks up each field of a compute instruction.
func encodeCompute(n *Node) (string, error) {
	comp, ok := cpu.CompBits(n.Comp)
	if !ok {
		return "", lineError(n.Line, "comp", fmt.Errorf("%w %q", ErrUnknownMnemonic, n.Comp))
	}
	dest, ok := cpu.DestBits(n.Dest)
	if !ok {
		return "", lineError(n.Line, "dest", fmt.Errorf("%w %q", ErrUnknownMnemonic, n.Dest))
	}
	jump, ok := cpu.JumpBits(n.Jump)
	if !ok {
		return "", lineError(n.Line, "jump", fmt.Errorf("%w %q", ErrUnknownMnemonic, n.Jump))
	}
	return cpu.ComputePrefix + comp + dest + jump, nil
}
